//go:build integration

// Package steps runs the BDD scenarios under ../features against the fully
// wired API backed by SQLite, miniredis and stubbed external services.
package steps

import (
	"context"
	"flag"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/personal-finance/config"
	"github.com/finance-tracker/personal-finance/internal/infra/dependency"
	"github.com/finance-tracker/personal-finance/internal/integration/email"
	"github.com/finance-tracker/personal-finance/internal/integration/persistence/model"
	"github.com/finance-tracker/personal-finance/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

// TestFeatures runs all BDD feature tests.
func TestFeatures(t *testing.T) {
	flag.Parse()
	if envTags := os.Getenv("GODOG_TAGS"); envTags != "" && tags == "" {
		tags = envTags
	}

	suite := godog.TestSuite{
		Name:                 "personal-finance-api",
		TestSuiteInitializer: InitializeTestSuite,
		ScenarioInitializer:  InitializeScenario,
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Output:      colors.Colored(os.Stdout),
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// app is the API under test, shared by every scenario.
type app struct {
	db        *mock.Db
	generator *mock.Generator
	provider  *mock.ApiMock
	injector  *dependency.Injector
	server    *httptest.Server
}

var (
	appOnce sync.Once
	shared  *app
)

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	cfg.Review.GenerationTimeout = 5 * time.Second
	cfg.Review.BatchConcurrency = 2
	cfg.Review.JobLockTTL = time.Hour
	cfg.RateLimit.AuthRequests = 1000
	cfg.RateLimit.AuthWindow = time.Minute
	cfg.RateLimit.ReviewRequests = 3
	cfg.RateLimit.ReviewWindow = time.Hour
	cfg.Email.ResendAPIKey = "re_test"
	cfg.Email.FromName = "Finance Tracker"
	cfg.Email.FromEmail = "reviews@example.com"
	cfg.Email.AppBaseURL = "https://app.example.com"
	cfg.Email.BatchSize = 10
	return cfg
}

func startApp() *app {
	appOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		a := &app{
			db: mock.NewDb(map[string]any{
				"users":              &model.UserModel{},
				"categories":         &model.CategoryModel{},
				"transactions":       &model.TransactionModel{},
				"goals":              &model.GoalModel{},
				"goal_contributions": &model.ContributionModel{},
				"monthly_reviews":    &model.MonthlyReviewModel{},
				"email_queue":        &model.EmailQueueModel{},
			}),
			generator: mock.NewGenerator(),
			provider:  mock.NewApiServer(),
		}
		a.provider.Start()

		cfg := testConfig()
		sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		if err := sender.SetBaseURL(a.provider.GetUrl()); err != nil {
			panic(err)
		}

		healthy := func(context.Context) bool { return true }
		injector, err := dependency.NewInjector(cfg, a.db.DbConn, mock.NewRedis(), healthy, healthy, dependency.Overrides{
			Generator:   a.generator,
			EmailSender: sender,
		})
		if err != nil {
			panic(err)
		}
		a.injector = injector
		a.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment, nil))

		shared = a
	})
	return shared
}

// InitializeTestSuite releases the shared servers after the run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.AfterSuite(func() {
		if shared != nil {
			shared.server.Close()
			shared.provider.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Setup steps
	ctx.Given(`^I am registered as "([^"]*)"$`, test.iAmRegisteredAs)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^a "([^"]*)" transaction of "([^"]*)" exists in category "([^"]*)" on "([^"]*)"$`, test.aTransactionExists)
	ctx.Given(`^the text generator responds with "([^"]*)"$`, test.theTextGeneratorRespondsWith)
	ctx.Given(`^the text generator is unreachable$`, test.theTextGeneratorIsUnreachable)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I remember the response field "([^"]*)" as "([^"]*)"$`, test.iRememberTheResponseFieldAs)
	ctx.When(`^the monthly review batch runs on "([^"]*)"$`, test.theMonthlyReviewBatchRunsOn)
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the batch summary should be (\d+) processed, (\d+) generated, (\d+) skipped, (\d+) failed$`, test.theBatchSummaryShouldBe)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, test.theResponseHeaderShouldBe)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// External service assertion steps
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the last email should be addressed to "([^"]*)"$`, test.theLastEmailShouldBeAddressedTo)
	ctx.Then(`^the text generator should have received (\d+) prompts?$`, test.theTextGeneratorShouldHaveReceivedPrompts)
}
