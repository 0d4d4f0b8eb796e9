//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/finance-tracker/personal-finance/internal/application/usecase/review"
	"github.com/finance-tracker/personal-finance/test/integration/mock"
)

const defaultPassword = "Str0ng!Pass"

type testContext struct {
	app          *app
	client       *http.Client
	headers      map[string]string
	accessToken  string
	refreshToken string
	vars         map[string]string
	response     *response
	batch        *review.RunMonthlyBatchOutput
}

type response struct {
	status int
	header http.Header
	body   any
}

func (t *testContext) before() error {
	t.app = startApp()
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.vars = make(map[string]string)
	t.response = nil
	t.batch = nil

	if err := t.app.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	t.app.generator.Reset()
	t.app.provider.Reset()
	t.app.provider.SetResponse(http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": "email_123"})
	return nil
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.app.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) iAmRegisteredAs(emailAddress string) error {
	payload := map[string]any{
		"firstName": "Ana",
		"lastName":  "Silva",
		"email":     emailAddress,
		"password":  defaultPassword,
		"birthDate": "15.05.1990",
	}
	if err := t.sendJSON(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return err
	}

	access, _ := getFieldValue(t.response.body, "data.accessToken").(string)
	refresh, _ := getFieldValue(t.response.body, "data.refreshToken").(string)
	userID, _ := getFieldValue(t.response.body, "data.user.id").(string)
	if access == "" || refresh == "" {
		return fmt.Errorf("register response carries no tokens: %v", t.response.body)
	}
	t.accessToken = access
	t.refreshToken = refresh
	t.vars["access_token"] = access
	t.vars["refresh_token"] = refresh
	t.vars["user_id"] = userID
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	if err := t.sendJSON(http.MethodPost, "/api/v1/categories", map[string]any{"name": name, "type": categoryType}); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return err
	}
	id, _ := getFieldValue(t.response.body, "data.id").(string)
	t.vars["category:"+name] = id
	return nil
}

func (t *testContext) aTransactionExists(transactionType, amount, categoryName, date string) error {
	categoryID, ok := t.vars["category:"+categoryName]
	if !ok {
		return fmt.Errorf("category %q was not created in this scenario", categoryName)
	}
	payload := map[string]any{
		"type":        transactionType,
		"amount":      amount,
		"categoryId":  categoryID,
		"date":        t.replacePlaceholders(date),
		"description": categoryName,
	}
	if err := t.sendJSON(http.MethodPost, "/api/v1/transactions", payload); err != nil {
		return err
	}
	return t.theResponseStatusShouldBe(http.StatusCreated)
}

func (t *testContext) theTextGeneratorRespondsWith(text string) error {
	t.app.generator.RespondWith(text)
	return nil
}

func (t *testContext) theTextGeneratorIsUnreachable() error {
	t.app.generator.SetDown(true)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	payload := []byte(t.replacePlaceholders(body.Content))
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iRememberTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.vars[name] = fmt.Sprintf("%v", value)
	return nil
}

func (t *testContext) theMonthlyReviewBatchRunsOn(date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	out, err := t.app.injector.MonthlyReview.Execute(context.Background(), review.RunMonthlyBatchInput{
		Now: day.Add(23*time.Hour + 59*time.Minute),
	})
	if err != nil {
		return err
	}
	t.batch = out
	return nil
}

func (t *testContext) theBatchSummaryShouldBe(processed, generated, skipped, failed int) error {
	if t.batch == nil {
		return errors.New("the monthly review batch did not run")
	}
	got := [4]int{t.batch.Processed, t.batch.Generated, t.batch.Skipped, t.batch.Failed}
	if want := [4]int{processed, generated, skipped, failed}; got != want {
		return fmt.Errorf("expected batch summary %v, got %v", want, got)
	}
	return nil
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	t.app.injector.EmailWorker.ProcessBatch(context.Background())
	return nil
}

// replacePlaceholders expands {{name}} from remembered values plus the
// {{today}} and {{current_month}} dates.
func (t *testContext) replacePlaceholders(content string) string {
	now := time.Now().UTC()
	content = strings.ReplaceAll(content, "{{today}}", now.Format("2006-01-02"))
	content = strings.ReplaceAll(content, "{{current_month}}", now.Format("2006-01"))
	for name, value := range t.vars {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *testContext) sendJSON(method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return t.executeRequest(method, path, body)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.app.server.URL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode, header: resp.Header}

	var decoded map[string]any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = decoded
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	if actual := fmt.Sprintf("%v", value); actual != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	switch v := getFieldValue(t.response.body, field).(type) {
	case []any:
		if len(v) != count {
			return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(v))
		}
	case map[string]any:
		if len(v) != count {
			return fmt.Errorf("field '%s' expected %d keys, got %d", field, count, len(v))
		}
	default:
		return fmt.Errorf("field '%s' is not a collection: %v", field, v)
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldBe(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.header.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.app.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.app.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	if got := len(t.app.provider.GetRequests(http.MethodPost, "/emails")); got != count {
		return fmt.Errorf("expected %d emails, provider received %d", count, got)
	}
	return nil
}

func (t *testContext) theLastEmailShouldBeAddressedTo(address string) error {
	requests := t.app.provider.GetRequests(http.MethodPost, "/emails")
	if len(requests) == 0 {
		return errors.New("provider received no email")
	}
	last := requests[len(requests)-1]
	recipients, _ := last["to"].([]any)
	for _, r := range recipients {
		if s, ok := r.(string); ok && strings.Contains(s, address) {
			return nil
		}
	}
	return fmt.Errorf("last email is not addressed to %s: %v", address, last["to"])
}

func (t *testContext) theTextGeneratorShouldHaveReceivedPrompts(count int) error {
	if got := len(t.app.generator.Prompts()); got != count {
		return fmt.Errorf("expected %d prompts, generator received %d", count, got)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	objectMap, ok := object.(map[string]any)
	if !ok {
		return nil
	}

	var field any = objectMap
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
