package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finance-tracker/personal-finance/internal/domain/entity"
)

const advisorPreamble = "You are a personal finance advisor analysing a user's month in a warm, encouraging tone."

// IsFirstMonth reports whether the review must use the welcome framing
// because there is nothing to compare against.
func IsFirstMonth(previous *entity.MonthData) bool {
	return !previous.HasTransactions()
}

// BuildPrompt renders the generation prompt. Both months' snapshots are
// embedded as indented JSON.
func BuildPrompt(user *entity.User, current *entity.MonthData, previous *entity.MonthData) (string, error) {
	var b strings.Builder
	b.WriteString(advisorPreamble)
	b.WriteString("\n")

	var payload any
	if IsFirstMonth(previous) {
		b.WriteString("This is the first month the user tracks their finances with the app. ")
		b.WriteString("Write it like a friendly welcome message.\n")
		fmt.Fprintf(&b, "Address the user as %q.\n\n", user.FullName())
		b.WriteString("Key points:\n")
		b.WriteString("- Congratulate the user for starting to track their finances\n")
		b.WriteString("- Analyse the first month's data positively\n")
		b.WriteString("- Offer motivating suggestions for the coming months\n")
		b.WriteString("- Give guidance on budgeting and setting savings goals\n")
		payload = current
	} else {
		b.WriteString("Using the data below, write the analysis like a friendly advice letter. ")
		b.WriteString("Highlight the positives and point out areas for improvement gently.\n")
		fmt.Fprintf(&b, "Address the user as %q.\n\n", user.FullName())
		b.WriteString("Key points:\n")
		b.WriteString("- Compare income and expenses with the previous month\n")
		b.WriteString("- Explain changes in the saving rate encouragingly\n")
		b.WriteString("- Be motivating about savings goals\n")
		b.WriteString("- Phrase suggestions softly, e.g. \"you could try\"\n")
		payload = struct {
			CurrentMonth  *entity.MonthData `json:"currentMonth"`
			PreviousMonth *entity.MonthData `json:"previousMonth"`
		}{current, previous}
	}
	b.WriteString("- Always keep a positive tone\n\n")

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode month data: %w", err)
	}
	b.WriteString("Data:\n")
	b.Write(data)

	return b.String(), nil
}
