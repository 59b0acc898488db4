package huhforms

import (
	"errors"
	"strings"
	"unicode/utf8"

	"charm.land/huh/v2"
	"github.com/thenoetrevino/dealdesk/internal/models"
	"github.com/thenoetrevino/dealdesk/internal/money"
	"github.com/thenoetrevino/dealdesk/internal/tui/state"
)

// formWidth keeps the form readable inside the overlay
const formWidth = 56

// CreateDealForm creates a huh form for adding or editing a deal.
// Fields write straight into values.
func CreateDealForm(values *state.DealFormValues, editing bool, theme huh.Theme) *huh.Form {
	confirmTitle := "Create this deal?"
	if editing {
		confirmTitle = "Save changes?"
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("Website Redesign").
			CharLimit(models.MaxTitleLength).
			Validate(ValidateTitle).
			Value(&values.Title),

		huh.NewInput().
			Key("company").
			Title("Company").
			Placeholder("Acme Corp").
			Validate(required("company")).
			Value(&values.Company),

		huh.NewInput().
			Key("amount").
			Title("Amount").
			Placeholder("$8,500").
			Validate(ValidateAmount).
			Value(&values.Amount),

		huh.NewInput().
			Key("contact").
			Title("Contact (optional)").
			Placeholder(models.DefaultContact).
			Value(&values.Contact),

		huh.NewInput().
			Key("due").
			Title("Due (optional)").
			Placeholder(models.DefaultDue).
			Value(&values.Due),

		huh.NewInput().
			Key("owner").
			Title("Owner").
			Value(&values.Owner),

		huh.NewConfirm().
			Key("confirm").
			Title(confirmTitle).
			Affirmative("Yes").
			Negative("No").
			Value(&values.Confirm),
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(formWidth).
		WithTheme(theme).
		WithKeyMap(CreateKeyMap())
}

// ValidateTitle rejects blank and overlong titles
func ValidateTitle(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(s) > models.MaxTitleLength {
		return errors.New("title is too long")
	}
	return nil
}

// ValidateAmount accepts anything money.Parse reads
func ValidateAmount(s string) error {
	if _, err := money.Parse(s); err != nil {
		return errors.New("enter an amount such as 8500 or $8,500.00")
	}
	return nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}
