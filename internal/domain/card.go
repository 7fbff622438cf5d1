package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Card-specific validation errors
var (
	// ErrCardQuestionEmpty is returned when a card's question trims to empty.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card's answer trims to empty.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")

	// ErrCardCategoryEmpty is returned when neither a new nor an existing
	// category was supplied.
	ErrCardCategoryEmpty = errors.New("card category cannot be empty")
)

// GroupID identifies a Group. IDs are allocated from a monotonic counter.
type GroupID int

// CardID identifies a Card across all groups.
type CardID int

// Card is one question/answer unit. The JSON tags match the persisted layout,
// which must stay readable by older saves.
type Card struct {
	ID        CardID `json:"id"`
	Category  string `json:"category"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	EasyCount int    `json:"easyCount"`
}

// CardInput is the raw form a user fills in to add a card. NewCategory, when
// non-blank, wins over the existing Category selection.
type CardInput struct {
	Category    string
	NewCategory string
	Question    string
	Answer      string
}

// cardFields is the resolved, trimmed shape of a CardInput that gets validated.
type cardFields struct {
	Category string `json:"category" validate:"required"`
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ResolveCategory returns the category the card will be filed under.
func (in CardInput) ResolveCategory() string {
	if c := strings.TrimSpace(in.NewCategory); c != "" {
		return c
	}
	return strings.TrimSpace(in.Category)
}

// NewCard validates the input and builds a Card with the given ID and a zero
// easy count. The returned error is a *ValidationError for the first bad field.
func NewCard(id CardID, in CardInput) (Card, error) {
	fields := cardFields{
		Category: in.ResolveCategory(),
		Question: strings.TrimSpace(in.Question),
		Answer:   strings.TrimSpace(in.Answer),
	}

	if err := validate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Card{}, fieldError(verrs[0].Field())
		}
		return Card{}, NewValidationError("card", "invalid card input", err)
	}

	return Card{
		ID:       id,
		Category: fields.Category,
		Question: fields.Question,
		Answer:   fields.Answer,
	}, nil
}

func fieldError(field string) *ValidationError {
	switch field {
	case "question":
		return NewValidationError(field, "is required", ErrCardQuestionEmpty)
	case "answer":
		return NewValidationError(field, "is required", ErrCardAnswerEmpty)
	case "category":
		return NewValidationError(field, "select a category or enter a new one", ErrCardCategoryEmpty)
	default:
		return NewValidationError(field, "is required", ErrEmptyContent)
	}
}
