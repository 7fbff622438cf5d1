package domain

import (
	"errors"
	"testing"
)

func TestNewCard(t *testing.T) {
	t.Parallel() // Enable parallel execution

	card, err := NewCard(103, CardInput{
		Category: "History",
		Question: "  Who?  ",
		Answer:   "Him\n",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID != 103 {
		t.Errorf("Expected ID 103, got %d", card.ID)
	}
	if card.Question != "Who?" || card.Answer != "Him" {
		t.Errorf("Expected trimmed question/answer, got %q/%q", card.Question, card.Answer)
	}
	if card.Category != "History" {
		t.Errorf("Expected category History, got %q", card.Category)
	}
	if card.EasyCount != 0 {
		t.Errorf("Expected zero easy count, got %d", card.EasyCount)
	}
}

func TestNewCardCategoryResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input CardInput
		want  string
	}{
		{"existing only", CardInput{Category: "Math"}, "Math"},
		{"new wins", CardInput{Category: "Math", NewCategory: "Physics"}, "Physics"},
		{"blank new falls back", CardInput{Category: "Math", NewCategory: "   "}, "Math"},
		{"new trimmed", CardInput{NewCategory: " Art "}, "Art"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.Question = "q"
			tc.input.Answer = "a"
			card, err := NewCard(1, tc.input)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if card.Category != tc.want {
				t.Errorf("Expected category %q, got %q", tc.want, card.Category)
			}
		})
	}
}

func TestNewCardValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     CardInput
		wantField string
		wantErr   error
	}{
		{
			name:      "empty question",
			input:     CardInput{Category: "c", Question: " ", Answer: "a"},
			wantField: "question",
			wantErr:   ErrCardQuestionEmpty,
		},
		{
			name:      "empty answer",
			input:     CardInput{Category: "c", Question: "q", Answer: ""},
			wantField: "answer",
			wantErr:   ErrCardAnswerEmpty,
		},
		{
			name:      "no category at all",
			input:     CardInput{Question: "q", Answer: "a"},
			wantField: "category",
			wantErr:   ErrCardCategoryEmpty,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCard(1, tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected ErrValidation, got %v", err)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("Expected field %q, got %q", tc.wantField, verr.Field)
			}
		})
	}
}

func TestFeedbackValid(t *testing.T) {
	t.Parallel()

	if !FeedbackEasy.Valid() || !FeedbackHard.Valid() {
		t.Error("Expected easy and hard to be valid")
	}
	if Feedback("good").Valid() {
		t.Error("Expected unknown feedback to be invalid")
	}
}
