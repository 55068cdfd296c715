package validation

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/util"
)

// MaxURLLength bounds the submitted url field
const MaxURLLength = domain.MaxURLLength

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the url field. Values that are not http(s) URLs
// are treated as bare article titles.
func (v *Validator) ValidateGenerateQuizRequest(rawURL string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return append(errors, domain.NewMissingFieldError("url"))
	}
	if n := utf8.RuneCountInString(trimmed); n > MaxURLLength {
		return append(errors, domain.NewOutOfRangeError("url", n, 1, MaxURLLength))
	}

	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		parsed, err := url.Parse(trimmed)
		if err != nil || parsed.Host == "" {
			errors = append(errors, domain.NewInvalidFormatError("url", trimmed))
		}
	}

	return errors
}

// ValidateQuizID validates a quiz identifier path parameter
func (v *Validator) ValidateQuizID(quizID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(quizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !util.IsULID(quizID) {
		errors = append(errors, domain.NewInvalidFormatError("id", quizID))
	}

	return errors
}
