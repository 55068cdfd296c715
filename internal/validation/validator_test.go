package validation

import (
	"strings"
	"testing"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGenerateQuizRequest(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		input    string
		wantCode domain.ErrorCode
	}{
		{"valid url", "https://en.wikipedia.org/wiki/Alan_Turing", ""},
		{"valid http url", "http://en.wikipedia.org/wiki/Go", ""},
		{"bare title", "Alan Turing", ""},
		{"empty", "", domain.CodeMissingField},
		{"whitespace", "   ", domain.CodeMissingField},
		{"too long", "https://en.wikipedia.org/wiki/" + strings.Repeat("a", MaxURLLength), domain.CodeOutOfRange},
		{"no host", "https:///wiki/Alan_Turing", domain.CodeInvalidFormat},
		{"bad escape", "https://en.wikipedia.org/wiki/%zz", domain.CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateGenerateQuizRequest(tt.input)
			if tt.wantCode == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantCode, errs[0].Code)
			assert.Equal(t, "url", errs[0].Field)
		})
	}
}

func TestValidateQuizID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateQuizID(util.NewULID()))

	errs := v.ValidateQuizID("")
	require.Len(t, errs, 1)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateQuizID("not-a-ulid")
	require.Len(t, errs, 1)
	assert.Equal(t, domain.CodeInvalidFormat, errs[0].Code)
}
