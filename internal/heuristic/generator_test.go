package heuristic

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cities = []string{"London", "Paris", "Berlin", "Madrid", "Rome", "Vienna", "Prague", "Lisbon", "Dublin", "Oslo", "Athens", "Warsaw"}

// sampleArticle returns n usable sentences, each naming a city and a year.
func sampleArticle(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "In %d the famous explorer travelled to %s to study old maps and rare books. ", 1800+i, cities[i%len(cities)])
	}
	return b.String()
}

func TestDistractors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("samples from candidates", func(t *testing.T) {
		got := Distractors("Paris", []string{"Paris", "London", "Berlin", "Madrid", "Rome"}, rng)
		require.Len(t, got, 3)
		assert.NotContains(t, got, "Paris")
		for _, d := range got {
			assert.Contains(t, []string{"London", "Berlin", "Madrid", "Rome"}, d)
		}
	})

	t.Run("pads from fallback set", func(t *testing.T) {
		got := Distractors("Paris", []string{"Paris", "London"}, rng)
		require.Len(t, got, 3)
		assert.Contains(t, got, "London")
		assert.NotContains(t, got, "Paris")
		assertDistinct(t, got)
	})

	t.Run("never repeats the answer from the fallback set", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			got := Distractors("India", nil, rng)
			require.Len(t, got, 3)
			assert.NotContains(t, got, "India")
			assertDistinct(t, got)
		}
	})
}

func TestProperNouns(t *testing.T) {
	got := ProperNouns("Turing met Church in Princeton. Turing later returned to England, not ENGLAND.")
	assert.Equal(t, []string{"Turing", "Church", "Princeton", "England"}, got)
}

func TestBlankOut(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		answer   string
		want     string
		ok       bool
	}{
		{"first occurrence only", "Paris is big and Paris is old.", "Paris", "____ is big and Paris is old.", true},
		{"whole word", "In 1912 and 19120 it rained.", "1912", "In ____ and 19120 it rained.", true},
		{"prefers whole word over substring", "Romeo left Rome early.", "Rome", "Romeo left ____ early.", true},
		{"non ascii edge", "Visitors came from Ölfus that year.", "Ölfus", "Visitors came from ____ that year.", true},
		{"non ascii prefers whole word", "Ölfusá lies near Ölfus in Iceland today.", "Ölfus", "Ölfusá lies near ____ in Iceland today.", true},
		{"non ascii at sentence end", "The river flows past Ölfus.", "Ölfus", "The river flows past ____.", true},
		{"substring when no whole word", "Ölfusá lies in Iceland.", "Ölfus", "____á lies in Iceland.", true},
		{"missing answer", "Nothing here.", "Paris", "", false},
		{"existing blank", "A ____ was already Paris.", "Paris", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BlankOut(tt.sentence, tt.answer)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate_StructuralInvariants(t *testing.T) {
	article := sampleArticle(30)

	for seed := int64(0); seed < 20; seed++ {
		payload := NewGenerator(WithSeed(seed)).Generate(article)

		require.Len(t, payload.MCQ, 10)
		require.Len(t, payload.Fill, 10)
		assert.NotNil(t, payload.RelatedTopics)

		for _, q := range payload.MCQ {
			require.Len(t, q.Options, 4)
			assertDistinct(t, q.Options)
			assert.Contains(t, q.Options, q.Answer)
			assert.True(t, q.Valid())
			assert.True(t, strings.HasPrefix(q.Question, "What is true about: “"))
		}

		for _, f := range payload.Fill {
			assert.Equal(t, 1, strings.Count(f.Question, domain.BlankMarker))
			restored := strings.Replace(f.Question, domain.BlankMarker, f.Answer, 1)
			assert.Contains(t, article, restored)
			idx := strings.Index(restored, f.Answer)
			assert.Equal(t, idx, strings.Index(f.Question, domain.BlankMarker), "blank must replace the first occurrence")
		}
	}
}

func TestGenerate_NoOverlapBetweenMCQAndFill(t *testing.T) {
	payload := NewGenerator(WithSeed(7)).Generate(sampleArticle(20))

	mcqSentences := make(map[string]bool)
	for _, q := range payload.MCQ {
		s := strings.TrimSuffix(strings.TrimPrefix(q.Question, "What is true about: “"), "”?")
		mcqSentences[s] = true
	}
	for _, f := range payload.Fill {
		restored := strings.Replace(f.Question, domain.BlankMarker, f.Answer, 1)
		assert.False(t, mcqSentences[restored], "sentence %q used twice", restored)
	}
}

func TestGenerate_SameSeedSameOutput(t *testing.T) {
	article := sampleArticle(25)
	a := NewGenerator(WithSeed(42)).Generate(article)
	b := NewGenerator(WithSeed(42)).Generate(article)
	assert.Equal(t, a, b)
}

func TestGenerate_SingleLongSentence(t *testing.T) {
	article := strings.TrimSpace(strings.Repeat("Turing ", 49)) + " computed."

	payload := NewGenerator(WithSeed(1)).Generate(article)

	assert.Empty(t, payload.MCQ)
	assert.Empty(t, payload.Fill)
	assert.NotEmpty(t, payload.Summary)
	assert.LessOrEqual(t, utf8.RuneCountInString(payload.Summary), SummaryLength+3)
}

func TestGenerate_FewSentences(t *testing.T) {
	payload := NewGenerator(WithSeed(3)).Generate(sampleArticle(4))
	assert.Len(t, payload.MCQ, 4)
	assert.Empty(t, payload.Fill)
}

func TestGenerate_SkipsSentencesWithoutKeywords(t *testing.T) {
	article := "the quiet river flows slowly past the old mill every single day. " +
		"the small birds sing loudly in the tall green trees each morning."

	payload := NewGenerator(WithSeed(3)).Generate(article)
	assert.Empty(t, payload.MCQ)
}

func TestGenerate_LongSummary(t *testing.T) {
	payload := NewGenerator(WithSeed(5)).Generate(sampleArticle(40))
	assert.Equal(t, SummaryLength+3, utf8.RuneCountInString(payload.Summary))
	assert.True(t, strings.HasSuffix(payload.Summary, "..."))
}

func assertDistinct(t *testing.T, values []string) {
	t.Helper()
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		assert.False(t, seen[v], "duplicate value %q", v)
		seen[v] = true
	}
}
