package heuristic

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"wiki-quiz/internal/domain"
)

const (
	maxMCQ  = 10
	maxFill = 10
)

// Generator builds quizzes from article text without an LLM. Every call draws a fresh
// *rand.Rand from its source so a Generator can be shared between requests.
type Generator struct {
	newRand func() *rand.Rand
}

// Option configures a Generator
type Option func(*Generator)

// WithRandSource overrides how random sources are created, e.g. to fix a seed in tests.
func WithRandSource(fn func() *rand.Rand) Option {
	return func(g *Generator) {
		g.newRand = fn
	}
}

// WithSeed makes every generation use the same seed
func WithSeed(seed int64) Option {
	return WithRandSource(func() *rand.Rand {
		return rand.New(rand.NewSource(seed))
	})
}

// NewGenerator creates a Generator seeded from the clock unless overridden
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the fallback quiz for raw article text. The summary is taken from the
// raw text; questions come from the cleaned text.
func (g *Generator) Generate(text string) *domain.QuizPayload {
	rng := g.newRand()
	cleaned := CleanText(text)

	sentences := SelectSentences(cleaned, rng)
	candidates := ProperNouns(cleaned)

	payload := &domain.QuizPayload{
		Summary: Summarize(text),
		MCQ:     BuildMCQs(sentences, candidates, rng),
		Fill:    BuildFills(sentences, rng),
	}
	payload.Normalize()
	return payload
}

// SelectSentences splits, de-duplicates and shuffles the usable sentences of cleaned text.
func SelectSentences(cleaned string, rng *rand.Rand) []string {
	all := SplitSentences(cleaned)
	seen := make(map[string]struct{}, len(all))
	sentences := make([]string, 0, len(all))
	for _, s := range all {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		sentences = append(sentences, s)
	}
	rng.Shuffle(len(sentences), func(i, j int) { sentences[i], sentences[j] = sentences[j], sentences[i] })
	return sentences
}

// BuildMCQs turns the first ten sentences into multiple-choice questions. Sentences
// without a keyword candidate are skipped, not replaced.
func BuildMCQs(sentences []string, candidates []string, rng *rand.Rand) []domain.MCQ {
	out := make([]domain.MCQ, 0, maxMCQ)
	for _, sent := range window(sentences, 0, maxMCQ) {
		keywords := KeywordCandidates(sent)
		if len(keywords) == 0 {
			continue
		}
		answer := keywords[rng.Intn(len(keywords))]

		options := append(Distractors(answer, candidates, rng), answer)
		rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

		out = append(out, domain.MCQ{
			Question:   fmt.Sprintf("What is true about: “%s”?", sent),
			Options:    options,
			Answer:     answer,
			Difficulty: domain.DefaultDifficulty,
		})
	}
	return out
}

// BuildFills blanks one keyword in each of sentences 10 to 20.
func BuildFills(sentences []string, rng *rand.Rand) []domain.FillBlank {
	out := make([]domain.FillBlank, 0, maxFill)
	for _, sent := range window(sentences, maxMCQ, maxMCQ+maxFill) {
		keywords := KeywordCandidates(sent)
		if len(keywords) == 0 {
			continue
		}
		answer := keywords[rng.Intn(len(keywords))]

		question, ok := BlankOut(sent, answer)
		if !ok {
			continue
		}
		out = append(out, domain.FillBlank{
			Question:   question,
			Answer:     answer,
			Difficulty: domain.DefaultDifficulty,
		})
	}
	return out
}

// BlankOut replaces the first whole-word occurrence of answer with the blank marker.
// It reports false when the result would not contain exactly one blank.
func BlankOut(sentence, answer string) (string, bool) {
	if answer == "" {
		return "", false
	}
	// RE2's \b is ASCII-only, so word boundaries are spelled out with Unicode classes
	re := regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(` + regexp.QuoteMeta(answer) + `)(?:$|[^\p{L}\p{N}_])`)
	var loc []int
	if m := re.FindStringSubmatchIndex(sentence); m != nil {
		loc = m[2:4]
	} else {
		idx := strings.Index(sentence, answer)
		if idx < 0 {
			return "", false
		}
		loc = []int{idx, idx + len(answer)}
	}

	question := sentence[:loc[0]] + domain.BlankMarker + sentence[loc[1]:]
	if strings.Count(question, domain.BlankMarker) != 1 {
		return "", false
	}
	return question, true
}

func window(s []string, from, to int) []string {
	if from >= len(s) {
		return nil
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
