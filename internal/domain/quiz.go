package domain

import (
	"context"
	"encoding/json"
	"time"
)

// BlankMarker replaces the answer inside a fill-in-the-blank question
const BlankMarker = "____"

// MaxURLLength is the size of the quizzes.url column
const MaxURLLength = 500

// DefaultDifficulty is reported for items that do not carry their own difficulty
const DefaultDifficulty = "medium"

// MCQ is a multiple-choice question with one correct option among four
type MCQ struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
}

// Valid reports whether the item has exactly four distinct options containing the answer
func (q MCQ) Valid() bool {
	if q.Question == "" || q.Answer == "" || len(q.Options) != 4 {
		return false
	}
	seen := make(map[string]struct{}, len(q.Options))
	hasAnswer := false
	for _, opt := range q.Options {
		if _, dup := seen[opt]; dup {
			return false
		}
		seen[opt] = struct{}{}
		if opt == q.Answer {
			hasAnswer = true
		}
	}
	return hasAnswer
}

// FillBlank is a sentence with one masked token
type FillBlank struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}

// QuizPayload is the serialized body of a quiz. All four keys are always emitted.
type QuizPayload struct {
	Summary       string      `json:"summary"`
	MCQ           []MCQ       `json:"mcq"`
	Fill          []FillBlank `json:"fill"`
	RelatedTopics []string    `json:"related_topics"`
}

// Normalize replaces nil lists with empty ones so that JSON never contains null
func (p *QuizPayload) Normalize() {
	if p.MCQ == nil {
		p.MCQ = []MCQ{}
	}
	if p.Fill == nil {
		p.Fill = []FillBlank{}
	}
	if p.RelatedTopics == nil {
		p.RelatedTopics = []string{}
	}
}

// Marshal serializes the payload for storage
func (p QuizPayload) Marshal() (string, error) {
	p.Normalize()
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalQuizPayload parses a stored payload
func UnmarshalQuizPayload(data string) (*QuizPayload, error) {
	var p QuizPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

// GenerationSource tells which path produced a quiz payload
type GenerationSource string

const (
	SourceLLM      GenerationSource = "llm"
	SourceFallback GenerationSource = "fallback"
)

// GenerationResult is the outcome of one generation attempt. FallbackReason is set when the
// LLM path was tried and failed; it is nil when no LLM was configured.
type GenerationResult struct {
	Payload        *QuizPayload
	Source         GenerationSource
	FallbackReason error
}

// Quiz is a persisted, immutable quiz record
type Quiz struct {
	ID        string
	Title     string
	URL       string
	Summary   string
	Payload   *QuizPayload
	Source    GenerationSource
	CreatedAt time.Time
}

// QuizSummary is the listing view of a quiz
type QuizSummary struct {
	ID        string
	Title     string
	URL       string
	CreatedAt time.Time
}

// Article is the scraped content of a Wikipedia page
type Article struct {
	Title         string
	URL           string
	Content       string
	RelatedTopics []string
}

// ArticleScraper fetches article text from a URL or bare title
type ArticleScraper interface {
	Scrape(ctx context.Context, urlOrTitle string) (*Article, error)
}

// QuizGenerator produces a quiz payload with an external LLM
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, title, text string) (*QuizPayload, error)
}

// FallbackQuizGenerator builds a quiz locally. It cannot fail.
type FallbackQuizGenerator interface {
	Generate(text string) *QuizPayload
}

// QuizRepository persists quizzes
type QuizRepository interface {
	Create(ctx context.Context, quiz *Quiz) error
	List(ctx context.Context) ([]*QuizSummary, error)
	// GetByID returns nil, nil when the quiz does not exist
	GetByID(ctx context.Context, id string) (*Quiz, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// TransactionManager runs fn inside a database transaction carried by ctx
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
