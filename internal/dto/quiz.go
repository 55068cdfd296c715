package dto

import (
	"time"

	"wiki-quiz/internal/domain"
)

// HistoryTimeLayout is the created_at format of history entries
const HistoryTimeLayout = "2006-01-02 15:04:05"

// GenerateQuizRequest is the body of POST /generate_quiz
// @Description Wikipedia article to turn into a quiz
type GenerateQuizRequest struct {
	// Article URL or bare title
	URL string `json:"url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
}

// MCQResponse is a multiple-choice question
type MCQResponse struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
	Difficulty  string   `json:"difficulty"`
}

// FillResponse is a fill-in-the-blank question
type FillResponse struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
	Difficulty  string `json:"difficulty"`
}

// QuizResponse is a stored quiz with its full payload
// @Description Generated quiz
type QuizResponse struct {
	ID            string         `json:"id" example:"01HZ3V8Q6J0W9N4C2R7XKQ5B1D"`
	Title         string         `json:"title" example:"Alan Turing"`
	URL           string         `json:"url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
	Summary       string         `json:"summary"`
	MCQ           []MCQResponse  `json:"mcq"`
	Fill          []FillResponse `json:"fill"`
	RelatedTopics []string       `json:"related_topics"`
	// Source is llm or fallback
	Source    string    `json:"source" example:"llm"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryItem is one entry of GET /history
type HistoryItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at" example:"2024-05-01 12:00:00"`
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// ClearHistoryResponse is returned by DELETE /history/clear
type ClearHistoryResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// PingResponse is the liveness answer
type PingResponse struct {
	Status string `json:"status"`
}

// RootResponse describes the API
type RootResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// NewQuizResponse maps a stored quiz. Items without a difficulty report the default.
func NewQuizResponse(q *domain.Quiz) *QuizResponse {
	resp := &QuizResponse{
		ID:            q.ID,
		Title:         q.Title,
		URL:           q.URL,
		Summary:       q.Summary,
		MCQ:           []MCQResponse{},
		Fill:          []FillResponse{},
		RelatedTopics: []string{},
		Source:        string(q.Source),
		CreatedAt:     q.CreatedAt,
	}
	if q.Payload == nil {
		return resp
	}

	for _, m := range q.Payload.MCQ {
		resp.MCQ = append(resp.MCQ, MCQResponse{
			Question:    m.Question,
			Options:     m.Options,
			Answer:      m.Answer,
			Explanation: m.Explanation,
			Difficulty:  difficultyOrDefault(m.Difficulty),
		})
	}
	for _, f := range q.Payload.Fill {
		resp.Fill = append(resp.Fill, FillResponse{
			Question:    f.Question,
			Answer:      f.Answer,
			Explanation: f.Explanation,
			Difficulty:  difficultyOrDefault(f.Difficulty),
		})
	}
	if q.Payload.RelatedTopics != nil {
		resp.RelatedTopics = q.Payload.RelatedTopics
	}
	if resp.Summary == "" {
		resp.Summary = q.Payload.Summary
	}
	return resp
}

// NewHistoryItems maps quiz summaries to history entries, keeping their order
func NewHistoryItems(summaries []*domain.QuizSummary) []HistoryItem {
	items := make([]HistoryItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, HistoryItem{
			ID:        s.ID,
			Title:     s.Title,
			URL:       s.URL,
			CreatedAt: s.CreatedAt.UTC().Format(HistoryTimeLayout),
		})
	}
	return items
}

func difficultyOrDefault(d string) string {
	if d == "" {
		return domain.DefaultDifficulty
	}
	return d
}
