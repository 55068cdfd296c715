package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"wiki-quiz/internal/domain"
)

const (
	maxQuestions       = 10
	defaultTemperature = 0.3
)

const quizPrompt = `You are a professional factual quiz generator.
Based only on the following Wikipedia article about "%s",
create a structured quiz with:
- %d factual multiple-choice questions (MCQs)
- %d factual fill-in-the-blank questions

Rules:
- Questions must be based on real facts (dates, achievements, people, places).
- Each MCQ has exactly 4 distinct options and one correct answer that is one of the options.
- Each fill-in-the-blank question contains exactly one "____" where the answer was removed.
- No grammar or language questions.
- Keep all questions short and meaningful.

Output ONLY valid JSON in this format:
{
  "summary": "short factual summary",
  "mcq": [
    {"question": "...", "options": ["A", "B", "C", "D"], "answer": "Correct"}
  ],
  "fill": [
    {"question": "Sentence with ____ missing factual word", "answer": "Correct"}
  ]
}

TEXT:
%s
`

// BuildPrompt renders the structured-output prompt for one article.
func BuildPrompt(title, text string) string {
	return fmt.Sprintf(quizPrompt, title, maxQuestions, maxQuestions, text)
}

// llmQuiz mirrors the JSON requested from the model. Pointers distinguish a missing key
// from an empty list.
type llmQuiz struct {
	Summary       string              `json:"summary"`
	MCQ           *[]domain.MCQ       `json:"mcq"`
	Fill          *[]domain.FillBlank `json:"fill"`
	RelatedTopics []string            `json:"related_topics"`
}

// ParseQuizResponse extracts the quiz JSON object from a raw model answer. Responses
// without both "mcq" and "fill" are rejected; individual items that break the quiz
// invariants are dropped, and a response left with no question at all is rejected.
func ParseQuizResponse(raw string) (*domain.QuizPayload, error) {
	cleaned := strings.TrimSpace(raw)

	// Some models emit a reasoning block before the answer
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}

	jsonStart := strings.Index(cleaned, "{")
	jsonEnd := strings.LastIndex(cleaned, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		return nil, errors.New("no JSON object found in LLM response")
	}

	var parsed llmQuiz
	if err := json.Unmarshal([]byte(cleaned[jsonStart:jsonEnd+1]), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON from LLM: %w", err)
	}
	if parsed.MCQ == nil || parsed.Fill == nil {
		return nil, errors.New(`LLM response is missing "mcq" or "fill"`)
	}

	payload := &domain.QuizPayload{
		Summary:       strings.TrimSpace(parsed.Summary),
		MCQ:           make([]domain.MCQ, 0, maxQuestions),
		Fill:          make([]domain.FillBlank, 0, maxQuestions),
		RelatedTopics: parsed.RelatedTopics,
	}
	for _, q := range *parsed.MCQ {
		if len(payload.MCQ) == maxQuestions {
			break
		}
		if !q.Valid() {
			continue
		}
		if q.Difficulty == "" {
			q.Difficulty = domain.DefaultDifficulty
		}
		payload.MCQ = append(payload.MCQ, q)
	}
	for _, f := range *parsed.Fill {
		if len(payload.Fill) == maxQuestions {
			break
		}
		if f.Answer == "" || strings.Count(f.Question, domain.BlankMarker) != 1 {
			continue
		}
		if f.Difficulty == "" {
			f.Difficulty = domain.DefaultDifficulty
		}
		payload.Fill = append(payload.Fill, f)
	}
	if len(payload.MCQ) == 0 && len(payload.Fill) == 0 {
		return nil, fmt.Errorf("LLM response has no valid questions (%d mcq and %d fill items rejected)",
			len(*parsed.MCQ), len(*parsed.Fill))
	}
	payload.Normalize()
	return payload, nil
}
