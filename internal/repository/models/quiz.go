package models

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
)

// QuizData stores a quiz payload as a JSON text column
type QuizData domain.QuizPayload

// Value implements the driver.Valuer interface
func (d QuizData) Value() (driver.Value, error) {
	return domain.QuizPayload(d).Marshal()
}

// Scan implements the sql.Scanner interface
func (d *QuizData) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		return errors.New("QuizData Scan: quiz_data is NULL")
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("QuizData Scan: unsupported type %T", value)
	}

	payload, err := domain.UnmarshalQuizPayload(raw)
	if err != nil {
		return fmt.Errorf("QuizData Scan: %w", err)
	}
	*d = QuizData(*payload)
	return nil
}

// Quiz is a row of the quizzes table
type Quiz struct {
	ID        string         `db:"id"`
	Title     string         `db:"title"`
	URL       string         `db:"url"`
	Summary   sql.NullString `db:"summary"`
	QuizData  QuizData       `db:"quiz_data"`
	Source    string         `db:"source"`
	CreatedAt time.Time      `db:"created_at"`
}

// QuizSummary is the projection used by the history listing
type QuizSummary struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}
