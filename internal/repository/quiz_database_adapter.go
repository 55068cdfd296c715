package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"
	"wiki-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// Column aliases keep lower-case names on Oracle, which upper-cases unquoted identifiers.
const (
	insertQuizQuery = `INSERT INTO quizzes (
		id, title, url, summary, quiz_data, source, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	listQuizzesQuery = `SELECT
		id "id",
		title "title",
		url "url",
		created_at "created_at"
	FROM quizzes
	ORDER BY created_at DESC, id DESC`

	getQuizByIDQuery = `SELECT
		id "id",
		title "title",
		url "url",
		summary "summary",
		quiz_data "quiz_data",
		source "source",
		created_at "created_at"
	FROM quizzes
	WHERE id = ?`

	countQuizzesQuery  = `SELECT COUNT(*) FROM quizzes`
	deleteQuizzesQuery = `DELETE FROM quizzes`
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// Create implements domain.QuizRepository. A missing ID or timestamp is assigned here.
func (a *QuizDatabaseAdapter) Create(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil || quiz.Payload == nil {
		return fmt.Errorf("cannot save quiz without payload")
	}
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}
	if quiz.Source == "" {
		quiz.Source = domain.SourceFallback
	}

	row := toModelQuiz(quiz)
	exec := GetExecutor(ctx, a.db)
	_, err := exec.ExecContext(ctx, exec.Rebind(insertQuizQuery),
		row.ID,
		row.Title,
		row.URL,
		row.Summary,
		row.QuizData,
		row.Source,
		row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// List implements domain.QuizRepository, newest first
func (a *QuizDatabaseAdapter) List(ctx context.Context) ([]*domain.QuizSummary, error) {
	var rows []models.QuizSummary
	exec := GetExecutor(ctx, a.db)
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(listQuizzesQuery)); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	summaries := make([]*domain.QuizSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, &domain.QuizSummary{
			ID:        r.ID,
			Title:     r.Title,
			URL:       r.URL,
			CreatedAt: r.CreatedAt,
		})
	}
	return summaries, nil
}

// GetByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var row models.Quiz
	exec := GetExecutor(ctx, a.db)
	err := exec.GetContext(ctx, &row, exec.Rebind(getQuizByIDQuery), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&row), nil
}

// DeleteAll implements domain.QuizRepository. The count is read before deleting because
// some Oracle drivers report zero affected rows.
func (a *QuizDatabaseAdapter) DeleteAll(ctx context.Context) (int64, error) {
	exec := GetExecutor(ctx, a.db)

	var count int64
	if err := exec.GetContext(ctx, &count, countQuizzesQuery); err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	if _, err := exec.ExecContext(ctx, deleteQuizzesQuery); err != nil {
		return 0, fmt.Errorf("failed to delete quizzes: %w", err)
	}
	return count, nil
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:        q.ID,
		Title:     q.Title,
		URL:       q.URL,
		Summary:   util.StringToNullString(q.Summary),
		QuizData:  models.QuizData(*q.Payload),
		Source:    string(q.Source),
		CreatedAt: q.CreatedAt,
	}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	payload := domain.QuizPayload(m.QuizData)
	return &domain.Quiz{
		ID:        m.ID,
		Title:     m.Title,
		URL:       m.URL,
		Summary:   util.NullStringToString(m.Summary),
		Payload:   &payload,
		Source:    domain.GenerationSource(m.Source),
		CreatedAt: m.CreatedAt,
	}
}

// Static assertion to ensure QuizDatabaseAdapter implements QuizRepository
var _ domain.QuizRepository = (*QuizDatabaseAdapter)(nil)
