package service

import (
	"context"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) List(ctx context.Context) ([]*domain.QuizSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizSummary), args.Error(1)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// --- MockTransactionManager ---
// Runs fn directly so repository expectations apply unchanged.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- MockArticleScraper ---
type MockArticleScraper struct {
	mock.Mock
}

func (m *MockArticleScraper) Scrape(ctx context.Context, urlOrTitle string) (*domain.Article, error) {
	args := m.Called(ctx, urlOrTitle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuiz(ctx context.Context, title, text string) (*domain.QuizPayload, error) {
	args := m.Called(ctx, title, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizPayload), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
