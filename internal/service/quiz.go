package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/heuristic"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, rawURL string) (*dto.QuizResponse, error)
	ListQuizzes(ctx context.Context) ([]dto.HistoryItem, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	ClearHistory(ctx context.Context) (int64, error)
}

// quizService implements QuizService
type quizService struct {
	repo      domain.QuizRepository
	txManager domain.TransactionManager
	scraper   domain.ArticleScraper
	// llm is nil when no provider is configured
	llm      domain.QuizGenerator
	fallback domain.FallbackQuizGenerator
	cache    domain.Cache
	quizTTL  time.Duration
	sfGroup  singleflight.Group
}

// NewQuizService creates a new instance of quizService. llm may be nil, in which case
// every quiz comes from the fallback generator. A nil cache disables caching.
func NewQuizService(
	repo domain.QuizRepository,
	txManager domain.TransactionManager,
	scraper domain.ArticleScraper,
	llm domain.QuizGenerator,
	fallback domain.FallbackQuizGenerator,
	quizCache domain.Cache,
	cfg *config.Config,
) QuizService {
	s := &quizService{
		repo:      repo,
		txManager: txManager,
		scraper:   scraper,
		llm:       llm,
		fallback:  fallback,
		cache:     quizCache,
	}
	if cfg != nil {
		s.quizTTL = cfg.Redis.QuizTTL
	}
	return s
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, rawURL string) (*dto.QuizResponse, error) {
	l := logger.Get()

	article, err := s.scraper.Scrape(ctx, rawURL)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewScrapeFailedError(rawURL, err)
	}

	result := s.generate(ctx, article)

	quiz := &domain.Quiz{
		ID:        util.NewULID(),
		Title:     article.Title,
		URL:       article.URL,
		Summary:   result.Payload.Summary,
		Payload:   result.Payload,
		Source:    result.Source,
		CreatedAt: time.Now().UTC(),
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, quiz)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	l.Info("Quiz generated",
		zap.String("quiz_id", quiz.ID),
		zap.String("title", quiz.Title),
		zap.String("source", string(quiz.Source)),
		zap.Int("mcq", len(quiz.Payload.MCQ)),
		zap.Int("fill", len(quiz.Payload.Fill)),
	)
	return dto.NewQuizResponse(quiz), nil
}

// generate tries the LLM once and falls back to the heuristic generator on any failure.
// The fallback is logged, never returned as an error.
func (s *quizService) generate(ctx context.Context, article *domain.Article) domain.GenerationResult {
	l := logger.Get()

	var result domain.GenerationResult
	if s.llm != nil {
		payload, err := s.llm.GenerateQuiz(ctx, article.Title, heuristic.CleanText(article.Content))
		if err == nil && (payload == nil || len(payload.MCQ)+len(payload.Fill) == 0) {
			err = domain.NewLLMServiceError(errors.New("LLM returned no usable questions"))
		}
		if err == nil {
			result = domain.GenerationResult{Payload: payload, Source: domain.SourceLLM}
		} else {
			l.Warn("LLM generation failed, using fallback generator",
				zap.String("title", article.Title),
				zap.Error(err),
			)
			result.FallbackReason = err
		}
	}

	if result.Payload == nil {
		result.Payload = s.fallback.Generate(article.Content)
		result.Source = domain.SourceFallback
	}

	if result.Payload.Summary == "" {
		result.Payload.Summary = heuristic.Summarize(article.Content)
	}
	if len(result.Payload.RelatedTopics) == 0 {
		result.Payload.RelatedTopics = article.RelatedTopics
	}
	result.Payload.Normalize()
	return result
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context) ([]dto.HistoryItem, error) {
	summaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to fetch history", err)
	}
	return dto.NewHistoryItems(summaries), nil
}

// GetQuiz implements QuizService. Quizzes never change after creation, so a cached detail
// stays valid until the history is cleared.
func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	l := logger.Get()
	key := cache.QuizDetailKey(id)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var resp dto.QuizResponse
			errUnmarshal := json.Unmarshal([]byte(cached), &resp)
			if errUnmarshal == nil {
				l.Debug("Quiz cache hit", zap.String("quiz_id", id))
				return &resp, nil
			}
			l.Warn("Discarding unreadable cached quiz", zap.String("key", key), zap.Error(errUnmarshal))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			l.Warn("Quiz cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	res, err, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		// Shared by every caller waiting on key, so one caller's cancellation must not fail the rest
		ctx := context.WithoutCancel(ctx)
		quiz, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, domain.NewInternalError("Failed to get quiz", err)
		}
		if quiz == nil {
			return nil, domain.NewQuizNotFoundError(id)
		}

		resp := dto.NewQuizResponse(quiz)
		s.storeInCache(ctx, key, resp)
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	resp, ok := res.(*dto.QuizResponse)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight: %T", res), nil)
	}
	return resp, nil
}

func (s *quizService) storeInCache(ctx context.Context, key string, resp *dto.QuizResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.quizTTL); err != nil {
		logger.Get().Warn("Failed to cache quiz", zap.String("key", key), zap.Error(err))
	}
}

// ClearHistory implements QuizService. Cache eviction failures are logged only.
func (s *quizService) ClearHistory(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		n, err := s.repo.DeleteAll(txCtx)
		deleted = n
		return err
	})
	if err != nil {
		return 0, domain.NewInternalError("Failed to clear history", err)
	}

	if s.cache != nil {
		evicted, err := s.cache.DeleteByPrefix(ctx, cache.QuizKeyPrefix())
		if err != nil {
			logger.Get().Warn("Failed to evict cached quizzes", zap.Error(err))
		} else {
			logger.Get().Debug("Evicted cached quizzes", zap.Int64("keys", evicted))
		}
	}

	logger.Get().Info("Quiz history cleared", zap.Int64("deleted", deleted))
	return deleted, nil
}
