package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"wiki-quiz/internal/adapter"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/heuristic"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pre-generates quizzes for a list of article titles or URLs, e.g.
//
//	batch_generate -file titles.txt -concurrency 4 "Alan Turing"
func main() {
	file := flag.String("file", "", "file with one article title or URL per line")
	concurrency := flag.Int("concurrency", 2, "number of articles processed at once")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	l := logger.Get()

	var input io.Reader = strings.NewReader("")
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			l.Fatal("Failed to open title file", zap.String("path", *file), zap.Error(err))
		}
		defer f.Close()
		input = f
	}
	titles, err := readTitles(input, flag.Args())
	if err != nil {
		l.Fatal("Failed to read titles", zap.Error(err))
	}
	if len(titles) == 0 {
		l.Fatal("No article titles given; pass them as arguments or with -file")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db.DB, cfg.DB.Driver); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	llmGenerator, err := quizgen.NewFromConfig(ctx, cfg.LLM)
	if err != nil {
		l.Fatal("Failed to create LLM quiz generator", zap.Error(err))
	}

	var fallbackOpts []heuristic.Option
	if cfg.Generator.Seed != 0 {
		fallbackOpts = append(fallbackOpts, heuristic.WithSeed(cfg.Generator.Seed))
	}

	quizCache := adapter.NewNoopCache()
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			l.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		quizCache = adapter.NewRedisCacheAdapter(redisClient)
	}

	quizService := service.NewQuizService(
		repository.NewQuizDatabaseAdapter(db),
		repository.NewTransactionManagerAdapter(db),
		scraper.NewWikipediaScraper(cfg.Scraper.Timeout, cfg.Scraper.BaseURL, cfg.Scraper.UserAgent),
		llmGenerator,
		heuristic.NewGenerator(fallbackOpts...),
		quizCache,
		cfg,
	)

	l.Info("Batch generation starting", zap.Int("articles", len(titles)), zap.Int("concurrency", *concurrency))
	succeeded, failed := generateAll(ctx, quizService, titles, *concurrency)
	l.Info("Batch generation finished", zap.Int64("succeeded", succeeded), zap.Int64("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}

// readTitles merges args with the non-empty lines of r. Lines starting with # are skipped
// and duplicates are dropped.
func readTitles(r io.Reader, args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var titles []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || strings.HasPrefix(s, "#") {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		titles = append(titles, s)
	}

	for _, arg := range args {
		add(arg)
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		add(scanner.Text())
	}
	return titles, scanner.Err()
}

// generateAll runs GenerateQuiz for every title. A failed article is logged and does not
// stop the others.
func generateAll(ctx context.Context, svc service.QuizService, titles []string, concurrency int) (succeeded, failed int64) {
	l := logger.Get()
	if concurrency < 1 {
		concurrency = 1
	}

	var ok, bad atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, title := range titles {
		g.Go(func() error {
			quiz, err := svc.GenerateQuiz(gctx, title)
			if err != nil {
				bad.Add(1)
				l.Error("Failed to generate quiz", zap.String("article", title), zap.Error(err))
				return nil
			}
			ok.Add(1)
			l.Info("Generated quiz",
				zap.String("article", title),
				zap.String("quiz_id", quiz.ID),
				zap.String("source", quiz.Source),
				zap.Int("mcq", len(quiz.MCQ)),
				zap.Int("fill", len(quiz.Fill)),
			)
			return nil
		})
	}
	_ = g.Wait()
	return ok.Load(), bad.Load()
}
