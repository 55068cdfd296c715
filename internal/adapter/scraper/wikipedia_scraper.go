package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	defaultBaseURL   = "https://en.wikipedia.org/wiki/"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	defaultTitle     = "Untitled Article"
	maxRelatedTopics = 10
)

// WikipediaScraper implements domain.ArticleScraper by parsing the article HTML.
type WikipediaScraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewWikipediaScraper creates a scraper whose HTTP client gives up after timeout.
// Empty baseURL and userAgent fall back to English Wikipedia and a desktop browser agent.
func NewWikipediaScraper(timeout time.Duration, baseURL, userAgent string) *WikipediaScraper {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &WikipediaScraper{
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// ResolveURL turns a bare article title into a Wikipedia URL. Values starting with
// "http" are returned unchanged.
func (s *WikipediaScraper) ResolveURL(urlOrTitle string) string {
	urlOrTitle = strings.TrimSpace(urlOrTitle)
	if strings.HasPrefix(urlOrTitle, "http") {
		return urlOrTitle
	}
	return s.baseURL + strings.ReplaceAll(urlOrTitle, " ", "_")
}

// Scrape implements domain.ArticleScraper
func (s *WikipediaScraper) Scrape(ctx context.Context, urlOrTitle string) (*domain.Article, error) {
	l := logger.Get()
	target := s.ResolveURL(urlOrTitle)
	// Titles grow when the base URL is prepended; the stored url must still fit its column
	if n := utf8.RuneCountInString(target); n > domain.MaxURLLength {
		return nil, domain.NewScrapeFailedError(target, fmt.Errorf("article URL is %d characters, limit is %d", n, domain.MaxURLLength)).
			WithContext("url_length", n)
	}
	l.Info("Scraping Wikipedia article", zap.String("url", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, domain.NewScrapeFailedError(target, fmt.Errorf("invalid request: %w", err))
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		l.Warn("Failed to fetch Wikipedia page", zap.String("url", target), zap.Error(err))
		return nil, domain.NewScrapeFailedError(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.Warn("Unexpected status fetching Wikipedia page", zap.String("url", target), zap.Int("status", resp.StatusCode))
		return nil, domain.NewScrapeFailedError(target, fmt.Errorf("unexpected status %d", resp.StatusCode)).
			WithContext("status", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, domain.NewScrapeFailedError(target, fmt.Errorf("failed to parse HTML: %w", err))
	}

	article := parseArticle(doc)
	article.URL = target
	if article.Content == "" {
		l.Warn("No paragraph text found in article", zap.String("url", target), zap.String("title", article.Title))
		return nil, domain.NewScrapeFailedError(target, errors.New("no article text found"))
	}

	l.Info("Scraped article",
		zap.String("title", article.Title),
		zap.Int("content_length", len(article.Content)),
		zap.Int("related_topics", len(article.RelatedTopics)),
	)
	return article, nil
}

func parseArticle(doc *goquery.Document) *domain.Article {
	title := strings.TrimSpace(doc.Find("h1#firstHeading").First().Text())
	if title == "" {
		title = defaultTitle
	}

	content := doc.Find("div#mw-content-text")
	var paragraphs []string
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return &domain.Article{
		Title:         title,
		Content:       strings.TrimSpace(strings.ReplaceAll(strings.Join(paragraphs, " "), "\n", " ")),
		RelatedTopics: seeAlsoTopics(content),
	}
}

// seeAlsoTopics collects link texts of the first list after the "See also" heading.
// Newer skins wrap headings in div.mw-heading, older ones use a bare h2 with a span id.
func seeAlsoTopics(content *goquery.Selection) []string {
	heading := content.Find("h2#See_also").First()
	if heading.Length() == 0 {
		heading = content.Find("span#See_also").First().Closest("h2")
	}
	if heading.Length() == 0 {
		return nil
	}
	if wrapper := heading.Parent(); wrapper.HasClass("mw-heading") {
		heading = wrapper
	}

	var list *goquery.Selection
	for sib := heading.Next(); sib.Length() > 0; sib = sib.Next() {
		if goquery.NodeName(sib) == "h2" || sib.HasClass("mw-heading2") {
			break
		}
		if goquery.NodeName(sib) == "ul" {
			list = sib
			break
		}
		if ul := sib.Find("ul").First(); ul.Length() > 0 {
			list = ul
			break
		}
	}
	if list == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var topics []string
	list.Find("li > a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		topic := strings.TrimSpace(a.Text())
		if topic == "" {
			return true
		}
		if _, ok := seen[topic]; ok {
			return true
		}
		seen[topic] = struct{}{}
		topics = append(topics, topic)
		return len(topics) < maxRelatedTopics
	})
	return topics
}

// Static assertion to ensure WikipediaScraper implements ArticleScraper
var _ domain.ArticleScraper = (*WikipediaScraper)(nil)
