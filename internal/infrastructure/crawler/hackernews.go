package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"DemandScout/internal/domain"
	"DemandScout/internal/ports"
)

const defaultBaseURL = "https://news.ycombinator.com"

var digitExpr = regexp.MustCompile(`(\d+)`)

// Title keywords used for the coarse post-category bucket.
var (
	toolTitleKeywords = []string{
		"tool", "app", "website", "platform", "service", "api",
		"library", "framework", "cli", "extension", "plugin",
		"dashboard", "analytics", "monitor", "automation",
	}
	problemTitleKeywords = []string{
		"how to", "why", "what", "which", "help", "advice",
		"recommend", "suggest", "looking for", "need", "want",
		"problem", "issue", "challenge", "pain", "annoying",
	}
)

// HackerNewsSource crawls the Show HN and Ask HN listings and parses each
// submission row into a domain.Post.
type HackerNewsSource struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.PostSource = (*HackerNewsSource)(nil)

// NewHackerNewsSource wires an HTTP client; baseURL defaults to the live
// site and is overridable for tests.
func NewHackerNewsSource(client *http.Client, baseURL string, logger *slog.Logger) *HackerNewsSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &HackerNewsSource{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

// Platform identifies this source inside the pipeline.
func (h *HackerNewsSource) Platform() domain.Platform {
	return domain.PlatformHackerNews
}

// FetchPosts pulls one listing page and parses up to limit submission rows.
// A non-positive limit yields no posts. Announcements map to /show (Show HN),
// discussions to /ask (Ask HN). A row that fails to parse is skipped; a
// listing-level failure is returned.
func (h *HackerNewsSource) FetchPosts(ctx context.Context, kind domain.PostKind, limit int) ([]domain.Post, error) {
	var path string
	switch kind {
	case domain.KindAnnouncements:
		path = "/show"
	case domain.KindDiscussions:
		path = "/ask"
	default:
		return nil, fmt.Errorf("unknown post kind %q", kind)
	}

	if limit <= 0 {
		return []domain.Post{}, nil
	}

	doc, err := h.fetchDocument(ctx, h.baseURL+path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s listing: %w", kind, err)
	}

	posts := make([]domain.Post, 0, limit)
	doc.Find("tr.athing").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if limit > 0 && len(posts) >= limit {
			return false
		}
		post, parseErr := h.parseRow(row)
		if parseErr != nil {
			h.debug("skipping row", "index", i, "error", parseErr)
			return true
		}
		posts = append(posts, post)
		return true
	})

	h.debug("listing fetched", "kind", kind, "posts", len(posts))
	return posts, nil
}

func (h *HackerNewsSource) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "DemandScout/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hackernews returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}
	return doc, nil
}

// parseRow extracts one submission from its title row and the subtext row
// that follows it.
func (h *HackerNewsSource) parseRow(row *goquery.Selection) (domain.Post, error) {
	link := row.Find("span.titleline > a").First()
	if link.Length() == 0 {
		link = row.Find("a.titlelink").First()
	}
	title := strings.TrimSpace(link.Text())
	if title == "" {
		return domain.Post{}, fmt.Errorf("row has no title link")
	}

	href, _ := link.Attr("href")
	if strings.HasPrefix(href, "item?") {
		href = h.baseURL + "/" + href
	}

	subtext := row.Next().Find("td.subtext")
	if subtext.Length() == 0 {
		return domain.Post{}, fmt.Errorf("row %q has no subtext", title)
	}

	score := firstInt(subtext.Find(".score").First().Text())

	comments := 0
	subtext.Find("a").Each(func(_ int, a *goquery.Selection) {
		if strings.Contains(a.Text(), "comment") {
			comments = firstInt(a.Text())
		}
	})

	author := strings.TrimSpace(subtext.Find(".hnuser").First().Text())
	if author == "" {
		author = "anonymous"
	}

	return domain.Post{
		Title:     title,
		URL:       href,
		Score:     score,
		Comments:  comments,
		Author:    author,
		PostedAt:  strings.TrimSpace(subtext.Find(".age").First().Text()),
		Platform:  domain.PlatformHackerNews,
		Category:  categorize(title),
		CrawledAt: h.now(),
	}, nil
}

// categorize buckets a title into tool announcement, problem discussion, or
// other. Tool keywords win when both kinds match.
func categorize(title string) domain.PostCategory {
	lower := strings.ToLower(title)
	for _, kw := range toolTitleKeywords {
		if strings.Contains(lower, kw) {
			return domain.CategoryToolAnnouncement
		}
	}
	for _, kw := range problemTitleKeywords {
		if strings.Contains(lower, kw) {
			return domain.CategoryProblemDiscussion
		}
	}
	return domain.CategoryOther
}

func firstInt(text string) int {
	match := digitExpr.FindString(text)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

func (h *HackerNewsSource) debug(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}
