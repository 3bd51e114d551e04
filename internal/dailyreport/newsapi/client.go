// Package newsapi fetches articles from newsapi.org and renders them as
// report sections.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the NewsAPI v2 root.
	DefaultBaseURL = "https://newsapi.org/v2"

	// PageSize is the number of articles requested per topic.
	PageSize = 5

	everythingPath   = "/everything"
	topHeadlinesPath = "/top-headlines"
)

// Topic selects what to fetch. Query and Category are mutually exclusive;
// when Query is set it takes precedence.
type Topic struct {
	Query    string
	Category string
}

// Name returns the string used for the section heading.
func (t Topic) Name() string {
	if t.Query != "" {
		return t.Query
	}
	return t.Category
}

// Article is a single NewsAPI article.
type Article struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type response struct {
	Status   string    `json:"status"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Articles []Article `json:"articles"`
}

// Config holds NewsAPI client settings.
type Config struct {
	APIKey  string        `yaml:"api_key" env:"NEWS_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"NEWS_API_BASE_URL"`
	Timeout time.Duration `yaml:"timeout"`
	// RequestsPerSecond throttles outgoing calls. Zero means unlimited.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// Client calls the NewsAPI search endpoints.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a NewsAPI client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

// Fetch retrieves up to PageSize articles for the topic, in API order.
func (c *Client) Fetch(ctx context.Context, topic Topic) ([]Article, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(topic), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "DailyReport/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s news: %w", topic.Name(), redactKey(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var r response
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if json.Unmarshal(body, &r) == nil && r.Message != "" {
			return nil, fmt.Errorf("newsapi error (%d %s): %s", resp.StatusCode, r.Code, r.Message)
		}
		return nil, fmt.Errorf("newsapi error (%d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return r.Articles, nil
}

// Section fetches the topic and renders it with RenderSection.
func (c *Client) Section(ctx context.Context, topic Topic) (string, error) {
	articles, err := c.Fetch(ctx, topic)
	if err != nil {
		return "", err
	}
	return RenderSection(topic.Name(), articles), nil
}

func (c *Client) requestURL(topic Topic) string {
	path := topHeadlinesPath
	params := url.Values{}
	if topic.Query != "" {
		path = everythingPath
		params.Set("q", topic.Query)
	} else if topic.Category != "" {
		params.Set("category", topic.Category)
	}
	params.Set("apiKey", c.apiKey)
	params.Set("pageSize", strconv.Itoa(PageSize))
	return c.baseURL + path + "?" + params.Encode()
}

// redactKey blanks the apiKey query parameter in the URL carried by
// transport errors so the key never reaches the logs.
func redactKey(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		return &url.Error{Op: uerr.Op, URL: "[redacted]", Err: uerr.Err}
	}
	q := u.Query()
	if q.Has("apiKey") {
		q.Set("apiKey", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
}

// RenderSection renders a heading line followed by one bullet per article.
// Only the first PageSize articles are rendered.
func RenderSection(name string, articles []Article) string {
	var sb strings.Builder
	sb.WriteString(Heading(name))
	sb.WriteString("\n")
	if len(articles) > PageSize {
		articles = articles[:PageSize]
	}
	for _, a := range articles {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", a.Title, a.Source.Name, a.URL))
	}
	return sb.String()
}

// Heading returns the title-cased section heading, e.g. "Business News:".
func Heading(name string) string {
	return cases.Title(language.English).String(name) + " News:"
}
