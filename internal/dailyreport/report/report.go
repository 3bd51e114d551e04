// Package report assembles the daily report from the three fixed topics
// and writes it out as text, JSON, or Markdown.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/newsapi"
)

// DefaultFooter is appended to the plain-text report.
const DefaultFooter = "\nFor more information and custom AI solutions, visit us here: " +
	"https://www.linkedin.com/company/tm-hospitality-strategies/?viewAsMember=true\n"

// Section keys, also used as JSON keys in report.json.
const (
	KeyAI     = "ai_news"
	KeyStock  = "stock_news"
	KeyCrypto = "crypto_news"
)

// SectionTopic binds a report key to the NewsAPI topic behind it.
type SectionTopic struct {
	Key   string
	Topic newsapi.Topic
}

// Topics lists the report sections in output order.
var Topics = []SectionTopic{
	{Key: KeyAI, Topic: newsapi.Topic{Query: "artificial intelligence"}},
	{Key: KeyStock, Topic: newsapi.Topic{Category: "business"}},
	{Key: KeyCrypto, Topic: newsapi.Topic{Query: "cryptocurrency"}},
}

// Report is one assembled daily report.
type Report struct {
	AINews     string `json:"ai_news"`
	StockNews  string `json:"stock_news"`
	CryptoNews string `json:"crypto_news"`

	GeneratedAt time.Time                    `json:"-"`
	Articles    map[string][]newsapi.Article `json:"-"`
}

// Sections returns the rendered sections in output order.
func (r *Report) Sections() []string {
	return []string{r.AINews, r.StockNews, r.CryptoNews}
}

// Text renders the plain-text report used as the email body.
func (r *Report) Text(footer string) string {
	var sb strings.Builder
	sb.WriteString("Daily Report:\n\n")
	for _, s := range r.Sections() {
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	sb.WriteString(footer)
	return sb.String()
}

func (r *Report) set(key, section string) {
	switch key {
	case KeyAI:
		r.AINews = section
	case KeyStock:
		r.StockNews = section
	case KeyCrypto:
		r.CryptoNews = section
	}
}

// Fetcher retrieves articles for a topic.
type Fetcher interface {
	Fetch(ctx context.Context, topic newsapi.Topic) ([]newsapi.Article, error)
}

// Assembler builds a Report from a Fetcher.
type Assembler struct {
	fetcher Fetcher
	logger  *slog.Logger
	now     func() time.Time
}

// NewAssembler creates an assembler backed by the given fetcher.
func NewAssembler(f Fetcher) *Assembler {
	return &Assembler{
		fetcher: f,
		logger:  slog.Default(),
		now:     time.Now,
	}
}

// Assemble fetches every topic in order, one after another. The first
// fetch error aborts the report.
func (a *Assembler) Assemble(ctx context.Context) (*Report, error) {
	r := &Report{
		GeneratedAt: a.now(),
		Articles:    make(map[string][]newsapi.Article, len(Topics)),
	}
	for _, st := range Topics {
		articles, err := a.fetcher.Fetch(ctx, st.Topic)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", st.Key, err)
		}
		a.logger.Debug("fetched section", "section", st.Key, "articles", len(articles))
		if len(articles) > newsapi.PageSize {
			articles = articles[:newsapi.PageSize]
		}
		r.Articles[st.Key] = articles
		r.set(st.Key, newsapi.RenderSection(st.Topic.Name(), articles))
	}
	return r, nil
}
