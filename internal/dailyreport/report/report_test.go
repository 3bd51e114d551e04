package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/newsapi"
)

type fakeFetcher struct {
	calls    []newsapi.Topic
	articles map[string][]newsapi.Article
	failOn   string
}

func (f *fakeFetcher) Fetch(_ context.Context, topic newsapi.Topic) ([]newsapi.Article, error) {
	f.calls = append(f.calls, topic)
	if topic.Name() == f.failOn {
		return nil, errors.New("connection refused")
	}
	return f.articles[topic.Name()], nil
}

func article(title, source, url string) newsapi.Article {
	var a newsapi.Article
	a.Title = title
	a.Source.Name = source
	a.URL = url
	return a
}

func sampleFetcher() *fakeFetcher {
	return &fakeFetcher{articles: map[string][]newsapi.Article{
		"artificial intelligence": {article("New model", "Wired", "https://wired.example/ai")},
		"business":                {article("Stocks up", "Reuters", "https://reuters.example/biz"), article("Rates hold", "FT", "https://ft.example/rates")},
		"cryptocurrency":          nil,
	}}
}

func TestAssemble_FixedOrder(t *testing.T) {
	f := sampleFetcher()
	r, err := NewAssembler(f).Assemble(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(f.calls) != 3 {
		t.Fatalf("expected 3 fetches, got %d", len(f.calls))
	}
	if f.calls[0].Query != "artificial intelligence" || f.calls[1].Category != "business" || f.calls[2].Query != "cryptocurrency" {
		t.Fatalf("unexpected fetch order: %+v", f.calls)
	}
	if f.calls[1].Query != "" {
		t.Errorf("business topic should be category-only, got query %q", f.calls[1].Query)
	}

	if r.AINews != "Artificial Intelligence News:\n- New model (Wired): https://wired.example/ai\n" {
		t.Errorf("unexpected ai section %q", r.AINews)
	}
	if strings.Count(r.StockNews, "\n- ") != 2 {
		t.Errorf("expected 2 business bullets, got %q", r.StockNews)
	}
	if r.CryptoNews != "Cryptocurrency News:\n" {
		t.Errorf("expected empty crypto section, got %q", r.CryptoNews)
	}
}

func TestAssemble_StopsOnError(t *testing.T) {
	f := sampleFetcher()
	f.failOn = "business"

	_, err := NewAssembler(f).Assemble(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), KeyStock) {
		t.Errorf("expected section key in error, got: %v", err)
	}
	if len(f.calls) != 2 {
		t.Errorf("expected assembly to stop after the failing fetch, got %d calls", len(f.calls))
	}
}

func TestText(t *testing.T) {
	r := &Report{AINews: "A News:\n", StockNews: "B News:\n", CryptoNews: "C News:\n"}
	got := r.Text(DefaultFooter)
	want := "Daily Report:\n\nA News:\n\nB News:\n\nC News:\n\n" + DefaultFooter
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !strings.HasSuffix(got, "?viewAsMember=true\n") {
		t.Errorf("expected footer at the end, got %q", got)
	}
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultJSONPath)
	if err := os.WriteFile(path, []byte("stale content that is longer than the report"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewAssembler(sampleFetcher()).Assemble(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteJSONFile(path, r); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("report.json is not valid JSON: %v (%s)", err, data)
	}
	if len(got) != 3 {
		t.Fatalf("expected exactly 3 keys, got %v", got)
	}
	want := map[string]string{KeyAI: r.AINews, KeyStock: r.StockNews, KeyCrypto: r.CryptoNews}
	for k, v := range want {
		s, ok := got[k].(string)
		if !ok {
			t.Fatalf("key %s missing or not a string: %v", k, got[k])
		}
		if s != v {
			t.Errorf("key %s = %q, want %q", k, s, v)
		}
	}
}

func TestWriteJSON_KeyOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, &Report{AINews: "a", StockNews: "b", CryptoNews: "c"}); err != nil {
		t.Fatal(err)
	}
	want := `{"ai_news":"a","stock_news":"b","crypto_news":"c"}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteMarkdown(t *testing.T) {
	r, err := NewAssembler(sampleFetcher()).Assemble(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Daily Report",
		"## Artificial Intelligence News:",
		"## Business News:",
		"[Stocks up](https://reuters.example/biz) (Reuters)",
		"No articles.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in markdown, got:\n%s", want, out)
		}
	}
}
