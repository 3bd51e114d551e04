package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/markdown"

	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/newsapi"
)

// DefaultJSONPath is where the web variant writes its report.
const DefaultJSONPath = "report.json"

// WriteJSON encodes the three-section mapping to w.
func WriteJSON(w io.Writer, r *Report) error {
	return json.NewEncoder(w).Encode(r)
}

// WriteJSONFile writes the report to path, replacing any existing file.
func WriteJSONFile(path string, r *Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteMarkdown renders the report as a Markdown document.
func WriteMarkdown(w io.Writer, r *Report) error {
	md := markdown.NewMarkdown(w)
	md.H1("Daily Report")
	if !r.GeneratedAt.IsZero() {
		md.PlainText("Generated " + r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	}
	md.PlainText("")

	for _, st := range Topics {
		md.H2(newsapi.Heading(st.Topic.Name()))
		md.PlainText("")
		articles := r.Articles[st.Key]
		if len(articles) == 0 {
			md.PlainText("No articles.")
			md.PlainText("")
			continue
		}
		items := make([]string, 0, len(articles))
		for _, a := range articles {
			items = append(items, fmt.Sprintf("[%s](%s) (%s)", a.Title, a.URL, a.Source.Name))
		}
		md.BulletList(items...)
		md.PlainText("")
	}
	return md.Build()
}
