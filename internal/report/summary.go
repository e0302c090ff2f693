package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"blogaudit/internal/audit"
)

var md = goldmark.New()

// SummaryMarkdown renders a batch report as markdown for terminals and
// the HTML summary.
func SummaryMarkdown(r *audit.BatchReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Audit batch summary\n\n")
	fmt.Fprintf(&b, "Generated %s\n\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Batch of %d starting at index %d.\n\n", r.BatchSize, r.StartIndex)
	fmt.Fprintf(&b, "- **Processed:** %d\n", r.Processed)
	fmt.Fprintf(&b, "- **Skipped (already audited):** %d\n", r.Skipped)
	fmt.Fprintf(&b, "- **Failed:** %d\n", r.Failed)
	fmt.Fprintf(&b, "- **API spend:** $%s\n", r.TotalCost.StringFixed(5))
	fmt.Fprintf(&b, "- **Duration:** %s\n", r.Duration.Round(time.Second))

	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, "\n## Failures\n\n")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "- %s: %s\n", f.URL, f.Reason)
		}
	}
	return b.String()
}

// WriteSummaryHTML renders the batch summary to an HTML file.
func WriteSummaryHTML(r *audit.BatchReport, path string) error {
	var buf bytes.Buffer
	if err := md.Convert([]byte(SummaryMarkdown(r)), &buf); err != nil {
		return fmt.Errorf("rendering summary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating summary directory: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Blog audit summary</title>\n")
	page.WriteString("<style>body{font-family:sans-serif;max-width:48rem;margin:2rem auto;color:#193661}h1{border-bottom:2px solid #00babe}a{color:#e34e64}</style>\n")
	page.WriteString("</head>\n<body>\n")
	page.Write(buf.Bytes())
	page.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(path, page.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
