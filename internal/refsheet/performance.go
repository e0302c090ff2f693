package refsheet

import (
	"fmt"
	"strconv"
	"strings"

	"blogaudit/internal/content"

	"github.com/xuri/excelize/v2"
)

// Metrics holds the analytics figures for one page. A page missing from the
// export has no Metrics at all; zero values are real measurements.
type Metrics struct {
	Views              int
	Users              int
	Sessions           int
	EngagementRate     float64
	AvgSessionDuration float64
	BounceRate         float64
}

// PerformanceTable maps URL slugs to analytics metrics.
type PerformanceTable map[string]Metrics

// Column headers as exported by the analytics tool.
const (
	colPagePath    = "Page path + query string"
	colViews       = "Views"
	colUsers       = "Total users"
	colSessions    = "Sessions"
	colEngagement  = "Engagement rate"
	colAvgDuration = "Average session duration"
	colBounceRate  = "Bounce rate"
)

// LoadPerformance reads the analytics export. The first row is the header;
// rows whose page path yields no slug are skipped.
func LoadPerformance(path string) (PerformanceTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening performance sheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading performance sheet: %w", err)
	}
	if len(rows) == 0 {
		return PerformanceTable{}, nil
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	pathIdx, ok := idx[colPagePath]
	if !ok {
		return nil, fmt.Errorf("performance sheet missing %q column", colPagePath)
	}

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	table := make(PerformanceTable, len(rows)-1)
	for _, row := range rows[1:] {
		if pathIdx >= len(row) {
			continue
		}
		slug := content.SlugFromURL(row[pathIdx])
		if slug == "" {
			continue
		}
		table[slug] = Metrics{
			Views:              parseInt(cell(row, colViews)),
			Users:              parseInt(cell(row, colUsers)),
			Sessions:           parseInt(cell(row, colSessions)),
			EngagementRate:     parseFloat(cell(row, colEngagement)),
			AvgSessionDuration: parseFloat(cell(row, colAvgDuration)),
			BounceRate:         parseFloat(cell(row, colBounceRate)),
		}
	}
	return table, nil
}

// Lookup returns the metrics for a slug. The second return distinguishes "no
// data" from genuine zeros.
func (t PerformanceTable) Lookup(slug string) (Metrics, bool) {
	m, ok := t[slug]
	return m, ok
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.TrimSuffix(strings.ReplaceAll(s, ",", ""), "%")
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return 0
}
