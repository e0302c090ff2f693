// Package refsheet reads the read-only reference spreadsheets that the audit
// joins against: the Yoast keyword export and the analytics performance
// export. Both are Excel workbooks maintained outside this tool.
package refsheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Keyword sheet layout (no header row): keyword in column C, URL in column E.
const (
	keywordCol = 2
	urlCol     = 4
)

// KeywordTable maps article URLs to their target SEO keyword.
type KeywordTable map[string]string

// LoadKeywords reads the Yoast keyword export. Rows without both a URL and a
// keyword are skipped.
func LoadKeywords(path string) (KeywordTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening keyword sheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading keyword sheet: %w", err)
	}

	table := make(KeywordTable, len(rows))
	for _, row := range rows {
		if len(row) <= urlCol {
			continue
		}
		url := strings.TrimSpace(row[urlCol])
		keyword := strings.TrimSpace(row[keywordCol])
		if url == "" || keyword == "" {
			continue
		}
		table[url] = keyword
	}
	return table, nil
}

// Lookup returns the target keyword for a URL, or "Not Found" when the sheet
// has no entry, matching how the report displays missing keywords.
func (t KeywordTable) Lookup(url string) string {
	if kw, ok := t[strings.TrimSpace(url)]; ok {
		return kw
	}
	return "Not Found"
}
