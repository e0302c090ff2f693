// Package report renders stored audit rows into the styled Excel
// workbook reviewers work from, and an HTML run summary.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"blogaudit/internal/audit"
	"blogaudit/internal/taxonomy"
)

// ErrReportWrite means the workbook could not be written. An existing
// report file is left untouched.
var ErrReportWrite = errors.New("report write failed")

const sheetName = "Blog Audit"

// renameFile is swapped by tests to simulate a failed final rename.
var renameFile = os.Rename

// section is one merged band in the top header row.
type section struct {
	name      string
	start     int
	end       int
	header    string
	subheader string
}

// Brand palette: dark blue, teal, salmon, cycling across sections.
var sections = []section{
	{"Title", 1, 1, "193661", "C1C9D4"},
	{"Basic Information", 2, 7, "00BABE", "E5F9F9"},
	{"Quality & Brand Fit", 8, 12, "E34E64", "FFEFEF"},
	{"Tone & Voice", 13, 19, "193661", "C1C9D4"},
	{"SEO Analysis", 20, 29, "00BABE", "E5F9F9"},
	{"Multimedia Assessment", 30, 36, "E34E64", "FFEFEF"},
	{"Content Categorization", 37, 43, "193661", "C1C9D4"},
	{"Performance Metrics", 44, 49, "00BABE", "E5F9F9"},
	{"Cost Analysis", 50, 50, "E34E64", "FFEFEF"},
}

var headers = []string{
	"Title", "URL", "Slug", "Publication Date", "Modified Date", "Word Count",
	"Reading Level (Gunning Fog)", "Overall Quality Score", "Topic Relevance",
	"Brand Alignment", "Quality Notes/Recommendations", "Brand Alignment Notes",
	"Challenger Percentage", "Supportive Percentage", "Natural/Conversational Score",
	"Authentic/Approachable Score", "Gender-Neutral/Inclusive Score",
	"Tone Notes/Recommendations", "Personal Pronoun Count",
	"Current Target Keyword", "Keyword Density", "Keyword Integration Score",
	"Meta Description Present", "Meta Description Quality Score", "H1 Tag Present",
	"H2 Tags", "H3 Tags", "Recommended New Keywords", "SEO Notes/Recommendations",
	"Number of Images", "Header Image Width", "Header Image Height", "Header Image Src",
	"Header Image Alt", "Minimum Content Image Width", "Outdated Widgets Count",
	"Primary Category", "Solution Topic", "Use Case", "Customer Journey Stage",
	"CMO Priority", "Marketing Activity Type", "Target Audience",
	"Total Views", "Total Users", "Total Sessions", "Engagement Rate",
	"Average Time on Page", "Bounce Rate", "API Cost",
}

// Column indices used for conditional fills, 1-based.
const (
	colWordCount    = 6
	colReadingLevel = 7
	colQuality      = 8
	colRelevance    = 9
	colBrand        = 10
	colNatural      = 15
	colAuthentic    = 16
	colInclusive    = 17
	colPronouns     = 19
	colIntegration  = 22
	colMetaQuality  = 24
	colHeaderWidth  = 31
	colWidgets      = 36
	colCategoryLo   = 37
	colCategoryHi   = 43
	colCost         = 50
)

// Fill colors for threshold cells.
const (
	fillGreen       = "00FF00"
	fillYellowGreen = "9ACD32"
	fillYellow      = "FFFF00"
	fillOrange      = "FFA500"
	fillRed         = "FF0000"
	fillEvenRow     = "F7F9FB"
	fillOddRow      = "FFFFFF"
)

// Build renders the audit rows into an xlsx workbook at path, replacing
// any previous file atomically.
func Build(rows []audit.Row, path string) error {
	f, err := buildWorkbook(rows)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReportWrite, err)
	}
	defer f.Close()
	return writeAtomic(f, path)
}

type builder struct {
	f      *excelize.File
	styles map[styleKey]int
}

type styleKey struct {
	fill      string
	whiteBold bool
	url       bool
	cost      bool
}

func buildWorkbook(rows []audit.Row) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	b := &builder{f: f, styles: make(map[styleKey]int)}

	if err := b.writeHeaders(); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err := b.writeRow(i, row); err != nil {
			return nil, err
		}
	}
	if err := b.addScoreScales(len(rows)); err != nil {
		return nil, err
	}
	if err := b.layout(); err != nil {
		return nil, err
	}
	return f, nil
}

func (b *builder) writeHeaders() error {
	for _, s := range sections {
		startCell, err := excelize.CoordinatesToCellName(s.start, 1)
		if err != nil {
			return err
		}
		endCell, err := excelize.CoordinatesToCellName(s.end, 1)
		if err != nil {
			return err
		}
		if err := b.f.SetCellValue(sheetName, startCell, s.name); err != nil {
			return err
		}
		if s.start != s.end {
			if err := b.f.MergeCell(sheetName, startCell, endCell); err != nil {
				return err
			}
		}
		style, err := b.f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{s.header}, Pattern: 1},
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Alignment: &excelize.Alignment{
				Horizontal: "center", Vertical: "center", WrapText: true,
			},
		})
		if err != nil {
			return err
		}
		if err := b.f.SetCellStyle(sheetName, startCell, endCell, style); err != nil {
			return err
		}

		subStyle, err := b.f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{s.subheader}, Pattern: 1},
			Font: &excelize.Font{Bold: true, Color: "444444"},
			Alignment: &excelize.Alignment{
				Horizontal: "center", Vertical: "center", WrapText: true,
			},
		})
		if err != nil {
			return err
		}
		for col := s.start; col <= s.end; col++ {
			cell, err := excelize.CoordinatesToCellName(col, 2)
			if err != nil {
				return err
			}
			if err := b.f.SetCellValue(sheetName, cell, headers[col-1]); err != nil {
				return err
			}
			if err := b.f.SetCellStyle(sheetName, cell, cell, subStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func rowValues(r audit.Row) []any {
	keywords := "None"
	if len(r.RecommendedKeywords) > 0 {
		keywords = strings.Join(r.RecommendedKeywords, " | ")
	}
	cost, _ := r.Cost().Float64()

	// Pages absent from the analytics export have no measurements at all;
	// rendering zeros would be indistinguishable from a real zero reading.
	perf := []any{"No Data", "No Data", "No Data", "No Data", "No Data", "No Data"}
	if r.HasPerformance {
		perf = []any{r.Views, r.Users, r.Sessions, r.EngagementRate, r.AvgSessionSecs, r.BounceRate}
	}

	vals := []any{
		r.Title, r.URL, r.Slug, r.PublicationDate, r.ModifiedDate,
		r.WordCount, r.ReadingLevel,
		r.OverallQualityScore, string(r.TopicRelevance), string(r.BrandAlignment),
		r.QualityNotes, r.BrandAlignmentNotes,
		r.ChallengerPct, r.SupportivePct, r.NaturalScore, r.AuthenticScore,
		r.InclusiveScore, r.ToneNotes, r.PronounCount,
		r.TargetKeyword, fmt.Sprintf("%.2f%%", r.KeywordDensity), r.KeywordIntegration,
		yesNo(r.MetaDescPresent), r.MetaDescQuality, yesNo(r.H1Present),
		r.H2Count, r.H3Count, keywords, r.SEONotes,
		r.ImageCount, r.HeaderImageWidth, r.HeaderImageHeight,
		r.HeaderImageSrc, r.HeaderImageAlt, r.MinContentWidth, r.OutdatedWidgets,
		string(r.PrimaryCategory), string(r.SolutionTopic), string(r.UseCase),
		string(r.JourneyStage), string(r.CMOPriority), string(r.ActivityType),
		string(r.Audience),
	}
	vals = append(vals, perf...)
	return append(vals, cost)
}

// tierFill maps a tier to its fill color. Word count uses orange rather
// than red for the out-of-range case to match reviewer expectations of
// "too long or too short" versus "broken".
func tierFill(t Tier, redColor string) string {
	switch t {
	case TierGreen:
		return fillGreen
	case TierYellow:
		return fillYellow
	default:
		return redColor
	}
}

func (b *builder) writeRow(i int, r audit.Row) error {
	rowNum := i + 3
	startCell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := rowValues(r)
	if err := b.f.SetSheetRow(sheetName, startCell, &values); err != nil {
		return err
	}

	baseFill := fillOddRow
	if rowNum%2 == 0 {
		baseFill = fillEvenRow
	}

	for col := 1; col <= len(headers); col++ {
		cell, err := excelize.CoordinatesToCellName(col, rowNum)
		if err != nil {
			return err
		}

		key := styleKey{fill: baseFill}
		switch col {
		case 2:
			key.url = true
			if r.URL != "" {
				if err := b.f.SetCellHyperLink(sheetName, cell, r.URL, "External"); err != nil {
					return err
				}
			}
		case colWordCount:
			key.fill = tierFill(WordCountTier(r.WordCount), fillOrange)
		case colReadingLevel:
			key.fill = tierFill(ReadingLevelTier(r.ReadingLevel), fillRed)
		case colRelevance:
			switch r.TopicRelevance {
			case taxonomy.RelevanceTangential:
				key.fill = fillYellow
			case taxonomy.RelevanceOffTopic:
				key.fill = fillRed
			}
		case colBrand:
			switch r.BrandAlignment {
			case taxonomy.BrandOnBrand:
				key.fill = fillGreen
			case taxonomy.BrandMostlyOnBrand:
				key.fill = fillYellowGreen
			case taxonomy.BrandNeedsWork:
				key.fill = fillYellow
			case taxonomy.BrandNotOnBrand:
				key.fill = fillRed
			}
		case colPronouns:
			if r.PronounCount > 0 {
				key.fill = fillRed
			}
		case colHeaderWidth:
			key.fill = tierFill(HeaderImageTier(r.HeaderImageWidth), fillRed)
		case colWidgets:
			if r.OutdatedWidgets > 0 {
				key.fill = fillRed
			}
		case colCost:
			key.cost = true
		}
		if col >= colCategoryLo && col <= colCategoryHi {
			if s, ok := values[col-1].(string); ok && taxonomy.Unclassified(s) {
				key.fill = fillRed
				key.whiteBold = true
			}
		}

		style, err := b.style(key)
		if err != nil {
			return err
		}
		if err := b.f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// style returns a cached style ID for the given combination.
func (b *builder) style(key styleKey) (int, error) {
	if id, ok := b.styles[key]; ok {
		return id, nil
	}

	border := []excelize.Border{
		{Type: "left", Style: 1, Color: "E3E3E3"},
		{Type: "right", Style: 1, Color: "E3E3E3"},
		{Type: "top", Style: 1, Color: "E3E3E3"},
		{Type: "bottom", Style: 1, Color: "E3E3E3"},
	}

	style := &excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{key.fill}, Pattern: 1},
		Font:   &excelize.Font{Color: "444444"},
		Border: border,
		Alignment: &excelize.Alignment{
			Horizontal: "left", Vertical: "center", WrapText: true,
		},
	}
	if key.url {
		style.Font = &excelize.Font{Color: "0563C1", Underline: "single"}
		style.Alignment.WrapText = false
	}
	if key.whiteBold {
		style.Font = &excelize.Font{Color: "FFFFFF", Bold: true}
	}
	if key.cost {
		costFmt := "$#,##0.00000"
		style.CustomNumFmt = &costFmt
	}

	id, err := b.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	b.styles[key] = id
	return id, nil
}

// addScoreScales puts a red-yellow-green color scale on the 0-100 score
// columns across all data rows.
func (b *builder) addScoreScales(rowCount int) error {
	if rowCount == 0 {
		return nil
	}
	scoreCols := []int{colQuality, colNatural, colAuthentic, colInclusive, colIntegration, colMetaQuality}
	for _, col := range scoreCols {
		first, err := excelize.CoordinatesToCellName(col, 3)
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(col, rowCount+2)
		if err != nil {
			return err
		}
		err = b.f.SetConditionalFormat(sheetName, first+":"+last, []excelize.ConditionalFormatOptions{
			{
				Type:     "3_color_scale",
				Criteria: "=",
				MinType:  "num", MinValue: "0", MinColor: "#FF0000",
				MidType: "num", MidValue: "50", MidColor: "#FFFF00",
				MaxType: "num", MaxValue: "100", MaxColor: "#00FF00",
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// layout freezes the header rows and title column and sets column widths.
func (b *builder) layout() error {
	err := b.f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      2,
		TopLeftCell: "B3",
		ActivePane:  "bottomRight",
	})
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := b.f.SetColWidth(sheetName, "A", lastCol, 30); err != nil {
		return err
	}
	return b.f.SetColWidth(sheetName, "B", "B", 15)
}

// writeAtomic writes the workbook to a temp file in the target directory
// and renames it into place, so a failure never clobbers the previous
// report.
func writeAtomic(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", ErrReportWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".blogaudit-*.xlsx")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrReportWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing workbook: %v", ErrReportWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: syncing workbook: %v", ErrReportWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %v", ErrReportWrite, err)
	}

	if err := renameFile(tmpName, path); err != nil {
		return fmt.Errorf("%w: replacing report: %v", ErrReportWrite, err)
	}
	return nil
}
