package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"blogaudit/internal/audit"
	"blogaudit/internal/taxonomy"
)

func sampleRow(title, url string) audit.Row {
	return audit.Row{
		Title:               title,
		URL:                 url,
		Slug:                "sample-post",
		PublicationDate:     "2024-03-18",
		ModifiedDate:        "2024-04-01",
		WordCount:           1100,
		ReadingLevel:        10.2,
		OverallQualityScore: 84,
		TopicRelevance:      taxonomy.RelevanceOnTopic,
		BrandAlignment:      taxonomy.BrandMostlyOnBrand,
		TargetKeyword:       "marketing automation",
		KeywordDensity:      1.4,
		RecommendedKeywords: []string{"lead scoring", "nurture"},
		HeaderImageWidth:    1400,
		PrimaryCategory:     taxonomy.CategoryThoughtLeadership,
		SolutionTopic:       taxonomy.TopicPersonalize,
		UseCase:             taxonomy.UseCaseNurture,
		JourneyStage:        taxonomy.StageGet,
		CMOPriority:         taxonomy.PriorityAcquisition,
		ActivityType:        taxonomy.ActivityEmail,
		Audience:            taxonomy.AudienceDemandGen,
		InputTokens:         4000,
		OutputTokens:        800,
		APICost:             "0.024",
	}
}

func TestBuildWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "blog_audit.xlsx")
	rows := []audit.Row{
		sampleRow("First Post", "https://example.com/blog/first/"),
		sampleRow("Second Post", "https://example.com/blog/second/"),
	}

	if err := Build(rows, path); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(sheetName, "A1"); got != "Title" {
		t.Errorf("expected section header Title in A1, got %q", got)
	}
	if got, _ := f.GetCellValue(sheetName, "B1"); got != "Basic Information" {
		t.Errorf("expected Basic Information band in B1, got %q", got)
	}
	if got, _ := f.GetCellValue(sheetName, "B2"); got != "URL" {
		t.Errorf("expected URL header in B2, got %q", got)
	}
	if got, _ := f.GetCellValue(sheetName, "A3"); got != "First Post" {
		t.Errorf("expected first data row in A3, got %q", got)
	}
	if got, _ := f.GetCellValue(sheetName, "B4"); got != "https://example.com/blog/second/" {
		t.Errorf("expected URL in B4, got %q", got)
	}
	if got, _ := f.GetCellValue(sheetName, "U3"); got != "1.40%" {
		t.Errorf("expected keyword density 1.40%%, got %q", got)
	}
	if got, _ := f.GetCellValue(sheetName, "AB3"); got != "lead scoring | nurture" {
		t.Errorf("expected joined keywords, got %q", got)
	}

	link, target, err := f.GetCellHyperLink(sheetName, "B3")
	if err != nil {
		t.Fatalf("reading hyperlink: %v", err)
	}
	if !link || target != "https://example.com/blog/first/" {
		t.Errorf("expected hyperlink on URL cell, got %v %q", link, target)
	}
}

func TestBuildMissingMetricsRenderNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog_audit.xlsx")

	measured := sampleRow("Measured", "https://example.com/blog/measured/")
	measured.HasPerformance = true
	measured.Views = 0 // a real zero reading, not an absent one
	measured.BounceRate = 0.38

	rows := []audit.Row{
		sampleRow("Unmeasured", "https://example.com/blog/unmeasured/"),
		measured,
	}
	if err := Build(rows, path); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	// Columns AR through AW hold Total Views .. Bounce Rate.
	if got, _ := f.GetCellValue(sheetName, "AR3"); got != "No Data" {
		t.Errorf("expected No Data views for unmeasured page, got %q", got)
	}
	if got, _ := f.GetCellValue(sheetName, "AW3"); got != "No Data" {
		t.Errorf("expected No Data bounce rate for unmeasured page, got %q", got)
	}
	if got, _ := f.GetCellValue(sheetName, "AR4"); got != "0" {
		t.Errorf("expected genuine zero views for measured page, got %q", got)
	}
	if got, _ := f.GetCellValue(sheetName, "AW4"); got != "0.38" {
		t.Errorf("expected bounce rate for measured page, got %q", got)
	}
}

func TestBuildEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog_audit.xlsx")
	if err := Build(nil, path); err != nil {
		t.Fatalf("Build with no rows failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected workbook written even when empty: %v", err)
	}
}

func TestBuildReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog_audit.xlsx")
	if err := Build([]audit.Row{sampleRow("Old", "https://example.com/old/")}, path); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if err := Build([]audit.Row{sampleRow("New", "https://example.com/new/")}, path); err != nil {
		t.Fatalf("second Build failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue(sheetName, "A3"); got != "New" {
		t.Errorf("expected rebuilt report, got %q", got)
	}
}

func TestBuildFailureKeepsPreviousReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog_audit.xlsx")
	if err := Build([]audit.Row{sampleRow("Keep Me", "https://example.com/keep/")}, path); err != nil {
		t.Fatalf("initial Build failed: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading initial report: %v", err)
	}

	renameFile = func(old, new string) error { return errors.New("disk went away") }
	t.Cleanup(func() { renameFile = os.Rename })

	err = Build([]audit.Row{sampleRow("Casualty", "https://example.com/lost/")}, path)
	if !errors.Is(err, ErrReportWrite) {
		t.Fatalf("expected ErrReportWrite, got %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report after failure: %v", err)
	}
	if string(before) != string(after) {
		t.Error("failed write must leave the previous report bytes intact")
	}
}

func TestWordCountTier(t *testing.T) {
	cases := []struct {
		count int
		want  Tier
	}{
		{0, TierRed},
		{799, TierRed},
		{800, TierYellow},
		{999, TierYellow},
		{1000, TierGreen},
		{1200, TierGreen},
		{1201, TierYellow},
		{1400, TierYellow},
		{1401, TierRed},
	}
	for _, c := range cases {
		if got := WordCountTier(c.count); got != c.want {
			t.Errorf("WordCountTier(%d) = %s, want %s", c.count, got, c.want)
		}
	}
}

func TestReadingLevelTier(t *testing.T) {
	cases := []struct {
		grade float64
		want  Tier
	}{
		{5.0, TierRed},
		{6.9, TierRed},
		{7.0, TierYellow},
		{8.9, TierYellow},
		{9.0, TierGreen},
		{12.0, TierGreen},
		{12.1, TierYellow},
		{15.0, TierYellow},
		{15.9, TierYellow},
		{16.0, TierRed},
	}
	for _, c := range cases {
		if got := ReadingLevelTier(c.grade); got != c.want {
			t.Errorf("ReadingLevelTier(%v) = %s, want %s", c.grade, got, c.want)
		}
	}
}

func TestHeaderImageTier(t *testing.T) {
	cases := []struct {
		width int
		want  Tier
	}{
		{0, TierRed},
		{799, TierRed},
		{800, TierYellow},
		{1199, TierYellow},
		{1200, TierGreen},
		{2400, TierGreen},
	}
	for _, c := range cases {
		if got := HeaderImageTier(c.width); got != c.want {
			t.Errorf("HeaderImageTier(%d) = %s, want %s", c.width, got, c.want)
		}
	}
}

func TestScoreBand(t *testing.T) {
	cases := []struct {
		score int
		want  Band
	}{
		{100, BandExceptional},
		{90, BandExceptional},
		{89, BandStrong},
		{80, BandStrong},
		{79, BandGood},
		{70, BandGood},
		{69, BandNeedsImprovement},
		{60, BandNeedsImprovement},
		{59, BandMajorRevision},
		{40, BandMajorRevision},
		{39, BandCompleteRewrite},
		{0, BandCompleteRewrite},
	}
	for _, c := range cases {
		if got := ScoreBand(c.score); got != c.want {
			t.Errorf("ScoreBand(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestSummaryMarkdown(t *testing.T) {
	r := &audit.BatchReport{
		StartIndex: 10,
		BatchSize:  5,
		Processed:  3,
		Skipped:    1,
		Failed:     1,
		TotalCost:  decimal.RequireFromString("0.123"),
		Failures:   []audit.Failure{{URL: "https://example.com/bad/", Reason: "malformed scoring response"}},
		Duration:   90 * time.Second,
	}

	got := SummaryMarkdown(r)
	for _, want := range []string{"**Processed:** 3", "$0.12300", "https://example.com/bad/", "## Failures"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestWriteSummaryHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary", "batch.html")
	r := &audit.BatchReport{TotalCost: decimal.Zero}

	if err := WriteSummaryHTML(r, path); err != nil {
		t.Fatalf("WriteSummaryHTML failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading summary: %v", err)
	}
	html := string(data)
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Audit batch summary") {
		t.Errorf("expected rendered heading in summary HTML:\n%s", html)
	}
}
