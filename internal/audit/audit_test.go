package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"blogaudit/internal/content"
	"blogaudit/internal/refsheet"
	"blogaudit/internal/scoring"
	"blogaudit/internal/store"
	"blogaudit/internal/taxonomy"
)

func writeContentStore(t *testing.T, urls ...string) *content.Store {
	t.Helper()

	var blog []map[string]any
	for _, url := range urls {
		blog = append(blog, map[string]any{
			"url": url,
			"basic_info": map[string]any{
				"title":            "Post at " + url,
				"url":              url,
				"publication_date": "2024-03-18T09:30:00+00:00",
			},
			"content": "Marketing automation helps teams scale. It saves time.",
		})
	}
	data, err := json.Marshal(map[string]any{"analyses": map[string]any{"blog": blog}})
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "content.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	articles, err := content.Load(path)
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	return articles
}

// fakeScorer returns a fixed result, or a scripted error per URL. Every
// call, failed or not, produces one cost record.
type fakeScorer struct {
	calls int
	fail  map[string]error
}

func (f *fakeScorer) Score(ctx context.Context, rec *content.Record, keyword, brandVoice string) (*scoring.Result, []scoring.CostRecord, error) {
	f.calls++
	url := rec.CanonicalURL()
	costs := []scoring.CostRecord{{
		URL: url, Seq: 1, Facet: scoring.FacetQuality,
		InputTokens: 100, OutputTokens: 10,
		Cost: decimal.RequireFromString("0.00045"),
	}}
	if err := f.fail[url]; err != nil {
		return nil, costs, err
	}
	result := &scoring.Result{
		Quality: scoring.QualityResult{
			OverallScore:   75,
			TopicRelevance: taxonomy.RelevanceOnTopic,
			BrandAlignment: taxonomy.BrandMostlyOnBrand,
		},
	}
	return result, costs, nil
}

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func urlN(n int) string {
	return fmt.Sprintf("https://example.com/blog/post-%d/", n)
}

func testURLs(n int) []string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = urlN(i)
	}
	return urls
}

func newTestRunner(t *testing.T, db *store.DB, scorer Scorer, urls ...string) *Runner {
	t.Helper()
	articles := writeContentStore(t, urls...)
	return NewRunner(db, scorer, articles, refsheet.KeywordTable{}, refsheet.PerformanceTable{}, "Be direct.")
}

func TestRunBatchProcessesAll(t *testing.T) {
	db := openTestDB(t)
	scorer := &fakeScorer{}
	runner := newTestRunner(t, db, scorer, testURLs(3)...)

	report, err := runner.RunBatch(context.Background(), 0, 3)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if report.Processed != 3 || report.Skipped != 0 || report.Failed != 0 {
		t.Errorf("expected 3/0/0, got %d/%d/%d", report.Processed, report.Skipped, report.Failed)
	}
	if !report.TotalCost.Equal(decimal.RequireFromString("0.00135")) {
		t.Errorf("expected total cost 0.00135, got %s", report.TotalCost)
	}

	audits, err := db.ListAudits()
	if err != nil {
		t.Fatalf("listing audits: %v", err)
	}
	if len(audits) != 3 {
		t.Fatalf("expected 3 stored audits, got %d", len(audits))
	}
	row, err := UnmarshalRow(audits[0].ResultJSON)
	if err != nil {
		t.Fatalf("decoding row: %v", err)
	}
	if row.OverallQualityScore != 75 {
		t.Errorf("expected quality 75, got %d", row.OverallQualityScore)
	}
	if row.PublicationDate != "2024-03-18" {
		t.Errorf("expected normalized date, got %q", row.PublicationDate)
	}
}

func TestRunBatchIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	scorer := &fakeScorer{}
	runner := newTestRunner(t, db, scorer, testURLs(3)...)

	if _, err := runner.RunBatch(context.Background(), 0, 3); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	callsAfterFirst := scorer.calls

	report, err := runner.RunBatch(context.Background(), 0, 3)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if report.Skipped != 3 || report.Processed != 0 {
		t.Errorf("expected all skipped on re-run, got %d processed %d skipped", report.Processed, report.Skipped)
	}
	if scorer.calls != callsAfterFirst {
		t.Errorf("re-run must not call the scorer, calls went %d to %d", callsAfterFirst, scorer.calls)
	}
}

func TestRunBatchResumes(t *testing.T) {
	db := openTestDB(t)
	scorer := &fakeScorer{}
	runner := newTestRunner(t, db, scorer, testURLs(5)...)

	if _, err := runner.RunBatch(context.Background(), 0, 2); err != nil {
		t.Fatalf("first batch failed: %v", err)
	}
	report, err := runner.RunBatch(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("second batch failed: %v", err)
	}
	if report.Processed != 3 {
		t.Errorf("expected 3 processed in second batch, got %d", report.Processed)
	}

	audits, _ := db.ListAudits()
	if len(audits) != 5 {
		t.Errorf("expected all 5 audited across batches, got %d", len(audits))
	}
	// First-audited order is preserved across batches.
	if audits[0].URL != urlN(0) || audits[4].URL != urlN(4) {
		t.Errorf("unexpected audit order: first %q last %q", audits[0].URL, audits[4].URL)
	}
}

func TestRunBatchIsolatesFailures(t *testing.T) {
	db := openTestDB(t)
	scorer := &fakeScorer{fail: map[string]error{
		urlN(1): fmt.Errorf("%w: quality facet", scoring.ErrScoringUnavailable),
	}}
	runner := newTestRunner(t, db, scorer, testURLs(3)...)

	report, err := runner.RunBatch(context.Background(), 0, 3)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if report.Processed != 2 || report.Failed != 1 {
		t.Errorf("expected 2 processed 1 failed, got %d/%d", report.Processed, report.Failed)
	}
	if len(report.Failures) != 1 || report.Failures[0].URL != urlN(1) {
		t.Fatalf("expected failure recorded for post-1, got %+v", report.Failures)
	}

	// The failed article's spend is still ledgered.
	summary, err := db.TotalCost()
	if err != nil {
		t.Fatalf("TotalCost failed: %v", err)
	}
	if summary.Calls != 3 {
		t.Errorf("expected 3 ledger entries, got %d", summary.Calls)
	}

	// And the failed article stays incomplete, so a later run retries it.
	completed, _ := db.CompletedURLs()
	if completed[urlN(1)] {
		t.Error("failed article must not be marked complete")
	}
}

func TestRunBatchFailedArticleRetriedNextRun(t *testing.T) {
	db := openTestDB(t)
	scorer := &fakeScorer{fail: map[string]error{
		urlN(0): fmt.Errorf("%w: bad JSON", scoring.ErrMalformedResponse),
	}}
	runner := newTestRunner(t, db, scorer, testURLs(2)...)

	if _, err := runner.RunBatch(context.Background(), 0, 2); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	scorer.fail = nil
	report, err := runner.RunBatch(context.Background(), 0, 2)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if report.Processed != 1 || report.Skipped != 1 {
		t.Errorf("expected retry of failed article only, got %d processed %d skipped", report.Processed, report.Skipped)
	}
}

func TestRunBatchBounds(t *testing.T) {
	db := openTestDB(t)
	runner := newTestRunner(t, db, &fakeScorer{}, testURLs(3)...)
	ctx := context.Background()

	if _, err := runner.RunBatch(ctx, -1, 2); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for negative start, got %v", err)
	}
	if _, err := runner.RunBatch(ctx, 4, 2); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration past the end, got %v", err)
	}
	if _, err := runner.RunBatch(ctx, 0, 0); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for zero batch size, got %v", err)
	}

	// Start exactly at the end is an empty batch, not an error.
	report, err := runner.RunBatch(ctx, 3, 2)
	if err != nil {
		t.Fatalf("expected empty report at boundary, got %v", err)
	}
	if report.Processed != 0 || report.Skipped != 0 || report.Failed != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestRunBatchClampsSize(t *testing.T) {
	db := openTestDB(t)
	scorer := &fakeScorer{}
	runner := newTestRunner(t, db, scorer, testURLs(3)...)

	report, err := runner.RunBatch(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("RunBatch failed: %v", err)
	}
	if report.Processed != 2 {
		t.Errorf("expected batch clamped to 2 remaining articles, got %d", report.Processed)
	}
}

func TestRunBatchCanceledContext(t *testing.T) {
	db := openTestDB(t)
	scorer := &fakeScorer{}
	runner := newTestRunner(t, db, scorer, testURLs(3)...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := runner.RunBatch(ctx, 0, 3)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if report == nil {
		t.Fatal("expected partial report on cancellation")
	}
	if scorer.calls != 0 {
		t.Errorf("expected no scoring after cancellation, got %d calls", scorer.calls)
	}
}

func TestRowRoundTrip(t *testing.T) {
	row := Row{
		Title:               "Post",
		URL:                 "https://example.com/blog/post/",
		Slug:                "post",
		OverallQualityScore: 88,
		UseCase:             taxonomy.UseCaseNurture,
		APICost:             "0.024",
	}
	data, err := row.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := UnmarshalRow(data)
	if err != nil {
		t.Fatalf("UnmarshalRow failed: %v", err)
	}
	if got.OverallQualityScore != 88 || got.UseCase != taxonomy.UseCaseNurture {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.Cost().Equal(decimal.RequireFromString("0.024")) {
		t.Errorf("expected cost 0.024, got %s", got.Cost())
	}
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024-03-18T09:30:00+00:00", "2024-03-18"},
		{"2024-03-18", "2024-03-18"},
		{"", "No Date"},
		{"last Tuesday", "No Date"},
	}
	for _, c := range cases {
		if got := formatDate(c.in); got != c.want {
			t.Errorf("formatDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
