// Package audit runs the batched scoring pipeline: it slices the content
// store, scores each article that has no complete audit yet, joins the
// reference sheets, and persists rows and API costs.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"blogaudit/internal/content"
	"blogaudit/internal/refsheet"
	"blogaudit/internal/scoring"
	"blogaudit/internal/store"
)

// ErrConfiguration means the batch request itself is invalid and nothing
// was processed.
var ErrConfiguration = errors.New("invalid configuration")

// Failure records one article the batch could not score.
type Failure struct {
	URL    string
	Reason string
}

// BatchReport summarizes one batch run.
type BatchReport struct {
	StartIndex int
	BatchSize  int
	Processed  int
	Skipped    int
	Failed     int
	TotalCost  decimal.Decimal
	Failures   []Failure
	Duration   time.Duration
}

// Scorer scores one article across all facets. *scoring.Client is the
// production implementation.
type Scorer interface {
	Score(ctx context.Context, rec *content.Record, targetKeyword, brandVoice string) (*scoring.Result, []scoring.CostRecord, error)
}

// Runner executes audit batches against the content store.
type Runner struct {
	db          *store.DB
	client      Scorer
	articles    *content.Store
	keywords    refsheet.KeywordTable
	performance refsheet.PerformanceTable
	brandVoice  string
}

// NewRunner creates a batch runner. The keyword and performance tables may
// be empty when the sheets are not available.
func NewRunner(db *store.DB, client Scorer, articles *content.Store, keywords refsheet.KeywordTable, performance refsheet.PerformanceTable, brandVoice string) *Runner {
	return &Runner{
		db:          db,
		client:      client,
		articles:    articles,
		keywords:    keywords,
		performance: performance,
		brandVoice:  brandVoice,
	}
}

// RunBatch audits the slice [startIndex, startIndex+batchSize) of the
// content store. Articles with a complete audit are skipped, failed
// articles are reported and do not stop the batch. A start index past the
// end of the store is a configuration error, except the exact end, which
// yields an empty report.
func (r *Runner) RunBatch(ctx context.Context, startIndex, batchSize int) (*BatchReport, error) {
	if startIndex < 0 || startIndex > r.articles.Len() {
		return nil, fmt.Errorf("%w: start index %d outside store of %d articles", ErrConfiguration, startIndex, r.articles.Len())
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", ErrConfiguration, batchSize)
	}

	report := &BatchReport{
		StartIndex: startIndex,
		BatchSize:  batchSize,
		TotalCost:  decimal.Zero,
	}
	started := time.Now()
	defer func() { report.Duration = time.Since(started) }()

	completed, err := r.db.CompletedURLs()
	if err != nil {
		return nil, fmt.Errorf("loading completed audits: %w", err)
	}

	batch := r.articles.Slice(startIndex, batchSize)
	log.Printf("auditing %d article(s) from index %d (%d already complete overall)",
		len(batch), startIndex, len(completed))

	for i := range batch {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		rec := &batch[i]
		url := rec.CanonicalURL()

		if completed[url] {
			log.Printf("[%d/%d] skip (already audited): %s", i+1, len(batch), url)
			report.Skipped++
			continue
		}

		log.Printf("[%d/%d] scoring: %s", i+1, len(batch), url)
		if err := r.auditOne(ctx, rec, report); err != nil {
			return report, err
		}
	}

	log.Printf("batch done: %d processed, %d skipped, %d failed, $%s spent",
		report.Processed, report.Skipped, report.Failed, report.TotalCost.StringFixed(5))
	return report, nil
}

// auditOne scores a single article and persists the outcome. Scoring
// failures are recorded in the report and swallowed; storage failures and
// cancellation propagate.
func (r *Runner) auditOne(ctx context.Context, rec *content.Record, report *BatchReport) error {
	url := rec.CanonicalURL()
	keyword := r.keywords.Lookup(url)

	result, costs, scoreErr := r.client.Score(ctx, rec, keyword, r.brandVoice)

	// Spend is ledgered even when scoring failed partway through.
	if err := r.db.InsertCostRecords(costs); err != nil {
		return fmt.Errorf("recording costs for %s: %w", url, err)
	}
	for _, c := range costs {
		report.TotalCost = report.TotalCost.Add(c.Cost)
	}

	if scoreErr != nil {
		if errors.Is(scoreErr, context.Canceled) || errors.Is(scoreErr, context.DeadlineExceeded) {
			return scoreErr
		}
		log.Printf("  scoring failed: %v", scoreErr)
		report.Failed++
		report.Failures = append(report.Failures, Failure{URL: url, Reason: scoreErr.Error()})
		return nil
	}

	perf, hasPerf := r.performance.Lookup(rec.Slug())
	if !hasPerf {
		log.Printf("  no performance metrics for slug %q", rec.Slug())
	}

	row := buildRow(rec, result, keyword, perf, hasPerf, costs)
	rowJSON, err := row.Marshal()
	if err != nil {
		return err
	}

	audit := store.Audit{
		URL:          url,
		Slug:         row.Slug,
		Title:        row.Title,
		ResultJSON:   rowJSON,
		InputTokens:  row.InputTokens,
		OutputTokens: row.OutputTokens,
		Cost:         row.Cost(),
	}
	if err := r.db.UpsertAudit(audit); err != nil {
		return err
	}

	report.Processed++
	return nil
}

// Rows loads every stored audit row in first-audited order.
func Rows(db *store.DB) ([]Row, error) {
	audits, err := db.ListAudits()
	if err != nil {
		return nil, fmt.Errorf("loading audits: %w", err)
	}
	rows := make([]Row, 0, len(audits))
	for _, a := range audits {
		row, err := UnmarshalRow(a.ResultJSON)
		if err != nil {
			return nil, fmt.Errorf("audit for %s: %w", a.URL, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
