package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"blogaudit/internal/scoring"
)

// InsertCostRecords appends API attempt costs to the ledger in one
// transaction. The ledger is append-only: re-auditing a URL adds new
// entries rather than replacing old ones, so total spend stays honest.
func (db *DB) InsertCostRecords(records []scoring.CostRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin cost insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO cost_ledger (url, seq, facet, input_tokens, output_tokens, cost)
		VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare cost insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.URL, r.Seq, string(r.Facet), r.InputTokens, r.OutputTokens, r.Cost.String()); err != nil {
			return fmt.Errorf("inserting cost record for %s: %w", r.URL, err)
		}
	}
	return tx.Commit()
}

// CostSummary aggregates the whole ledger.
type CostSummary struct {
	Calls        int
	InputTokens  int
	OutputTokens int
	Total        decimal.Decimal
}

// TotalCost sums every ledger entry, failed attempts included.
func (db *DB) TotalCost() (CostSummary, error) {
	rows, err := db.conn.Query("SELECT input_tokens, output_tokens, cost FROM cost_ledger")
	if err != nil {
		return CostSummary{}, err
	}
	defer rows.Close()

	summary := CostSummary{Total: decimal.Zero}
	for rows.Next() {
		var in, out int
		var cost string
		if err := rows.Scan(&in, &out, &cost); err != nil {
			return CostSummary{}, err
		}
		c, err := decimal.NewFromString(cost)
		if err != nil {
			return CostSummary{}, fmt.Errorf("parsing ledger cost %q: %w", cost, err)
		}
		summary.Calls++
		summary.InputTokens += in
		summary.OutputTokens += out
		summary.Total = summary.Total.Add(c)
	}
	return summary, rows.Err()
}

// CostForURL sums ledger entries for one URL across all runs.
func (db *DB) CostForURL(url string) (decimal.Decimal, error) {
	rows, err := db.conn.Query("SELECT cost FROM cost_ledger WHERE url = ?", url)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var cost string
		if err := rows.Scan(&cost); err != nil {
			return decimal.Zero, err
		}
		c, err := decimal.NewFromString(cost)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing ledger cost %q: %w", cost, err)
		}
		total = total.Add(c)
	}
	return total, rows.Err()
}
