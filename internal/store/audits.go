package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Audit is one article's persisted audit outcome. ResultJSON holds the
// full merged row; the scalar columns exist for status queries and joins.
type Audit struct {
	ID           int64
	URL          string
	Slug         string
	Title        string
	Complete     bool
	ResultJSON   string
	InputTokens  int
	OutputTokens int
	Cost         decimal.Decimal
	AuditedAt    string
}

// UpsertAudit stores a completed audit for a URL. Re-auditing the same URL
// replaces the previous result; the row keeps its original id so report
// ordering stays stable across re-runs.
func (db *DB) UpsertAudit(a Audit) error {
	_, err := db.conn.Exec(
		`INSERT INTO audited_articles (url, slug, title, complete, result_json, input_tokens, output_tokens, cost)
		VALUES (?, ?, ?, 1, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			slug = excluded.slug,
			title = excluded.title,
			complete = 1,
			result_json = excluded.result_json,
			input_tokens = excluded.input_tokens,
			output_tokens = excluded.output_tokens,
			cost = excluded.cost,
			audited_at = datetime('now')`,
		a.URL, a.Slug, a.Title, a.ResultJSON, a.InputTokens, a.OutputTokens, a.Cost.String(),
	)
	if err != nil {
		return fmt.Errorf("upserting audit for %s: %w", a.URL, err)
	}
	return nil
}

// GetAudit returns the audit for a URL, or nil if none exists.
func (db *DB) GetAudit(url string) (*Audit, error) {
	row := db.conn.QueryRow(
		`SELECT id, url, slug, title, complete, result_json, input_tokens, output_tokens, cost, audited_at
		FROM audited_articles WHERE url = ?`, url,
	)
	a, err := scanAudit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// CompletedURLs returns the set of URLs that already have a complete audit.
func (db *DB) CompletedURLs() (map[string]bool, error) {
	rows, err := db.conn.Query("SELECT url FROM audited_articles WHERE complete = 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls[url] = true
	}
	return urls, rows.Err()
}

// ListAudits returns all complete audits in first-audited order.
func (db *DB) ListAudits() ([]Audit, error) {
	rows, err := db.conn.Query(
		`SELECT id, url, slug, title, complete, result_json, input_tokens, output_tokens, cost, audited_at
		FROM audited_articles WHERE complete = 1 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var audits []Audit
	for rows.Next() {
		var a Audit
		var complete int
		var cost string
		if err := rows.Scan(&a.ID, &a.URL, &a.Slug, &a.Title, &complete,
			&a.ResultJSON, &a.InputTokens, &a.OutputTokens, &cost, &a.AuditedAt); err != nil {
			return nil, err
		}
		a.Complete = complete != 0
		if a.Cost, err = decimal.NewFromString(cost); err != nil {
			return nil, fmt.Errorf("parsing stored cost %q: %w", cost, err)
		}
		audits = append(audits, a)
	}
	return audits, rows.Err()
}

// CountComplete returns the number of complete audits.
func (db *DB) CountComplete() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM audited_articles WHERE complete = 1").Scan(&count)
	return count, err
}

func scanAudit(row *sql.Row) (*Audit, error) {
	var a Audit
	var complete int
	var cost string
	if err := row.Scan(&a.ID, &a.URL, &a.Slug, &a.Title, &complete,
		&a.ResultJSON, &a.InputTokens, &a.OutputTokens, &cost, &a.AuditedAt); err != nil {
		return nil, err
	}
	a.Complete = complete != 0
	var err error
	if a.Cost, err = decimal.NewFromString(cost); err != nil {
		return nil, fmt.Errorf("parsing stored cost %q: %w", cost, err)
	}
	return &a, nil
}
