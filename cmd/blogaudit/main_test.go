package main

import (
	"errors"
	"path/filepath"
	"testing"

	"blogaudit/internal/audit"
	"blogaudit/internal/config"
)

func TestLoadSheetsMissingKeywordSheetAborts(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg = &config.Config{}
	cfg.Sheets.KeywordsPath = filepath.Join(t.TempDir(), "absent.xlsx")

	_, _, err := loadSheets()
	if err == nil {
		t.Fatal("expected error for unreadable keyword sheet")
	}
	if !errors.Is(err, audit.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestLoadSheetsMissingPerformanceSheetIsTolerated(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg = &config.Config{}
	cfg.Sheets.PerformancePath = filepath.Join(t.TempDir(), "absent.xlsx")

	keywords, performance, err := loadSheets()
	if err != nil {
		t.Fatalf("expected performance sheet to be best-effort, got %v", err)
	}
	if len(keywords) != 0 || len(performance) != 0 {
		t.Errorf("expected empty tables, got %d keywords, %d metrics", len(keywords), len(performance))
	}
}
