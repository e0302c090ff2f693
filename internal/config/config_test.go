package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if cfg.Scoring.Provider != "anthropic" {
		t.Errorf("expected provider 'anthropic', got %q", cfg.Scoring.Provider)
	}
	if cfg.Scoring.MaxAttempts != 5 {
		t.Errorf("expected max_attempts 5, got %d", cfg.Scoring.MaxAttempts)
	}
	if cfg.Scoring.InputPerMTok != "3.00" {
		t.Errorf("expected input rate '3.00', got %q", cfg.Scoring.InputPerMTok)
	}
	if cfg.Report.Path != "output/blog_audit.xlsx" {
		t.Errorf("unexpected report path %q", cfg.Report.Path)
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
scoring:
  provider: openai
  model: gpt-4o
report:
  path: out/audit.xlsx
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Scoring.Provider != "openai" {
		t.Errorf("expected provider 'openai', got %q", cfg.Scoring.Provider)
	}
	if cfg.Report.Path != "out/audit.xlsx" {
		t.Errorf("expected overridden report path, got %q", cfg.Report.Path)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Scoring.MaxAttempts != 5 {
		t.Errorf("expected default max_attempts, got %d", cfg.Scoring.MaxAttempts)
	}
	if cfg.Sheets.KeywordsPath != "resources/yoast-blog-keywords.xlsx" {
		t.Errorf("expected default keywords path, got %q", cfg.Sheets.KeywordsPath)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Scoring.Model == "" {
		t.Error("expected model to be set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit path")
	}
}
