package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Store   Store   `yaml:"store"`
	Sheets  Sheets  `yaml:"sheets"`
	Scoring Scoring `yaml:"scoring"`
	Report  Report  `yaml:"report"`
	Logging Logging `yaml:"logging"`
}

// Store locates the scraped content corpus and the audit results database.
type Store struct {
	ContentPath string `yaml:"content_path"`
	DataDir     string `yaml:"data_dir"`
}

// Sheets locates the read-only reference spreadsheets.
type Sheets struct {
	KeywordsPath    string `yaml:"keywords_path"`
	PerformancePath string `yaml:"performance_path"`
}

type Scoring struct {
	Provider      string `yaml:"provider"`
	Model         string `yaml:"model"`
	APIKeyEnv     string `yaml:"api_key_env"`
	MaxTokens     int    `yaml:"max_tokens"`
	MaxAttempts   int    `yaml:"max_attempts"`
	BackoffBaseMS int    `yaml:"backoff_base_ms"`
	BackoffMaxMS  int    `yaml:"backoff_max_ms"`
	InputPerMTok  string `yaml:"input_per_mtok"`
	OutputPerMTok string `yaml:"output_per_mtok"`
	BrandVoice    string `yaml:"brand_voice"`
}

type Report struct {
	Path        string `yaml:"path"`
	SummaryPath string `yaml:"summary_path"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for blogaudit.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "blogaudit")
}

// DataDir returns the XDG data directory for blogaudit.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "blogaudit")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/blogaudit/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'blogaudit init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Store: Store{
			ContentPath: "output/all.json",
		},
		Sheets: Sheets{
			KeywordsPath:    "resources/yoast-blog-keywords.xlsx",
			PerformancePath: "resources/performance.xlsx",
		},
		Scoring: Scoring{
			Provider:      "anthropic",
			Model:         "claude-3-5-sonnet-latest",
			APIKeyEnv:     "ANTHROPIC_API_KEY",
			MaxTokens:     1500,
			MaxAttempts:   5,
			BackoffBaseMS: 1000,
			BackoffMaxMS:  10000,
			InputPerMTok:  "3.00",
			OutputPerMTok: "15.00",
		},
		Report: Report{
			Path:        "output/blog_audit.xlsx",
			SummaryPath: "output/audit_summary.html",
		},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Store.DataDir != "" {
		return c.Store.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
