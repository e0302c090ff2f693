package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"blogaudit/internal/audit"
	"blogaudit/internal/config"
	"blogaudit/internal/content"
	"blogaudit/internal/refsheet"
	"blogaudit/internal/report"
	"blogaudit/internal/scoring"
	"blogaudit/internal/store"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "blogaudit",
	Short:   "Batched LLM content audits for blog archives",
	Long:    "Blogaudit scores scraped blog articles for quality, tone, SEO, and categorization in resumable batches and renders a styled Excel report.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("blogaudit", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/blogaudit/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at your content store, reference sheets, and API key.")
		return nil
	},
}

// --- audit command ---

var (
	startIndex int
	batchSize  int
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Score a batch of articles from the content store",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		articles, err := content.Load(cfg.Store.ContentPath)
		if err != nil {
			return fmt.Errorf("loading content store: %w", err)
		}

		keywords, performance, err := loadSheets()
		if err != nil {
			return err
		}

		provider := scoring.CreateProvider(cfg.Scoring.Provider, cfg.Scoring.Model, cfg.Scoring.APIKeyEnv)
		if provider == nil {
			return fmt.Errorf("scoring provider not configured")
		}
		rates, err := scoring.ParseRates(cfg.Scoring.InputPerMTok, cfg.Scoring.OutputPerMTok)
		if err != nil {
			return err
		}
		client := scoring.NewClient(provider, rates, scoring.Options{
			MaxTokens:   cfg.Scoring.MaxTokens,
			MaxAttempts: cfg.Scoring.MaxAttempts,
			BackoffBase: time.Duration(cfg.Scoring.BackoffBaseMS) * time.Millisecond,
			BackoffMax:  time.Duration(cfg.Scoring.BackoffMaxMS) * time.Millisecond,
		})

		runner := audit.NewRunner(db, client, articles, keywords, performance, cfg.Scoring.BrandVoice)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, err := runner.RunBatch(ctx, startIndex, batchSize)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nInterrupted. Completed articles are saved; re-run to resume.")
		}

		fmt.Println("\nBatch complete:")
		fmt.Printf("  Processed: %d\n", result.Processed)
		fmt.Printf("  Skipped (already audited): %d\n", result.Skipped)
		fmt.Printf("  Failed: %d\n", result.Failed)
		fmt.Printf("  API spend: $%s\n", result.TotalCost.StringFixed(5))
		for _, f := range result.Failures {
			fmt.Printf("  ! %s: %s\n", f.URL, f.Reason)
		}

		rows, err := audit.Rows(db)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := report.Build(rows, cfg.Report.Path); err != nil {
				return err
			}
			fmt.Printf("\nReport written: %s (%d articles)\n", cfg.Report.Path, len(rows))
		}

		if cfg.Report.SummaryPath != "" {
			if err := report.WriteSummaryHTML(result, cfg.Report.SummaryPath); err != nil {
				log.Printf("writing run summary: %v", err)
			} else {
				fmt.Printf("Run summary: %s\n", cfg.Report.SummaryPath)
			}
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().IntVar(&startIndex, "start-index", 0, "Index of the first article to audit")
	auditCmd.Flags().IntVar(&batchSize, "batch-size", 10, "Number of articles in this batch")
}

// --- report command ---

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Work with the Excel report",
}

var reportBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the Excel report from stored audits",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		rows, err := audit.Rows(db)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No completed audits yet. Run 'blogaudit audit' first.")
			return nil
		}

		if err := report.Build(rows, cfg.Report.Path); err != nil {
			return err
		}
		fmt.Printf("Report written: %s (%d articles)\n", cfg.Report.Path, len(rows))
		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportBuildCmd)
}

// --- status command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show audit progress and API spend",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		articles, err := content.Load(cfg.Store.ContentPath)
		if err != nil {
			return fmt.Errorf("loading content store: %w", err)
		}

		completed, err := db.CountComplete()
		if err != nil {
			return err
		}
		costs, err := db.TotalCost()
		if err != nil {
			return err
		}

		fmt.Println("Audit progress:")
		fmt.Printf("  Articles in store: %d\n", articles.Len())
		fmt.Printf("  Audited: %d\n", completed)
		fmt.Printf("  Remaining: %d\n", articles.Len()-completed)

		fmt.Println("\nAPI spend:")
		fmt.Printf("  Calls: %d\n", costs.Calls)
		fmt.Printf("  Input tokens: %d\n", costs.InputTokens)
		fmt.Printf("  Output tokens: %d\n", costs.OutputTokens)
		fmt.Printf("  Total: $%s\n", costs.Total.StringFixed(5))

		rows, err := audit.Rows(db)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			counts := make(map[report.Band]int)
			for _, r := range rows {
				counts[report.ScoreBand(r.OverallQualityScore)]++
			}
			fmt.Println("\nQuality verdicts:")
			for _, band := range report.AllBands() {
				if counts[band] > 0 {
					fmt.Printf("  %s: %d\n", band, counts[band])
				}
			}
		}
		return nil
	},
}

// loadSheets reads the keyword and performance reference sheets. A
// configured keyword sheet that cannot be read aborts the run: scoring a
// batch with every keyword "Not Found" burns API spend for nothing. The
// performance sheet stays best-effort, since its absence only blanks the
// performance columns.
func loadSheets() (refsheet.KeywordTable, refsheet.PerformanceTable, error) {
	keywords := refsheet.KeywordTable{}
	if cfg.Sheets.KeywordsPath != "" {
		t, err := refsheet.LoadKeywords(cfg.Sheets.KeywordsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: keyword sheet %s: %v",
				audit.ErrConfiguration, cfg.Sheets.KeywordsPath, err)
		}
		keywords = t
	}

	performance := refsheet.PerformanceTable{}
	if cfg.Sheets.PerformancePath != "" {
		t, err := refsheet.LoadPerformance(cfg.Sheets.PerformancePath)
		if err != nil {
			log.Printf("performance sheet unavailable: %v", err)
		} else {
			performance = t
		}
	}
	return keywords, performance, nil
}

func openDB() (*store.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return store.Open(filepath.Join(dataDir, "blogaudit.db"))
}
