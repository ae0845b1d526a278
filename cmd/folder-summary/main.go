package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Israel-Laguan/folder-summary/internal/analyzer"
	"github.com/Israel-Laguan/folder-summary/internal/config"
	"github.com/Israel-Laguan/folder-summary/internal/crawler"
	"github.com/Israel-Laguan/folder-summary/internal/generator"
	"github.com/Israel-Laguan/folder-summary/internal/llm"
)

var (
	flagConfig   string
	flagProvider string
	flagModel    string
	flagAPIKey   string
	flagBaseURL  string
	flagOutput   string
	flagWorkers  int
	flagRetries  int
	flagTimeout  int
	flagNoCache  bool
	flagNoLLM    bool
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "folder-summary [path]",
	Short: "Summarize the source files of a directory tree",
	Long: "folder-summary scans a directory of Rust, JavaScript/TypeScript and Python\n" +
		"sources, extracts imports, functions, types and exports per file, asks an\n" +
		"LLM provider for a one-line description of each function, and writes a\n" +
		"single markdown report.",
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagConfig, "config", "c", "", "Path to a YAML config file")
	flags.StringVar(&flagProvider, "provider", "", "LLM provider: ollama, openai or gemini")
	flags.StringVar(&flagModel, "model", "", "Model name for the selected provider")
	flags.StringVar(&flagAPIKey, "api-key", "", "API key for openai/gemini")
	flags.StringVar(&flagBaseURL, "base-url", "", "Base URL for ollama/openai-compatible servers")
	flags.StringVarP(&flagOutput, "output", "o", "", "Report output path")
	flags.IntVar(&flagWorkers, "workers", 0, "Concurrent provider requests")
	flags.IntVar(&flagRetries, "retries", 0, "Attempts per function for transient failures")
	flags.IntVar(&flagTimeout, "timeout", 0, "Per-request timeout in seconds")
	flags.BoolVar(&flagNoCache, "no-cache", false, "Skip the description cache file")
	flags.BoolVar(&flagNoLLM, "no-llm", false, "Skip description generation entirely")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "Print per-file progress")
}

func run(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("📂 Scanning directory: %s\n", absRoot)
	start := time.Now()

	result, err := analyzer.Analyze(absRoot, cfg.Pipeline.Workers)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
	fmt.Printf("✅ Analyzed %d files in %v\n", result.Project.Len(), time.Since(start).Round(time.Millisecond))
	if flagVerbose {
		for _, fm := range result.Project.Files() {
			fmt.Printf("   %s: %d functions, %d types\n", fm.Path, len(fm.Functions), len(fm.Types))
		}
	}

	diagnostics := result.Diagnostics

	if !flagNoLLM {
		descDiags, err := describe(cmd.Context(), cfg, result)
		if err != nil {
			return err
		}
		diagnostics = append(diagnostics, descDiags...)
	}

	report := generator.Report{
		ProjectName: crawler.ProjectName(absRoot),
		Docs:        crawler.DocFiles(absRoot),
		Packages:    crawler.PackageInfo(absRoot),
		Project:     result.Project,
		Diagnostics: diagnostics,
	}
	if err := generator.Write(cfg.Output, report); err != nil {
		return err
	}

	for _, diag := range diagnostics {
		log.Printf("warning: %s", diag)
	}
	fmt.Printf("🎉 Summary saved as %s\n", cfg.Output)
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagProvider != "" {
		cfg.LLM.Provider = flagProvider
	}
	if flagModel != "" {
		cfg.LLM.Model = flagModel
	}
	if flagAPIKey != "" {
		cfg.LLM.APIKey = flagAPIKey
	}
	if flagBaseURL != "" {
		cfg.LLM.BaseURL = flagBaseURL
	}
	if flagOutput != "" {
		cfg.Output = flagOutput
	}
	if flagWorkers > 0 {
		cfg.Pipeline.Workers = flagWorkers
	}
	if flagRetries > 0 {
		cfg.Pipeline.Retries = flagRetries
	}
	if flagTimeout > 0 {
		cfg.Pipeline.TimeoutSeconds = flagTimeout
	}
	if flagNoCache {
		cfg.NoCache = true
	}
	return cfg, nil
}

func describe(ctx context.Context, cfg *config.Config, result *analyzer.Result) ([]string, error) {
	provider, err := llm.NewLLM(ctx, llm.Options{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	cachePath := cfg.Cache
	if cfg.NoCache {
		cachePath = ""
	}
	cache := llm.NewCache(cachePath)

	fmt.Printf("🤖 Generating descriptions with %s\n", provider.ModelName())
	pipeline := llm.NewPipeline(provider, cfg.LLM.Provider, cfg.LLM.Model, cache, llm.PipelineOptions{
		Workers:  cfg.Pipeline.Workers,
		Retries:  cfg.Pipeline.Retries,
		Timeout:  cfg.Timeout(),
		Progress: true,
	})
	diags := pipeline.Run(ctx, result.Project)

	if err := cache.Save(); err != nil {
		log.Printf("warning: %v", err)
	}
	return diags, nil
}
