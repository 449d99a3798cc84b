package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cover-letter-agent/internal/config"
	"github.com/jonathan/cover-letter-agent/internal/fallback"
	"github.com/jonathan/cover-letter-agent/internal/gaps"
	"github.com/jonathan/cover-letter-agent/internal/llm"
	"github.com/jonathan/cover-letter-agent/internal/observability"
	"github.com/jonathan/cover-letter-agent/internal/pipeline"
	"github.com/jonathan/cover-letter-agent/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a cover letter",
	Long: `Runs the four-stage generation pipeline: extract requirements from the posting, map each requirement to profile evidence, write the letter from the evidence map, then validate every claim.

When a stage fails the command degrades to a single-shot generation, and finally to an offline template, unless --no-fallback is set.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerate,
}

var (
	genConfigPath string
	genJob        string
	genProfile    string
	genSample     string
	genLanguage   string
	genTone       string
	genNotes      string
	genOutput     string
	genAPIKey     string
	genNoFallback bool
	genVerbose    bool
)

func init() {
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&genJob, "job", "j", "", "Path to job posting JSON file")
	generateCmd.Flags().StringVarP(&genProfile, "profile", "p", "", "Path to user profile JSON file")
	generateCmd.Flags().StringVar(&genSample, "sample", "", "Path to a sample letter for style matching")
	generateCmd.Flags().StringVarP(&genLanguage, "language", "l", "", "Letter language (ISO 639-1, defaults to the posting's language)")
	generateCmd.Flags().StringVar(&genTone, "tone", "", "Letter tone: professional, enthusiastic, or formal")
	generateCmd.Flags().StringVar(&genNotes, "notes", "", "Extra instructions passed to generation")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Write the letter to a file instead of stdout")
	generateCmd.Flags().BoolVar(&genNoFallback, "no-fallback", false, "Fail instead of degrading to a weaker tier")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed stage information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	generateCmd.Flags().StringVar(&genAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadGenerateConfig(cmd)
	if err != nil {
		return err
	}

	input, err := loadInput(cfg)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		found := gaps.Analyze(input.JobPosting, input.UserProfile)
		printer.PrintGaps(found)
	}

	var client llm.Client
	if cfg.APIKey != "" {
		c, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer c.Close() //nolint:errcheck
		client = c
	}

	content, tier, err := generateWithFallback(ctx, client, input, cfg, printer)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintLetterSummary(content, tier)
	}

	if genOutput != "" {
		if err := os.WriteFile(genOutput, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write letter: %w", err)
		}
		fmt.Printf("Letter written to %s (tier: %s)\n", genOutput, tier)
		return nil
	}

	fmt.Println(content)
	return nil
}

// generateWithFallback walks the tier chain: pipeline, legacy,
// template. The caller owns this chain; the pipeline itself never
// retries or degrades.
func generateWithFallback(ctx context.Context, client llm.Client, input types.PipelineInput, cfg config.Config, printer *observability.Printer) (string, types.GenerationTier, error) {
	opts := pipeline.RunOptions{}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Stage, event.Message)
		}
	}

	output, err := pipeline.Run(ctx, client, input, opts)
	if err == nil {
		if cfg.Verbose {
			printer.PrintEvidenceMap(output.EvidenceMap)
			printer.PrintValidation(output.Validation)
		}
		return output.Content, types.TierPipeline, nil
	}
	if cfg.NoFallback {
		return "", "", err
	}

	fmt.Fprintf(os.Stderr, "Pipeline generation failed (%v), trying single-shot generation\n", err)

	date := time.Now().Format("2 January 2006")
	content, err := fallback.GenerateLegacyLetter(ctx, client, input, date)
	if err == nil {
		return content, types.TierLegacy, nil
	}

	fmt.Fprintf(os.Stderr, "Single-shot generation failed (%v), using offline template\n", err)

	return fallback.GenerateTemplateLetter(input), types.TierTemplate, nil
}

// loadGenerateConfig merges config file, CLI flags, and environment
func loadGenerateConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if genConfigPath != "" {
		loaded, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	// CLI flags override config file values
	if cmd.Flags().Changed("job") {
		cfg.Job = genJob
	}
	if cmd.Flags().Changed("profile") {
		cfg.Profile = genProfile
	}
	if cmd.Flags().Changed("sample") {
		cfg.Sample = genSample
	}
	if cmd.Flags().Changed("language") {
		cfg.Language = genLanguage
	}
	if cmd.Flags().Changed("tone") {
		cfg.Tone = genTone
	}
	if cmd.Flags().Changed("notes") {
		cfg.Notes = genNotes
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = genAPIKey
	}
	if cmd.Flags().Changed("no-fallback") {
		cfg.NoFallback = genNoFallback
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv())

	if cfg.Job == "" {
		return cfg, fmt.Errorf("--job is required (via flag or config)")
	}
	if cfg.Profile == "" {
		return cfg, fmt.Errorf("--profile is required (via flag or config)")
	}
	return cfg, nil
}

// loadInput reads the job posting and profile files into a pipeline input
func loadInput(cfg config.Config) (types.PipelineInput, error) {
	var input types.PipelineInput

	if err := readJSONFile(cfg.Job, &input.JobPosting); err != nil {
		return input, fmt.Errorf("failed to load job posting: %w", err)
	}
	if err := readJSONFile(cfg.Profile, &input.UserProfile); err != nil {
		return input, fmt.Errorf("failed to load profile: %w", err)
	}
	if cfg.Sample != "" {
		data, err := os.ReadFile(cfg.Sample)
		if err != nil {
			return input, fmt.Errorf("failed to load sample letter: %w", err)
		}
		input.SampleLetter = string(data)
	}

	input.Language = cfg.Language
	input.Tone = cfg.Tone
	input.AdditionalNotes = cfg.Notes
	return input, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return nil
}
