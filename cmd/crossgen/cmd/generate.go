package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lesmotsdatche/crossgen/internal/domain"
	"github.com/lesmotsdatche/crossgen/pkg/candidates"
	"github.com/lesmotsdatche/crossgen/pkg/clues"
	"github.com/lesmotsdatche/crossgen/pkg/llm"
	"github.com/lesmotsdatche/crossgen/pkg/orchestrator"
	"github.com/lesmotsdatche/crossgen/pkg/output"
	"github.com/lesmotsdatche/crossgen/pkg/theme"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

var (
	genCount      int
	genDifficulty int
	genOutput     string
	genFormat     string
	genRows       int
	genCols       int
	genLLM        string
	genDate       string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate crossword puzzles",
	Long: `Generate one or more French crossword puzzles via theme, candidate
expansion, grid construction and LLM-generated clues.

Examples:
  # Generate 10 puzzles at difficulty 2 in JSON format
  crossgen generate --count 10 --difficulty 2 --format json --output ./puzzles

  # Generate a single puzzle in all formats
  crossgen generate --difficulty 4 --format all --output ./puzzles

  # Generate using cache-only mode (no LLM API calls)
  crossgen generate --llm cache-only --count 5`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genCount, "count", "n", 1, "number of puzzles to generate")
	generateCmd.Flags().IntVarP(&genDifficulty, "difficulty", "d", 3, "puzzle difficulty (1-5)")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", ".", "output directory")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "json", "output format (json, puz, ipuz, all)")
	generateCmd.Flags().IntVar(&genRows, "rows", 13, "grid row count")
	generateCmd.Flags().IntVar(&genCols, "cols", 13, "grid column count")
	generateCmd.Flags().StringVarP(&genLLM, "llm", "l", "anthropic", "LLM provider (anthropic, ollama, cache-only)")
	generateCmd.Flags().StringVar(&genDate, "date", "", "puzzle date, YYYY-MM-DD (defaults to today)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if genDifficulty < 1 || genDifficulty > 5 {
		return fmt.Errorf("invalid difficulty: %d (must be between 1 and 5)", genDifficulty)
	}

	formats, err := parseFormats(genFormat)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	date := genDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	orch, err := setupOrchestrator(genLLM)
	if err != nil {
		return fmt.Errorf("failed to setup orchestrator: %w", err)
	}

	if err := os.MkdirAll(genOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Printf("Generating %d puzzle(s) with difficulty: %d\n", genCount, genDifficulty)

	for i := 1; i <= genCount; i++ {
		startTime := time.Now()

		fmt.Printf("[%d/%d] Generating puzzle... ", i, genCount)

		req := orchestrator.Request{
			Date:       date,
			Difficulty: genDifficulty,
			Rows:       genRows,
			Cols:       genCols,
			Seed:       int64(i),
		}

		bundle, err := orch.Generate(ctx, req)
		if err != nil {
			fmt.Printf("FAILED\n")
			return fmt.Errorf("failed to generate puzzle %d: %w", i, err)
		}

		if verbosity > 0 {
			fmt.Printf("\n  theme=%q fillScore=%d clueScore=%d\n",
				bundle.Puzzle.Title, bundle.Report.FillScore, bundle.Report.ClueScore)
		}

		if err := writeOutputFiles(&bundle.Puzzle, genOutput, i, formats); err != nil {
			fmt.Printf("FAILED\n")
			return fmt.Errorf("failed to write output files for puzzle %d: %w", i, err)
		}

		elapsed := time.Since(startTime)
		fmt.Printf("OK (%.1fs)\n", elapsed.Seconds())
	}

	fmt.Printf("\nSuccessfully generated %d puzzle(s) in %s\n", genCount, genOutput)
	return nil
}

// parseFormats converts format string to list of formats
func parseFormats(format string) ([]string, error) {
	format = strings.ToLower(format)
	if format == "all" {
		return []string{"json", "puz", "ipuz"}, nil
	}

	validFormats := map[string]bool{
		"json": true,
		"puz":  true,
		"ipuz": true,
	}

	if !validFormats[format] {
		return nil, fmt.Errorf("invalid format: %s (must be json, puz, ipuz, or all)", format)
	}

	return []string{format}, nil
}

// setupOrchestrator wires the theme, candidate, and clue collaborators
// against the chosen LLM provider into a runnable Orchestrator.
func setupOrchestrator(llmProvider string) (*orchestrator.Orchestrator, error) {
	cacheDB, err := sql.Open("sqlite3", "./clue_cache.db")
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := clues.InitDB(cacheDB); err != nil {
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}

	cache, err := clues.NewClueCache(cacheDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create clue cache: %w", err)
	}

	var llmClient llm.Client
	switch strings.ToLower(llmProvider) {
	case "cache-only":
		llmClient = nil
	case "anthropic":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		llmClient, err = llm.NewAnthropicClient(llm.AnthropicConfig{
			APIKey: apiKey,
			Model:  llm.ModelHaiku,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Anthropic client: %w", err)
		}
	case "ollama":
		llmClient, err = llm.NewOllamaClient(llm.OllamaConfig{})
		if err != nil {
			return nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid LLM provider: %s (must be anthropic, ollama, or cache-only)", llmProvider)
	}

	return orchestrator.New(orchestrator.Config{
		Theme:      theme.New(llmClient),
		Candidates: candidates.New(llmClient),
		Clues:      clues.NewGenerator(cache, llmClient),
	}), nil
}

// writeOutputFiles writes puzzle to disk in the specified formats
func writeOutputFiles(puz *domain.Puzzle, outputDir string, puzzleNum int, formats []string) error {
	baseName := fmt.Sprintf("puzzle_%03d", puzzleNum)

	for _, format := range formats {
		var filePath string
		var data []byte
		var err error

		switch format {
		case "json":
			filePath = filepath.Join(outputDir, baseName+".json")
			data, err = output.ToJSON(puz)
		case "puz":
			filePath = filepath.Join(outputDir, baseName+".puz")
			data, err = output.FormatPuz(puz)
		case "ipuz":
			filePath = filepath.Join(outputDir, baseName+".ipuz")
			data, err = output.ToIPuz(puz)
		default:
			return fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return fmt.Errorf("failed to format puzzle as %s: %w", format, err)
		}

		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s file: %w", format, err)
		}
	}

	return nil
}
