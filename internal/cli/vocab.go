package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"sentiment/config"
	"sentiment/internal/adapter/store"
	"sentiment/internal/usecase"
)

var (
	vocabTop   int
	vocabTerms []string
	vocabJSON  bool
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Show term frequencies from the index",
	Long: `Show corpus statistics and the most frequent terms of an index built with
'sentok index', or the frequency of specific terms.

Examples:
  sentok vocab --top 50
  sentok vocab -t good -t bad --json`,
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.Flags().IntVarP(&vocabTop, "top", "n", 0, "number of terms (default from config)")
	vocabCmd.Flags().StringArrayVarP(&vocabTerms, "term", "t", nil, "look up a single term (repeatable)")
	vocabCmd.Flags().BoolVar(&vocabJSON, "json", false, "output as JSON")
}

func runVocab(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	dbPath := config.IndexDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no index found. Run 'sentok index' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer st.Close()

	uc := usecase.NewVocabUseCase(st)
	out := cmd.OutOrStdout()

	if len(vocabTerms) > 0 {
		counts, err := uc.Lookup(vocabTerms)
		if err != nil {
			return err
		}
		if vocabJSON {
			return writeJSON(out, counts)
		}
		for _, c := range counts {
			fmt.Fprintf(out, "%-24s %d\n", c.Term, c.Count)
		}
		return nil
	}

	topN := cfg.Vocab.TopN
	if vocabTop > 0 {
		topN = vocabTop
	}

	report, err := uc.Report(topN)
	if err != nil {
		return err
	}

	if vocabJSON {
		return writeJSON(out, report)
	}

	fmt.Fprintf(out, "Documents: %d  Tokens: %d  Unique terms: %d\n\n",
		report.Stats.TotalDocs, report.Stats.TotalTokens, report.Stats.UniqueTerms)
	if len(report.Top) == 0 {
		fmt.Fprintln(out, "No terms indexed.")
		return nil
	}
	for i, c := range report.Top {
		fmt.Fprintf(out, "%4d. %-24s %d\n", i+1, c.Term, c.Count)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
