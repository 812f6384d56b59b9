package cli

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sentiment/internal/logging"
	"sentiment/internal/usecase"
)

var (
	tokenizeKeep     bool
	tokenizeStrip    bool
	tokenizeJSON     bool
	tokenizeEncoding string
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file...]",
	Short: "Print the tokens of files or stdin",
	Long: `Tokenize text and print one token per line, in document order.
With no files, or with "-", standard input is read.

Examples:
  sentok tokenize notes.txt
  sentok tokenize --keep --json a.txt b.txt
  cat legacy.txt | sentok tokenize --encoding cp1252`,
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().BoolVar(&tokenizeKeep, "keep", false, "keep punctuation attached to words")
	tokenizeCmd.Flags().BoolVar(&tokenizeStrip, "strip", false, "strip punctuation at word edges")
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "output a JSON array")
	tokenizeCmd.Flags().StringVar(&tokenizeEncoding, "encoding", "", "input encoding (default from config)")
	tokenizeCmd.MarkFlagsMutuallyExclusive("keep", "strip")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	c := *GetConfig()
	switch {
	case tokenizeKeep:
		c.Tokenize.Mode = "keep"
	case tokenizeStrip:
		c.Tokenize.Mode = "strip"
	}
	if tokenizeEncoding != "" {
		c.Tokenize.Encoding = tokenizeEncoding
	}
	if err := c.Validate(); err != nil {
		return err
	}

	tokenizer, err := newTokenizer(&c)
	if err != nil {
		return err
	}
	decoder, err := newDecoder(&c)
	if err != nil {
		return err
	}

	uc := usecase.NewTokenizeUseCase(tokenizer, decoder, logger)
	stdin := decoder.Reader(cmd.InOrStdin())

	out := bufio.NewWriter(cmd.OutOrStdout())

	if tokenizeJSON {
		tokens := []string{}
		if _, err := uc.Run(args, stdin, func(tok string) {
			tokens = append(tokens, tok)
		}); err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tokens); err != nil {
			return fmt.Errorf("failed to write tokens: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("failed to write tokens: %w", err)
		}
		return nil
	}

	var writeErr error
	result, err := uc.Run(args, stdin, func(tok string) {
		if writeErr != nil {
			return
		}
		logger.Log(cmd.Context(), logging.LevelTrace, "token", "value", tok)
		_, writeErr = fmt.Fprintln(out, tok)
	})
	if err != nil {
		// Tokens read before the failure are still written.
		_ = out.Flush()
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("failed to write tokens: %w", writeErr)
	}

	logger.Debug("tokenize complete", "sources", result.Sources, "tokens", result.Tokens, "mode", tokenizer.Mode())
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write tokens: %w", err)
	}
	return nil
}
