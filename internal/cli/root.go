package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"sentiment/config"
	"sentiment/internal/adapter/analyzer"
	"sentiment/internal/adapter/fs"
	"sentiment/internal/logging"
)

var (
	cfgFile  string
	cfg      *config.Config
	rootDir  string
	logLevel string
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sentok",
	Short: "Sentiment tokenizer - split text into lexicon-ready word tokens",
	Long: `sentok splits text into whitespace-delimited word tokens for lexicon-based
analysis such as sentiment scoring. Tokens shorter than two characters are
dropped, and punctuation at the edges of words can optionally be stripped.

Example usage:
  sentok tokenize review.txt        # One token per line
  echo "Great, isn't it?" | sentok tokenize --keep
  sentok index ./reviews            # Build a term-frequency vocabulary
  sentok vocab --top 20             # Show the most frequent terms`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger = logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
		logger.Debug("config loaded", "mode", cfg.Tokenize.Mode, "encoding", cfg.Tokenize.Encoding)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sentok.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: warn, info, debug, trace")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

// newTokenizer builds the tokenizer selected by the config.
func newTokenizer(c *config.Config) (*analyzer.Tokenizer, error) {
	mode, err := analyzer.ParseMode(c.Tokenize.Mode)
	if err != nil {
		return nil, err
	}
	return analyzer.NewTokenizer(mode), nil
}

// newDecoder builds the input decoder selected by the config.
func newDecoder(c *config.Config) (*fs.Decoder, error) {
	return fs.NewDecoder(c.Tokenize.Encoding)
}
