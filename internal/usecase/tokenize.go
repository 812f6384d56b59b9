package usecase

import (
	"fmt"
	"io"
	"log/slog"

	"sentiment/internal/port"
)

// StdinSource names standard input in a source list.
const StdinSource = "-"

// TokenizeUseCase streams the tokens of one or more sources to a sink.
type TokenizeUseCase struct {
	tokenizer port.Tokenizer
	opener    port.FileOpener
	logger    *slog.Logger
}

// NewTokenizeUseCase creates a new tokenize use case.
func NewTokenizeUseCase(tokenizer port.Tokenizer, opener port.FileOpener, logger *slog.Logger) *TokenizeUseCase {
	return &TokenizeUseCase{
		tokenizer: tokenizer,
		opener:    opener,
		logger:    logger,
	}
}

// TokenizeResult counts what a Run delivered.
type TokenizeResult struct {
	Sources int
	Tokens  int
}

// Run tokenizes each source in order. StdinSource, or an empty list, reads
// stdin. The first read failure stops the run; tokens already passed to sink
// are not retracted.
func (u *TokenizeUseCase) Run(sources []string, stdin io.Reader, sink port.Sink) (*TokenizeResult, error) {
	if len(sources) == 0 {
		sources = []string{StdinSource}
	}

	result := &TokenizeResult{}
	counting := func(token string) {
		result.Tokens++
		sink(token)
	}

	for _, src := range sources {
		before := result.Tokens
		if err := u.runOne(src, stdin, counting); err != nil {
			return result, err
		}
		result.Sources++
		u.logger.Debug("tokenized source", "source", src, "tokens", result.Tokens-before)
	}

	return result, nil
}

func (u *TokenizeUseCase) runOne(src string, stdin io.Reader, sink port.Sink) error {
	if src == StdinSource {
		if err := u.tokenizer.Stream(stdin, sink); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return nil
	}

	rc, err := u.opener.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer rc.Close()

	if err := u.tokenizer.Stream(rc, sink); err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	return nil
}
