package analyzer

import (
	"fmt"
	"io"
	"unicode/utf16"

	"sentiment/config"
	"sentiment/internal/port"
)

// minTokenLength is the shortest token that is ever emitted, in UTF-16 code
// units: "é" has length 1, an emoji outside the BMP such as "👍" length 2.
const minTokenLength = 2

// Mode selects how a Tokenizer treats punctuation.
type Mode int

const (
	// ModeKeepPunctuation splits on whitespace only.
	ModeKeepPunctuation Mode = iota
	// ModeRemovePunctuation strips punctuation at token edges before splitting.
	ModeRemovePunctuation
)

// ParseMode maps a mode name as accepted by config.NormalizeMode ("keep",
// "strip" or its alias "remove") to a Mode.
func ParseMode(s string) (Mode, error) {
	name, err := config.NormalizeMode(s)
	if err != nil {
		return 0, err
	}
	if name == "keep" {
		return ModeKeepPunctuation, nil
	}
	return ModeRemovePunctuation, nil
}

func (m Mode) String() string {
	switch m {
	case ModeKeepPunctuation:
		return "keep"
	case ModeRemovePunctuation:
		return "strip"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Tokenizer splits text into whitespace-delimited tokens, one line at a time.
// It holds no mutable state and is safe for concurrent use.
type Tokenizer struct {
	mode Mode
}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer(mode Mode) *Tokenizer {
	return &Tokenizer{mode: mode}
}

// Mode returns the punctuation mode of the tokenizer.
func (t *Tokenizer) Mode() Mode {
	return t.mode
}

// Stream reads r line by line and passes every token to sink as soon as it is
// found. A read error stops tokenization and is returned unchanged; tokens
// already delivered stay delivered.
func (t *Tokenizer) Stream(r io.Reader, sink port.Sink) error {
	lr := newLineReader(r)
	for {
		line, err := lr.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		t.tokenizeLine(line, sink)
	}
}

// TokenizeString is Stream over an in-memory string. It never fails.
func (t *Tokenizer) TokenizeString(input string, sink port.Sink) error {
	for line := range Lines(input) {
		t.tokenizeLine(line, sink)
	}
	return nil
}

// Tokenize collects all tokens of text into a slice.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	_ = t.TokenizeString(text, func(token string) {
		tokens = append(tokens, token)
	})
	return tokens
}

func (t *Tokenizer) tokenizeLine(line string, sink port.Sink) {
	if t.mode == ModeRemovePunctuation {
		line = StripBoundaryPunctuation(line)
	}
	splitFields(line, sink)
}

// splitFields emits each maximal run of non-whitespace bytes that is at least
// minTokenLength long.
func splitFields(line string, sink port.Sink) {
	start := -1
	for i := 0; i < len(line); i++ {
		if isSpaceByte(line[i]) {
			if start >= 0 {
				emit(line[start:i], sink)
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		emit(line[start:], sink)
	}
}

func emit(token string, sink port.Sink) {
	if utf16Len(token) >= minTokenLength {
		sink(token)
	}
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

var (
	keepTokenizer  = NewTokenizer(ModeKeepPunctuation)
	stripTokenizer = NewTokenizer(ModeRemovePunctuation)
)

// TokenizeKeepingPunctuation splits input on whitespace and passes every token
// of two or more characters to sink.
func TokenizeKeepingPunctuation(input string, sink port.Sink) error {
	return keepTokenizer.TokenizeString(input, sink)
}

// TokenizeRemovingPunctuation is TokenizeKeepingPunctuation after stripping
// punctuation runs that sit at the edge of a token.
func TokenizeRemovingPunctuation(input string, sink port.Sink) error {
	return stripTokenizer.TokenizeString(input, sink)
}
