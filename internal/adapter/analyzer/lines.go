package analyzer

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// Lines returns the lines of input split on CR, LF or CRLF, without the
// line-break characters. The sequence can be ranged over any number of times.
func Lines(input string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := input
		for len(rest) > 0 {
			i := strings.IndexAny(rest, "\r\n")
			if i < 0 {
				yield(rest)
				return
			}
			line := rest[:i]
			next := i + 1
			if rest[i] == '\r' && next < len(rest) && rest[next] == '\n' {
				next++
			}
			rest = rest[next:]
			if !yield(line) {
				return
			}
		}
	}
}

// lineReader reads CR, LF or CRLF terminated lines of any length from a
// stream. A trailing line break does not produce an empty final line.
type lineReader struct {
	br  *bufio.Reader
	buf []byte
	err error
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReader(r)}
}

// next returns the next line, io.EOF after the last one, or the underlying
// reader's first error unchanged. An unterminated line cut short by a read
// error is dropped.
func (lr *lineReader) next() (string, error) {
	if lr.err != nil {
		return "", lr.err
	}

	lr.buf = lr.buf[:0]
	for {
		c, err := lr.br.ReadByte()
		if err != nil {
			lr.err = err
			if err == io.EOF && len(lr.buf) > 0 {
				return string(lr.buf), nil
			}
			return "", err
		}

		switch c {
		case '\n':
			return string(lr.buf), nil
		case '\r':
			// A complete line; a failure to look past it is reported next call.
			if next, err := lr.br.Peek(1); err != nil {
				lr.err = err
			} else if next[0] == '\n' {
				_, _ = lr.br.ReadByte()
			}
			return string(lr.buf), nil
		}
		lr.buf = append(lr.buf, c)
	}
}
