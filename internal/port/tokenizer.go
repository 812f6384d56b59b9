package port

import "io"

// Sink receives tokens one at a time, in document order.
type Sink func(token string)

type Tokenizer interface {
	Stream(r io.Reader, sink Sink) error
}
