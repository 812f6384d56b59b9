package fs

import (
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"sentiment/config"
)

// Decoder turns a byte stream in a configured character encoding into UTF-8.
type Decoder struct {
	name string
	enc  encoding.Encoding
}

// NewDecoder returns a Decoder for any name config.NormalizeEncoding accepts.
// A leading UTF-8 BOM is always dropped.
func NewDecoder(name string) (*Decoder, error) {
	name, err := config.NormalizeEncoding(name)
	if err != nil {
		return nil, err
	}

	var enc encoding.Encoding
	switch name {
	case "latin1":
		enc = charmap.ISO8859_1
	case "cp1252":
		enc = charmap.Windows1252
	case "cp437":
		enc = charmap.CodePage437
	default:
		enc = unicode.UTF8BOM
	}

	return &Decoder{name: name, enc: enc}, nil
}

// Name returns the canonical name of the encoding.
func (d *Decoder) Name() string {
	return d.name
}

// Reader wraps r so that reads yield UTF-8 text. Errors from r pass through
// unchanged.
func (d *Decoder) Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, d.enc.NewDecoder())
}

// Open opens path and decodes it as it is read.
func (d *Decoder) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &decodedFile{Reader: d.Reader(f), f: f}, nil
}

type decodedFile struct {
	io.Reader
	f *os.File
}

func (d *decodedFile) Close() error {
	return d.f.Close()
}
