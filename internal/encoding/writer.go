// Package encoding converts between UTF-8 and the charsets spreadsheet
// tools use. Everything internal stays UTF-8; downloads are encoded on
// the way out and uploads decoded on the way in.
package encoding

import (
	"errors"
	"fmt"
	"io"

	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var ErrUnknown = errors.New("unknown encoding")

// Name selects an output encoding.
type Name string

const (
	UTF8        Name = "utf8"
	Windows1255 Name = "windows1255"
)

// Parse maps the encoding query parameter to a Name. Empty selects
// UTF8.
func Parse(s string) (Name, error) {
	if s == "" {
		return UTF8, nil
	}

	switch n := Name(s); n {
	case UTF8, Windows1255:
		return n, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknown, s)
	}
}

// Charset returns the IANA name for Content-Type headers.
func (n Name) Charset() string {
	if n == Windows1255 {
		return "windows-1255"
	}

	return "utf-8"
}

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// NewWriter wraps w so that UTF-8 written to it reaches w in the
// requested encoding. UTF8 output starts with a BOM so spreadsheet
// apps detect the charset. Close flushes the transformer without
// closing w.
func NewWriter(w io.Writer, name Name) (io.WriteCloser, error) {
	switch name {
	case UTF8:
		if _, err := w.Write(bomUTF8); err != nil {
			return nil, fmt.Errorf("writing bom: %w", err)
		}

		return nopCloser{w}, nil
	case Windows1255:
		// Runes outside the codepage degrade to the substitution
		// byte instead of failing the whole download.
		encoder := textenc.ReplaceUnsupported(charmap.Windows1255.NewEncoder())

		return transform.NewWriter(w, encoder), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknown, string(name))
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
