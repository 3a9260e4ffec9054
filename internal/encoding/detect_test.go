package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rechesh-io/rechesh/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Hebrew characters should pass through unchanged.
	input := "ספק,תיאור\nבזק בינלאומי,שרתים\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("ספק,תיאור\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ספק,תיאור\n", string(got))
}

func TestNewUTF8Reader_Windows1255(t *testing.T) {
	// Windows-1255 encoded "ספק,תיאור\n".
	// Hebrew letters live at 0xE0-0xFA: ס = 0xF1, פ = 0xF4, ק = 0xF7,
	// ת = 0xFA, י = 0xE9, א = 0xE0, ו = 0xE5, ר = 0xF8.
	win1255 := []byte{
		0xF1, 0xF4, 0xF7, ',',
		0xFA, 0xE9, 0xE0, 0xE5, 0xF8, '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(win1255))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ספק,תיאור\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// UTF-16 LE with BOM, the format Excel's "Unicode Text" save uses.
	input := []byte{0xFF, 0xFE}
	for _, r := range "ספק\n" {
		input = append(input, byte(r&0xFF), byte(r>>8))
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ספק\n", string(got))
}
