package compression

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Decompressor unwraps a possibly compressed stream.
type Decompressor interface {
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// GzipDecompressor passes plain input through untouched and inflates
// input that starts with the gzip magic number.
type GzipDecompressor struct{}

func NewGzipDecompressor() *GzipDecompressor {
	return &GzipDecompressor{}
}

// NewReader sniffs the first bytes of r without consuming them.
func (g *GzipDecompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !bytes.Equal(head, gzipMagic) {
		return io.NopCloser(br), nil
	}

	return gzip.NewReader(br)
}
