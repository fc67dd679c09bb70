package compression

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipDecompressor_Plain(t *testing.T) {
	for _, input := range []string{"", "{", `{"keys":{"n":1,"k":1}}`} {
		r, err := NewGzipDecompressor().NewReader(bytes.NewBufferString(input))
		require.NoError(t, err)

		out, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, input, string(out))
		require.NoError(t, r.Close())
	}
}

func TestGzipDecompressor_Gzip(t *testing.T) {
	original := []byte(`{"keys":{"n":1,"k":1},"1":{"base":"10","value":"42"}}`)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(original)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	r, err := NewGzipDecompressor().NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, original, out)
}

func TestGzipDecompressor_TruncatedGzip(t *testing.T) {
	_, err := NewGzipDecompressor().NewReader(bytes.NewReader([]byte{0x1f, 0x8b, 0x08}))
	assert.Error(t, err)
}
