//go:build !gozstd || !cgo

package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompressor_FrameChecksum(t *testing.T) {
	codec := NewZstdCompressor()
	data := bytes.Repeat([]byte("t V dV\n0 5.166 0.134\n"), 64)

	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	// Frame_Header_Descriptor follows the 4-byte magic; bit 2 is Content_Checksum_flag.
	require.Greater(t, len(compressed), 5)
	assert.NotZero(t, compressed[4]&0x04)

	// The checksum is the last 4 bytes of the frame.
	tampered := append([]byte(nil), compressed...)
	tampered[len(tampered)-1] ^= 0xff
	_, err = codec.Decompress(tampered)
	require.Error(t, err)
}
