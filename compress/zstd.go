package compress

// ZstdCompressor provides Zstandard compression.
//
// Zstd gives the best ratio of the built-in codecs and is the natural choice for
// archived series snapshots and reports that are kept around.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
