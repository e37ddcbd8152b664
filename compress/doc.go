// Package compress provides compression codecs for measurement tables, series
// snapshots and fit reports.
//
// Compression is optional everywhere in expfit. Inputs are decompressed transparently
// when their extension says so, and outputs are compressed when requested:
//
//   - None: No compression
//   - Zstd: Best ratio, the default for archived snapshots
//   - S2: Fast, good ratio
//   - LZ4: Fastest decompression (block format)
//   - Snappy: Snappy block format, for tables produced by snappy-aware tools
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Usage
//
//	codec, err := compress.GetCodec(compress.FromExtension("decay.txt.zst"))
//	if err != nil {
//	    return err
//	}
//	table, err := codec.Decompress(raw)
//
// # Zstd Implementations
//
// Zstd is backed by github.com/klauspost/compress/zstd with pooled encoders and
// decoders. Building with the gozstd tag switches to the cgo binding
// github.com/valyala/gozstd instead.
//
// # Thread Safety
//
// All codec implementations are stateless values and safe for concurrent use.
package compress
