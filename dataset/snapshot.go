package dataset

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/arloliu/expfit/compress"
	"github.com/arloliu/expfit/format"
	"github.com/arloliu/expfit/internal/pool"
)

// SnapshotExtension is the conventional file extension for series snapshots.
const SnapshotExtension = ".expf"

const (
	snapshotMagic      = "EXPF"
	snapshotVersion    = 1
	snapshotHeaderSize = 16
	snapshotTrailer    = 4 // CRC-32
	maxNameLength      = math.MaxUint16
)

var engine = binary.LittleEndian

// snapshotHeader is the fixed-size section at the start of a snapshot.
type snapshotHeader struct {
	Version     uint8
	Compression format.CompressionType
	NameLength  uint16
	PointCount  uint32
	PayloadSize uint32
}

func (h snapshotHeader) appendTo(b []byte) []byte {
	b = append(b, snapshotMagic...)
	b = append(b, h.Version, uint8(h.Compression))
	b = engine.AppendUint16(b, h.NameLength)
	b = engine.AppendUint32(b, h.PointCount)
	b = engine.AppendUint32(b, h.PayloadSize)

	return b
}

func parseSnapshotHeader(data []byte) (snapshotHeader, error) {
	if len(data) < snapshotHeaderSize+snapshotTrailer {
		return snapshotHeader{}, fmt.Errorf("%w: %d bytes is shorter than the minimum snapshot", ErrBadSnapshot, len(data))
	}
	if string(data[0:4]) != snapshotMagic {
		return snapshotHeader{}, fmt.Errorf("%w: bad magic %q", ErrBadSnapshot, data[0:4])
	}

	h := snapshotHeader{
		Version:     data[4],
		Compression: format.CompressionType(data[5]),
		NameLength:  engine.Uint16(data[6:8]),
		PointCount:  engine.Uint32(data[8:12]),
		PayloadSize: engine.Uint32(data[12:16]),
	}
	if h.Version != snapshotVersion {
		return snapshotHeader{}, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, h.Version)
	}

	return h, nil
}

// MarshalBinary encodes the series as an uncompressed snapshot.
func (s Series) MarshalBinary() ([]byte, error) {
	return s.AppendSnapshot(nil, format.CompressionNone)
}

// AppendSnapshot appends the snapshot encoding of the series to dst.
//
// Parameters:
//   - dst: Destination buffer (may be nil)
//   - ct: Compression applied to the column payload
//
// Returns:
//   - []byte: dst extended with the snapshot
//   - error: Mismatched columns, an over-long name, or a compression error
func (s Series) AppendSnapshot(dst []byte, ct format.CompressionType) ([]byte, error) {
	dst, _, err := s.appendSnapshot(dst, ct)

	return dst, err
}

func (s Series) appendSnapshot(dst []byte, ct format.CompressionType) ([]byte, compress.Stats, error) {
	n := s.Len()
	if n < 0 {
		return nil, compress.Stats{}, fmt.Errorf("cannot snapshot series %q: mismatched columns x=%d y=%d sigma=%d",
			s.Name, len(s.X), len(s.Y), len(s.Sigma))
	}
	if len(s.Name) > maxNameLength {
		return nil, compress.Stats{}, fmt.Errorf("cannot snapshot series: name is %d bytes, limit %d", len(s.Name), maxNameLength)
	}
	if uint64(n)*3*8 > math.MaxUint32 {
		return nil, compress.Stats{}, fmt.Errorf("cannot snapshot series %q: %d points exceed the snapshot limit", s.Name, n)
	}

	if _, err := compress.GetCodec(ct); err != nil {
		return nil, compress.Stats{}, fmt.Errorf("cannot snapshot series %q: %w", s.Name, err)
	}

	raw := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(raw)

	cols := raw.ExtendOrGrow(n * 3 * 8)
	for c, col := range [][]float64{s.X, s.Y, s.Sigma} {
		base := c * n * 8
		for i, v := range col {
			engine.PutUint64(cols[base+i*8:], math.Float64bits(v))
		}
	}

	payload, stats, err := compress.CompressWithStats(ct, raw.Bytes())
	if err != nil {
		return nil, compress.Stats{}, fmt.Errorf("cannot snapshot series %q: %w", s.Name, err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, compress.Stats{}, fmt.Errorf("cannot snapshot series %q: compressed payload exceeds the snapshot limit", s.Name)
	}

	start := len(dst)
	h := snapshotHeader{
		Version:     snapshotVersion,
		Compression: ct,
		NameLength:  uint16(len(s.Name)),
		PointCount:  uint32(n),
		PayloadSize: uint32(len(payload)),
	}
	dst = h.appendTo(dst)
	dst = append(dst, s.Name...)
	dst = append(dst, payload...)
	dst = engine.AppendUint32(dst, crc32.ChecksumIEEE(dst[start:]))

	return dst, stats, nil
}

// UnmarshalBinary decodes a snapshot produced by MarshalBinary, AppendSnapshot or Encode.
//
// The decoded columns never alias data.
func (s *Series) UnmarshalBinary(data []byte) error {
	h, err := parseSnapshotHeader(data)
	if err != nil {
		return err
	}

	size := snapshotHeaderSize + int(h.NameLength) + int(h.PayloadSize) + snapshotTrailer
	if len(data) != size {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrBadSnapshot, size, len(data))
	}

	body := data[:size-snapshotTrailer]
	if want, got := engine.Uint32(data[size-snapshotTrailer:]), crc32.ChecksumIEEE(body); want != got {
		return fmt.Errorf("%w: stored %08x, computed %08x", ErrChecksumMismatch, want, got)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}

	nameEnd := snapshotHeaderSize + int(h.NameLength)
	cols, err := codec.Decompress(body[nameEnd:])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadSnapshot, err)
	}

	n := int(h.PointCount)
	if len(cols) != n*3*8 {
		return fmt.Errorf("%w: payload holds %d bytes, %d points need %d", ErrBadSnapshot, len(cols), n, n*3*8)
	}

	decoded := Series{
		Name:  string(body[snapshotHeaderSize:nameEnd]),
		X:     make([]float64, n),
		Y:     make([]float64, n),
		Sigma: make([]float64, n),
	}
	for c, col := range [][]float64{decoded.X, decoded.Y, decoded.Sigma} {
		base := c * n * 8
		for i := range col {
			col[i] = math.Float64frombits(engine.Uint64(cols[base+i*8:]))
		}
	}

	*s = decoded

	return nil
}

// Encode writes the series to w as a snapshot with the given payload compression.
func (s Series) Encode(w io.Writer, ct format.CompressionType) error {
	_, err := s.EncodeWithStats(w, ct)

	return err
}

// EncodeWithStats is Encode that also reports how much the column payload shrank.
// The stats cover the three float64 columns only, not the header or trailer.
func (s Series) EncodeWithStats(w io.Writer, ct format.CompressionType) (compress.Stats, error) {
	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	b, stats, err := s.appendSnapshot(buf.B, ct)
	if err != nil {
		return compress.Stats{}, err
	}
	buf.B = b

	if _, err := buf.WriteTo(w); err != nil {
		return compress.Stats{}, err
	}

	return stats, nil
}

// Decode reads a single snapshot from r. The whole of r is consumed.
func Decode(r io.Reader) (Series, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Series{}, err
	}

	var s Series
	if err := s.UnmarshalBinary(data); err != nil {
		return Series{}, err
	}

	return s, nil
}
