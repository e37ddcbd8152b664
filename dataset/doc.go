// Package dataset reads measurement series for fitting.
//
// A Series is three equal-length columns: the independent variable X, the
// measured values Y and their one-standard-deviation uncertainties Sigma.
// Series come from whitespace- or comma-separated tables:
//
//	time (ns)   voltage (V)   uncertainty (V)
//	---------   -----------   ---------------
//	0           5.06          0.12
//	32          4.61          0.11
//	...
//
// The first two rows are treated as headers by default. Blank lines and lines
// starting with '#' are ignored anywhere in the table.
//
// # Loading
//
//	s, err := dataset.Load("RLcircuit.txt.zst")
//	if err != nil {
//	    return err
//	}
//	if err := s.Validate(); err != nil {
//	    return err
//	}
//
// Compressed tables are detected by extension (.zst, .s2, .lz4, .sz) or forced
// with WithCompression.
//
// # Snapshots
//
// Parsed series can be stored in a compact binary snapshot and read back
// without re-parsing text:
//
//	var buf bytes.Buffer
//	if err := s.Encode(&buf, format.CompressionZstd); err != nil {
//	    return err
//	}
//	restored, err := dataset.Decode(&buf)
//
// Snapshot layout, all integers little-endian:
//
//	offset  size  field
//	0       4     magic "EXPF"
//	4       1     version (1)
//	5       1     compression type (format.CompressionType)
//	6       2     name length
//	8       4     point count n
//	12      4     payload length
//	16      ...   name (UTF-8)
//	...     ...   payload: X, Y, Sigma as n float64 each, compressed as a whole
//	end-4   4     CRC-32 (IEEE) of everything before it
package dataset
