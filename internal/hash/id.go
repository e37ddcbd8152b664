package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Columns computes the xxHash64 fingerprint of a set of float64 columns.
//
// Each column is hashed as its length followed by the IEEE-754 bits of every
// value in little-endian order, so {[1,2],[3]} and {[1],[2,3]} differ. NaN
// payloads and signed zeros are hashed bit-for-bit.
func Columns(cols ...[]float64) uint64 {
	d := xxhash.New()
	var buf [8]byte

	for _, col := range cols {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(col)))
		_, _ = d.Write(buf[:])

		for _, v := range col {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}

	return d.Sum64()
}
