package dataset

import "errors"

var (
	// ErrMalformedTable is returned when a measurement table cannot be parsed.
	ErrMalformedTable = errors.New("malformed table")
	// ErrBadSnapshot is returned when a binary snapshot is truncated or has an unknown layout.
	ErrBadSnapshot = errors.New("bad snapshot")
	// ErrChecksumMismatch is returned when a snapshot's CRC-32 does not match its content.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
)
