package format

import (
	"fmt"
	"strings"
)

type (
	CompressionType uint8
	ReportFormat    uint8
)

const (
	CompressionNone   CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy represents Snappy block compression.

	ReportText ReportFormat = 0x1 // ReportText represents a human-readable summary.
	ReportCSV  ReportFormat = 0x2 // ReportCSV represents a per-point CSV table.
	ReportJSON ReportFormat = 0x3 // ReportJSON represents a machine-readable summary.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	default:
		return "Unknown"
	}
}

// Extension returns the conventional file extension for the compression type,
// including the leading dot, or "" for CompressionNone.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	case CompressionSnappy:
		return ".sz"
	default:
		return ""
	}
}

// ParseCompression parses a case-insensitive compression name such as "zstd" or "none".
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy", "sz":
		return CompressionSnappy, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

func (f ReportFormat) String() string {
	switch f {
	case ReportText:
		return "Text"
	case ReportCSV:
		return "CSV"
	case ReportJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// ParseReportFormat parses a case-insensitive report format name such as "csv".
func ParseReportFormat(name string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return ReportText, nil
	case "csv":
		return ReportCSV, nil
	case "json":
		return ReportJSON, nil
	default:
		return 0, fmt.Errorf("unknown report format: %q", name)
	}
}
