// Package format provides KML/KMZ file format detection.
package format

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// KML indicates a plain KML document.
	KML
	// KMZ indicates a zip archive wrapping a KML document.
	KMZ
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case KML:
		return "KML"
	case KMZ:
		return "KMZ"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case KML:
		return ".kml"
	case KMZ:
		return ".kmz"
	default:
		return ""
	}
}

// Detect determines file format from filename extension, ignoring case.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".kml":
		return KML
	case ".kmz":
		return KMZ
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// Any zip archive is reported as KMZ; use DetectFromReader to confirm that
// the archive actually carries a KML member.
func DetectFromMagic(data []byte) Format {
	if isZIPMagic(data) {
		return KMZ
	}
	if detectKMLMagic(data) {
		return KML
	}
	return Unknown
}

func isZIPMagic(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// detectKMLMagic checks if the data looks like the start of a KML document.
func detectKMLMagic(data []byte) bool {
	// Skip a UTF-8 byte-order mark and leading whitespace
	if len(data) >= 3 && data[0] == 0xef && data[1] == 0xbb && data[2] == 0xbf {
		data = data[3:]
	}
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' || data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return false
	}
	data = data[start:]

	lower := strings.ToLower(string(data[:min(512, len(data))]))
	if strings.HasPrefix(lower, "<kml") {
		return true
	}
	// XML declaration followed by a kml root element
	return strings.HasPrefix(lower, "<?xml") && strings.Contains(lower, "<kml")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// DetectFromReader inspects the content to determine format. Unlike
// DetectFromMagic it only reports KMZ for archives holding a .kml member.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if isZIPMagic(magic) {
		return detectZIPFormat(r, size)
	}
	if detectKMLMagic(magic) {
		return KML, nil
	}
	return Unknown, nil
}

// detectZIPFormat reports KMZ when the archive holds at least one .kml file.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if Detect(f.Name) == KML {
			return KMZ, nil
		}
	}
	return Unknown, nil
}
