package kmlnorm

import (
	"errors"

	"github.com/tsawler/kmlnorm/source"
	"github.com/tsawler/kmlnorm/xmltree"
)

// Errors reported by Load, Process and Save. Use errors.Is to test for them.
var (
	// ErrIO means a file or archive member could not be read or written.
	ErrIO = source.ErrIO
	// ErrParse means the input is not well-formed XML.
	ErrParse = xmltree.ErrParse
	// ErrMalformedDocument means no model could be built: the kml root has
	// no Document, or NetworkLink redirects loop.
	ErrMalformedDocument = source.ErrMalformedDocument
	// ErrNotLoaded is returned when processing a handle whose load failed.
	ErrNotLoaded = errors.New("kmlnorm: no document loaded")
	// ErrInvalidConfig means an option supplied an unusable configuration.
	ErrInvalidConfig = errors.New("kmlnorm: invalid configuration")
)

// ErrorCode classifies the most recent failure of a Handle.
type ErrorCode int16

const (
	CodeNone ErrorCode = iota
	CodeIO
	CodeParse
	CodeMalformed
	CodeNotLoaded
	CodeConfig
)

func (c ErrorCode) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeIO:
		return "io"
	case CodeParse:
		return "parse"
	case CodeMalformed:
		return "malformed document"
	case CodeNotLoaded:
		return "not loaded"
	case CodeConfig:
		return "invalid config"
	default:
		return "unknown"
	}
}

// codeOf maps an error to its code. ErrNotLoaded is checked first since it
// wraps the load failure.
func codeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return CodeNone
	case errors.Is(err, ErrNotLoaded):
		return CodeNotLoaded
	case errors.Is(err, ErrInvalidConfig):
		return CodeConfig
	case errors.Is(err, ErrParse):
		return CodeParse
	case errors.Is(err, ErrMalformedDocument):
		return CodeMalformed
	default:
		return CodeIO
	}
}
