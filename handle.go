package kmlnorm

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tsawler/kmlnorm/format"
	"github.com/tsawler/kmlnorm/kmz"
	"github.com/tsawler/kmlnorm/resolver"
	"github.com/tsawler/kmlnorm/source"
	"github.com/tsawler/kmlnorm/target"
)

// Handle is a loaded input document. The parsed model is never modified,
// so a Handle may be processed any number of times, from several goroutines
// at once.
type Handle struct {
	path     string
	settings settings

	// file is nil when the load failed
	file *source.File

	mu  sync.RWMutex
	err error
}

// Path returns the path the handle was loaded from.
func (h *Handle) Path() string {
	return h.path
}

// IsValid reports whether a document was loaded.
func (h *Handle) IsValid() bool {
	return h.file != nil
}

// Err returns the most recent failure, or nil.
func (h *Handle) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// ErrorState classifies the most recent failure. It is CodeNone after a
// successful load, and stays that way until an operation fails.
func (h *Handle) ErrorState() ErrorCode {
	return codeOf(h.Err())
}

// Process writes the normalized document to output, reading TIMESTAMP
// entries at the configured zone offset. An output path ending in .kmz (in
// any case) produces an archive.
func (h *Handle) Process(output string) error {
	return h.ProcessWithOffset(output, h.settings.cfg.Offset())
}

// ProcessWithOffset is Process with an explicit zone offset. The offset only
// affects TIMESTAMP entries; TimeStamp elements carry their own zone.
//
// Example:
//
//	err := h.ProcessWithOffset("out.kmz", 2*time.Hour)
func (h *Handle) ProcessWithOffset(output string, offset time.Duration) error {
	if err := h.ready(); err != nil {
		return err
	}

	logger := h.settings.logger
	r := resolver.NewResolver(offset, resolver.WithLogger(logger))
	b := target.NewBuilder(r,
		target.WithDefaults(target.DefaultsFrom(h.settings.cfg)),
		target.WithLogger(logger),
	)

	data, err := b.Build(h.file).Marshal()
	if err != nil {
		return h.fail(fmt.Errorf("%w: encoding output: %w", ErrIO, err))
	}
	if err := h.write(output, data); err != nil {
		return h.fail(err)
	}

	logger.Debugw("wrote normalized document", "input", h.path, "output", output, "offset", offset)
	return nil
}

// Save writes the loaded document back out as parsed, without normalizing
// it. Elements the model does not understand are not preserved.
func (h *Handle) Save(output string) error {
	if err := h.ready(); err != nil {
		return err
	}

	data, err := h.file.Marshal()
	if err != nil {
		return h.fail(fmt.Errorf("%w: encoding output: %w", ErrIO, err))
	}
	if err := h.write(output, data); err != nil {
		return h.fail(err)
	}
	return nil
}

func (h *Handle) ready() error {
	if h.file != nil {
		return nil
	}
	cause := h.Err()
	switch {
	case cause == nil:
		return h.fail(ErrNotLoaded)
	case errors.Is(cause, ErrNotLoaded):
		return cause
	default:
		return h.fail(fmt.Errorf("%w: %w", ErrNotLoaded, cause))
	}
}

func (h *Handle) fail(err error) error {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
	return err
}

func (h *Handle) write(output string, data []byte) error {
	cfg := h.settings.cfg
	if format.Detect(output) == format.KMZ {
		if err := kmz.Write(output, cfg.InnerDocument, data, cfg.CompressionLevel); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
		return nil
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
