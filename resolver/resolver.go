package resolver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnparseable is returned when a stamp matches none of the known layouts.
var ErrUnparseable = errors.New("resolver: unrecognized timestamp")

// Kind identifies where a stamp came from, which decides how it is parsed.
type Kind int

const (
	// None means the placemark carries no timestamp.
	None Kind = iota
	// ISO8601 stamps come from <TimeStamp><when> or <TimeSpan><begin>.
	ISO8601
	// Composite stamps come from a TIMESTAMP data entry: a date plus a time
	// of day, read in the configured local zone.
	Composite
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case ISO8601:
		return "iso8601"
	case Composite:
		return "composite"
	default:
		return "none"
	}
}

// Stamp is the raw timestamp of one placemark.
type Stamp struct {
	Value string
	Kind  Kind
}

// IsZero reports whether the stamp carries no usable text.
func (s Stamp) IsZero() bool {
	return s.Kind == None || strings.TrimSpace(s.Value) == ""
}

// Interval is a resolved display interval. Empty strings mean "omit".
type Interval struct {
	Begin string
	End   string
}

// IsEmpty reports whether neither end is set.
func (iv Interval) IsEmpty() bool {
	return iv.Begin == "" && iv.End == ""
}

// isoLayouts are tried in order for ISO8601 stamps. Values without a zone
// are read as UTC.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// compositeLayouts are tried before isoLayouts for Composite stamps.
var compositeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
}

// Resolver turns a sequence of placemark stamps into display intervals.
type Resolver struct {
	local  *time.Location
	logger *zap.SugaredLogger
}

// Option configures the resolver
type Option func(*Resolver)

// WithLogger sets the logger used to report skipped stamps.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver that reads Composite stamps at the given
// offset from UTC.
func NewResolver(offset time.Duration, opts ...Option) *Resolver {
	r := &Resolver{
		local:  zoneFor(offset),
		logger: zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func zoneFor(offset time.Duration) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	secs := int(offset / time.Second)
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	return time.FixedZone(fmt.Sprintf("UTC%c%02d:%02d", sign, secs/3600, secs%3600/60), int(offset/time.Second))
}

// Parse converts a stamp to an instant truncated to whole seconds.
func (r *Resolver) Parse(s Stamp) (time.Time, error) {
	value := strings.TrimSpace(s.Value)

	switch s.Kind {
	case ISO8601:
		return parseLayouts(value, isoLayouts, time.UTC)
	case Composite:
		if t, err := parseLayouts(value, compositeLayouts, r.local); err == nil {
			return t, nil
		}
		return parseLayouts(value, isoLayouts, r.local)
	default:
		return time.Time{}, fmt.Errorf("%w: no timestamp", ErrUnparseable)
	}
}

func parseLayouts(value string, layouts []string, loc *time.Location) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, value)
}

// Format renders t as ISO-8601 in its own zone.
func Format(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Resolve computes the interval of stamps[i].
//
// The begin is the placemark's own stamp, re-rendered. The end is the first
// later stamp that is strictly after the begin, minus one second; stamps that
// do not advance (duplicates, out-of-order records, unparseable text) are
// skipped. An end that would not be after the begin is dropped.
func (r *Resolver) Resolve(stamps []Stamp, i int) Interval {
	if i < 0 || i >= len(stamps) || stamps[i].IsZero() {
		return Interval{}
	}

	start, err := r.Parse(stamps[i])
	if err != nil {
		r.logger.Warnw("ignoring placemark timestamp", "index", i, "value", stamps[i].Value, "error", err)
		return Interval{}
	}
	iv := Interval{Begin: Format(start)}

	for j := i + 1; j < len(stamps); j++ {
		if stamps[j].IsZero() {
			continue
		}
		candidate, err := r.Parse(stamps[j])
		if err != nil {
			r.logger.Debugw("skipping successor timestamp", "index", j, "value", stamps[j].Value, "error", err)
			continue
		}
		if !candidate.After(start) {
			continue
		}

		end := candidate.Add(-time.Second)
		if end.After(start) {
			iv.End = Format(end)
		}
		break
	}

	return iv
}

// ResolveAll resolves every stamp in order.
func (r *Resolver) ResolveAll(stamps []Stamp) []Interval {
	out := make([]Interval, len(stamps))
	for i := range stamps {
		out[i] = r.Resolve(stamps, i)
	}
	return out
}
