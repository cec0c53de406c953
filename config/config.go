// Package config holds the tunable defaults used when loading and
// normalizing KML documents.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-yaml"
)

// Config carries every knob the loader and the transform read.
type Config struct {
	// InnerDocument is the KML member read from (and written to) KMZ archives.
	InnerDocument string `yaml:"inner_document"`
	// DefaultFolderName names the folder synthesized for placemarks that sit
	// directly under a Document.
	DefaultFolderName string `yaml:"default_folder_name"`
	// DefaultLineColor is the aabbggrr color of synthesized line styles.
	DefaultLineColor string `yaml:"default_line_color"`
	DefaultLineWidth int    `yaml:"default_line_width"`
	DefaultFill      string `yaml:"default_fill"`
	// TimezoneOffset is applied to timestamps that carry no zone.
	TimezoneOffset Duration `yaml:"timezone_offset"`
	// MaxRedirects bounds how many NetworkLink hops a single load follows.
	MaxRedirects     int `yaml:"max_redirects"`
	CompressionLevel int `yaml:"compression_level"`
}

// Duration is a time.Duration that reads and writes as "1h30m" in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (d *Duration) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

var kmlColor = regexp.MustCompile(`^[0-9a-fA-F]{8}$`)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InnerDocument:     "doc.kml",
		DefaultFolderName: "Data",
		DefaultLineColor:  "ff0000ff",
		DefaultLineWidth:  1,
		DefaultFill:       "0",
		MaxRedirects:      8,
		CompressionLevel:  9,
	}
}

// Validate checks the configuration for values the transform cannot use.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.InnerDocument, validation.Required),
		validation.Field(&c.DefaultLineColor, validation.Required, validation.Match(kmlColor)),
		validation.Field(&c.DefaultLineWidth, validation.Min(0)),
		validation.Field(&c.MaxRedirects, validation.Min(0), validation.Max(64)),
		validation.Field(&c.CompressionLevel, validation.Min(-1), validation.Max(9)),
		validation.Field(&c.TimezoneOffset, validation.By(func(value any) error {
			d := time.Duration(value.(Duration))
			if d <= -24*time.Hour || d >= 24*time.Hour {
				return fmt.Errorf("must be within ±24h, got %s", d)
			}
			return nil
		})),
	)
}

// Offset returns the timezone offset as a time.Duration.
func (c Config) Offset() time.Duration {
	return time.Duration(c.TimezoneOffset)
}

// Parse decodes YAML on top of the defaults and validates the result. Keys
// that are absent keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}
