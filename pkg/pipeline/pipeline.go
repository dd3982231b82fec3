// Package pipeline turns a display list into exported artifacts.
//
// This package is the one place the CLI, the terminal host, and the HTTP
// server go through to export a drawing, so all three share the same
// defaults, validation, and artifact cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Export(ctx, e.DisplayList(), pipeline.Options{
//	    Formats: []string{pipeline.FormatPNG, pipeline.FormatSVG},
//	    Width:   1024,
//	    Height:  1024,
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts[pipeline.FormatPNG]
//
// Artifacts are keyed by a fingerprint of the display list and the options
// that affect the encoding. A display list that has not changed since the
// last export is served from the cache.
package pipeline

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchpad/pkg/cache"
	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultBackground is the export background color.
	DefaultBackground = "#ffffff"

	// DefaultInk is the color shapes are drawn in.
	DefaultInk = "#000000"

	// BackgroundTransparent disables the background fill.
	BackgroundTransparent = "transparent"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// =============================================================================
// Options
// =============================================================================

// Options configures an export. Zero values take defaults.
type Options struct {
	Formats      []string `json:"formats,omitempty"`
	SourceWidth  int      `json:"source_width,omitempty"`
	SourceHeight int      `json:"source_height,omitempty"`
	Width        int      `json:"width,omitempty"`
	Height       int      `json:"height,omitempty"`
	Background   string   `json:"background,omitempty"` // "#rrggbb" or "transparent"
	Ink          string   `json:"ink,omitempty"`        // "#rrggbb"
	Font         string   `json:"font,omitempty"`       // TTF/OTF path for stickers
	Refresh      bool     `json:"refresh,omitempty"`    // bypass cache reads

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of an export.
type Result struct {
	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Fingerprint is the content hash of the exported display list.
	Fingerprint string

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool

	Duration time.Duration
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.SourceWidth == 0 {
		o.SourceWidth = render.DefaultCanvasSize
	}
	if o.SourceHeight == 0 {
		o.SourceHeight = render.DefaultCanvasSize
	}
	if o.Width == 0 {
		o.Width = render.DefaultExportSize
	}
	if o.Height == 0 {
		o.Height = render.DefaultExportSize
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Ink == "" {
		o.Ink = DefaultInk
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidateSize(o.SourceWidth, o.SourceHeight); err != nil {
		return err
	}
	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if _, err := ParseColor(o.Background); err != nil {
		return err
	}
	_, err := ParseColor(o.Ink)
	return err
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ExportKeyOpts {
	return cache.ExportKeyOpts{
		Format:       format,
		SourceWidth:  o.SourceWidth,
		SourceHeight: o.SourceHeight,
		Width:        o.Width,
		Height:       o.Height,
		Background:   o.Background,
		Ink:          o.Ink,
		Font:         o.Font,
	}
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, FormatPNG, FormatSVG, FormatJSON)
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa", or "transparent".
func ParseColor(s string) (color.Color, error) {
	if strings.EqualFold(s, BackgroundTransparent) {
		return color.Transparent, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	var c color.NRGBA
	if len(hex) != 8 || !strings.HasPrefix(s, "#") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid color %q", s)
	}
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return c, nil
}
