package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxDimension bounds canvas and export sizes. A 16k square RGBA image is
// already a gigabyte of pixels.
const MaxDimension = 16384

// ValidateSize checks that a width and height describe a usable surface.
func ValidateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidSize, "size must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidSize, "size %dx%d exceeds maximum of %d", width, height, MaxDimension)
	}
	return nil
}

// ValidateThickness checks a marker thickness.
func ValidateThickness(thickness float64) error {
	if !(thickness > 0) {
		return New(ErrCodeInvalidInput, "thickness must be positive, got %v", thickness)
	}
	return nil
}

// ValidateSymbol checks a sticker symbol supplied from outside the process
// (config files, HTTP bodies, replay scripts). The editor itself accepts any
// string; this guards the hosts against control characters and runaway input.
//
// Rules:
//   - valid UTF-8
//   - no control characters
//   - at most 32 bytes (a glyph with modifiers and joiners fits easily)
func ValidateSymbol(symbol string) error {
	if !utf8.ValidString(symbol) {
		return New(ErrCodeInvalidInput, "symbol is not valid UTF-8")
	}
	if len(symbol) > 32 {
		return New(ErrCodeInvalidInput, "symbol too long (max 32 bytes)")
	}
	for _, r := range symbol {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "symbol contains control characters")
		}
	}
	return nil
}

// ValidateFormat checks an export format name against the allowed set.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}
