// Package cache stores rendered export artifacts.
//
// Exports are pure functions of a display list and the export options, so
// the HTTP host keys encoded PNG and SVG bytes by a fingerprint of the list
// plus the options and serves repeats from the cache.
//
// # Backends
//
//   - [FileCache]: entries as JSON files under a directory, with expiry
//   - [MemoryCache]: an in-process map, bounded by entry count
//   - [NullCache]: stores nothing, for disabling the cache
//
// # Keys
//
// A [Keyer] builds keys. [NewScopedKeyer] prefixes every key, which the server
// uses to give each session its own namespace so deleting a session can drop
// its artifacts.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with optional per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ExportKeyOpts are the export parameters that change the encoded output.
type ExportKeyOpts struct {
	Format       string `json:"format"`
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Background   string `json:"background,omitempty"`
	Ink          string `json:"ink,omitempty"`
	Font         string `json:"font,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ExportKey keys an artifact by display-list fingerprint and options.
	ExportKey(fingerprint string, opts ExportKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer with no prefix.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ExportKey returns "export:<format>:<hash>".
func (DefaultKeyer) ExportKey(fingerprint string, opts ExportKeyOpts) string {
	return hashKey(fmt.Sprintf("export:%s", opts.Format), fingerprint, opts)
}

// TTLArtifact is how long exported artifacts are kept.
const TTLArtifact = 24 * time.Hour
