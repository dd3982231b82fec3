package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchpad/pkg/cache"
	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/fonts"
	"github.com/matzehuels/sketchpad/pkg/observability"
	"github.com/matzehuels/sketchpad/pkg/render/sink"
	"github.com/matzehuels/sketchpad/pkg/shape"
)

// Runner exports display lists with caching.
// Both CLI and server use it so they share the same caching logic.
//
// The Runner holds no per-export state. Multiple goroutines can use the same
// Runner as long as each passes a display list nobody is mutating.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// WithKeyer returns a copy of r that builds keys with k.
func (r *Runner) WithKeyer(k cache.Keyer) *Runner {
	cp := *r
	cp.Keyer = k
	return &cp
}

// Export encodes list in every requested format.
func (r *Runner) Export(ctx context.Context, list []shape.Drawable, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	result := &Result{
		Artifacts:   make(map[string][]byte, len(opts.Formats)),
		Fingerprint: sink.Fingerprint(list),
		CacheHit:    true,
	}

	for _, format := range opts.Formats {
		key := r.Keyer.ExportKey(result.Fingerprint, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, format)
				result.Artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, format)
		}
		result.CacheHit = false

		data, err := Encode(list, format, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, format, len(data))
		}
	}

	result.Duration = time.Since(start)
	r.Logger.Debug("exported drawing",
		"shapes", len(list),
		"formats", opts.Formats,
		"cached", result.CacheHit,
		"duration", result.Duration)

	return result, nil
}

// Encode renders list in one format without touching any cache. opts must
// already be validated.
func Encode(list []shape.Drawable, format string, opts Options) ([]byte, error) {
	bg, err := ParseColor(opts.Background)
	if err != nil {
		return nil, err
	}
	ink, err := ParseColor(opts.Ink)
	if err != nil {
		return nil, err
	}
	sinkOpts := []sink.Option{
		sink.WithSourceSize(opts.SourceWidth, opts.SourceHeight),
		sink.WithTargetSize(opts.Width, opts.Height),
		sink.WithBackground(bg),
		sink.WithInk(ink),
	}
	if opts.Font != "" && format == FormatPNG {
		face, err := fonts.LoadFile(opts.Font, fonts.GlyphSize)
		if err != nil {
			return nil, err
		}
		sinkOpts = append(sinkOpts, sink.WithFontFace(face))
	}
	switch format {
	case FormatPNG:
		return sink.RenderPNG(list, sinkOpts...)
	case FormatSVG:
		return sink.RenderSVG(list, sinkOpts...)
	case FormatJSON:
		return sink.RenderJSON(list, sinkOpts...)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "format %q", format)
	}
}
