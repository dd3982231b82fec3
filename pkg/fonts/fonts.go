// Package fonts provides the font faces used to draw sticker glyphs.
//
// The default face draws emoji from an embedded monochrome EmojiOne font and
// everything else from Go Regular, which ships with golang.org/x/image. Both
// are compiled into the binary, so no files are needed on disk. Runes neither
// font maps are skipped rather than drawn as a missing-glyph box. [LoadFile]
// swaps in a TTF/OTF from disk, which still falls back to the default face
// for runes it lacks.
package fonts

import (
	_ "embed"
	"image"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/sketchpad/pkg/errors"
)

// GlyphSize is the pixel size sticker glyphs are drawn at on an unscaled surface.
const GlyphSize = 50.0

// EmojiOne by Adobe, https://github.com/adobe-fonts/emojione-color, with the
// color SVG table removed. Artwork licensed CC-BY 4.0 by EmojiOne.
//
//go:embed emojione.otf
var emojiOneOTF []byte

// Parsed embedded fonts (computed once on first access).
var (
	goRegular, emojiOne *opentype.Font
	parseErr            error
	parseOnce           sync.Once
)

func embedded() (text, emoji *opentype.Font, err error) {
	parseOnce.Do(func() {
		if goRegular, parseErr = opentype.Parse(goregular.TTF); parseErr != nil {
			return
		}
		emojiOne, parseErr = opentype.Parse(emojiOneOTF)
	})
	if parseErr != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, parseErr, "parse embedded font")
	}
	return goRegular, emojiOne, nil
}

// Default returns the emoji face with Go Regular fallback at the given pixel size.
func Default(size float64) (font.Face, error) {
	text, emoji, err := embedded()
	if err != nil {
		return nil, err
	}
	return chain(size, emoji, text)
}

// Load parses TTF or OTF data and returns a face at the given pixel size.
// Runes the font does not map fall back to the default face.
func Load(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse font")
	}
	text, emoji, err := embedded()
	if err != nil {
		return nil, err
	}
	return chain(size, f, emoji, text)
}

// LoadFile reads a font file from disk. An empty path returns the default face.
func LoadFile(path string, size float64) (font.Face, error) {
	if path == "" {
		return Default(size)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "font %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read font %s", path)
	}
	return Load(data, size)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	// DPI 72 makes Size a pixel size, matching the "50px" the stickers use.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create font face")
	}
	return face, nil
}

func chain(size float64, fonts ...*opentype.Font) (font.Face, error) {
	c := &fallbackFace{}
	for _, f := range fonts {
		face, err := newFace(f, size)
		if err != nil {
			return nil, err
		}
		c.fonts = append(c.fonts, f)
		c.faces = append(c.faces, face)
	}
	return c, nil
}

// fallbackFace draws each rune with the first font that maps it.
type fallbackFace struct {
	fonts []*sfnt.Font
	faces []font.Face
	buf   sfnt.Buffer
}

func (f *fallbackFace) pick(r rune) font.Face {
	for i, fnt := range f.fonts {
		if idx, err := fnt.GlyphIndex(&f.buf, r); err == nil && idx != 0 {
			return f.faces[i]
		}
	}
	return nil
}

func (f *fallbackFace) Close() error {
	for _, face := range f.faces {
		face.Close()
	}
	return nil
}

func (f *fallbackFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	face := f.pick(r)
	if face == nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	return face.Glyph(dot, r)
}

func (f *fallbackFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	face := f.pick(r)
	if face == nil {
		return fixed.Rectangle26_6{}, 0, false
	}
	return face.GlyphBounds(r)
}

func (f *fallbackFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	face := f.pick(r)
	if face == nil {
		return 0, false
	}
	return face.GlyphAdvance(r)
}

func (f *fallbackFace) Kern(r0, r1 rune) fixed.Int26_6 {
	face := f.pick(r0)
	if face == nil || face != f.pick(r1) {
		return 0
	}
	return face.Kern(r0, r1)
}

// Metrics are those of the first font in the chain.
func (f *fallbackFace) Metrics() font.Metrics {
	return f.faces[0].Metrics()
}
