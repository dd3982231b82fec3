package sink

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/matzehuels/sketchpad/pkg/cache"
	"github.com/matzehuels/sketchpad/pkg/shape"
)

// Fingerprint returns a content hash of list. Two display lists with the same
// drawables in the same state and order have the same fingerprint, whatever
// their IDs. Floats are hashed by bit pattern, so NaN coordinates still hash
// distinctly.
func Fingerprint(list []shape.Drawable) string {
	var buf bytes.Buffer
	num := func(v float64) {
		buf.Write(binary.BigEndian.AppendUint64(nil, math.Float64bits(v)))
	}
	str := func(s string) {
		buf.Write(binary.BigEndian.AppendUint32(nil, uint32(len(s))))
		buf.WriteString(s)
	}

	for _, d := range list {
		str(string(d.Kind()))
		switch d := d.(type) {
		case *shape.Stroke:
			num(d.Thickness())
			pts := d.Points()
			buf.Write(binary.BigEndian.AppendUint32(nil, uint32(len(pts))))
			for _, p := range pts {
				num(p.X)
				num(p.Y)
			}
		case *shape.Sticker:
			pos := d.Position()
			num(pos.X)
			num(pos.Y)
			str(d.Symbol())
			num(d.BaseRotation())
			num(d.Rotation())
		}
	}
	return cache.Hash(buf.Bytes())
}
