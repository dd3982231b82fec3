// Package sink encodes a display list into output formats.
//
// # Overview
//
// A "sink" renders a display list onto a fresh surface sized for the output
// and encodes the result. This package provides:
//
//   - PNG: raster export through [surface.Raster] (fogleman/gg)
//   - SVG: vector export from the operations a [surface.Recorder] captures
//   - JSON: the display list as data, for HTTP clients and debugging
//
// # Scaling
//
// Every sink takes the size of the canvas the shapes were drawn on
// ([WithSourceSize]) and the size of the output ([WithTargetSize]). Shapes are
// painted under a uniform scale of min(target/source) on each axis, so an
// export of a 256x256 canvas at 1024x1024 is the same picture at four times
// the resolution, strokes and stickers included.
//
//	png, err := sink.RenderPNG(list,
//	    sink.WithSourceSize(256, 256),
//	    sink.WithTargetSize(1024, 1024),
//	)
//
// Rendering never touches editor state; a sink only reads the drawables it
// is given. Callers that share drawables with a live editor must serialize
// access themselves.
package sink
