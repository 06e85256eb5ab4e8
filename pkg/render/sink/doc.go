// Package sink provides concrete [render.Renderer] implementations.
//
// # Overview
//
// A "sink" receives page drawing calls and writes a finished document on
// Save. This package provides:
//
//   - PDF: the print document, written with go-pdf/fpdf
//   - PNG: one raster proof per page, for quick visual checks
//   - JSON: a draw log of every call, for debugging and tests
//
// Pick a sink by name with [New], or infer the name from an output path with
// [FormatFromPath]:
//
//	format, err := sink.FormatFromPath("deck.pdf")
//	r, err := sink.New(format, sink.Options{Title: "Deck", RunID: id})
//
// # PDF Output
//
// [NewPDF] works in points internally. Millimeter input is converted with
// [layout.ToPoints] and the y axis is flipped to fpdf's top-left origin.
// Images are embedded by path; an image fpdf cannot parse is reported as
// DECODE_ERROR.
//
// # PNG Output
//
// [NewPNG] rasterises each page at a fixed resolution (pixels per
// millimeter, default 6). Card images are decoded with disintegration/imaging,
// honoring EXIF orientation, and scaled with golang.org/x/image/draw.
// Save(path) writes a single page to path and numbers several pages as
// <stem>-001.png, <stem>-002.png, ...
//
// # JSON Output
//
// [NewJSON] records pages and operations in the order they arrive.
//
// # Failure Behavior
//
// Every sink writes its output in Save, through a temporary file in the
// destination directory that is renamed into place. A run that fails before
// Save leaves nothing behind, and a failed Save removes its temporary file.
//
// [render.Renderer]: github.com/matzehuels/cardsheet/pkg/render.Renderer
// [layout.ToPoints]: github.com/matzehuels/cardsheet/pkg/layout.ToPoints
package sink
