// Package render draws page descriptors onto an output document.
//
// # Overview
//
// The [Renderer] interface is the boundary between the pagination engine
// and a concrete document format. It works in page millimeters with the
// y axis pointing up, the same frame [layout] computes placements in, so
// renderers convert to their native unit and orientation only at the edge.
//
// [DrawPage] is the single driver that turns a [paginate.Page] into
// renderer calls:
//
//  1. BeginPage with the page size
//  2. Guide lines across the whole page, if the page asks for them
//  3. For each slot in order, the border stroke (when requested and wider
//     than zero) and then the card image
//
// Concrete renderers live in the [sink] subpackage:
//
//	r, err := sink.New(sink.FormatPDF, sink.Options{Title: "Deck"})
//	for page := range paginate.Pages(settings, set) {
//	    if err := render.DrawPage(r, settings, page); err != nil {
//	        return err
//	    }
//	}
//	err = r.Save("deck.pdf")
//
// Errors returned by a renderer that do not carry a code are reported as
// RENDER_ERROR. A renderer that fails to decode an image returns
// DECODE_ERROR itself.
//
// [sink]: github.com/matzehuels/cardsheet/pkg/render/sink
// [layout]: github.com/matzehuels/cardsheet/pkg/layout
package render
