// Package layout computes card-sheet geometry and checks that a grid fits
// on the page.
//
// # Overview
//
// A sheet is a page of fixed size carrying a grid of Rows × Columns card
// slots. Each slot footprint is the card plus bleed and border on every
// side:
//
//	slot width  = card width  + 2×bleed + 2×border
//	slot height = card height + 2×bleed + 2×border
//
// The grid is centered on the page. Slot (0, 0) is the top-left slot and
// rows grow downward visually, while the coordinate frame is y-up with the
// origin at the bottom-left of the page. Slot (row, col) therefore occupies
// the interval below the grid's top edge:
//
//	base.x = origin.x + col×slot width
//	base.y = origin.y − (row+1)×slot height
//
// All lengths are millimeters. Renderers convert to their native unit with
// [ToPoints] at the output boundary and nowhere else.
//
// # Purity
//
// Every function here is a pure function of [Settings] and slot indices.
// There are no counters and no accumulated offsets, so the placement of any
// slot is reproducible bit-for-bit on its own.
//
// # Validation
//
// [Validate] is the gate run before any page is produced. It rejects
// settings whose grid, after removing the bleed double-counted at interior
// seams, is larger than the page.
package layout
