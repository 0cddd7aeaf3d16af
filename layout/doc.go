// Package layout places the glyphs of a resolved subtitle event on the
// frame.
//
// Layout runs in stages: the event runs are tokenized into paragraphs at
// hard breaks, bidi levels are resolved (over the whole paragraph, or per
// override segment), the text is split into shaping segments wherever the
// run, font, script or level changes, and each segment is shaped. Lines
// are then wrapped according to the ASS wrap style, reordered visually,
// aligned inside the text block, stacked vertically and finally the block
// is placed on the frame with its rotation, shear and perspective
// transform.
//
// All output coordinates are frame pixels with y growing down.
package layout
