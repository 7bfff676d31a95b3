// This file converts a row-major bitmap into the column-major print
// pattern the KL-G2 printhead consumes: for every pixel column, 16
// contiguous bytes carry the column's 128 vertical dots, MSB first,
// ordered top to bottom.

package bitmap

import "log/slog"

// HeadRows is the fixed height of the printhead in dots.
const HeadRows = 128

// ColumnBytes is the size of one pattern column.
const ColumnBytes = HeadRows / bitsPerWord

// Pattern builds the device pattern buffer from a bitmap. Images shorter
// than the printhead are centred vertically; images taller than the
// printhead are truncated to the first HeadRows rows with a warning.
// The result is ColumnBytes * b.Width() bytes.
func Pattern(b Bitmap) []byte {
	width, height := b.Width(), b.Height()
	if height > HeadRows {
		slog.Warn("Image truncated to printhead height",
			"height", height,
			"max", HeadRows,
		)
		height = HeadRows
	}
	padTop := (HeadRows - height) / 2

	pattern := make([]byte, ColumnBytes*width)
	for y := 0; y < height; y++ {
		row := y + padTop
		for x := 0; x < width; x++ {
			if b.GetBit(x, y) != 0 {
				pattern[x*ColumnBytes+row/bitsPerWord] |= 0x80 >> (row % bitsPerWord)
			}
		}
	}
	return pattern
}

// Unpattern is the inverse transform, rebuilding the full-height bitmap a
// pattern buffer encodes. Used to verify the encoding round-trips.
func Unpattern(pattern []byte, width int) *PackedBitmap {
	b := New(width, HeadRows)
	for x := 0; x < width; x++ {
		for row := 0; row < HeadRows; row++ {
			bit := (pattern[x*ColumnBytes+row/bitsPerWord] >> (bitsPerWord - 1 - row%bitsPerWord)) & 1
			if bit != 0 {
				b.SetBit(x, row, 1)
			}
		}
	}
	return b
}
