// This file implements the row-major packed bitmap structure fed to the
// raster encoder: 8 pixels per byte, most significant bit first, which is
// also the pixel layout of a binary PBM.

package bitmap

import "fmt"

// Bitmap is any rectangular monochrome image. GetBit returns 1 for a
// printed (black) pixel and 0 otherwise.
type Bitmap interface {
	Width() int
	Height() int
	GetBit(x int, y int) byte
}

// a bitmap packed in memory
type PackedBitmap struct {
	data                  []byte
	width, height, stride int
}

const bitsPerWord = 8

// New returns an all-white packed bitmap of the given dimensions.
func New(width, height int) *PackedBitmap {
	stride := (width + bitsPerWord - 1) / bitsPerWord
	return &PackedBitmap{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}
}

func (b *PackedBitmap) Width() int {
	return b.width
}

func (b *PackedBitmap) Height() int {
	return b.height
}

// Stride is the number of bytes per pixel row.
func (b *PackedBitmap) Stride() int {
	return b.stride
}

func (b *PackedBitmap) Data() []byte {
	return b.data
}

// Gets a single bit from the bitmap at the (x, y) coordinate, returns either 0 or 1
func (b *PackedBitmap) GetBit(x int, y int) byte {
	index := y*b.stride + x/bitsPerWord
	return (b.data[index] >> (bitsPerWord - 1 - x%bitsPerWord)) & 1
}

// SetBit sets the pixel at (x, y) to v (0 or nonzero).
func (b *PackedBitmap) SetBit(x int, y int, v byte) {
	index := y*b.stride + x/bitsPerWord
	mask := byte(0x80) >> (x % bitsPerWord)
	if v != 0 {
		b.data[index] |= mask
	} else {
		b.data[index] &^= mask
	}
}

func (b *PackedBitmap) String() string {
	return fmt.Sprintf("PackedBitmap(%d,%d)", b.width, b.height)
}

// Take data from any Bitmap implementation and pack it row-major
func Pack(src Bitmap) *PackedBitmap {
	b := New(src.Width(), src.Height())
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if src.GetBit(x, y) != 0 {
				b.SetBit(x, y, 1)
			}
		}
	}
	return b
}
