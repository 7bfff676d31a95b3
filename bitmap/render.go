package bitmap

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/draw"
)

// ImageBitmap adapts a two-colour paletted image to the Bitmap interface.
type ImageBitmap struct {
	image *image.Paletted
	// colorMap[i] is the bit value of the palette colour at index i.
	// The colour closest to white maps to 0 (not printed).
	colorMap [2]byte
}

func (b *ImageBitmap) Width() int {
	return b.image.Rect.Dx()
}

func (b *ImageBitmap) Height() int {
	return b.image.Rect.Dy()
}

func (b *ImageBitmap) GetBit(x int, y int) byte {
	return b.colorMap[b.image.ColorIndexAt(x, y)]
}

func FromPaletted(i *image.Paletted) (*ImageBitmap, error) {
	if len(i.Palette) != 2 {
		return nil, fmt.Errorf("image passed to FromPaletted must have only 2 colours in palette")
	}

	var colorMap [2]byte
	if i.Palette.Index(color.White) == 0 {
		colorMap = [2]byte{0, 1}
	} else {
		colorMap = [2]byte{1, 0}
	}

	return &ImageBitmap{
		image:    i,
		colorMap: colorMap,
	}, nil
}

// RenderForHead turns an arbitrary image into a monochrome one sized for
// the printhead: scaled so its height fits the 128-dot head, then dithered
// to black and white.
func RenderForHead(i image.Image) *image.Paletted {
	// determine height of bitmap to print, ready to scale
	newHeight := i.Bounds().Dy()
	if newHeight > HeadRows {
		newHeight = HeadRows
	}
	newWidth := i.Bounds().Dx() * newHeight / i.Bounds().Dy()
	if newWidth < 1 {
		newWidth = 1
	}
	scaledBounds := image.Rect(0, 0, newWidth, newHeight)
	scaledImage := image.NewRGBA(scaledBounds)
	// resize image using Catmull Rom scaling
	draw.CatmullRom.Scale(scaledImage, scaledBounds, i, i.Bounds(), draw.Over, nil)

	// turn full colour image into monochrome pixel by pixel
	monochromeImage := image.NewGray16(scaledBounds)
	for y := scaledBounds.Min.Y; y < scaledBounds.Max.Y; y++ {
		for x := scaledBounds.Min.X; x < scaledBounds.Max.X; x++ {
			originalColor := scaledImage.At(x, y)
			grayColor := color.Gray16Model.Convert(originalColor).(color.Gray16)
			grayValue := float64(grayColor.Y) / float64(0xFFFF)

			// gamma correction, otherwise thermal output comes out too dark
			scaledGrayValue := math.Pow(grayValue, 0.5)
			scaledGrayColor := color.Gray16{Y: uint16(scaledGrayValue * float64(0xFFFF))}
			monochromeImage.Set(x, y, scaledGrayColor)
		}
	}

	// dither monochrome image to black and white
	palette := []color.Color{color.Black, color.White}
	ditherer := dither.NewDitherer(palette)
	ditherer.Matrix = dither.FloydSteinberg
	ditherer.Serpentine = true

	return ditherer.DitherPaletted(monochromeImage)
}
