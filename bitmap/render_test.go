package bitmap

import (
	"image"
	"image/color"
	"testing"
)

func TestRenderForHeadFitsPrinthead(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 600, 300))
	rendered := RenderForHead(src)

	if h := rendered.Rect.Dy(); h > HeadRows {
		t.Errorf("rendered height = %d, want <= %d", h, HeadRows)
	}
	if w := rendered.Rect.Dx(); w != 600*HeadRows/300 {
		t.Errorf("rendered width = %d, want %d", w, 600*HeadRows/300)
	}
	if len(rendered.Palette) != 2 {
		t.Errorf("palette has %d colours, want 2", len(rendered.Palette))
	}
}

func TestRenderForHeadKeepsSmallImages(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 40, 20))
	rendered := RenderForHead(src)
	if rendered.Rect.Dx() != 40 || rendered.Rect.Dy() != 20 {
		t.Errorf("rendered size = %dx%d, want 40x20", rendered.Rect.Dx(), rendered.Rect.Dy())
	}
}

func TestFromPaletted(t *testing.T) {
	p := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.Black, color.White})
	p.SetColorIndex(0, 0, 0) // black
	p.SetColorIndex(1, 0, 1) // white

	b, err := FromPaletted(p)
	if err != nil {
		t.Fatalf("FromPaletted: %v", err)
	}
	if got := b.GetBit(0, 0); got != 1 {
		t.Errorf("black pixel bit = %v, want 1", got)
	}
	if got := b.GetBit(1, 0); got != 0 {
		t.Errorf("white pixel bit = %v, want 0", got)
	}
}

func TestFromPalettedRejectsWidePalettes(t *testing.T) {
	p := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.Black, color.White, color.Gray{Y: 128}})
	if _, err := FromPaletted(p); err == nil {
		t.Error("no error for 3-colour palette")
	}
}
