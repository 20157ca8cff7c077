package walker

import (
	"image"
	"image/color"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// View returns a read-only window of src over r. Concrete image types share pixels via
// SubImage; anything else is wrapped.
func View(src image.Image, r image.Rectangle) image.Image {
	r = r.Intersect(src.Bounds())
	if si, ok := src.(subImager); ok {
		return si.SubImage(r)
	}
	return &window{src: src, rect: r}
}

type window struct {
	src  image.Image
	rect image.Rectangle
}

func (w *window) ColorModel() color.Model {
	return w.src.ColorModel()
}

func (w *window) Bounds() image.Rectangle {
	return w.rect
}

func (w *window) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(w.rect)) {
		return w.src.ColorModel().Convert(color.Transparent)
	}
	return w.src.At(x, y)
}
