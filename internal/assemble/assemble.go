// Package assemble stacks equally sized frames top to bottom into one canvas.
package assemble

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrFrameSize is returned when a frame does not match the declared frame size.
var ErrFrameSize = errors.New("frame size mismatch")

// BytesPerPixel is the canvas footprint used for memory estimates.
const BytesPerPixel = 4

// CanvasSize returns the output dimensions for count frames of width × height.
func CanvasSize(width, height uint32, count int) image.Point {
	return image.Pt(int(width), int(height)*count)
}

// EstimateBytes returns the memory the canvas will take.
func EstimateBytes(width, height uint32, count int) uint64 {
	return uint64(width) * uint64(height) * uint64(count) * BytesPerPixel
}

// Slot is frame i's destination rectangle in the canvas.
func Slot(width, height uint32, i int) image.Rectangle {
	top := int(height) * i
	return image.Rect(0, top, int(width), top+int(height))
}

// Stack copies frames into a fresh transparent canvas in order. No frames yields a
// zero-height canvas.
func Stack(frames []image.Image, width, height uint32) (*image.NRGBA, error) {
	size := CanvasSize(width, height, len(frames))
	canvas := image.NewNRGBA(image.Rectangle{Max: size})

	for i, frame := range frames {
		sr := frame.Bounds()
		if sr.Dx() != int(width) || sr.Dy() != int(height) {
			return nil, fmt.Errorf("%w: frame %d is %dx%d, want %dx%d",
				ErrFrameSize, i, sr.Dx(), sr.Dy(), width, height)
		}
		dst := Slot(width, height, i)
		draw.Copy(canvas, dst.Min, frame, sr, draw.Src, nil)
	}

	return canvas, nil
}
