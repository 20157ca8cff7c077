package assemble

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestStackPlacesFramesInOrder(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	// Frames from a larger source keep their absolute bounds.
	big := solid(30, 30, blue)
	frames := []image.Image{
		solid(4, 3, red),
		solid(4, 3, green),
		big.SubImage(image.Rect(20, 20, 24, 23)),
	}

	canvas, err := Stack(frames, 4, 3)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 9), canvas.Bounds())

	require.Equal(t, red, canvas.NRGBAAt(0, 0))
	require.Equal(t, red, canvas.NRGBAAt(3, 2))
	require.Equal(t, green, canvas.NRGBAAt(0, 3))
	require.Equal(t, green, canvas.NRGBAAt(3, 5))
	require.Equal(t, blue, canvas.NRGBAAt(0, 6))
	require.Equal(t, blue, canvas.NRGBAAt(3, 8))
}

func TestStackKeepsTransparency(t *testing.T) {
	half := color.NRGBA{R: 200, G: 10, B: 10, A: 128}
	canvas, err := Stack([]image.Image{solid(2, 2, half)}, 2, 2)
	require.NoError(t, err)
	require.Equal(t, half, canvas.NRGBAAt(1, 1))
}

func TestStackEmpty(t *testing.T) {
	canvas, err := Stack(nil, 16, 16)
	require.NoError(t, err)
	require.Equal(t, 16, canvas.Bounds().Dx())
	require.Equal(t, 0, canvas.Bounds().Dy())
}

func TestStackRejectsMismatchedFrame(t *testing.T) {
	_, err := Stack([]image.Image{solid(4, 4, color.NRGBA{}), solid(3, 4, color.NRGBA{})}, 4, 4)
	require.ErrorIs(t, err, ErrFrameSize)
	require.ErrorContains(t, err, "frame 1 is 3x4")
}

func TestGeometryHelpers(t *testing.T) {
	require.Equal(t, image.Pt(20, 100), CanvasSize(20, 20, 5))
	require.Equal(t, image.Rect(0, 40, 20, 60), Slot(20, 20, 2))
	require.Equal(t, uint64(20*100*4), EstimateBytes(20, 20, 5))
}
