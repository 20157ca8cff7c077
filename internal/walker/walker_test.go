package walker

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	return img
}

func origins(res *Result) [][2]uint32 {
	out := make([][2]uint32, len(res.Frames))
	for i, f := range res.Frames {
		out[i] = [2]uint32{f.X, f.Y}
	}
	return out
}

func TestWalkHorizontalStrip(t *testing.T) {
	src := gradient(100, 100)
	res, err := Walk(context.Background(), src, Params{
		Width: 20, Height: 20, DeltaX: 10, MaxFrames: 5,
	})
	require.NoError(t, err)
	require.Equal(t, [][2]uint32{{0, 0}, {10, 0}, {20, 0}, {30, 0}, {40, 0}}, origins(res))
	require.Equal(t, StopMaxFrames, res.Stop)

	for i, f := range res.Frames {
		require.Equal(t, i, f.Index)
		require.Equal(t, image.Rect(int(f.X), 0, int(f.X)+20, 20), f.Image.Bounds())
		r, _, _, _ := f.Image.At(int(f.X)+3, 4).RGBA()
		require.Equal(t, uint32(f.X+3), r>>8)
	}
}

func TestWalkStopsAtRightEdge(t *testing.T) {
	res, err := Walk(context.Background(), gradient(100, 100), Params{
		Width: 20, Height: 20, DeltaX: 10, MaxFrames: 1000,
	})
	require.NoError(t, err)
	require.Len(t, res.Frames, 9)
	require.Equal(t, uint32(80), res.Frames[8].X)
	require.Equal(t, StopOutOfBounds, res.Stop)
}

func TestWalkFirstFrameOutside(t *testing.T) {
	_, err := Walk(context.Background(), gradient(50, 50), Params{
		X: 40, Y: 40, Width: 20, Height: 20, MaxFrames: 1,
	})
	require.ErrorIs(t, err, ErrFirstFrameOutside)
	require.ErrorContains(t, err, "20x20 at (40,40) exceeds 50x50")
}

func TestWalkFirstFrameOverflowDoesNotWrap(t *testing.T) {
	_, err := Walk(context.Background(), gradient(10, 10), Params{
		X: 4294967295, Width: 2, Height: 2, MaxFrames: 1,
	})
	require.ErrorIs(t, err, ErrFirstFrameOutside)
}

func TestWalkStopsOnNegativeAccumulator(t *testing.T) {
	res, err := Walk(context.Background(), gradient(40, 10), Params{
		X: 3, Width: 10, Height: 10, DeltaX: -5, MaxFrames: 100,
	})
	require.NoError(t, err)
	require.Equal(t, [][2]uint32{{3, 0}}, origins(res))
	require.Equal(t, StopNegative, res.Stop)
}

func TestWalkNegativeDeltaReachesZero(t *testing.T) {
	res, err := Walk(context.Background(), gradient(40, 40), Params{
		X: 10, Y: 20, Width: 5, Height: 5, DeltaX: -5, DeltaY: -10, MaxFrames: 100,
	})
	require.NoError(t, err)
	require.Equal(t, [][2]uint32{{10, 20}, {5, 10}, {0, 0}}, origins(res))
	require.Equal(t, StopNegative, res.Stop)
}

func TestWalkStationaryRepeatsFrames(t *testing.T) {
	res, err := Walk(context.Background(), gradient(30, 30), Params{
		X: 5, Y: 5, Width: 10, Height: 10, MaxFrames: 4,
	})
	require.NoError(t, err)
	require.Equal(t, [][2]uint32{{5, 5}, {5, 5}, {5, 5}, {5, 5}}, origins(res))
	require.Equal(t, StopMaxFrames, res.Stop)
}

func TestWalkRoundsAccumulatedPosition(t *testing.T) {
	// Accumulating rounded steps of 0.4 would never move; rounding the running
	// total moves on the 2nd and 4th steps.
	res, err := Walk(context.Background(), gradient(20, 5), Params{
		Width: 1, Height: 1, DeltaX: 0.4, MaxFrames: 6,
	})
	require.NoError(t, err)

	var xs []uint32
	for _, f := range res.Frames {
		xs = append(xs, f.X)
	}
	require.Equal(t, []uint32{0, 0, 1, 1, 2, 2}, xs)
	require.InDelta(t, 2.0, res.Frames[5].IdealX, 1e-5)
}

func TestWalkRoundsHalfAwayFromZero(t *testing.T) {
	res, err := Walk(context.Background(), gradient(10, 10), Params{
		Width: 1, Height: 1, DeltaX: 0.5, DeltaY: 1.5, MaxFrames: 3,
	})
	require.NoError(t, err)
	require.Equal(t, [][2]uint32{{0, 0}, {1, 2}, {1, 3}}, origins(res))
}

func TestWalkMaxFramesNeverExceeded(t *testing.T) {
	for _, max := range []uint32{1, 2, 7} {
		res, err := Walk(context.Background(), gradient(100, 100), Params{
			Width: 1, Height: 1, DeltaX: 1, DeltaY: 1, MaxFrames: max,
		})
		require.NoError(t, err)
		require.Len(t, res.Frames, int(max))
	}
}

func TestWalkNonZeroOriginSource(t *testing.T) {
	src := gradient(60, 60).SubImage(image.Rect(10, 10, 40, 40))
	res, err := Walk(context.Background(), src, Params{
		Width: 10, Height: 10, DeltaY: 10, MaxFrames: 10,
	})
	require.NoError(t, err)
	require.Len(t, res.Frames, 3)
	require.Equal(t, image.Rect(10, 30, 20, 40), res.Frames[2].Image.Bounds())
}

func TestWalkZeroSizeRejected(t *testing.T) {
	_, err := Walk(context.Background(), gradient(10, 10), Params{Width: 0, Height: 1, MaxFrames: 1})
	require.ErrorContains(t, err, "must be nonzero")
}

func TestWalkHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Walk(ctx, gradient(10, 10), Params{Width: 1, Height: 1, MaxFrames: 1})
	require.ErrorIs(t, err, context.Canceled)
}

type plainImage struct{ image.Image }

func TestViewWrapsImagesWithoutSubImage(t *testing.T) {
	src := plainImage{gradient(10, 10)}
	v := View(src, image.Rect(2, 3, 6, 8))
	require.Equal(t, image.Rect(2, 3, 6, 8), v.Bounds())

	r, g, _, _ := v.At(4, 5).RGBA()
	require.Equal(t, uint32(4), r>>8)
	require.Equal(t, uint32(5), g>>8)

	_, _, _, a := v.At(0, 0).RGBA()
	require.Zero(t, a)
}
