// Package walker slides a fixed-size window across a source image by a constant vector
// and collects a view of the source at each position.
package walker

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrFirstFrameOutside means the starting window does not fit inside the source.
var ErrFirstFrameOutside = errors.New("first frame outside source image")

// StopReason explains why the walk ended. Every reason is a normal termination.
type StopReason int

const (
	StopMaxFrames StopReason = iota + 1
	StopNegative
	StopOutOfBounds
)

func (r StopReason) String() string {
	switch r {
	case StopMaxFrames:
		return "max_frames"
	case StopNegative:
		return "negative_origin"
	case StopOutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// Params describes one walk. Width and Height must be nonzero.
type Params struct {
	X, Y          uint32
	DeltaX        float32
	DeltaY        float32
	Width, Height uint32
	MaxFrames     uint32
}

// Frame is one captured window. Image is a read-only view into the source.
type Frame struct {
	Index  int
	X, Y   uint32
	IdealX float32
	IdealY float32
	Image  image.Image
}

type Result struct {
	Frames []Frame
	Stop   StopReason
}

// Walk cuts frames from src. The float accumulators are the source of truth: the integer
// origin is re-rounded from them every step, so rounding error never compounds.
func Walk(ctx context.Context, src image.Image, p Params) (*Result, error) {
	if p.Width == 0 || p.Height == 0 {
		return nil, fmt.Errorf("frame size %dx%d: dimensions must be nonzero", p.Width, p.Height)
	}

	bounds := src.Bounds()
	srcW, srcH := uint64(bounds.Dx()), uint64(bounds.Dy())
	if !fits(uint64(p.X), uint64(p.Y), p, srcW, srcH) {
		return nil, fmt.Errorf("%w: window %dx%d at (%d,%d) exceeds %dx%d",
			ErrFirstFrameOutside, p.Width, p.Height, p.X, p.Y, srcW, srcH)
	}

	curX, curY := float32(p.X), float32(p.Y)
	roundedX, roundedY := uint64(p.X), uint64(p.Y)
	res := &Result{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if uint64(len(res.Frames)) == uint64(p.MaxFrames) {
			res.Stop = StopMaxFrames
			break
		}
		if curX < 0 || curY < 0 {
			res.Stop = StopNegative
			break
		}
		if !fits(roundedX, roundedY, p, srcW, srcH) {
			res.Stop = StopOutOfBounds
			break
		}

		rect := image.Rect(int(roundedX), int(roundedY), int(roundedX)+int(p.Width), int(roundedY)+int(p.Height)).
			Add(bounds.Min)
		res.Frames = append(res.Frames, Frame{
			Index:  len(res.Frames),
			X:      uint32(roundedX),
			Y:      uint32(roundedY),
			IdealX: curX,
			IdealY: curY,
			Image:  View(src, rect),
		})

		curX += p.DeltaX
		curY += p.DeltaY
		roundedX = roundCoord(curX)
		roundedY = roundCoord(curY)
	}

	return res, nil
}

func fits(x, y uint64, p Params, srcW, srcH uint64) bool {
	return x+uint64(p.Width) <= srcW && y+uint64(p.Height) <= srcH
}

// roundCoord rounds half away from zero. Negative inputs are never sampled because the
// accumulator check stops the walk first; values past the uint32 range saturate so the
// bounds check rejects them.
func roundCoord(v float32) uint64 {
	r := math.Round(float64(v))
	if r <= 0 || math.IsNaN(r) {
		return 0
	}
	if r > math.MaxUint32 {
		return math.MaxUint32 + 1
	}
	return uint64(r)
}
