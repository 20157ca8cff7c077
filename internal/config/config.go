package config

import (
	"errors"
	"fmt"
	"math"
	"os"
)

// DefaultMaxFrames leaves the frame count bounded only by the image edges.
const DefaultMaxFrames = math.MaxUint32

type Config struct {
	InputPath  string
	OutputPath string

	X, Y   uint32
	DeltaX float32
	DeltaY float32

	FrameWidth  uint32
	FrameHeight uint32
	MaxFrames   uint32

	ManifestPath string
	DryRun       bool
	ShowStats    bool

	LogLevel     string
	LogFormat    string
	BuildVersion string
}

// Validate checks the invariants the CLI layer normally enforces, so the engine can be
// driven directly. The input file is opened to confirm it is readable.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input: path is required")
	}
	if c.OutputPath == "" && !c.DryRun {
		return errors.New("output: path is required")
	}
	if c.FrameWidth == 0 {
		return fmt.Errorf("fw: %w", ErrZero)
	}
	if c.FrameHeight == 0 {
		return fmt.Errorf("fh: %w", ErrZero)
	}
	if c.MaxFrames == 0 {
		return fmt.Errorf("max-frames: %w", ErrZero)
	}
	if math.IsNaN(float64(c.DeltaX)) || math.IsInf(float64(c.DeltaX), 0) {
		return fmt.Errorf("dx: %v is not a finite number", c.DeltaX)
	}
	if math.IsNaN(float64(c.DeltaY)) || math.IsInf(float64(c.DeltaY), 0) {
		return fmt.Errorf("dy: %v is not a finite number", c.DeltaY)
	}

	fi, err := os.Stat(c.InputPath)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if fi.IsDir() {
		return fmt.Errorf("input: %s is a directory", c.InputPath)
	}
	f, err := os.Open(c.InputPath)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	return f.Close()
}

// Stationary reports whether every frame will be cut at the same origin.
func (c *Config) Stationary() bool {
	return c.DeltaX == 0 && c.DeltaY == 0
}
