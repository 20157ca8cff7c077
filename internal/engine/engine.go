package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/ivlev/filmstrip/internal/assemble"
	"github.com/ivlev/filmstrip/internal/config"
	"github.com/ivlev/filmstrip/internal/logging"
	"github.com/ivlev/filmstrip/internal/manifest"
	"github.com/ivlev/filmstrip/internal/output"
	"github.com/ivlev/filmstrip/internal/source"
	"github.com/ivlev/filmstrip/internal/system"
	"github.com/ivlev/filmstrip/internal/walker"
)

// Saver persists the finished canvas.
type Saver func(path string, img image.Image) error

type Project struct {
	Config *config.Config
	Source source.Source
	Save   Saver
	Stdout io.Writer

	timings Timings
}

func NewProject(cfg *config.Config, src source.Source) *Project {
	return &Project{
		Config: cfg,
		Source: src,
		Save:   output.Save,
		Stdout: os.Stdout,
	}
}

// Summary is what a run produced.
type Summary struct {
	Frames   int
	Stop     walker.StopReason
	Canvas   image.Point
	Manifest *manifest.Manifest
	Timings  Timings
}

// Run decodes the source, walks the window, stacks the frames and saves the sheet.
func (p *Project) Run(ctx context.Context) (*Summary, error) {
	startTime := time.Now()
	log := logging.FromContext(ctx)
	cfg := p.Config

	// Output and manifest formats are checked before any image work.
	if !cfg.DryRun {
		if _, err := output.EncoderFor(cfg.OutputPath); err != nil {
			return nil, err
		}
	}
	if cfg.ManifestPath != "" {
		if err := manifest.CheckPath(cfg.ManifestPath); err != nil {
			return nil, err
		}
	}

	params := walker.Params{
		X:         cfg.X,
		Y:         cfg.Y,
		DeltaX:    cfg.DeltaX,
		DeltaY:    cfg.DeltaY,
		Width:     cfg.FrameWidth,
		Height:    cfg.FrameHeight,
		MaxFrames: cfg.MaxFrames,
	}

	if err := p.precheck(ctx, params); err != nil {
		return nil, err
	}

	decodeStart := time.Now()
	img, format, err := p.Source.Decode()
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	p.timings.Decode = time.Since(decodeStart)
	log.Info("source decoded",
		"path", p.Source.Path(),
		"format", format,
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
	)

	// A stationary walk always runs to max-frames, so the sheet size is known up front.
	memoryChecked := false
	if cfg.Stationary() && cfg.MaxFrames > 1 {
		log.Warn("delta is zero; every frame repeats the first window", "max_frames", cfg.MaxFrames)
		if !cfg.DryRun {
			p.checkMemory(ctx, assemble.EstimateBytes(cfg.FrameWidth, cfg.FrameHeight, int(cfg.MaxFrames)))
			memoryChecked = true
		}
	}

	walkStart := time.Now()
	res, err := walker.Walk(ctx, img, params)
	if err != nil {
		return nil, err
	}
	p.timings.Walk = time.Since(walkStart)
	log.Info("frames collected", "count", len(res.Frames), "stop", res.Stop.String())

	summary := &Summary{
		Frames: len(res.Frames),
		Stop:   res.Stop,
		Canvas: assemble.CanvasSize(cfg.FrameWidth, cfg.FrameHeight, len(res.Frames)),
	}

	if cfg.DryRun {
		fmt.Fprintln(p.Stdout, renderPlan(res, cfg.FrameWidth, cfg.FrameHeight))
		fmt.Fprintf(p.Stdout, "Dry run: %d frames, sheet %dx%d\n", summary.Frames, summary.Canvas.X, summary.Canvas.Y)
		p.timings.Total = time.Since(startTime)
		summary.Timings = p.timings
		return summary, nil
	}

	if !memoryChecked {
		p.checkMemory(ctx, assemble.EstimateBytes(cfg.FrameWidth, cfg.FrameHeight, len(res.Frames)))
	}

	// The manifest is staged before the sheet is saved so that a manifest failure
	// leaves neither file behind.
	var pendingManifest *output.Pending
	if cfg.ManifestPath != "" {
		m := manifest.Build(manifest.Params{
			Source: cfg.InputPath,
			Output: cfg.OutputPath,
			Width:  cfg.FrameWidth,
			Height: cfg.FrameHeight,
			DeltaX: cfg.DeltaX,
			DeltaY: cfg.DeltaY,
		}, res)
		data, err := manifest.Encode(m, cfg.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
		pendingManifest, err = output.StageBytes(cfg.ManifestPath, data)
		if err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
		defer pendingManifest.Discard()
		summary.Manifest = m
	}

	assembleStart := time.Now()
	views := make([]image.Image, len(res.Frames))
	for i, f := range res.Frames {
		views[i] = f.Image
	}
	canvas, err := assemble.Stack(views, cfg.FrameWidth, cfg.FrameHeight)
	if err != nil {
		return nil, fmt.Errorf("assemble frames: %w", err)
	}
	p.timings.Assemble = time.Since(assembleStart)

	fmt.Fprintf(p.Stdout, "Saving %d frames\n", len(res.Frames))
	saveStart := time.Now()
	if err := p.Save(cfg.OutputPath, canvas); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}
	p.timings.Save = time.Since(saveStart)
	log.Info("sheet saved", "path", cfg.OutputPath, "width", summary.Canvas.X, "height", summary.Canvas.Y)

	if pendingManifest != nil {
		if err := pendingManifest.Commit(); err != nil {
			return nil, fmt.Errorf("write manifest: %w", err)
		}
		log.Info("manifest written", "path", cfg.ManifestPath)
	}

	p.timings.Total = time.Since(startTime)
	summary.Timings = p.timings

	if cfg.ShowStats {
		fmt.Fprint(p.Stdout, p.timings.Report(cfg.BuildVersion, summary.Frames, assemble.EstimateBytes(cfg.FrameWidth, cfg.FrameHeight, summary.Frames)))
	}

	return summary, nil
}

// precheck rejects an out-of-bounds first frame from the image header alone, before
// the full decode. A header that cannot be read is left for Decode to report.
func (p *Project) precheck(ctx context.Context, params walker.Params) error {
	w, h, format, err := p.Source.Dimensions()
	if err != nil {
		if errors.Is(err, source.ErrUnknownFormat) {
			return fmt.Errorf("read source: %w", err)
		}
		logging.FromContext(ctx).Debug("header read failed", "error", err)
		return nil
	}
	logging.FromContext(ctx).Debug("header read", "format", format, "width", w, "height", h)

	if uint64(params.X)+uint64(params.Width) > uint64(w) || uint64(params.Y)+uint64(params.Height) > uint64(h) {
		return fmt.Errorf("%w: window %dx%d at (%d,%d) exceeds %dx%d",
			walker.ErrFirstFrameOutside, params.Width, params.Height, params.X, params.Y, w, h)
	}
	return nil
}

func (p *Project) checkMemory(ctx context.Context, required uint64) {
	log := logging.FromContext(ctx)
	check, err := system.CheckAllocation(required)
	if err != nil {
		log.Debug("memory check skipped", "error", err)
		return
	}
	if !check.Fits() {
		log.Warn("output canvas may not fit in memory", "detail", check.String())
		return
	}
	log.Debug("canvas allocation", "detail", check.String())
}
