package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivlev/filmstrip/internal/config"
	"github.com/ivlev/filmstrip/internal/engine"
	"github.com/ivlev/filmstrip/internal/logging"
	"github.com/ivlev/filmstrip/internal/source"
)

func newRootCommand() *cobra.Command {
	cfg := &config.Config{BuildVersion: version}
	frameWidth := config.PositiveUint32(0)
	frameHeight := config.PositiveUint32(0)
	maxFrames := config.PositiveUint32(config.DefaultMaxFrames)

	cmd := &cobra.Command{
		Use:   "filmstrip -i INPUT -o OUTPUT -x X -y Y --dx DX --dy DY --fw W --fh H",
		Short: "Cut a moving window out of an image and stack the frames into a sprite sheet",
		Long: "filmstrip slides a fixed-size window across a source image by a constant\n" +
			"vector per frame and stacks every captured window vertically into one image.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.FrameWidth = uint32(frameWidth)
			cfg.FrameHeight = uint32(frameHeight)
			cfg.MaxFrames = uint32(maxFrames)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.LogLevel,
				Format: cfg.LogFormat,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = logging.WithLogger(ctx, logger)

			src, err := source.NewImageSource(cfg.InputPath)
			if err != nil {
				return fmt.Errorf("input: %w", err)
			}

			project := engine.NewProject(cfg, src)
			project.Stdout = cmd.OutOrStdout()
			_, err = project.Run(ctx)
			return err
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&cfg.InputPath, "input", "i", "", "Path to the input image")
	flags.StringVarP(&cfg.OutputPath, "output", "o", "", "Path to the output image; overwritten if it exists")
	flags.Uint32VarP(&cfg.X, "x-start", "x", 0, "X origin of the first frame")
	flags.Uint32VarP(&cfg.Y, "y-start", "y", 0, "Y origin of the first frame")
	flags.Float32Var(&cfg.DeltaX, "dx", 0, "Horizontal distance to translate per frame")
	flags.Float32Var(&cfg.DeltaY, "dy", 0, "Vertical distance to translate per frame")
	flags.Var(&frameWidth, "fw", "Width of a frame")
	flags.Var(&frameHeight, "fh", "Height of a frame")
	flags.VarP(&maxFrames, "max-frames", "m", "Maximum number of frames to generate")
	flags.StringVar(&cfg.ManifestPath, "manifest", "", "Write frame metadata to this file (.yaml, .yml, .toml, .json)")
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "Print the frame plan without writing any file")
	flags.BoolVar(&cfg.ShowStats, "stats", false, "Print a timing report after saving")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&cfg.LogFormat, "log-format", "console", "Log format: console, json")

	for _, name := range []string{"input", "x-start", "y-start", "dx", "dy", "fw", "fh"} {
		_ = cmd.MarkFlagRequired(name)
	}

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if !cfg.DryRun && !cmd.Flags().Changed("output") {
			return fmt.Errorf(`required flag(s) "output" not set`)
		}
		return nil
	}

	return cmd
}
