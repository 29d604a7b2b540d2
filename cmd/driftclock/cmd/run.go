package cmd

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-drift/driftclock/pkg/clockface"
	"github.com/go-drift/driftclock/pkg/engine"
	"github.com/go-drift/driftclock/pkg/graphics"
	"github.com/go-drift/driftclock/pkg/layout"
	"github.com/spf13/cobra"
)

// runOpts holds the flags for the run command.
type runOpts struct {
	frames int     // stop after this many frames, 0 runs until interrupted
	out    string  // output directory, empty uses the config
	width  float64 // surface width, 0 uses the config
	height float64 // surface height, 0 uses the config
	scale  float64 // output resampling factor
	style  string  // style file overriding the config
}

func newRunCmd(global *globalOpts) *cobra.Command {
	opts := runOpts{frames: 10, scale: 1}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the live clock and write each frame as a PNG",
		Example: `  driftclock run --frames 20 --out frames
  driftclock run --frames 0 -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := resolveConfig(global, opts.style)
			if err != nil {
				return err
			}
			rc := runConfig{
				style:      cfg.Style,
				size:       graphics.Size{Width: cfg.Width, Height: cfg.Height},
				background: cfg.Background,
				dir:        cfg.OutputDir,
				frames:     opts.frames,
				scale:      opts.scale,
				logger:     logger,
			}
			if opts.width > 0 {
				rc.size.Width = opts.width
			}
			if opts.height > 0 {
				rc.size.Height = opts.height
			}
			if opts.out != "" {
				rc.dir = opts.out
			}

			prog := newProgress(logger)
			res, err := runClock(cmd.Context(), rc)
			if err != nil {
				return err
			}
			st := res.stats
			logger.Debug("frame timing", "frames", st.Frames, "mean", st.Mean, "max", st.Max,
				"slow", st.Slow, "budget", st.Budget)
			prog.done(fmt.Sprintf("Wrote %d frames to %s", res.written, rc.dir))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.frames, "frames", opts.frames, "number of frames to write (0 = until interrupted)")
	cmd.Flags().StringVar(&opts.out, "out", "", "output directory")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "surface width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "surface height in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "resample each frame by this factor")
	cmd.Flags().StringVar(&opts.style, "style", "", "style YAML file")

	return cmd
}

type runConfig struct {
	style      clockface.Style
	size       graphics.Size
	background graphics.Color
	time       clockface.TimeSource
	dir        string
	frames     int
	scale      float64
	logger     *log.Logger
}

// runResult is what a run produced.
type runResult struct {
	written int
	stats   engine.FrameStats
}

// runClock drives the engine until cfg.frames frames are written or ctx is
// done. Reaching the frame count is a clean exit.
func runClock(ctx context.Context, cfg runConfig) (runResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seq := &pngSequence{dir: cfg.dir, scale: cfg.scale}
	if cfg.frames > 0 {
		seq.onFrame = func(written int) {
			if written >= cfg.frames {
				cancel()
			}
		}
	}

	eng := engine.New(engine.Config{
		Constraints: layout.Tight(cfg.size),
		Background:  &cfg.background,
		Presenter:   seq,
		Logger:      cfg.logger,
	})
	defer eng.Close()

	eng.SetRoot(clockface.NewClockView(clockface.Options{
		Style:      cfg.style,
		Time:       cfg.time,
		Dispatcher: eng,
	}))

	err := eng.Run(ctx)
	if stderrors.Is(err, context.Canceled) && cfg.frames > 0 && seq.written >= cfg.frames {
		err = nil
	}
	return runResult{written: seq.written, stats: eng.Trace().Stats()}, err
}
