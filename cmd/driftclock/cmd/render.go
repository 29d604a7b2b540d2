package cmd

import (
	"fmt"
	"image"
	"time"

	"github.com/go-drift/driftclock/pkg/clockface"
	"github.com/go-drift/driftclock/pkg/engine"
	"github.com/go-drift/driftclock/pkg/graphics"
	"github.com/go-drift/driftclock/pkg/layout"
	"github.com/spf13/cobra"
)

// renderOpts holds the flags for the render command.
type renderOpts struct {
	at     string  // wall-clock time as HH:MM:SS; empty means now
	width  float64 // surface width, 0 uses the config
	height float64 // surface height, 0 uses the config
	output string  // PNG path
	scale  float64 // output resampling factor
	style  string  // style file overriding the config
}

func newRenderCmd(global *globalOpts) *cobra.Command {
	opts := renderOpts{output: "clock.png", scale: 1}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one clock frame to a PNG file",
		Example: `  driftclock render --at 03:30:00 --width 400 --height 300 -o clock.png
  driftclock render --scale 2 -o clock@2x.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := resolveConfig(global, opts.style)
			if err != nil {
				return err
			}
			width, height := cfg.Width, cfg.Height
			if opts.width > 0 {
				width = opts.width
			}
			if opts.height > 0 {
				height = opts.height
			}
			var src clockface.TimeSource = clockface.SystemTime{}
			if opts.at != "" {
				reading, err := parseAt(opts.at)
				if err != nil {
					return err
				}
				src = clockface.FixedTime(reading)
			}

			prog := newProgress(logger)
			img, err := renderClock(renderConfig{
				style:      cfg.Style,
				size:       graphics.Size{Width: width, Height: height},
				background: cfg.Background,
				time:       src,
			})
			if err != nil {
				return err
			}
			scaled, err := scaleImage(img, opts.scale)
			if err != nil {
				return err
			}
			if err := writePNG(opts.output, scaled); err != nil {
				return err
			}
			b := scaled.Bounds()
			prog.done(fmt.Sprintf("Wrote %s (%dx%d)", opts.output, b.Dx(), b.Dy()))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.at, "at", "", "time to show as HH:MM:SS (default: now)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "surface width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "surface height in pixels")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PNG path")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "resample the output by this factor")
	cmd.Flags().StringVar(&opts.style, "style", "", "style YAML file")

	return cmd
}

// parseAt parses HH:MM:SS on a 24-hour clock.
func parseAt(s string) (clockface.TimeReading, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return clockface.TimeReading{}, fmt.Errorf("invalid --at %q: want HH:MM:SS", s)
	}
	return clockface.ReadingOf(t), nil
}

type renderConfig struct {
	style      clockface.Style
	size       graphics.Size
	background graphics.Color
	time       clockface.TimeSource
}

// renderClock paints a single frame with tight constraints of cfg.size and
// returns a copy of it. The view has no dispatcher, so no follow-up frame is
// scheduled.
func renderClock(cfg renderConfig) (*image.RGBA, error) {
	var frame *image.RGBA
	eng := engine.New(engine.Config{
		Constraints: layout.Tight(cfg.size),
		Background:  &cfg.background,
		Presenter: engine.PresenterFunc(func(_ engine.FrameSnapshot, img *image.RGBA) error {
			frame = image.NewRGBA(img.Bounds())
			copy(frame.Pix, img.Pix)
			return nil
		}),
	})
	defer eng.Close()

	eng.SetRoot(clockface.NewClockView(clockface.Options{
		Style: cfg.style,
		Time:  cfg.time,
	}))
	if _, err := eng.StepFrame(); err != nil {
		return nil, err
	}
	if frame == nil {
		return nil, fmt.Errorf("no frame rendered")
	}
	return frame, nil
}
