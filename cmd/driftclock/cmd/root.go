// Package cmd implements the driftclock CLI commands.
//
// The root command dispatches to render (a single PNG frame at a given
// time) and run (the live redraw loop writing one PNG per frame). Both read
// an optional driftclock.yaml from --dir; flags override its values.
package cmd

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-drift/driftclock/cmd/driftclock/internal/config"
	"github.com/go-drift/driftclock/pkg/errors"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// globalOpts holds flags shared by every command.
type globalOpts struct {
	verbose bool
	dir     string
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{dir: "."}

	root := &cobra.Command{
		Use:          "driftclock",
		Short:        "driftclock renders an analog clock face",
		Long:         `driftclock lays out and paints an analog clock on a raster surface and writes the frames as PNG files.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: opts.verbose})
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("driftclock %s\nbuilt: %s\n", Version, BuildTime))
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.dir, "dir", ".", "directory containing "+config.FileName)

	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newRunCmd(opts))

	return root
}

// resolveConfig loads driftclock.yaml from the --dir flag, applying a
// style override when stylePath is set.
func resolveConfig(opts *globalOpts, stylePath string) (*config.Resolved, error) {
	dir := opts.dir
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return nil, err
		}
	}
	resolved, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if stylePath != "" {
		style, err := loadStyleFile(stylePath)
		if err != nil {
			return nil, err
		}
		resolved.Style = style
		resolved.StylePath = stylePath
	}
	return resolved, nil
}
