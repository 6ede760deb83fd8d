package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/sky-detect-mcp/internal/sky"
	"github.com/ironsheep/sky-detect-mcp/internal/skycv"
)

// outputFiles maps each detector output label to its file name.
var outputFiles = map[string]string{
	sky.LabelColorMask:     "color_mask.png",
	sky.LabelFilterMask:    "filter_mask.png",
	sky.LabelEdge:          "edge.png",
	sky.LabelSkyLine:       "sky_line.png",
	sky.LabelSkyMask:       "sky_mask.png",
	sky.LabelSkyIdentified: "sky_identified.png",
}

type options struct {
	engine string
	debug  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "skydetect",
		Short:        "Detect the sky region of a photograph",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.engine, "engine", "go", "detection engine: go or opencv")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log per-stage timings to stderr")

	root.AddCommand(newDetectCmd(opts), newSkylineCmd(opts), newVersionCmd())
	return root
}

func newDetectCmd(opts *options) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "detect <image>",
		Short: "Write the six detector outputs as PNG files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := detect(cmd.ErrOrStderr(), opts, args[0])
			if err != nil {
				return err
			}
			return writeOutputs(cmd.OutOrStdout(), res, outDir)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory to write the output images to")
	return cmd
}

func newSkylineCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "skyline <image>",
		Short: "Print the skyline row of every column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := detect(cmd.ErrOrStderr(), opts, args[0])
			if err != nil {
				return err
			}
			printSkyline(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "skydetect %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(out, "  OpenCV:     %v\n", skycv.Enabled)
		},
	}
}

func newEngine(logOut io.Writer, opts *options) (sky.Engine, error) {
	level := zerolog.InfoLevel
	if opts.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: logOut, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()

	switch opts.engine {
	case "go":
		return sky.New(sky.DefaultConfig(), sky.WithLogger(logger))
	case "opencv":
		return skycv.New(sky.DefaultConfig())
	default:
		return nil, fmt.Errorf("unknown engine %q (want go or opencv)", opts.engine)
	}
}

func detect(logOut io.Writer, opts *options, path string) (*sky.Result, error) {
	engine, err := newEngine(logOut, opts)
	if err != nil {
		return nil, err
	}

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	res, err := engine.Detect(img)
	if err != nil {
		return nil, fmt.Errorf("failed to detect sky: %w", err)
	}
	return res, nil
}

func writeOutputs(out io.Writer, res *sky.Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, o := range res.Outputs() {
		path := filepath.Join(dir, outputFiles[o.Label])
		if err := imgio.Save(path, o.Image, imgio.PNGEncoder()); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(out, "%-15s %s\n", o.Label, path)
	}

	fmt.Fprintf(out, "sky fraction    %.4f\n", sky.SkyFraction(res.SkyMask))
	return nil
}

func printSkyline(out io.Writer, res *sky.Result) {
	rows := res.SkyMask.Bounds().Dy()
	s := sky.Summarize(res.Skyline, rows)

	values := make([]string, len(res.Skyline))
	for i, r := range res.Skyline {
		values[i] = fmt.Sprint(r)
	}
	fmt.Fprintln(out, strings.Join(values, " "))
	fmt.Fprintf(out, "rows=%d min=%d max=%d empty_columns=%d\n", rows, s.Min, s.Max, s.EmptyColumns)
}
