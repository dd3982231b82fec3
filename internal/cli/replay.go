package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchpad/pkg/editor"
	"github.com/matzehuels/sketchpad/pkg/pipeline"
	"github.com/matzehuels/sketchpad/pkg/script"
	"github.com/matzehuels/sketchpad/pkg/shape"
)

// replayOpts holds the command-line flags for the replay command.
type replayOpts struct {
	output     string   // output file (single format) or base path
	formats    []string // png, svg, json
	width      int      // export width; 0 uses config
	height     int      // export height; 0 uses config
	background string   // "#rrggbb" or "transparent"; empty uses config
	ink        string   // "#rrggbb"; empty uses config
	seed       uint64   // overrides config and script seeds when set
	noCache    bool
	refresh    bool
}

// replayCommand creates the replay command.
func (c *CLI) replayCommand() *cobra.Command {
	var formatsStr string
	var opts replayOpts

	cmd := &cobra.Command{
		Use:   "replay [script.toml]",
		Short: "Replay an input script and export the drawing",
		Long: `Replay an input script and export the drawing.

A script is a TOML list of pointer events and editor commands (down, move,
up, leave, drag, select, custom, undo, redo, clear). The steps run against a
fresh editor built from the config, and the final display list is exported.

Exports are cached: replaying an unchanged script is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runReplay(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png, svg, json (comma-separated; default from config)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "export width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "export height in pixels")
	cmd.Flags().StringVar(&opts.background, "background", "", `background color "#rrggbb" or "transparent"`)
	cmd.Flags().StringVar(&opts.ink, "ink", "", `drawing color "#rrggbb"`)
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for sticker rotations")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-encode even when cached")

	return cmd
}

// runReplay runs the script and writes the exports.
func (c *CLI) runReplay(ctx context.Context, path string, opts replayOpts) error {
	ctx = contextOrBackground(ctx)
	logger := loggerFromContext(ctx)
	prog := newProgress(logger, "replayed script")

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	switch {
	case opts.seed != 0:
		cfg.Seed = opts.seed
	case sc.Seed != 0:
		cfg.Seed = sc.Seed
	}

	e, err := editor.New(cfg.NewRegistry())
	if err != nil {
		return err
	}
	if err := sc.Run(e); err != nil {
		return err
	}
	list := e.DisplayList()
	if len(list) == 0 {
		printWarning("Script left the canvas empty")
	}
	logger.Debug("replayed script", "title", sc.Title, "steps", len(sc.Steps), "shapes", len(list))

	exportOpts := cfg.ExportOptions(opts.formats...)
	if opts.width != 0 {
		exportOpts.Width = opts.width
	}
	if opts.height != 0 {
		exportOpts.Height = opts.height
	}
	if opts.background != "" {
		exportOpts.Background = opts.background
	}
	if opts.ink != "" {
		exportOpts.Ink = opts.ink
	}
	exportOpts.Refresh = opts.refresh
	exportOpts.Logger = logger

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Exporting...")
	spinner.Start()
	result, err := runner.Export(ctx, list, exportOpts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, exportOpts.Formats, basePath(opts.output, path))
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	prog.done("steps", len(sc.Steps), "shapes", len(list), "cached", result.CacheHit)

	title := sc.Title
	if title == "" {
		title = path
	}
	printSuccess("Exported %s", StyleHighlight.Render(title))
	strokes, stickers := countShapes(list)
	printStats(strokes, stickers, result.CacheHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

func countShapes(list []shape.Drawable) (strokes, stickers int) {
	for _, d := range list {
		switch d.Kind() {
		case shape.KindStroke:
			strokes++
		case shape.KindSticker:
			stickers++
		}
	}
	return strokes, stickers
}
