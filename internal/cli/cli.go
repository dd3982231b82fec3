// Package cli implements the sketchpad command-line interface.
//
// The CLI hosts the editor three ways: an interactive terminal canvas
// (draw), a batch replay of recorded input (replay), and an HTTP API (serve).
// All three export through the same cached pipeline.
//
// # Commands
//
//   - draw: Sketch in the terminal with the mouse
//   - replay: Apply a TOML input script and write the drawing to disk
//   - serve: Run the HTTP session API
//   - cache: Manage the export cache
//   - version, completion: The usual
//
// # Configuration
//
// Every command reads the TOML config from --config, or from
// $XDG_CONFIG_HOME/sketchpad/config.toml when present.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchpad/pkg/buildinfo"
	"github.com/matzehuels/sketchpad/pkg/cache"
	"github.com/matzehuels/sketchpad/pkg/config"
	"github.com/matzehuels/sketchpad/pkg/observability"
	"github.com/matzehuels/sketchpad/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "sketchpad"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sketchpad is a tiny drawing editor with markers, stickers, and undo",
		Long:         `Sketchpad draws freehand strokes and rotatable emoji stickers on a small canvas, with unlimited undo and redo, and exports the result as PNG, SVG, or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			installHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sketchpad/config.toml)")

	// Register all subcommands
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config once per process.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "tools", len(cfg.Markers)+len(cfg.Stickers))
	c.cfg = &cfg
	return cfg, nil
}

// installHooks routes editor, export, and cache events to the logger.
func installHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetEditorHooks(h)
	observability.SetExportHooks(h)
	observability.SetCacheHooks(h)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/sketchpad/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// basePath derives the output path without extension. With no explicit
// output, the input's name is used.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes one file per format to base.<format> and returns the
// paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := base + "." + f
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, err
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// contextOrBackground avoids nil contexts from commands executed without one.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
