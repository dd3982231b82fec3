// Package config loads sketchpad settings from TOML.
//
// Every field has a default, so a missing config file is not an error. A
// file only needs the keys it wants to change:
//
//	seed = 7
//	stickers = ["🐸", "🌮", "🎃", "🦄"]
//
//	[canvas]
//	width = 256
//	height = 256
//
//	[export]
//	width = 2048
//	height = 2048
//	background = "transparent"
//	ink = "#1a1a1a"
//
//	[[markers]]
//	name = "Thin"
//	thickness = 2
//
// The file is read from --config, or from $XDG_CONFIG_HOME/sketchpad/config.toml
// (~/.config/sketchpad/config.toml) when that exists.
package config

import (
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sketchpad/pkg/errors"
	"github.com/matzehuels/sketchpad/pkg/pipeline"
	"github.com/matzehuels/sketchpad/pkg/render"
	"github.com/matzehuels/sketchpad/pkg/tool"
)

const appName = "sketchpad"

// Size is a width and height in pixels.
type Size struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Export configures exported images.
type Export struct {
	Size
	Format     string `toml:"format"`
	Background string `toml:"background"`
	Ink        string `toml:"ink"`
}

// MarkerPreset is one marker tool in the palette.
type MarkerPreset struct {
	Name      string  `toml:"name"`
	Thickness float64 `toml:"thickness"`
}

// Server configures `sketchpad serve`.
type Server struct {
	Addr        string `toml:"addr"`
	MaxSessions int    `toml:"max_sessions"`
	CacheDir    string `toml:"cache_dir"` // empty keeps artifacts in memory
}

// Config is the full set of settings.
type Config struct {
	Canvas   Size           `toml:"canvas"`
	Export   Export         `toml:"export"`
	Markers  []MarkerPreset `toml:"markers"`
	Stickers []string       `toml:"stickers"`
	Seed     uint64         `toml:"seed"` // 0 picks a random seed per run
	Font     string         `toml:"font"` // TTF/OTF path; empty uses the embedded faces
	Server   Server         `toml:"server"`
}

// Defaults that reproduce the classic palette.
var (
	DefaultMarkers = []MarkerPreset{
		{Name: "Thin", Thickness: 2},
		{Name: "Thick", Thickness: 6},
	}
	DefaultStickers = []string{"🐸", "🌮", "🎃"}
)

const (
	DefaultAddr        = ":8080"
	DefaultMaxSessions = 64
)

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero-valued fields. Markers and stickers are only
// defaulted when both are empty, so a file can drop one family entirely.
func (c *Config) SetDefaults() {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = render.DefaultCanvasSize
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = render.DefaultCanvasSize
	}
	if c.Export.Width == 0 {
		c.Export.Width = render.DefaultExportSize
	}
	if c.Export.Height == 0 {
		c.Export.Height = render.DefaultExportSize
	}
	if c.Export.Format == "" {
		c.Export.Format = pipeline.FormatPNG
	}
	if c.Export.Background == "" {
		c.Export.Background = pipeline.DefaultBackground
	}
	if c.Export.Ink == "" {
		c.Export.Ink = pipeline.DefaultInk
	}
	if len(c.Markers) == 0 && len(c.Stickers) == 0 {
		c.Markers = append([]MarkerPreset(nil), DefaultMarkers...)
		c.Stickers = append([]string(nil), DefaultStickers...)
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.MaxSessions == 0 {
		c.Server.MaxSessions = DefaultMaxSessions
	}
}

// Validate checks the configuration. Call SetDefaults first.
func (c *Config) Validate() error {
	if err := errors.ValidateSize(c.Canvas.Width, c.Canvas.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "canvas")
	}
	if err := errors.ValidateSize(c.Export.Width, c.Export.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "export")
	}
	if err := pipeline.ValidateFormat(c.Export.Format); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "export")
	}
	if _, err := pipeline.ParseColor(c.Export.Background); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "export")
	}
	if _, err := pipeline.ParseColor(c.Export.Ink); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "export ink")
	}
	if len(c.Markers)+len(c.Stickers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no tools configured")
	}

	seen := make(map[string]bool)
	for i, m := range c.Markers {
		if strings.TrimSpace(m.Name) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "markers[%d]: name is empty", i)
		}
		if err := errors.ValidateThickness(m.Thickness); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "markers[%d]", i)
		}
		if seen[m.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate tool name %q", m.Name)
		}
		seen[m.Name] = true
	}
	for i, s := range c.Stickers {
		if strings.TrimSpace(s) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "stickers[%d]: symbol is empty", i)
		}
		if err := errors.ValidateSymbol(s); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "stickers[%d]", i)
		}
		if seen[s] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate tool name %q", s)
		}
		seen[s] = true
	}
	if c.Server.MaxSessions < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_sessions must not be negative")
	}
	return nil
}

// Parse decodes TOML, applies defaults, and validates.
func Parse(data []byte) (Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the config at path. An empty path tries [DefaultPath] and falls
// back to [Default] when no file exists there.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	return Parse(data)
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// NewRegistry builds the tool palette: markers first, then stickers.
func (c *Config) NewRegistry() *tool.Registry {
	return c.registry(c.Seed)
}

// SessionRegistry builds the palette for one server session. A fixed seed is
// mixed with id, so sessions differ from each other yet replay the same way
// for the same ID.
func (c *Config) SessionRegistry(id string) *tool.Registry {
	seed := c.Seed
	if seed != 0 {
		h := fnv.New64a()
		h.Write([]byte(id))
		if seed ^= h.Sum64(); seed == 0 {
			seed = c.Seed
		}
	}
	return c.registry(seed)
}

func (c *Config) registry(seed uint64) *tool.Registry {
	reg := tool.NewRegistry(tool.NewRand(seed))
	for _, m := range c.Markers {
		reg.Add(tool.NewMarker(m.Name, m.Thickness))
	}
	for _, s := range c.Stickers {
		reg.Add(tool.NewSticker(s, reg.Rand()))
	}
	return reg
}

// ExportOptions returns pipeline options for the configured export.
func (c *Config) ExportOptions(formats ...string) pipeline.Options {
	if len(formats) == 0 {
		formats = []string{c.Export.Format}
	}
	return pipeline.Options{
		Formats:      formats,
		SourceWidth:  c.Canvas.Width,
		SourceHeight: c.Canvas.Height,
		Width:        c.Export.Width,
		Height:       c.Export.Height,
		Background:   c.Export.Background,
		Ink:          c.Export.Ink,
		Font:         c.Font,
	}
}
