// Package config loads the optional geoquick TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/geoquick/config.toml (or
// ~/.config/geoquick/config.toml) unless a path is given explicitly. A
// missing file is not an error; every setting has a default.
//
//	[columns]
//	type = "type"
//	location = "Location"
//
//	[defaults]
//	color = "#1f77b4"
//	symbol = "circle"
//	size = 20
//	opacity = 0.9
//	fresh_size = 10
//
//	[binning]
//	mode = "equal-width"
//	bins = 4
//
//	[cache]
//	ttl = "1h"
//
//	[[types]]
//	name = "komatiite"
//	symbol = "star"
//	base_color = "#aa00ff"
//	size = 18
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/geoquick/pkg/binning"
	"github.com/matzehuels/geoquick/pkg/errors"
	"github.com/matzehuels/geoquick/pkg/style"
)

// Config is the decoded configuration file.
type Config struct {
	Columns  Columns    `toml:"columns"`
	Defaults Defaults   `toml:"defaults"`
	Binning  Binning    `toml:"binning"`
	Cache    Cache      `toml:"cache"`
	Types    []TypeSeed `toml:"types"`

	base      *style.BaseTable
	validated bool
}

// Columns names the conventional dataset columns.
type Columns struct {
	Type     string `toml:"type"`
	Location string `toml:"location"`
}

// Defaults are the fallback style attributes.
type Defaults struct {
	Color     string  `toml:"color"`
	Symbol    string  `toml:"symbol"`
	Size      int     `toml:"size"`
	Opacity   float64 `toml:"opacity"`
	FreshSize int     `toml:"fresh_size"`
}

// Binning holds the default binning settings.
type Binning struct {
	Mode string `toml:"mode"`
	Bins int    `toml:"bins"`
}

// Cache configures the remote dataset cache.
type Cache struct {
	Dir string `toml:"dir"`
	TTL string `toml:"ttl"`

	ttl time.Duration
}

// TypeSeed adds an entry to the base style table.
type TypeSeed struct {
	Name      string `toml:"name"`
	Symbol    string `toml:"symbol"`
	BaseColor string `toml:"base_color"`
	Size      int    `toml:"size"`
}

// DefaultTTL is the cache lifetime used when none is configured.
const DefaultTTL = time.Hour

// DefaultPath returns the configuration file location.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "geoquick", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "geoquick", "config.toml"), nil
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	c := &Config{}
	_ = c.ValidateAndSetDefaults()
	return c
}

// Load reads and validates the file at path. An empty path selects
// [DefaultPath]; a missing default file yields [Default]. A missing file at
// an explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates configuration text.
func Parse(data []byte) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undec[0].String())
	}
	if err := c.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidateAndSetDefaults fills unset values and rejects invalid ones.
// Calling it again after success is a no-op.
func (c *Config) ValidateAndSetDefaults() error {
	if c.validated {
		return nil
	}

	if c.Columns.Type == "" {
		c.Columns.Type = style.DefaultTypeColumn
	}
	if c.Columns.Location == "" {
		c.Columns.Location = style.DefaultLocationColumn
	}
	for _, col := range []string{c.Columns.Type, c.Columns.Location} {
		if err := errors.ValidateColumnName(col); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "columns")
		}
	}

	if err := c.Defaults.setDefaults(); err != nil {
		return err
	}

	mode, err := binning.ParseMode(c.Binning.Mode)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "binning")
	}
	c.Binning.Mode = string(mode)
	if c.Binning.Bins == 0 {
		c.Binning.Bins = binning.DefaultBins
	}
	if c.Binning.Bins < binning.MinBins || c.Binning.Bins > binning.MaxBins {
		return errors.New(errors.ErrCodeInvalidConfig, "binning.bins %d out of range [%d, %d]", c.Binning.Bins, binning.MinBins, binning.MaxBins)
	}

	c.Cache.ttl = DefaultTTL
	if c.Cache.TTL != "" {
		d, err := time.ParseDuration(c.Cache.TTL)
		if err != nil || d < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl %q is not a valid duration", c.Cache.TTL)
		}
		c.Cache.ttl = d
	}

	extra := make(map[string]style.Seed, len(c.Types))
	for _, t := range c.Types {
		if _, dup := extra[t.Name]; dup {
			return errors.New(errors.ErrCodeInvalidConfig, "type %q configured twice", t.Name)
		}
		extra[t.Name] = style.Seed{Symbol: t.Symbol, BaseColor: t.BaseColor, Size: t.Size}
	}
	base, err := style.NewBaseTable(extra)
	if err != nil {
		return err
	}
	c.base = base
	c.validated = true
	return nil
}

func (d *Defaults) setDefaults() error {
	if d.Color == "" {
		d.Color = style.DefaultColor
	}
	d.Color = style.NormalizeHex(d.Color)
	if !style.ValidHex(d.Color) {
		return errors.New(errors.ErrCodeInvalidConfig, "defaults.color %q is not #rrggbb", d.Color)
	}
	if d.Symbol == "" {
		d.Symbol = style.DefaultSymbol
	}
	if !style.IsSymbol(d.Symbol) {
		return errors.New(errors.ErrCodeInvalidConfig, "defaults.symbol %q is not a known symbol", d.Symbol)
	}
	if d.Size == 0 {
		d.Size = style.DefaultSize
	}
	if d.FreshSize == 0 {
		d.FreshSize = style.DefaultFreshSize
	}
	if d.Size < 0 || d.FreshSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "defaults sizes must be positive")
	}
	if d.Opacity == 0 {
		d.Opacity = style.DefaultOpacity
	}
	if d.Opacity < 0 || d.Opacity > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "defaults.opacity %v out of range [0, 1]", d.Opacity)
	}
	return nil
}

// StyleOptions returns the options passed to style.Build and style.Derive.
func (c *Config) StyleOptions() style.Options {
	_ = c.ValidateAndSetDefaults()
	return style.Options{
		TypeColumn:     c.Columns.Type,
		LocationColumn: c.Columns.Location,
		Base:           c.base,
		Defaults: style.Defaults{
			Color:        c.Defaults.Color,
			Symbol:       c.Defaults.Symbol,
			Size:         c.Defaults.Size,
			Opacity:      c.Defaults.Opacity,
			FreshSize:    c.Defaults.FreshSize,
			OutlineColor: style.DefaultOutlineColor,
			OutlineWidth: style.DefaultOutlineWidth,
		},
	}
}

// BinMode returns the configured binning mode.
func (c *Config) BinMode() binning.Mode { return binning.Mode(c.Binning.Mode) }

// CacheTTL returns the parsed cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.ttl == 0 && c.Cache.TTL == "" {
		return DefaultTTL
	}
	return c.Cache.ttl
}
