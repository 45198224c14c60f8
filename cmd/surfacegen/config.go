package main

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the settings of a run. Values come from the defaults, then the TOML file, then the command line flags.
type Config struct {
	Title    string   `toml:"title"`
	XLabel   string   `toml:"xlabel"`
	YLabel   string   `toml:"ylabel"`
	ZLabel   string   `toml:"zlabel"`
	Truncate int      `toml:"truncate"`
	Output   []string `toml:"output"`
	Display  string   `toml:"display"`
	View     string   `toml:"view"`
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	DPI      int      `toml:"dpi"`
	Minify   bool     `toml:"minify"`
	Slice    string   `toml:"slice"`
	SliceOut string   `toml:"slice_output"`
	Log      string   `toml:"log"`
}

var DefaultConfig = Config{
	Display:  "window",
	View:     "-60,30",
	Width:    16.0,
	Height:   12.0,
	DPI:      96,
	SliceOut: "section.png",
	Log:      "info",
}

// LoadConfig returns the default config overwritten by the keys of the TOML file, if any.
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig
	if filename == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(filename, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", filename)
	}
	if undecoded := md.Undecoded(); 0 < len(undecoded) {
		return Config{}, errors.Errorf("config %s: unknown key %v", filename, undecoded[0])
	}
	return cfg, nil
}

// Merge overwrites the config with the flags that are set. The log level falls back to env when the flag is empty.
func (cfg *Config) Merge(cmd *Surfacegen, env string) {
	setString := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	setString(&cfg.Title, cmd.Title)
	setString(&cfg.XLabel, cmd.XLabel)
	setString(&cfg.YLabel, cmd.YLabel)
	setString(&cfg.ZLabel, cmd.ZLabel)
	setString(&cfg.Display, cmd.Display)
	setString(&cfg.View, cmd.View)
	setString(&cfg.Slice, cmd.Slice)
	setString(&cfg.SliceOut, cmd.SliceOut)
	setString(&cfg.Log, env)
	setString(&cfg.Log, cmd.Log)

	if cmd.Truncate != 0 {
		cfg.Truncate = cmd.Truncate
	}
	if cmd.Output != "" {
		cfg.Output = cfg.Output[:0:0]
		for _, output := range strings.Split(cmd.Output, ",") {
			if output = strings.TrimSpace(output); output != "" {
				cfg.Output = append(cfg.Output, output)
			}
		}
	}
	if cmd.Width != 0.0 {
		cfg.Width = cmd.Width
	}
	if cmd.Height != 0.0 {
		cfg.Height = cmd.Height
	}
	if cmd.DPI != 0 {
		cfg.DPI = cmd.DPI
	}
	if cmd.Minify {
		cfg.Minify = true
	}
}
