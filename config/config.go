// Package config loads the optional YAML settings file. Every field has a
// default, so a missing file is not an error.
package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/perlw/vksurface/logger"
)

type Config struct {
	Window      Window `yaml:"window"`
	Log         Log    `yaml:"log"`
	Vulkan      Vulkan `yaml:"vulkan"`
	Render      Render `yaml:"render"`
	StatusPanel bool   `yaml:"status_panel"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Log struct {
	File          string `yaml:"file"`
	TerminalLevel string `yaml:"terminal_level"`
	FileLevel     string `yaml:"file_level"`
}

type Vulkan struct {
	Validation bool     `yaml:"validation"`
	Layers     []string `yaml:"layers"`
	// AcquireTimeout bounds a single swapchain image acquisition. Zero waits forever.
	AcquireTimeout time.Duration `yaml:"acquire_timeout"`
}

type Render struct {
	ClearColor []float64 `yaml:"clear_color"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "vksurface",
			Width:  800,
			Height: 600,
		},
		Log: Log{
			File:          "ignore.log",
			TerminalLevel: "warn",
			FileLevel:     "trace",
		},
		Vulkan: Vulkan{
			Layers:         []string{"VK_LAYER_KHRONOS_validation"},
			AcquireTimeout: time.Second,
		},
		Render: Render{
			ClearColor: []float64{0.1, 0.2, 0.3, 1.0},
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes data into cfg, keeping fields absent from data, then validates.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "decode yaml")
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := logger.ParseLevel(c.Log.TerminalLevel); err != nil {
		return errors.Wrap(err, "log.terminal_level")
	}
	if _, err := logger.ParseLevel(c.Log.FileLevel); err != nil {
		return errors.Wrap(err, "log.file_level")
	}
	if c.Vulkan.AcquireTimeout < 0 {
		return errors.New("vulkan.acquire_timeout must not be negative")
	}
	if len(c.Render.ClearColor) != 4 {
		return errors.Errorf("render.clear_color needs 4 components, got %d", len(c.Render.ClearColor))
	}
	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			return errors.Errorf("render.clear_color[%d] = %v is outside [0,1]", i, v)
		}
	}
	return nil
}
