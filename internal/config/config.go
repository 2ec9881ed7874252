package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/radiotk/internal/arrayops"
)

const (
	DefaultDataDir    = ".radiotk"
	DefaultPlotWidth  = 6.4
	DefaultPlotHeight = 4.8
	DefaultPlotFormat = "png"
	DefaultOrder      = 1
)

type Config struct {
	DataDir  string       `yaml:"data_dir"`
	LogLevel string       `yaml:"log_level"`
	Plot     PlotConfig   `yaml:"plot"`
	Pad      PadConfig    `yaml:"pad"`
	Resize   ResizeConfig `yaml:"resize"`
}

type PlotConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	OutDir string  `yaml:"outdir"`
	Format string  `yaml:"format"`
}

type PadConfig struct {
	Location string  `yaml:"location"`
	Mode     string  `yaml:"mode"`
	Value    float64 `yaml:"value"`
}

type ResizeConfig struct {
	Order     int    `yaml:"order"`
	Boundary  string `yaml:"boundary"`
	AntiAlias bool   `yaml:"anti_alias"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:  DefaultDataDir,
		LogLevel: "info",
		Plot: PlotConfig{
			Width:  DefaultPlotWidth,
			Height: DefaultPlotHeight,
			OutDir: "./",
			Format: DefaultPlotFormat,
		},
		Pad: PadConfig{
			Location: string(arrayops.PadEnd),
			Mode:     string(arrayops.ModeConstant),
		},
		Resize: ResizeConfig{
			Order:     DefaultOrder,
			Boundary:  string(arrayops.ModeReflect),
			AntiAlias: true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from RADIOTK_DATA and RADIOTK_DEBUG.
func (c *Config) ApplyEnv() {
	if s := Var("RADIOTK_DATA"); s != "" {
		c.DataDir = s
	}
	if s := Var("RADIOTK_DEBUG"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil && b {
			c.LogLevel = "debug"
		}
	}
}

// Var returns an environment variable with surrounding spaces and quotes removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// PadOptions converts the pad section into options for arrayops.
func (c *Config) PadOptions() ([]arrayops.PadOption, error) {
	mode, err := arrayops.ParsePadMode(c.Pad.Mode)
	if err != nil {
		return nil, err
	}
	return []arrayops.PadOption{
		arrayops.WithLocation(arrayops.PadLocation(c.Pad.Location)),
		arrayops.WithMode(mode),
		arrayops.WithConstant(c.Pad.Value),
	}, nil
}

// ResizeOptions converts the resize section into options for arrayops.
func (c *Config) ResizeOptions() ([]arrayops.ResizeOption, error) {
	mode, err := arrayops.ParsePadMode(c.Resize.Boundary)
	if err != nil {
		return nil, err
	}
	return []arrayops.ResizeOption{
		arrayops.WithOrder(c.Resize.Order),
		arrayops.WithBoundary(mode),
		arrayops.WithAntiAliasing(c.Resize.AntiAlias),
	}, nil
}
