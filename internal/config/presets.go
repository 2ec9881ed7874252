package config

var Presets = map[string]*Config{
	"quicklook": {
		LogLevel: "warn",
		Plot:     PlotConfig{Width: 4, Height: 3, OutDir: "./", Format: "png"},
		Pad:      PadConfig{Location: "end", Mode: "edge"},
		Resize:   ResizeConfig{Order: 0, Boundary: "edge", AntiAlias: false},
	},
	"publication": {
		LogLevel: "info",
		Plot:     PlotConfig{Width: 8, Height: 6, OutDir: "./", Format: "pdf"},
		Pad:      PadConfig{Location: "center", Mode: "constant"},
		Resize:   ResizeConfig{Order: 1, Boundary: "reflect", AntiAlias: true},
	},
	"symmetric": {
		LogLevel: "info",
		Plot:     PlotConfig{Width: DefaultPlotWidth, Height: DefaultPlotHeight, OutDir: "./", Format: "png"},
		Pad:      PadConfig{Location: "center", Mode: "symmetric"},
		Resize:   ResizeConfig{Order: 1, Boundary: "symmetric", AntiAlias: true},
	},
}

// GetPreset returns a copy of the named preset with DataDir defaulted, or
// nil when no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
