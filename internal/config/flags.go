package config

import "flag"

// Flags holds the command-line overrides shared by the blockie binaries.
type Flags struct {
	fs *flag.FlagSet

	Path      string
	Width     int
	Height    int
	Bounds    string
	Seed      uint64
	LogLevel  string
	LogFile   string
	Mute      bool
	NoMetrics bool
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Path, "config", "", "Path to a YAML config file.")
	fs.IntVar(&f.Width, "width", 0, "Grid width in cells.")
	fs.IntVar(&f.Height, "height", 0, "Grid height in cells.")
	fs.StringVar(&f.Bounds, "bounds", "", "Shot overlap rule: inclusive or strict.")
	fs.Uint64Var(&f.Seed, "seed", 0, "Debug colour seed; zero picks one at random.")
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error).")
	fs.StringVar(&f.LogFile, "log-file", "", "Write JSON logs to this file.")
	fs.BoolVar(&f.Mute, "mute", false, "Disable sound cues.")
	fs.BoolVar(&f.NoMetrics, "no-metrics", false, "Disable in-process metrics collection.")
	return f
}

// Load reads the config file named by -config, applies every flag that was
// set explicitly on the command line and validates the result. Call after
// fs.Parse.
func (f *Flags) Load() (*Config, error) {
	cfg, err := load(f.Path)
	if err != nil {
		return nil, err
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Grid.Width = f.Width
		case "height":
			cfg.Grid.Height = f.Height
		case "bounds":
			cfg.Grid.Bounds = f.Bounds
		case "seed":
			cfg.Seed = f.Seed
		case "log-level":
			cfg.Log.Level = f.LogLevel
		case "log-file":
			cfg.Log.File = f.LogFile
		case "mute":
			cfg.Audio.Enabled = !f.Mute
		case "no-metrics":
			cfg.Metrics.Enabled = !f.NoMetrics
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
