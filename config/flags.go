package config

import "flag"

// Flags holds command-line overrides; only flags set on the command line apply
type Flags struct {
	fs *flag.FlagSet

	Path    string
	width   int
	height  int
	fps     int
	backend string
	sound   bool
	debug   bool
	logDir  string
}

// RegisterFlags defines the override flags on fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.Path, "config", "", "config file (default: user config dir/tictac/config.toml)")
	fs.IntVar(&f.width, "width", d.Width, "frame width in cells")
	fs.IntVar(&f.height, "height", d.Height, "frame height in cells")
	fs.IntVar(&f.fps, "fps", d.FPS, "target frames per second")
	fs.StringVar(&f.backend, "backend", d.Backend, "terminal backend: ansi or tcell")
	fs.BoolVar(&f.sound, "sound", d.Sound, "play sound cues")
	fs.BoolVar(&f.debug, "debug", d.Debug, "write debug log to log dir")
	fs.StringVar(&f.logDir, "log-dir", d.LogDir, "log directory")
	return f
}

// Apply copies flags that were set explicitly onto cfg
func (f *Flags) Apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Width = f.width
		case "height":
			cfg.Height = f.height
		case "fps":
			cfg.FPS = f.fps
		case "backend":
			cfg.Backend = f.backend
		case "sound":
			cfg.Sound = f.sound
		case "debug":
			cfg.Debug = f.debug
		case "log-dir":
			cfg.LogDir = f.logDir
		}
	})
}
