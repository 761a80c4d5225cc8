package audio

import "time"

const (
	DefaultSampleRate   = 44100
	DefaultMasterVolume = 0.5

	// speakerBuffer trades latency for underrun safety
	speakerBuffer = 100 * time.Millisecond
)

// Config holds audio settings
type Config struct {
	Enabled      bool
	SampleRate   int
	MasterVolume float64 // 0.0 to 1.0
	CueVolumes   map[Cue]float64
}

// DefaultConfig returns the default audio configuration
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		SampleRate:   DefaultSampleRate,
		MasterVolume: DefaultMasterVolume,
		CueVolumes: map[Cue]float64{
			CueMove:    0.3,
			CuePlace:   0.6,
			CueInvalid: 0.5,
			CueWin:     0.8,
			CueDraw:    0.6,
		},
	}
}

// volume returns the effective gain for a cue
func (c Config) volume(cue Cue) float64 {
	v, ok := c.CueVolumes[cue]
	if !ok {
		v = 1.0
	}
	return clamp01(v) * clamp01(c.MasterVolume)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
