package audio

import (
	"fmt"
	"io"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"
)

// Player mixes cues into the speaker
// Without an audio device it stays silent; Play never fails
type Player struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	log         logrus.FieldLogger

	played  [cueCount]uint64
	skipped uint64
}

// NewPlayer creates an uninitialized, silent player
func NewPlayer(cfg Config, log logrus.FieldLogger) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		log:   log.WithField("component", "audio"),
	}
}

// Init opens the speaker; on error the player keeps working silently
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(speakerBuffer)); err != nil {
		return fmt.Errorf("%w: %w", ErrNoAudioDevice, err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.log.WithField("sample_rate", p.cfg.SampleRate).Debug("speaker ready")
	return nil
}

// Close stops all sounds and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false

	p.log.WithFields(logrus.Fields{
		"played":  p.playedTotal(),
		"skipped": p.skipped,
	}).Debug("speaker closed")
}

// Play queues cue on the mixer
func (p *Player) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		p.skipped++
		return
	}

	s, err := GetSoundEffect(cue, p.cfg)
	if err != nil {
		p.log.WithError(err).WithField("cue", int(cue)).Warn("cue dropped")
		return
	}

	// The mixer is read by the speaker goroutine
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played[cue]++
}

// ToggleMute flips mute and returns the new state
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.muted && p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
	return p.muted
}

// Muted reports whether cues are suppressed
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Active reports whether a speaker is open
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Played returns how many times cue reached the mixer
func (p *Player) Played(cue Cue) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cue < 0 || cue >= cueCount {
		return 0
	}
	return p.played[cue]
}

// Skipped returns cues suppressed by mute or a missing device
func (p *Player) Skipped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.skipped
}

func (p *Player) playedTotal() uint64 {
	var n uint64
	for _, c := range p.played {
		n += c
	}
	return n
}
