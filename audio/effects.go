package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the oscillator shape of a note
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// note is a single oscillator tone with a linear attack and release
type note struct {
	wave  WaveType
	step  float64 // Phase advance per sample
	phase float64

	pos     int
	total   int
	attack  int
	release int
}

func newNote(freq float64, d time.Duration, wave WaveType, attack, release time.Duration, rate beep.SampleRate) *note {
	return &note{
		wave:    wave,
		step:    freq / float64(rate),
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (n *note) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if n.pos >= n.total {
			return i, false
		}
		v := n.value() * n.gain()
		samples[i][0], samples[i][1] = v, v

		n.phase += n.step
		n.phase -= math.Floor(n.phase)
		n.pos++
	}
	return len(samples), true
}

func (n *note) Err() error { return nil }

// value is the raw wave at the current phase, in [-1, 1]
func (n *note) value() float64 {
	switch n.wave {
	case WaveSquare:
		if n.phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*n.phase - 1
	default:
		return math.Sin(2 * math.Pi * n.phase)
	}
}

// gain ramps up over attack and down over the final release samples
func (n *note) gain() float64 {
	g := 1.0
	if n.pos < n.attack {
		g = float64(n.pos) / float64(n.attack)
	}
	if left := n.total - n.pos; left < n.release {
		g = math.Min(g, float64(left)/float64(n.release))
	}
	return g
}

// newVolume scales s by a linear gain; zero or less is silent since Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	v := &effects.Volume{Streamer: s, Base: 2}
	if vol <= 0 {
		v.Silent = true
	} else {
		v.Volume = math.Log2(vol)
	}
	return v
}

// Note lengths and shaping
const (
	moveDuration    = 40 * time.Millisecond
	placeDuration   = 90 * time.Millisecond
	invalidDuration = 150 * time.Millisecond
	noteDuration    = 120 * time.Millisecond

	clickAttack  = 2 * time.Millisecond
	clickRelease = 20 * time.Millisecond
	noteAttack   = 5 * time.Millisecond
	noteRelease  = 60 * time.Millisecond
)

// createMoveSound is a short soft tick
func createMoveSound(rate beep.SampleRate) beep.Streamer {
	return newNote(660.0, moveDuration, WaveSine, clickAttack, clickRelease, rate)
}

// createPlaceSound is a square pluck with an octave overtone
// Take bounds the mix so it ends with its notes
func createPlaceSound(rate beep.SampleRate) beep.Streamer {
	return beep.Take(rate.N(placeDuration), beep.Mix(
		newVolume(newNote(440.0, placeDuration, WaveSquare, clickAttack, noteRelease, rate), 0.7),
		newVolume(newNote(880.0, placeDuration, WaveSine, clickAttack, clickRelease, rate), 0.3),
	))
}

// createInvalidSound is a low saw buzz
func createInvalidSound(rate beep.SampleRate) beep.Streamer {
	return newNote(100.0, invalidDuration, WaveSaw, noteAttack, clickRelease, rate)
}

// createWinSound is a rising major arpeggio (C6 E6 G6)
func createWinSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newNote(1046.50, noteDuration, WaveSine, noteAttack, noteRelease, rate),
		newNote(1318.51, noteDuration, WaveSine, noteAttack, noteRelease, rate),
		newNote(1567.98, 2*noteDuration, WaveSine, noteAttack, 2*noteRelease, rate),
	)
}

// createDrawSound is two falling notes (G5 C5)
func createDrawSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newNote(783.99, noteDuration, WaveSquare, noteAttack, noteRelease, rate),
		newNote(523.25, 2*noteDuration, WaveSquare, noteAttack, 2*noteRelease, rate),
	)
}

// CueDuration returns the playing length of a cue
func CueDuration(cue Cue) time.Duration {
	switch cue {
	case CueMove:
		return moveDuration
	case CuePlace:
		return placeDuration
	case CueInvalid:
		return invalidDuration
	case CueWin:
		return 4 * noteDuration
	case CueDraw:
		return 3 * noteDuration
	default:
		return 0
	}
}

// GetSoundEffect returns the cue's streamer at its configured volume
func GetSoundEffect(cue Cue, cfg Config) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)

	var s beep.Streamer
	switch cue {
	case CueMove:
		s = createMoveSound(rate)
	case CuePlace:
		s = createPlaceSound(rate)
	case CueInvalid:
		s = createInvalidSound(rate)
	case CueWin:
		s = createWinSound(rate)
	case CueDraw:
		s = createDrawSound(rate)
	default:
		return nil, ErrUnknownCue
	}
	return newVolume(s, cfg.volume(cue)), nil
}
