package audio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to exhaustion and returns the sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Streamer never finished")
	return 0, 0
}

func TestNoteWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw} {
		n := newNote(440.0, 50*time.Millisecond, wave, 0, 0, rate)
		count, peak := drain(t, n)
		if count != rate.N(50*time.Millisecond) {
			t.Errorf("Wave %d: expected %d samples, got %d", wave, rate.N(50*time.Millisecond), count)
		}
		if peak > 1.0 || peak == 0 {
			t.Errorf("Wave %d: expected peak in (0, 1], got %f", wave, peak)
		}
		if n.Err() != nil {
			t.Errorf("Wave %d: expected no error, got %v", wave, n.Err())
		}
	}
}

func TestNoteEnvelopeEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	// Zero frequency square holds +1, leaving only the envelope
	n := newNote(0, 100*time.Millisecond, WaveSquare, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	count, _ := n.Stream(samples)
	if count != 100 {
		t.Fatalf("Expected 100 samples, got %d", count)
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", samples[0][0])
	}
	if samples[50][0] != 1.0 {
		t.Errorf("Expected full volume at sustain, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[90][0] {
		t.Errorf("Expected release to fade, got %f then %f", samples[90][0], samples[99][0])
	}
	if samples[99][0] <= 0 {
		t.Errorf("Expected last sample above zero, got %f", samples[99][0])
	}

	if count, ok := n.Stream(samples); count != 0 || ok {
		t.Errorf("Expected drained note, got %d %v", count, ok)
	}
}

func TestGetSoundEffectLengths(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	for c := CueMove; c < cueCount; c++ {
		t.Run(c.String(), func(t *testing.T) {
			s, err := GetSoundEffect(c, cfg)
			if err != nil {
				t.Fatal(err)
			}
			n, peak := drain(t, s)
			want := rate.N(CueDuration(c))
			// Sequenced notes round each part separately
			if d := n - want; d < -4 || d > 4 {
				t.Errorf("Expected about %d samples, got %d", want, n)
			}
			if peak == 0 {
				t.Error("Expected audible output")
			}
		})
	}
}

func TestGetSoundEffectMutedVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 0

	s, err := GetSoundEffect(CueWin, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, peak := drain(t, s); peak != 0 {
		t.Errorf("Expected silence at zero volume, got peak %f", peak)
	}
}

func TestGetSoundEffectUnknown(t *testing.T) {
	if _, err := GetSoundEffect(cueCount, DefaultConfig()); !errors.Is(err, ErrUnknownCue) {
		t.Errorf("Expected ErrUnknownCue, got %v", err)
	}
	if Cue(-1).String() != "unknown" {
		t.Error("Expected unknown name for out-of-range cue")
	}
}
