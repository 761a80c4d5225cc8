// Package audio plays short synthesized cues for game events
package audio

import "errors"

// Cue identifies a sound effect
type Cue int

const (
	CueMove    Cue = iota // Cursor moved
	CuePlace              // Mark placed
	CueInvalid            // Rejected input
	CueWin                // Game won
	CueDraw               // Grid filled without a winner
	cueCount
)

var cueNames = [cueCount]string{"move", "place", "invalid", "win", "draw"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Sentinel errors
var (
	ErrNoAudioDevice = errors.New("no audio device")
	ErrUnknownCue    = errors.New("unknown cue")
)
