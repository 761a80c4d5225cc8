// Package input maps terminal key events to game intents
package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit    // q, Esc, Ctrl+C
	IntentUp      // k, Up
	IntentDown    // j, Down
	IntentLeft    // h, Left
	IntentRight   // l, Right
	IntentConfirm // Enter, Space
	IntentRestart // r
	IntentMute    // m
)

// Intent is a resolved action with the key that produced it
type Intent struct {
	Type IntentType
	Key  string
}
