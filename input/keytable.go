package input

import "github.com/lixenwraith/tictac/terminal"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Esc)
	SpecialKeys map[terminal.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[terminal.Key]IntentType{
			terminal.KeyEscape: IntentQuit,
			terminal.KeyCtrlC:  IntentQuit,
			terminal.KeyUp:     IntentUp,
			terminal.KeyDown:   IntentDown,
			terminal.KeyLeft:   IntentLeft,
			terminal.KeyRight:  IntentRight,
			terminal.KeyEnter:  IntentConfirm,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'k': IntentUp,
			'j': IntentDown,
			'h': IntentLeft,
			'l': IntentRight,
			' ': IntentConfirm,
			'r': IntentRestart,
			'm': IntentMute,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		SpecialKeys: make(map[terminal.Key]IntentType, len(kt.SpecialKeys)),
		Runes:       make(map[rune]IntentType, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		c.SpecialKeys[k] = v
	}
	for r, v := range kt.Runes {
		c.Runes[r] = v
	}
	return c
}

// Resolve maps one key event to an intent; unbound keys yield IntentNone
// Alt-modified runes are left unbound so Esc-prefixed input never fires a rune binding
func (kt *KeyTable) Resolve(ev terminal.Event) Intent {
	if ev.Type != terminal.EventKey {
		return Intent{}
	}
	if ev.Key == terminal.KeyRune {
		if ev.Modifiers&terminal.ModAlt != 0 {
			return Intent{}
		}
		return Intent{Type: kt.Runes[ev.Rune], Key: string(ev.Rune)}
	}
	return Intent{Type: kt.SpecialKeys[ev.Key], Key: terminal.KeyName(ev.Key)}
}

// ResolveAll maps a key batch to intents, dropping unbound keys
func (kt *KeyTable) ResolveAll(events []terminal.Event) []Intent {
	var out []Intent
	for _, ev := range events {
		if in := kt.Resolve(ev); in.Type != IntentNone {
			out = append(out, in)
		}
	}
	return out
}

// unbindIntent removes every key bound to it
func (kt *KeyTable) unbindIntent(it IntentType) {
	for k, v := range kt.SpecialKeys {
		if v == it {
			delete(kt.SpecialKeys, k)
		}
	}
	for r, v := range kt.Runes {
		if v == it {
			delete(kt.Runes, r)
		}
	}
}
