package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lixenwraith/tictac/terminal"
)

// Rune aliases for keys that can't be bare single-char TOML values
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// LoadKeyConfig builds a key table from the defaults and action → key name overrides
// An action present in overrides loses all default keys; an empty list unbinds it
// Returns error on unknown action names or invalid key names
func LoadKeyConfig(overrides map[string][]string) (*KeyTable, error) {
	kt := DefaultKeyTable()
	if len(overrides) == 0 {
		return kt, nil
	}

	// Deterministic order so a key listed under two actions resolves the same way every run
	actions := make([]string, 0, len(overrides))
	for name := range overrides {
		actions = append(actions, name)
	}
	sort.Strings(actions)

	for _, name := range actions {
		it, err := resolveAction(name)
		if err != nil {
			return nil, err
		}
		kt.unbindIntent(it)
	}

	for _, name := range actions {
		it, _ := resolveAction(name)
		for _, keyStr := range overrides[name] {
			if err := bind(kt, keyStr, it); err != nil {
				return nil, fmt.Errorf("[keys] %s: %w", name, err)
			}
		}
	}

	return kt, nil
}

// bind resolves keyStr as a named special key first, then as a rune
func bind(kt *KeyTable, keyStr string, it IntentType) error {
	name := strings.ToLower(strings.TrimSpace(keyStr))
	if k, ok := terminal.KeyByName(name); ok && k != terminal.KeyRune {
		kt.SpecialKeys[k] = it
		return nil
	}
	r, err := resolveRune(keyStr)
	if err != nil {
		return err
	}
	kt.Runes[r] = it
	return nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid key: %q (expected key name, single character or alias)", s)
}

// resolveAction converts an action name string to an intent
func resolveAction(name string) (IntentType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	it, ok := ActionIntent(name)
	if !ok {
		return IntentNone, fmt.Errorf("unknown action: %q", name)
	}
	return it, nil
}
