package input

import "sort"

// actionRegistry maps canonical action names to intents
// Used by the key config loader to resolve TOML action strings
var actionRegistry = map[string]IntentType{
	"quit":    IntentQuit,
	"up":      IntentUp,
	"down":    IntentDown,
	"left":    IntentLeft,
	"right":   IntentRight,
	"confirm": IntentConfirm,
	"restart": IntentRestart,
	"mute":    IntentMute,
}

// ActionIntent returns the intent for an action name
func ActionIntent(name string) (IntentType, bool) {
	it, ok := actionRegistry[name]
	return it, ok
}

// ActionName returns the canonical name of an intent, or "none"
func ActionName(it IntentType) string {
	for name, v := range actionRegistry {
		if v == it {
			return name
		}
	}
	return "none"
}

// ActionNames returns all action names, sorted
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
