package terminal

import "fmt"

// bindableKeys lists the special keys a binding may name; the first name is canonical
// Ctrl+letter keys are added as ctrl_a..ctrl_z
var bindableKeys = []struct {
	key   Key
	names []string
}{
	{KeyEscape, []string{"escape", "esc"}},
	{KeyEnter, []string{"enter", "return"}},
	{KeyTab, []string{"tab"}},
	{KeyBackspace, []string{"backspace"}},
	{KeyUp, []string{"up"}},
	{KeyDown, []string{"down"}},
	{KeyLeft, []string{"left"}},
	{KeyRight, []string{"right"}},
	{KeyHome, []string{"home"}},
	{KeyEnd, []string{"end"}},
}

var (
	keyNames  = make(map[Key]string)
	namedKeys = make(map[string]Key)
)

func init() {
	for _, b := range bindableKeys {
		keyNames[b.key] = b.names[0]
		for _, n := range b.names {
			namedKeys[n] = b.key
		}
	}
	for k := KeyCtrlA; k <= KeyCtrlZ; k++ {
		n := fmt.Sprintf("ctrl_%c", 'a'+rune(k-KeyCtrlA))
		keyNames[k] = n
		namedKeys[n] = k
	}
}

// KeyName returns the canonical binding name of k, or "" when k cannot be bound by name
func KeyName(k Key) string {
	return keyNames[k]
}

// KeyByName resolves a binding name such as "up" or "ctrl_c"
func KeyByName(name string) (Key, bool) {
	k, ok := namedKeys[name]
	return k, ok
}
