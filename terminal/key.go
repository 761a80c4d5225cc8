// @focus: #sys { io } #input { keys }
package terminal

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete
	KeyInsert

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter, contiguous so KeyCtrlA+n maps control byte n+1
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// keySeq binds the bytes following ESC [ or ESC O to a key
type keySeq struct {
	key Key
	mod Modifier
}

// CSI final bytes for keys reported as ESC [ X or ESC [ 1 ; m X
var csiLetterKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

// CSI numeric codes for keys reported as ESC [ N ~ or ESC [ N ; m ~
var csiTildeKeys = map[string]Key{
	"1":  KeyHome,
	"2":  KeyInsert,
	"3":  KeyDelete,
	"4":  KeyEnd,
	"5":  KeyPageUp,
	"6":  KeyPageDown,
	"7":  KeyHome,
	"8":  KeyEnd,
	"11": KeyF1,
	"12": KeyF2,
	"13": KeyF3,
	"14": KeyF4,
	"15": KeyF5,
	"17": KeyF6,
	"18": KeyF7,
	"19": KeyF8,
	"20": KeyF9,
	"21": KeyF10,
	"23": KeyF11,
	"24": KeyF12,
}

// SS3 sequences (ESC O X)
var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
	'M': KeyEnter, // Keypad Enter
}

// xterm modifier parameter: value-1 is a Shift|Alt|Ctrl bitmask in that order
var xtermMods = [...]Modifier{
	2: ModShift,
	3: ModAlt,
	4: ModShift | ModAlt,
	5: ModCtrl,
	6: ModShift | ModCtrl,
	7: ModAlt | ModCtrl,
	8: ModShift | ModAlt | ModCtrl,
}

// csiMap holds every recognized CSI body, expanded once from the tables above
var csiMap = buildCSIMap()

func buildCSIMap() map[string]keySeq {
	m := make(map[string]keySeq, 256)

	for final, key := range csiLetterKeys {
		m[string(final)] = keySeq{key: key}
		for code := 2; code < len(xtermMods); code++ {
			m["1;"+itoa(code)+string(final)] = keySeq{key: key, mod: xtermMods[code]}
		}
	}
	m["Z"] = keySeq{key: KeyBacktab, mod: ModShift}

	for num, key := range csiTildeKeys {
		m[num+"~"] = keySeq{key: key}
		for code := 2; code < len(xtermMods); code++ {
			m[num+";"+itoa(code)+"~"] = keySeq{key: key, mod: xtermMods[code]}
		}
	}

	// Linux console function keys
	m["[A"] = keySeq{key: KeyF1}
	m["[B"] = keySeq{key: KeyF2}
	m["[C"] = keySeq{key: KeyF3}
	m["[D"] = keySeq{key: KeyF4}
	m["[E"] = keySeq{key: KeyF5}

	return m
}

// lookupCSI maps a CSI body (bytes after ESC [) to a key
// The string([]byte) conversion inside the map index does not allocate
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}

func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}
