//go:build !linux

package terminal

// resetTerminalMode is a no-op where TCGETS is unavailable; EmergencyReset still writes the escape sequences
func resetTerminalMode() {}
