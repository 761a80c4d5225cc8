// @focus: #sys { term }
// Package terminal provides direct ANSI terminal control for glyph rendering.
//
// Features:
//   - Raw mode via x/term, alternate screen, hidden cursor
//   - Positioned glyph writes with cursor-position coalescing
//   - Raw stdin input parsing with escape sequence handling
//   - tcell-backed alternative implementation of the same interface
//   - Clean terminal restoration on exit/panic
//
// The ANSI implementation bypasses terminfo/termcap entirely, emitting direct sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
