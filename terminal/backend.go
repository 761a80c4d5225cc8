package terminal

// Backend abstracts the platform tty: raw mode, byte output and polled input
type Backend interface {
	// Init switches the input side to raw mode
	Init() error

	// Fini restores the input mode saved by Init
	Fini()

	// Size reports the tty dimensions in cells
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) (int, error)

	// Read blocks until input is available, the stop channel is closed, or an error occurs
	// A nil slice with nil error means timeout or stop; callers re-check stopCh
	Read(stopCh <-chan struct{}) ([]byte, error)
}
