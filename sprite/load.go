package sprite

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// LoadError reports a sprite resource that could not be read
type LoadError struct {
	Label    string
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("sprite %q: load %s: %v", e.Label, e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FromReader builds a sprite from line-oriented text
// Height is the line count, width the longest line in runes
func FromReader(label string, r io.Reader) (*Sprite, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, &LoadError{Label: label, Resource: "reader", Err: err}
	}
	return fromLines(label, lines), nil
}

// FromFile loads a sprite from a text file on disk
func FromFile(label, path string) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Label: label, Resource: path, Err: err}
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, &LoadError{Label: label, Resource: path, Err: err}
	}
	return fromLines(label, lines), nil
}

// FromFS loads a sprite from a file in fsys, typically an embed.FS
func FromFS(fsys fs.FS, label, name string) (*Sprite, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, &LoadError{Label: label, Resource: name, Err: err}
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, &LoadError{Label: label, Resource: name, Err: err}
	}
	return fromLines(label, lines), nil
}

// readLines splits r on newlines, dropping a trailing carriage return per line
// Line length is unbounded; a final newline does not start an extra line
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if err == io.EOF {
			return lines, nil
		}
	}
}
