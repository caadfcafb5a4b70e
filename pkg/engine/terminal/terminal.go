// Package terminal wraps the bits of golang.org/x/term the terminal host needs.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size returns the width and height of stdout, or the defaults when stdout
// is not a terminal.
func Size() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// RawMode puts a file into raw mode and remembers how to undo it.
type RawMode struct {
	fd    int
	state *term.State
}

// EnterRaw switches f to raw mode. Files that are not terminals are left
// alone and the returned RawMode restores nothing.
func EnterRaw(f *os.File) (*RawMode, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return &RawMode{fd: fd}, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &RawMode{fd: fd, state: state}, nil
}

// Active reports whether raw mode was actually entered.
func (r *RawMode) Active() bool {
	return r != nil && r.state != nil
}

// Restore puts the terminal back into the state it had before EnterRaw.
func (r *RawMode) Restore() error {
	if !r.Active() {
		return nil
	}
	err := term.Restore(r.fd, r.state)
	r.state = nil
	return err
}
