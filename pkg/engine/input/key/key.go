// Package key defines the fixed set of physical key identifiers known to the
// input layer.
//
// The set is closed at build time. All returns every key except None in
// declaration order, and that order is the enumeration order used when several
// keys go down on the same tick: the earlier constant wins.
package key

import (
	"errors"
	"fmt"
	"strings"
)

// Key identifies a physical key or pointer button.
type Key uint16

// None means "unbound". It never reports an edge.
const None Key = 0

const (
	// Letters
	A Key = iota + 1
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z

	// Digit row
	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	// Editing and whitespace
	Space
	Enter
	Escape
	Tab
	Backspace
	Insert
	Delete
	Home
	End
	PageUp
	PageDown

	// Arrows
	Up
	Down
	Left
	Right

	// Modifiers
	LeftShift
	RightShift
	LeftControl
	RightControl
	LeftAlt
	RightAlt
	CapsLock

	// Punctuation
	Minus
	Equal
	Comma
	Period
	Slash
	Semicolon
	Quote
	LeftBracket
	RightBracket
	Backslash
	Backquote

	// Keypad
	Keypad0
	Keypad1
	Keypad2
	Keypad3
	Keypad4
	Keypad5
	Keypad6
	Keypad7
	Keypad8
	Keypad9
	KeypadAdd
	KeypadSubtract
	KeypadMultiply
	KeypadDivide
	KeypadEnter

	// Pointer buttons
	Mouse0
	Mouse1
	Mouse2

	count
)

// ErrUnknownKey is returned by Parse for names that do not identify a key.
var ErrUnknownKey = errors.New("unknown key")

var names = [count]string{
	None: "None",
	A:    "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G", H: "H", I: "I",
	J: "J", K: "K", L: "L", M: "M", N: "N", O: "O", P: "P", Q: "Q", R: "R",
	S: "S", T: "T", U: "U", V: "V", W: "W", X: "X", Y: "Y", Z: "Z",
	Digit0: "Alpha0", Digit1: "Alpha1", Digit2: "Alpha2", Digit3: "Alpha3", Digit4: "Alpha4",
	Digit5: "Alpha5", Digit6: "Alpha6", Digit7: "Alpha7", Digit8: "Alpha8", Digit9: "Alpha9",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	Space:     "Space",
	Enter:     "Return",
	Escape:    "Escape",
	Tab:       "Tab",
	Backspace: "Backspace",
	Insert:    "Insert",
	Delete:    "Delete",
	Home:      "Home",
	End:       "End",
	PageUp:    "PageUp",
	PageDown:  "PageDown",
	Up:        "UpArrow",
	Down:      "DownArrow",
	Left:      "LeftArrow",
	Right:     "RightArrow",

	LeftShift:    "LeftShift",
	RightShift:   "RightShift",
	LeftControl:  "LeftControl",
	RightControl: "RightControl",
	LeftAlt:      "LeftAlt",
	RightAlt:     "RightAlt",
	CapsLock:     "CapsLock",

	Minus:        "Minus",
	Equal:        "Equals",
	Comma:        "Comma",
	Period:       "Period",
	Slash:        "Slash",
	Semicolon:    "Semicolon",
	Quote:        "Quote",
	LeftBracket:  "LeftBracket",
	RightBracket: "RightBracket",
	Backslash:    "Backslash",
	Backquote:    "BackQuote",

	Keypad0: "Keypad0", Keypad1: "Keypad1", Keypad2: "Keypad2", Keypad3: "Keypad3",
	Keypad4: "Keypad4", Keypad5: "Keypad5", Keypad6: "Keypad6", Keypad7: "Keypad7",
	Keypad8: "Keypad8", Keypad9: "Keypad9",
	KeypadAdd:      "KeypadPlus",
	KeypadSubtract: "KeypadMinus",
	KeypadMultiply: "KeypadMultiply",
	KeypadDivide:   "KeypadDivide",
	KeypadEnter:    "KeypadEnter",

	Mouse0: "Mouse0",
	Mouse1: "Mouse1",
	Mouse2: "Mouse2",
}

var (
	all    []Key
	byName map[string]Key
)

func init() {
	all = make([]Key, 0, count-1)
	byName = make(map[string]Key, count)
	for k := Key(0); k < count; k++ {
		byName[strings.ToLower(names[k])] = k
		if k != None {
			all = append(all, k)
		}
	}
}

// All returns every key except None, in enumeration order.
// The returned slice must not be modified.
func All() []Key {
	return all
}

// Valid reports whether k is a member of the enumeration (None included).
func (k Key) Valid() bool {
	return k < count
}

// String returns the canonical name of the key. The name is what gets
// written to the settings store, so it must stay stable.
func (k Key) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Key(%d)", uint16(k))
	}
	return names[k]
}

// Parse resolves a key name case-insensitively. An empty string parses as None.
func Parse(name string) (Key, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return None, nil
	}
	if k, ok := byName[strings.ToLower(name)]; ok {
		return k, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
