package device

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/zyedidia/generic/mapset"

	"actionmap/pkg/engine/input/key"
	"actionmap/pkg/engine/terminal"
)

// DefaultHold is how long a terminal key stays down after its last byte
// arrived. Terminals report no key releases, so a key is treated as held while
// auto-repeat keeps refreshing it; the hold has to outlast the repeat delay
// (usually 250 to 600ms) or a held key reads as press, release, press.
const DefaultHold = 700 * time.Millisecond

// DefaultHoldTicks is DefaultHold at 60 ticks per second, rounded up.
const DefaultHoldTicks = 43

// HoldTicks converts a hold duration to ticks of the given interval,
// rounding up. Non-positive arguments select DefaultHoldTicks.
func HoldTicks(hold, interval time.Duration) int {
	if hold <= 0 || interval <= 0 {
		return DefaultHoldTicks
	}
	return int((hold + interval - 1) / interval)
}

// Terminal reads keys from a raw-mode terminal.
type Terminal struct {
	in        io.Reader
	raw       *terminal.RawMode
	holdTicks int

	keys      chan key.Key
	interrupt chan struct{}
	readErr   chan error

	remaining map[key.Key]int
	cur       mapset.Set[key.Key]
	prev      mapset.Set[key.Key]
}

// NewTerminal creates a terminal device reading from in. holdTicks <= 0
// selects DefaultHoldTicks.
func NewTerminal(in io.Reader, holdTicks int) *Terminal {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &Terminal{
		in:        in,
		holdTicks: holdTicks,
		keys:      make(chan key.Key, 64),
		interrupt: make(chan struct{}),
		readErr:   make(chan error, 1),
		remaining: make(map[key.Key]int),
		cur:       mapset.New[key.Key](),
		prev:      mapset.New[key.Key](),
	}
}

// Start enters raw mode when reading from a terminal and starts the reader
// goroutine.
func (t *Terminal) Start() error {
	if f, ok := t.in.(*os.File); ok {
		raw, err := terminal.EnterRaw(f)
		if err != nil {
			return err
		}
		t.raw = raw
	}
	go t.read()
	return nil
}

// Close restores the terminal. The reader goroutine ends with the process
// since a blocking read on stdin cannot be interrupted.
func (t *Terminal) Close() error {
	return t.raw.Restore()
}

// Interrupted is closed when Ctrl+C is read.
func (t *Terminal) Interrupted() <-chan struct{} {
	return t.interrupt
}

// Err delivers the error that stopped the reader, if any.
func (t *Terminal) Err() <-chan error {
	return t.readErr
}

func (t *Terminal) read() {
	buf := make([]byte, 32)
	interrupted := false
	for {
		n, err := t.in.Read(buf)
		if n > 0 {
			if !interrupted && containsInterrupt(buf[:n]) {
				interrupted = true
				close(t.interrupt)
			}
			for _, k := range decodeKeys(buf[:n]) {
				select {
				case t.keys <- k:
				default:
					// tick loop is behind, drop input
				}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.readErr <- err
			}
			return
		}
	}
}

// Poll drains the keys read since the last tick and latches the held set.
func (t *Terminal) Poll() {
	for k := range t.remaining {
		t.remaining[k]--
	}
drain:
	for {
		select {
		case k := <-t.keys:
			t.remaining[k] = t.holdTicks
		default:
			break drain
		}
	}

	copySet(t.prev, t.cur)
	clearSet(t.cur)
	for k, n := range t.remaining {
		if n <= 0 {
			delete(t.remaining, k)
			continue
		}
		t.cur.Put(k)
	}
}

func (t *Terminal) KeyJustPressed(k key.Key) bool {
	return t.cur.Has(k) && !t.prev.Has(k)
}

func (t *Terminal) KeyJustReleased(k key.Key) bool {
	return !t.cur.Has(k) && t.prev.Has(k)
}

func (t *Terminal) KeyDown(k key.Key) bool {
	return t.cur.Has(k)
}

// PointerDelta is always zero: the terminal has no pointer.
func (t *Terminal) PointerDelta() (float64, float64) {
	return 0, 0
}

func (t *Terminal) AnyKeyJustPressed() bool {
	found := false
	t.cur.Each(func(k key.Key) {
		if !t.prev.Has(k) {
			found = true
		}
	})
	return found
}

func containsInterrupt(b []byte) bool {
	for _, c := range b {
		if c == 3 {
			return true
		}
	}
	return false
}

// decodeKeys turns one read from a raw-mode terminal into keys. A lone ESC
// is the Escape key; ESC followed by [ or O starts an escape sequence.
func decodeKeys(b []byte) []key.Key {
	var keys []key.Key
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == 0x1b {
			if i+2 < len(b) && (b[i+1] == '[' || b[i+1] == 'O') {
				k, n := decodeSequence(b[i+2:])
				if k != key.None {
					keys = append(keys, k)
				}
				i += 1 + n
				continue
			}
			keys = append(keys, key.Escape)
			continue
		}
		if k, ok := byteKey(c); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// decodeSequence decodes the body of an escape sequence after ESC [ or ESC O
// and returns the key, or None, and the number of bytes consumed. Numbered
// sequences look like 3~ or 3;5~ (with modifiers).
func decodeSequence(b []byte) (key.Key, int) {
	if b[0] < '0' || b[0] > '9' {
		return arrowKeys[b[0]], 1
	}
	n, code := 0, 0
	for n < len(b) && b[n] >= '0' && b[n] <= '9' {
		code = code*10 + int(b[n]-'0')
		n++
	}
	// skip modifier parameters up to the final byte
	for n < len(b) && (b[n] == ';' || (b[n] >= '0' && b[n] <= '9')) {
		n++
	}
	if n == len(b) {
		return key.None, n
	}
	final := b[n]
	n++
	if final == '~' {
		return tildeKeys[code], n
	}
	return arrowKeys[final], n
}

var arrowKeys = map[byte]key.Key{
	'A': key.Up,
	'B': key.Down,
	'C': key.Right,
	'D': key.Left,
	'H': key.Home,
	'F': key.End,
}

var tildeKeys = map[int]key.Key{
	1: key.Home,
	2: key.Insert,
	3: key.Delete,
	4: key.End,
	5: key.PageUp,
	6: key.PageDown,
	7: key.Home,
	8: key.End,
}

var punctuationKeys = map[byte]key.Key{
	' ':  key.Space,
	'-':  key.Minus,
	'=':  key.Equal,
	',':  key.Comma,
	'.':  key.Period,
	'/':  key.Slash,
	';':  key.Semicolon,
	'\'': key.Quote,
	'[':  key.LeftBracket,
	']':  key.RightBracket,
	'\\': key.Backslash,
	'`':  key.Backquote,
}

func byteKey(c byte) (key.Key, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return key.A + key.Key(c-'a'), true
	case c >= 'A' && c <= 'Z':
		return key.A + key.Key(c-'A'), true
	case c >= '0' && c <= '9':
		return key.Digit0 + key.Key(c-'0'), true
	case c == '\r' || c == '\n':
		return key.Enter, true
	case c == '\t':
		return key.Tab, true
	case c == 127 || c == 8:
		return key.Backspace, true
	}
	k, ok := punctuationKeys[c]
	return k, ok
}
