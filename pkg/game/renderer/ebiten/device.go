package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"actionmap/pkg/engine/input/key"
)

var ebitenKeys = map[key.Key]ebiten.Key{
	key.A: ebiten.KeyA, key.B: ebiten.KeyB, key.C: ebiten.KeyC, key.D: ebiten.KeyD,
	key.E: ebiten.KeyE, key.F: ebiten.KeyF, key.G: ebiten.KeyG, key.H: ebiten.KeyH,
	key.I: ebiten.KeyI, key.J: ebiten.KeyJ, key.K: ebiten.KeyK, key.L: ebiten.KeyL,
	key.M: ebiten.KeyM, key.N: ebiten.KeyN, key.O: ebiten.KeyO, key.P: ebiten.KeyP,
	key.Q: ebiten.KeyQ, key.R: ebiten.KeyR, key.S: ebiten.KeyS, key.T: ebiten.KeyT,
	key.U: ebiten.KeyU, key.V: ebiten.KeyV, key.W: ebiten.KeyW, key.X: ebiten.KeyX,
	key.Y: ebiten.KeyY, key.Z: ebiten.KeyZ,

	key.Digit0: ebiten.KeyDigit0, key.Digit1: ebiten.KeyDigit1, key.Digit2: ebiten.KeyDigit2,
	key.Digit3: ebiten.KeyDigit3, key.Digit4: ebiten.KeyDigit4, key.Digit5: ebiten.KeyDigit5,
	key.Digit6: ebiten.KeyDigit6, key.Digit7: ebiten.KeyDigit7, key.Digit8: ebiten.KeyDigit8,
	key.Digit9: ebiten.KeyDigit9,

	key.F1: ebiten.KeyF1, key.F2: ebiten.KeyF2, key.F3: ebiten.KeyF3, key.F4: ebiten.KeyF4,
	key.F5: ebiten.KeyF5, key.F6: ebiten.KeyF6, key.F7: ebiten.KeyF7, key.F8: ebiten.KeyF8,
	key.F9: ebiten.KeyF9, key.F10: ebiten.KeyF10, key.F11: ebiten.KeyF11, key.F12: ebiten.KeyF12,

	key.Space:     ebiten.KeySpace,
	key.Enter:     ebiten.KeyEnter,
	key.Escape:    ebiten.KeyEscape,
	key.Tab:       ebiten.KeyTab,
	key.Backspace: ebiten.KeyBackspace,
	key.Insert:    ebiten.KeyInsert,
	key.Delete:    ebiten.KeyDelete,
	key.Home:      ebiten.KeyHome,
	key.End:       ebiten.KeyEnd,
	key.PageUp:    ebiten.KeyPageUp,
	key.PageDown:  ebiten.KeyPageDown,

	key.Up:    ebiten.KeyArrowUp,
	key.Down:  ebiten.KeyArrowDown,
	key.Left:  ebiten.KeyArrowLeft,
	key.Right: ebiten.KeyArrowRight,

	key.LeftShift:    ebiten.KeyShiftLeft,
	key.RightShift:   ebiten.KeyShiftRight,
	key.LeftControl:  ebiten.KeyControlLeft,
	key.RightControl: ebiten.KeyControlRight,
	key.LeftAlt:      ebiten.KeyAltLeft,
	key.RightAlt:     ebiten.KeyAltRight,
	key.CapsLock:     ebiten.KeyCapsLock,

	key.Minus:        ebiten.KeyMinus,
	key.Equal:        ebiten.KeyEqual,
	key.Comma:        ebiten.KeyComma,
	key.Period:       ebiten.KeyPeriod,
	key.Slash:        ebiten.KeySlash,
	key.Semicolon:    ebiten.KeySemicolon,
	key.Quote:        ebiten.KeyQuote,
	key.LeftBracket:  ebiten.KeyBracketLeft,
	key.RightBracket: ebiten.KeyBracketRight,
	key.Backslash:    ebiten.KeyBackslash,
	key.Backquote:    ebiten.KeyBackquote,

	key.Keypad0: ebiten.KeyNumpad0, key.Keypad1: ebiten.KeyNumpad1, key.Keypad2: ebiten.KeyNumpad2,
	key.Keypad3: ebiten.KeyNumpad3, key.Keypad4: ebiten.KeyNumpad4, key.Keypad5: ebiten.KeyNumpad5,
	key.Keypad6: ebiten.KeyNumpad6, key.Keypad7: ebiten.KeyNumpad7, key.Keypad8: ebiten.KeyNumpad8,
	key.Keypad9: ebiten.KeyNumpad9,

	key.KeypadAdd:      ebiten.KeyNumpadAdd,
	key.KeypadSubtract: ebiten.KeyNumpadSubtract,
	key.KeypadMultiply: ebiten.KeyNumpadMultiply,
	key.KeypadDivide:   ebiten.KeyNumpadDivide,
	key.KeypadEnter:    ebiten.KeyNumpadEnter,
}

var ebitenButtons = map[key.Key]ebiten.MouseButton{
	key.Mouse0: ebiten.MouseButtonLeft,
	key.Mouse1: ebiten.MouseButtonRight,
	key.Mouse2: ebiten.MouseButtonMiddle,
}

// Ebiten reads the keyboard and mouse of an Ebiten window. Poll must run
// inside the game's Update, before the dispatcher reads the device.
type Ebiten struct {
	lastX, lastY int
	primed       bool
	dx, dy       float64
	anyPressed   bool
	justPressed  []ebiten.Key
}

// NewEbiten creates an Ebiten device.
func NewEbiten() *Ebiten {
	return &Ebiten{}
}

func (e *Ebiten) Poll() {
	x, y := ebiten.CursorPosition()
	if e.primed {
		e.dx, e.dy = float64(x-e.lastX), float64(e.lastY-y)
	}
	e.lastX, e.lastY, e.primed = x, y, true

	e.justPressed = inpututil.AppendJustPressedKeys(e.justPressed[:0])
	e.anyPressed = len(e.justPressed) > 0
	if !e.anyPressed {
		for _, b := range ebitenButtons {
			if inpututil.IsMouseButtonJustPressed(b) {
				e.anyPressed = true
				break
			}
		}
	}
}

// ResetPointer drops the stored cursor position so the next poll reports no
// movement. Hosts call it after changing the cursor mode.
func (e *Ebiten) ResetPointer() {
	e.primed = false
	e.dx, e.dy = 0, 0
}

func (e *Ebiten) KeyJustPressed(k key.Key) bool {
	if b, ok := ebitenButtons[k]; ok {
		return inpututil.IsMouseButtonJustPressed(b)
	}
	if ek, ok := ebitenKeys[k]; ok {
		return inpututil.IsKeyJustPressed(ek)
	}
	return false
}

func (e *Ebiten) KeyJustReleased(k key.Key) bool {
	if b, ok := ebitenButtons[k]; ok {
		return inpututil.IsMouseButtonJustReleased(b)
	}
	if ek, ok := ebitenKeys[k]; ok {
		return inpututil.IsKeyJustReleased(ek)
	}
	return false
}

func (e *Ebiten) KeyDown(k key.Key) bool {
	if b, ok := ebitenButtons[k]; ok {
		return ebiten.IsMouseButtonPressed(b)
	}
	if ek, ok := ebitenKeys[k]; ok {
		return ebiten.IsKeyPressed(ek)
	}
	return false
}

// PointerDelta is the cursor movement since the previous poll with the Y
// axis pointing up.
func (e *Ebiten) PointerDelta() (float64, float64) {
	return e.dx, e.dy
}

func (e *Ebiten) AnyKeyJustPressed() bool {
	return e.anyPressed
}

// Focused reports whether the Ebiten window has input focus.
func (e *Ebiten) Focused() bool {
	return ebiten.IsFocused()
}

