package interaction

// Key is a keyboard key name as reported by the host surface.
type Key string

const (
	KeyEscape  Key = "Escape"
	KeyControl Key = "Control"
	KeyMeta    Key = "Meta"
)

// ModifierFunc reports whether the duplicate modifier is held.
type ModifierFunc func() bool

// ModifierTracker follows Ctrl/Cmd state. It is owned by the host surface
// and handed to a Machine through its Pressed method.
//
// Surfaces that see modifier keys as their own events feed KeyDown and
// KeyUp. Terminals never report a bare Ctrl press; they only flag it on
// mouse events, so the terminal view calls Set on every mouse message.
type ModifierTracker struct {
	pressed bool
}

// KeyDown records a key press.
func (t *ModifierTracker) KeyDown(k Key) {
	if k == KeyControl || k == KeyMeta {
		t.pressed = true
	}
}

// KeyUp records a key release.
func (t *ModifierTracker) KeyUp(k Key) {
	if k == KeyControl || k == KeyMeta {
		t.pressed = false
	}
}

// Set overrides the state, for surfaces that report modifiers alongside
// pointer events instead of as separate key events.
func (t *ModifierTracker) Set(pressed bool) {
	t.pressed = pressed
}

// Pressed reports whether Ctrl or Cmd is held.
func (t *ModifierTracker) Pressed() bool {
	return t.pressed
}

// Reset clears the state, typically when the surface is torn down.
func (t *ModifierTracker) Reset() {
	t.pressed = false
}
