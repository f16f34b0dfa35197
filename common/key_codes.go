package common

// Virtual key codes for keyboard-driven locomotion.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // W key (ASCII)
	KeyA     = 65 // A key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyD     = 68 // D key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)
)

// Additional non-printable keys
const (
	KeyEsc        = 256 // Escape key (GLFW)
	KeyRight      = 262 // Right arrow (GLFW)
	KeyLeft       = 263 // Left arrow (GLFW)
	KeyDown       = 264 // Down arrow (GLFW)
	KeyUp         = 265 // Up arrow (GLFW)
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// keyNames maps the human-readable names accepted in configuration files to key codes.
var keyNames = map[string]uint32{
	"w":          KeyW,
	"a":          KeyA,
	"s":          KeyS,
	"d":          KeyD,
	"space":      KeySpace,
	"esc":        KeyEsc,
	"right":      KeyRight,
	"left":       KeyLeft,
	"down":       KeyDown,
	"up":         KeyUp,
	"leftshift":  KeyLeftShift,
	"rightshift": KeyRightShift,
}

// KeyCode resolves a configuration key name (case-sensitive, lower-case) to its key code.
//
// Parameters:
//   - name: the key name, e.g. "w" or "leftshift"
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is unknown
func KeyCode(name string) (uint32, bool) {
	code, ok := keyNames[name]
	return code, ok
}
