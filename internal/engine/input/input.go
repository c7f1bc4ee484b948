// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Input polls SDL events into per-frame state: held keys, accumulated
// relative mouse motion, quit and resize notifications.
type Input struct {
	keys map[sdl.Scancode]bool

	quit    bool
	resized bool
	width   int
	height  int

	escape  bool
	clicked bool

	mouseDX float64
	mouseDY float64
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		keys: make(map[sdl.Scancode]bool, 16),
	}
}

// Update polls all pending SDL events. Per-frame state (mouse deltas,
// resize flag) is reset first; key state persists across frames until
// the matching key-up arrives.
func (i *Input) Update() {
	i.mouseDX = 0
	i.mouseDY = 0
	i.resized = false
	i.escape = false
	i.clicked = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.resized = true
				i.width = int(e.Data1)
				i.height = int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE && e.Repeat == 0 {
					i.escape = true
				}
				i.keys[e.Keysym.Scancode] = true
			} else if e.Type == sdl.KEYUP {
				delete(i.keys, e.Keysym.Scancode)
			}

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
				i.clicked = true
			}

		case *sdl.MouseMotionEvent:
			i.mouseDX += float64(e.XRel)
			i.mouseDY += float64(e.YRel)
		}
	}
}

// ShouldQuit reports whether the window was closed.
func (i *Input) ShouldQuit() bool {
	return i.quit
}

// EscapePressed reports whether Escape went down this frame.
func (i *Input) EscapePressed() bool {
	return i.escape
}

// Clicked reports whether the left mouse button went down this frame.
func (i *Input) Clicked() bool {
	return i.clicked
}

// Resized returns the new window size when a resize happened this
// frame.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}

// MouseDelta returns the relative mouse motion accumulated this
// frame.
func (i *Input) MouseDelta() (dx, dy float64) {
	return i.mouseDX, i.mouseDY
}

// IsDown reports whether the key is currently held.
func (i *Input) IsDown(scancode sdl.Scancode) bool {
	return i.keys[scancode]
}
