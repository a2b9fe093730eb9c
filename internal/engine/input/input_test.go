package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestHandleKeyboard(t *testing.T) {
	in := New()

	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_1}})
	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_2}})

	if !in.IsKeyPressed(sdl.SCANCODE_1) {
		t.Error("expected key 1 to be pressed")
	}
	if in.IsKeyPressed(sdl.SCANCODE_2) {
		t.Error("key 2 was released, not pressed")
	}
}

func TestHandleQuit(t *testing.T) {
	in := New()
	if !in.handle(&sdl.QuitEvent{Type: sdl.QUIT}) {
		t.Error("expected quit event to request exit")
	}
	if len(in.Events()) != 1 || in.Events()[0].Type != EventQuit {
		t.Errorf("expected a single quit event, got %+v", in.Events())
	}
}

func TestDragDelta(t *testing.T) {
	in := New()

	// Motion without a held button is not a drag.
	in.handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 5, YRel: 5})
	if dx, dy := in.DragDelta(); dx != 0 || dy != 0 {
		t.Errorf("expected no drag, got %f, %f", dx, dy)
	}

	in.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT})
	in.handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, XRel: 3, YRel: -2})

	if !in.Dragging() {
		t.Fatal("expected dragging after left button down")
	}
	dx, dy := in.DragDelta()
	if dx != 8 || dy != 3 {
		t.Errorf("expected drag (8, 3), got (%f, %f)", dx, dy)
	}

	in.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, Button: sdl.BUTTON_LEFT})
	if in.Dragging() {
		t.Error("expected dragging to stop after button up")
	}
}

func TestWheelDelta(t *testing.T) {
	in := New()

	in.handle(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 2})
	in.handle(&sdl.MouseWheelEvent{Type: sdl.MOUSEWHEEL, Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED})

	if got := in.WheelDelta(); got != 1 {
		t.Errorf("expected wheel delta 1, got %f", got)
	}
}
