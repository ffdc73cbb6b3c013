// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is the kind of a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	DeltaX int
	DeltaY int
	Wheel  float32
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events []Event
	drag   bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to input events.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			ev := Event{Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}
			if e.Type == sdl.KEYDOWN {
				ev.Type = EventKeyDown
			} else {
				ev.Type = EventKeyUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				DeltaX: int(e.XRel),
				DeltaY: int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			ev := Event{
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: e.Button,
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = EventMouseDown
			} else {
				ev.Type = EventMouseUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:  EventMouseWheel,
				Wheel: float32(e.Y),
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// DragDelta returns the mouse movement made with the left button held,
// summed over this frame's events.
func (i *Input) DragDelta() (dx, dy float32) {
	for _, e := range i.events {
		switch e.Type {
		case EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				i.drag = true
			}
		case EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				i.drag = false
			}
		case EventMouseMove:
			if i.drag {
				dx += float32(e.DeltaX)
				dy += float32(e.DeltaY)
			}
		}
	}
	return dx, dy
}

// WheelDelta returns the scroll amount of this frame.
func (i *Input) WheelDelta() float32 {
	var w float32
	for _, e := range i.events {
		if e.Type == EventMouseWheel {
			w += e.Wheel
		}
	}
	return w
}
