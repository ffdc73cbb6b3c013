package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestActions(t *testing.T) {
	b := DefaultBindings()
	events := []Event{
		{Type: EventKeyDown, Key: sdl.SCANCODE_N},
		{Type: EventKeyDown, Key: sdl.SCANCODE_N, Repeat: true},
		{Type: EventKeyUp, Key: sdl.SCANCODE_R},
		{Type: EventKeyDown, Key: sdl.SCANCODE_Z},
		{Type: EventMouseMove},
		{Type: EventKeyDown, Key: sdl.SCANCODE_4},
		{Type: EventKeyDown, Key: sdl.SCANCODE_TAB},
		{Type: EventKeyDown, Key: sdl.SCANCODE_UP},
		{Type: EventKeyDown, Key: sdl.SCANCODE_UP, Repeat: true},
		{Type: EventKeyDown, Key: sdl.SCANCODE_DELETE},
		{Type: EventKeyDown, Key: sdl.SCANCODE_ESCAPE},
	}
	got := b.Actions(events)
	want := []Action{ActionAddWave, ActionModePBR, ActionSelectWave, ActionIncrease, ActionRemoveSelected, ActionQuit}
	if len(got) != len(want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDragDelta(t *testing.T) {
	in := New()
	in.events = []Event{
		{Type: EventMouseMove, DeltaX: 50},
		{Type: EventMouseDown, Button: sdl.BUTTON_LEFT},
		{Type: EventMouseMove, DeltaX: 3, DeltaY: -2},
		{Type: EventMouseMove, DeltaX: 1, DeltaY: 1},
	}
	dx, dy := in.DragDelta()
	if dx != 4 || dy != -1 {
		t.Errorf("drag = (%v, %v), want (4, -1)", dx, dy)
	}

	in.events = []Event{{Type: EventMouseMove, DeltaX: 7}, {Type: EventMouseUp, Button: sdl.BUTTON_LEFT}, {Type: EventMouseMove, DeltaX: 9}}
	if dx, _ := in.DragDelta(); dx != 7 {
		t.Errorf("drag carried across frames = %v, want 7", dx)
	}

	in.events = []Event{{Type: EventMouseWheel, Wheel: 1}, {Type: EventMouseWheel, Wheel: -0.5}}
	if w := in.WheelDelta(); w != 0.5 {
		t.Errorf("wheel = %v", w)
	}
}

func TestActionString(t *testing.T) {
	if ActionScreenshot.String() != "screenshot" || Action(99).String() != "unknown" {
		t.Error("unexpected action names")
	}
}
