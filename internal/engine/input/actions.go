package input

import "github.com/veandco/go-sdl2/sdl"

// Action is a user command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionAddWave
	ActionRemoveWave
	ActionRegenerate
	ActionModeNone
	ActionModeSimple
	ActionModeCube
	ActionModePBR
	ActionToggleDebug
	ActionDebugTarget
	ActionSaveWaves
	ActionScreenshot
	ActionQuit
	ActionSelectWave
	ActionSelectParam
	ActionIncrease
	ActionDecrease
	ActionRemoveSelected
)

var actionNames = map[Action]string{
	ActionNone:           "none",
	ActionAddWave:        "add-wave",
	ActionRemoveWave:     "remove-wave",
	ActionRegenerate:     "regenerate",
	ActionModeNone:       "mode-none",
	ActionModeSimple:     "mode-simple",
	ActionModeCube:       "mode-cube",
	ActionModePBR:        "mode-pbr",
	ActionToggleDebug:    "toggle-debug",
	ActionDebugTarget:    "debug-target",
	ActionSaveWaves:      "save-waves",
	ActionScreenshot:     "screenshot",
	ActionQuit:           "quit",
	ActionSelectWave:     "select-wave",
	ActionSelectParam:    "select-param",
	ActionIncrease:       "increase",
	ActionDecrease:       "decrease",
	ActionRemoveSelected: "remove-selected",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// Bindings maps keys to actions.
type Bindings map[sdl.Scancode]Action

// DefaultBindings returns the standard key layout.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_N:         ActionAddWave,
		sdl.SCANCODE_BACKSPACE: ActionRemoveWave,
		sdl.SCANCODE_R:         ActionRegenerate,
		sdl.SCANCODE_1:         ActionModeNone,
		sdl.SCANCODE_2:         ActionModeSimple,
		sdl.SCANCODE_3:         ActionModeCube,
		sdl.SCANCODE_4:         ActionModePBR,
		sdl.SCANCODE_F1:        ActionToggleDebug,
		sdl.SCANCODE_F2:        ActionDebugTarget,
		sdl.SCANCODE_F5:        ActionSaveWaves,
		sdl.SCANCODE_F12:       ActionScreenshot,
		sdl.SCANCODE_ESCAPE:    ActionQuit,
		sdl.SCANCODE_TAB:       ActionSelectWave,
		sdl.SCANCODE_Q:         ActionSelectParam,
		sdl.SCANCODE_UP:        ActionIncrease,
		sdl.SCANCODE_DOWN:      ActionDecrease,
		sdl.SCANCODE_DELETE:    ActionRemoveSelected,
	}
}

// Actions returns the actions triggered by key presses in events, in order.
// Auto-repeated presses are ignored.
func (b Bindings) Actions(events []Event) []Action {
	var out []Action
	for _, e := range events {
		if e.Type != EventKeyDown || e.Repeat {
			continue
		}
		if a, ok := b[e.Key]; ok {
			out = append(out, a)
		}
	}
	return out
}
