package schedule

import "fmt"

// Preset names a shift-time window offered by the schedule editor.
type Preset string

const (
	PresetMorning Preset = "morning"
	PresetMidday  Preset = "midday"
	PresetNight   Preset = "night"
	PresetCustom  Preset = "custom"
)

// Window is one shift's start and end of day, HH:MM:SS.
type Window struct {
	Start string
	End   string
}

// The night window is 14:00-23:00 everywhere. A second 19:00-23:00 variant
// used to exist on one code path and was dropped.
var presetWindows = map[Preset]Window{
	PresetMorning: {Start: "10:00:00", End: "19:00:00"},
	PresetMidday:  {Start: "12:00:00", End: "21:00:00"},
	PresetNight:   {Start: "14:00:00", End: "23:00:00"},
}

// WindowFor resolves a preset to its shift window. A custom preset takes the
// caller-supplied start and end verbatim.
func WindowFor(preset Preset, customStart, customEnd string) (Window, error) {
	if preset == PresetCustom {
		if customStart == "" || customEnd == "" {
			return Window{}, fmt.Errorf("custom shift preset requires a start and end time")
		}
		return Window{Start: customStart, End: customEnd}, nil
	}
	window, ok := presetWindows[preset]
	if !ok {
		return Window{}, fmt.Errorf("unknown shift preset: %q", preset)
	}
	return window, nil
}
