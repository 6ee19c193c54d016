package timer

import "fmt"

// Mode selects which countdown the timer runs.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Custom durations are clamped to this range, in minutes.
const (
	MinMinutes = 5
	MaxMinutes = 120
)

type modeSpec struct {
	label   string
	minutes int
	color   string
}

var modeSpecs = map[Mode]modeSpec{
	ModeFocus:      {label: "Focus", minutes: 25, color: "#3B82F6"},
	ModeShortBreak: {label: "Short break", minutes: 5, color: "#22C55E"},
	ModeLongBreak:  {label: "Long break", minutes: 15, color: "#8B5CF6"},
}

// Modes lists the modes in display order.
func Modes() []Mode {
	return []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}
}

// ParseMode accepts a mode name as written by String.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if _, ok := modeSpecs[m]; !ok {
		return "", fmt.Errorf("unknown timer mode %q", s)
	}
	return m, nil
}

func (m Mode) String() string { return string(m) }

func (m Mode) Label() string { return modeSpecs[m].label }

func (m Mode) Color() string { return modeSpecs[m].color }

// DefaultMinutes is the countdown length a mode starts with.
func (m Mode) DefaultMinutes() int {
	if spec, ok := modeSpecs[m]; ok {
		return spec.minutes
	}
	return modeSpecs[ModeFocus].minutes
}
