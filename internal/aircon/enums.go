package aircon

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks a symbolic value outside an operation's declared
// domain. Raised before any network I/O.
var ErrInvalidArgument = errors.New("invalid argument")

// Switch is a two-state feature toggle. Power, sleep, self-clean, swing and
// the display light all share this domain; the JSON key selects the feature.
type Switch uint8

const (
	SwitchOff Switch = 0
	SwitchOn  Switch = 1
)

// ParseSwitch maps "on"/"off" to a Switch.
func ParseSwitch(s string) (Switch, error) {
	switch s {
	case "on":
		return SwitchOn, nil
	case "off":
		return SwitchOff, nil
	default:
		return 0, fmt.Errorf("%w: unknown switch state %q (want on or off)", ErrInvalidArgument, s)
	}
}

func (s Switch) String() string {
	if s == SwitchOn {
		return "on"
	}
	return "off"
}

// Mode is the operating mode. Values are the device wire codes.
type Mode uint8

const (
	ModeCool  Mode = 0
	ModeHeat  Mode = 1
	ModeDry   Mode = 2
	ModeFan   Mode = 3
	ModeAuto  Mode = 4
	ModeHeat8 Mode = 6 // 8°C frost-protection heating
)

var modeNames = map[string]Mode{
	"auto":   ModeAuto,
	"cool":   ModeCool,
	"heat":   ModeHeat,
	"dry":    ModeDry,
	"fan":    ModeFan,
	"heat_8": ModeHeat8,
}

// ParseMode maps a mode name to its wire code.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeNames[s]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q (want auto, cool, heat, dry, fan or heat_8)", ErrInvalidArgument, s)
}

func (m Mode) String() string {
	for name, v := range modeNames {
		if v == m {
			return name
		}
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// FanSpeed is the fan level. Values are the device wire codes.
type FanSpeed uint8

const (
	FanAuto  FanSpeed = 0
	FanLow   FanSpeed = 1
	FanMid   FanSpeed = 2
	FanHigh  FanSpeed = 3
	FanTurbo FanSpeed = 4
	FanQuiet FanSpeed = 5
)

var fanNames = map[string]FanSpeed{
	"auto":  FanAuto,
	"low":   FanLow,
	"mid":   FanMid,
	"high":  FanHigh,
	"turbo": FanTurbo,
	"quiet": FanQuiet,
}

// ParseFanSpeed maps a fan level name to its wire code.
func ParseFanSpeed(s string) (FanSpeed, error) {
	if f, ok := fanNames[s]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: unknown fan speed %q (want auto, low, mid, high, turbo or quiet)", ErrInvalidArgument, s)
}

func (f FanSpeed) String() string {
	for name, v := range fanNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("fan(%d)", uint8(f))
}
