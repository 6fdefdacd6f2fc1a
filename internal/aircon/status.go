package aircon

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the device state document returned by the status command.
// Unrecognized keys in the device JSON are ignored.
type Status struct {
	Power       int `json:"ac_pwr"`
	Mode        int `json:"ac_mode"`
	FanSpeed    int `json:"ac_mark"`
	Swing       int `json:"ac_vdir"`
	Display     int `json:"scrdisp"`
	Sleep       int `json:"ac_slp"`
	SelfClean   int `json:"mldprf"`
	Setpoint    int `json:"temp"`
	AmbientTemp int `json:"envtemp"`
}

// ParseStatus decodes the JSON payload of a status response.
func ParseStatus(payload string) (*Status, error) {
	var s Status
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, fmt.Errorf("failed to parse status document: %w", err)
	}
	return &s, nil
}

// onOff renders a 0/1 field.
func onOff(v int) string {
	if v != 0 {
		return "on"
	}
	return "off"
}

// Format renders the status as aligned key/value lines for terminal output.
func (s *Status) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Power:       %s\n", onOff(s.Power))
	fmt.Fprintf(&b, "Mode:        %s\n", Mode(s.Mode))
	fmt.Fprintf(&b, "Fan:         %s\n", FanSpeed(s.FanSpeed))
	fmt.Fprintf(&b, "Setpoint:    %d°C\n", s.Setpoint)
	fmt.Fprintf(&b, "Ambient:     %d°C\n", s.AmbientTemp)
	fmt.Fprintf(&b, "Swing:       %s\n", onOff(s.Swing))
	fmt.Fprintf(&b, "Display:     %s\n", onOff(s.Display))
	fmt.Fprintf(&b, "Sleep:       %s\n", onOff(s.Sleep))
	fmt.Fprintf(&b, "Self-clean:  %s", onOff(s.SelfClean))
	return b.String()
}
