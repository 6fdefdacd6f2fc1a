package aircon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSwitch(t *testing.T) {
	s, err := ParseSwitch("on")
	require.NoError(t, err)
	assert.Equal(t, SwitchOn, s)

	s, err = ParseSwitch("off")
	require.NoError(t, err)
	assert.Equal(t, SwitchOff, s)

	_, err = ParseSwitch("maybe")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseSwitch("On") // names are case-sensitive
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseMode(t *testing.T) {
	wireCodes := map[string]Mode{
		"auto":   4,
		"cool":   0,
		"heat":   1,
		"dry":    2,
		"fan":    3,
		"heat_8": 6,
	}
	for name, want := range wireCodes {
		m, err := ParseMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, m, name)
	}

	_, err := ParseMode("turbo")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorContains(t, err, "turbo")
}

func TestParseFanSpeed(t *testing.T) {
	wireCodes := map[string]FanSpeed{
		"auto":  0,
		"low":   1,
		"mid":   2,
		"high":  3,
		"turbo": 4,
		"quiet": 5,
	}
	for name, want := range wireCodes {
		f, err := ParseFanSpeed(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, f, name)
	}

	_, err := ParseFanSpeed("max")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "on", SwitchOn.String())
	assert.Equal(t, "off", SwitchOff.String())
	assert.Equal(t, "heat_8", ModeHeat8.String())
	assert.Equal(t, "quiet", FanQuiet.String())
	assert.Equal(t, "mode(5)", Mode(5).String())
}

func TestParseStatus(t *testing.T) {
	payload := `{"ac_pwr":1,"ac_mode":0,"ac_mark":2,"ac_vdir":1,"scrdisp":1,"ac_slp":0,"mldprf":0,"temp":22,"envtemp":26,"ac_heaterstatus":0}`

	s, err := ParseStatus(payload)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Power)
	assert.Equal(t, int(ModeCool), s.Mode)
	assert.Equal(t, int(FanMid), s.FanSpeed)
	assert.Equal(t, 22, s.Setpoint)
	assert.Equal(t, 26, s.AmbientTemp)

	out := s.Format()
	assert.Contains(t, out, "Power:       on")
	assert.Contains(t, out, "Mode:        cool")
	assert.Contains(t, out, "Setpoint:    22°C")

	_, err = ParseStatus("not json")
	assert.Error(t, err)
}
