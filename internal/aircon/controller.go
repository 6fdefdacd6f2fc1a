package aircon

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/christiandt/electrolux-ac-cli/internal/broadlink"
	"github.com/christiandt/electrolux-ac-cli/internal/logging"
	"github.com/christiandt/electrolux-ac-cli/internal/protocol"
)

// Setpoint bounds accepted by the unit, in °C. One firmware revision claims
// 0-40 but the hardware rejects setpoints outside 16-30; out-of-range
// requests are clamped rather than rejected, matching the panel behavior.
const (
	MinSetpoint = 16
	MaxSetpoint = 30
)

// Timer field bounds.
const (
	maxTimerHours   = 23
	maxTimerMinutes = 59
)

// ErrNotConnected is returned by operations invoked before Connect succeeds.
var ErrNotConnected = errors.New("controller is not connected: call Connect first")

// Transport is the device session surface the controller drives. The
// broadlink Device satisfies it; tests substitute stubs.
type Transport interface {
	// Auth establishes the encrypted session.
	Auth() error

	// SendFrame wraps frame in a control packet with the given opcode and
	// performs one round trip, returning the raw response packet.
	SendFrame(opcode uint16, frame []byte) ([]byte, error)

	protocol.Transport
}

// Controller exposes one method per device feature. It holds no state
// besides the transport and the connected flag; frames and payloads are
// built fresh per call and never retained.
type Controller struct {
	transport Transport
	connected bool
}

// New builds a controller around an unauthenticated transport.
func New(t Transport) *Controller {
	return &Controller{transport: t}
}

// Connect authenticates the device session. It must succeed before any
// operation; a failure here leaves the controller unusable.
func (c *Controller) Connect() error {
	if err := c.transport.Auth(); err != nil {
		return fmt.Errorf("failed to authenticate with device: %w", err)
	}
	c.connected = true
	return nil
}

// send performs one command round trip: frame the JSON payload, exchange it,
// decode the response, and hand back the response document as text.
func (c *Controller) send(code uint16, payload string) (string, error) {
	if !c.connected {
		return "", ErrNotConnected
	}

	frame := protocol.EncodeCommand(code, []byte(payload))
	logging.Debug("sending command",
		zap.Uint16("code", code),
		zap.String("payload", payload),
	)

	raw, err := c.transport.SendFrame(broadlink.OpcodeControl, frame)
	if err != nil {
		return "", err
	}

	resp, err := protocol.DecodeResponse(raw, c.transport)
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

// Status queries the full device state document.
func (c *Controller) Status() (string, error) {
	return c.send(protocol.CmdStatus, "{}")
}

// SetTemperature sets the setpoint in °C, clamped to the supported range.
func (c *Controller) SetTemperature(temp int) (string, error) {
	return c.send(protocol.CmdTemperature, fmt.Sprintf(`{"temp":%d}`, clamp(temp, MinSetpoint, MaxSetpoint)))
}

// SetPower switches the unit on or off.
func (c *Controller) SetPower(s Switch) (string, error) {
	return c.send(protocol.CmdToggle, fmt.Sprintf(`{"ac_pwr":%d}`, s))
}

// SetSleep switches sleep mode.
func (c *Controller) SetSleep(s Switch) (string, error) {
	return c.send(protocol.CmdToggle, fmt.Sprintf(`{"ac_slp":%d}`, s))
}

// SetSelfClean switches the self-clean (mould-proof) program.
func (c *Controller) SetSelfClean(s Switch) (string, error) {
	return c.send(protocol.CmdToggle, fmt.Sprintf(`{"mldprf":%d}`, s))
}

// SetMode selects the operating mode.
func (c *Controller) SetMode(m Mode) (string, error) {
	return c.send(protocol.CmdAirflow, fmt.Sprintf(`{"ac_mode":%d}`, m))
}

// SetFanSpeed selects the fan level.
func (c *Controller) SetFanSpeed(f FanSpeed) (string, error) {
	return c.send(protocol.CmdAirflow, fmt.Sprintf(`{"ac_mark":%d}`, f))
}

// SetSwing switches vertical louver swing.
func (c *Controller) SetSwing(s Switch) (string, error) {
	return c.send(protocol.CmdAirflow, fmt.Sprintf(`{"ac_vdir":%d}`, s))
}

// SetDisplay switches the front-panel LED display.
func (c *Controller) SetDisplay(s Switch) (string, error) {
	return c.send(protocol.CmdAirflow, fmt.Sprintf(`{"scrdisp":%d}`, s))
}

// SetTimer programs the on/off timer. Hours clamp to 0-23, minutes to 0-59.
// The device encodes the whole schedule as one "HHMM|0F" string value.
func (c *Controller) SetTimer(on bool, hours, minutes int) (string, error) {
	hours = clamp(hours, 0, maxTimerHours)
	minutes = clamp(minutes, 0, maxTimerMinutes)

	flag := 0
	if on {
		flag = 1
	}
	return c.send(protocol.CmdTimer, fmt.Sprintf(`{"timer":"%02d%02d|0%d"}`, hours, minutes, flag))
}

// ClearTimer cancels the timer by programming it to 00:00.
func (c *Controller) ClearTimer(on bool) (string, error) {
	return c.SetTimer(on, 0, 0)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
