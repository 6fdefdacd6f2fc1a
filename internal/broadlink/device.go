package broadlink

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/christiandt/electrolux-ac-cli/internal/logging"
)

const (
	// DefaultPort is the UDP control port Broadlink devices listen on.
	DefaultPort = 80

	// DefaultTimeout bounds each UDP round trip.
	DefaultTimeout = 10 * time.Second

	helloOpcode = 6

	maxDatagram = 2048
)

// Device is a handle to one Broadlink-based unit plus its session state.
// Construct with Hello (fills identity from the device itself) or NewDevice
// (identity already known), then call Auth before sending commands.
type Device struct {
	// Addr is the device control address in ip:port form.
	Addr string

	// MAC is the device hardware address.
	MAC [6]byte

	// DeviceType is the vendor device-type code (0x4F9B for the
	// Electrolux OEM air conditioner).
	DeviceType uint16

	// Timeout bounds each send/receive round trip.
	Timeout time.Duration

	Name         string
	Model        string
	Manufacturer string
	Locked       bool

	// Session state, installed by Auth.
	key           []byte
	id            [4]byte
	counter       uint16
	authenticated bool
}

// NewDevice builds a handle from already-known identity fields. ip may carry
// an explicit port; DefaultPort is assumed otherwise.
func NewDevice(ip string, mac [6]byte, devType uint16, timeout time.Duration, name, model, manufacturer string, locked bool) *Device {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Device{
		Addr:         withDefaultPort(ip),
		MAC:          mac,
		DeviceType:   devType,
		Timeout:      timeout,
		Name:         name,
		Model:        model,
		Manufacturer: manufacturer,
		Locked:       locked,
	}
}

// String returns a human-readable description of the device.
func (d *Device) String() string {
	name := d.Name
	if name == "" {
		name = "unnamed device"
	}
	return fmt.Sprintf("%s (type 0x%04X) at %s", name, d.DeviceType, d.Addr)
}

// Hello sends a discovery datagram to the device at ip and builds a handle
// from the identity in its reply. This is targeted discovery of one known
// address, not a subnet scan.
func Hello(ip string, timeout time.Duration) (*Device, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	conn, err := net.Dial("udp", withDefaultPort(ip))
	if err != nil {
		return nil, fmt.Errorf("failed to open udp socket to %s: %w", ip, err)
	}
	defer conn.Close()

	local, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}

	packet := buildHelloPacket(local, time.Now())
	resp, err := exchange(conn, packet, timeout)
	if err != nil {
		return nil, fmt.Errorf("hello to %s failed: %w", ip, err)
	}
	if len(resp) < 0x41 {
		return nil, fmt.Errorf("hello response too short: %d bytes", len(resp))
	}

	dev := NewDevice(ip, [6]byte{}, binary.LittleEndian.Uint16(resp[0x34:0x36]), timeout, "", "", "", resp[len(resp)-1] != 0)

	// MAC arrives reversed.
	for i := 0; i < 6; i++ {
		dev.MAC[i] = resp[0x3F-i]
	}

	// Name is a NUL-terminated string from 0x40.
	name := resp[0x40:]
	if end := bytes.IndexByte(name, 0); end >= 0 {
		name = name[:end]
	}
	dev.Name = string(name)

	logging.Debug("device hello complete",
		zap.String("addr", dev.Addr),
		zap.String("name", dev.Name),
		zap.Uint16("devtype", dev.DeviceType),
		zap.Bool("locked", dev.Locked),
	)
	return dev, nil
}

// Auth establishes the device session: it sends the authentication payload
// under the well-known initial key and installs the session key and device
// id from the reply. Every command exchange requires a prior successful Auth.
func (d *Device) Auth() error {
	payload := make([]byte, 0x50)
	for i := 0x04; i < 0x13; i++ {
		payload[i] = 0x31
	}
	payload[0x1E] = 0x01
	payload[0x2D] = 0x01
	copy(payload[0x30:], "Test 1")

	resp, err := d.SendFrame(OpcodeAuth, payload)
	if err != nil {
		return fmt.Errorf("authentication exchange failed: %w", err)
	}
	if err := d.CheckStatus(resp); err != nil {
		return fmt.Errorf("authentication rejected: %w", err)
	}
	if len(resp) < headerSize+0x14 {
		return fmt.Errorf("authentication response too short: %d bytes", len(resp))
	}

	body, err := decryptCBC(initialKey, resp[headerSize:])
	if err != nil {
		return fmt.Errorf("failed to decrypt authentication response: %w", err)
	}
	if len(body) < 0x14 {
		return fmt.Errorf("authentication body too short: %d bytes", len(body))
	}

	key := body[0x04:0x14]
	if bytes.Equal(key, make([]byte, 0x10)) {
		return errors.New("device returned an empty session key")
	}

	d.key = append([]byte(nil), key...)
	copy(d.id[:], body[0x00:0x04])
	d.authenticated = true

	logging.Debug("device session established", zap.String("addr", d.Addr))
	return nil
}

// SendFrame encrypts frame, wraps it in a control packet with the given
// opcode, and performs one UDP round trip. The raw response packet is
// returned after its checksum is verified; status-code checking and body
// decryption are the caller's next steps.
func (d *Device) SendFrame(opcode uint16, frame []byte) ([]byte, error) {
	if opcode != OpcodeAuth && !d.authenticated {
		return nil, ErrNotAuthenticated
	}

	packet, err := d.buildPacket(opcode, frame)
	if err != nil {
		return nil, fmt.Errorf("failed to build packet: %w", err)
	}
	logging.LogRawBytes("sending packet", packet)

	conn, err := net.Dial("udp", d.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to open udp socket to %s: %w", d.Addr, err)
	}
	defer conn.Close()

	resp, err := exchange(conn, packet, d.Timeout)
	if err != nil {
		return nil, err
	}
	logging.LogRawBytes("received packet", resp)

	if err := verifyPacket(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Decrypt decrypts a response body with the session key.
func (d *Device) Decrypt(data []byte) ([]byte, error) {
	if !d.authenticated {
		return nil, ErrNotAuthenticated
	}
	return decryptCBC(d.key, data)
}

// CheckStatus maps the device status code in a raw response packet to an
// error. Zero is success.
func (d *Device) CheckStatus(raw []byte) error {
	if len(raw) < offStatus+2 {
		return fmt.Errorf("response too short for status code: %d bytes", len(raw))
	}
	return CheckStatusCode(int16(binary.LittleEndian.Uint16(raw[offStatus : offStatus+2])))
}

// sessionKey returns the AES key for the current session state.
func (d *Device) sessionKey() []byte {
	if d.key == nil {
		return initialKey
	}
	return d.key
}

// exchange performs one datagram round trip on conn with a deadline.
func exchange(conn net.Conn, packet []byte, timeout time.Duration) ([]byte, error) {
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if _, err := conn.Write(packet); err != nil {
		return nil, wrapTimeout(fmt.Errorf("send failed: %w", err))
	}

	buf := make([]byte, maxDatagram)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, wrapTimeout(fmt.Errorf("receive failed: %w", err))
	}
	return buf[:n], nil
}

// wrapTimeout folds network deadline errors into ErrTimeout so callers can
// branch on one connectivity error kind.
func wrapTimeout(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

func withDefaultPort(ip string) string {
	if _, _, err := net.SplitHostPort(ip); err == nil {
		return ip
	}
	return net.JoinHostPort(ip, strconv.Itoa(DefaultPort))
}
