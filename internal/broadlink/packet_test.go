package broadlink

import (
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDevice() *Device {
	return NewDevice("192.0.2.10", [6]byte{0xAA, 0xBB, 0xCC, 0x11, 0x22, 0x33},
		0x4F9B, time.Second, "AC", "", "Electrolux", false)
}

func TestPacketChecksum(t *testing.T) {
	assert.Equal(t, uint16(packetChecksumSeed), packetChecksum(nil))
	assert.Equal(t, uint16(packetChecksumSeed+1+2+3), packetChecksum([]byte{1, 2, 3}))

	// Modulo 65536 wraparound.
	big := make([]byte, 300)
	for i := range big {
		big[i] = 0xFF
	}
	want := uint16((packetChecksumSeed + 300*0xFF) & 0xFFFF)
	assert.Equal(t, want, packetChecksum(big))
}

func TestBuildPacketLayout(t *testing.T) {
	d := testDevice()
	payload := []byte("0123456789abcdef") // one AES block, no padding

	packet, err := d.buildPacket(OpcodeControl, payload)
	require.NoError(t, err)
	require.Len(t, packet, headerSize+len(payload))

	assert.Equal(t, packetMagic[:], packet[0:8])
	assert.Equal(t, d.DeviceType, binary.LittleEndian.Uint16(packet[offDeviceType:]))
	assert.Equal(t, OpcodeControl, binary.LittleEndian.Uint16(packet[offOpcode:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(packet[offCounter:]), "first packet counter")
	assert.Equal(t, d.MAC[:], packet[offMAC:offMAC+6])

	// Cleartext payload checksum, computed before encryption.
	assert.Equal(t, packetChecksum(payload), binary.LittleEndian.Uint16(packet[offPayloadChecksum:]))

	// Whole-packet checksum must validate the way the device validates it.
	assert.NoError(t, verifyPacket(packet))

	// Body must not be the cleartext payload.
	assert.NotEqual(t, payload, packet[headerSize:])
}

func TestBuildPacketCounterAdvances(t *testing.T) {
	d := testDevice()
	p1, err := d.buildPacket(OpcodeControl, []byte("{}"))
	require.NoError(t, err)
	p2, err := d.buildPacket(OpcodeControl, []byte("{}"))
	require.NoError(t, err)

	c1 := binary.LittleEndian.Uint16(p1[offCounter:])
	c2 := binary.LittleEndian.Uint16(p2[offCounter:])
	assert.Equal(t, c1+1, c2)
}

func TestVerifyPacketRejectsCorruption(t *testing.T) {
	d := testDevice()
	packet, err := d.buildPacket(OpcodeControl, []byte("{}"))
	require.NoError(t, err)

	packet[offDeviceType] ^= 0xFF
	assert.Error(t, verifyPacket(packet))

	assert.Error(t, verifyPacket(make([]byte, headerSize-1)), "short packet")
}

func TestBuildHelloPacket(t *testing.T) {
	local := &net.UDPAddr{IP: net.IPv4(192, 0, 2, 77), Port: 45000}
	now := time.Date(2026, time.March, 9, 14, 30, 0, 0, time.UTC)

	packet := buildHelloPacket(local, now)
	require.Len(t, packet, 0x30)

	assert.Equal(t, uint16(2026), binary.LittleEndian.Uint16(packet[0x0C:]))
	assert.Equal(t, byte(30), packet[0x0E], "minute")
	assert.Equal(t, byte(14), packet[0x0F], "hour")
	assert.Equal(t, byte(26), packet[0x10], "two-digit year")
	assert.Equal(t, byte(9), packet[0x12], "day")
	assert.Equal(t, byte(3), packet[0x13], "month")

	// Local IP is stored reversed.
	assert.Equal(t, []byte{77, 2, 0, 192}, packet[0x18:0x1C])
	assert.Equal(t, uint16(45000), binary.LittleEndian.Uint16(packet[0x1C:]))

	assert.Equal(t, byte(helloOpcode), packet[0x26])

	declared := binary.LittleEndian.Uint16(packet[offChecksum:])
	assert.Equal(t, packetChecksum(zeroChecksumField(packet)), declared, "hello checksum uses the packet formula")
}

func TestCheckStatusCode(t *testing.T) {
	assert.NoError(t, CheckStatusCode(0))

	err := CheckStatusCode(-1)
	require.Error(t, err)
	assert.ErrorContains(t, err, "authentication failed")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, int16(-1), se.Code)

	assert.ErrorContains(t, CheckStatusCode(-4), "command not supported")
	assert.ErrorContains(t, CheckStatusCode(-77), "unknown status code")
}

func TestDeviceCheckStatus(t *testing.T) {
	d := testDevice()

	raw := make([]byte, headerSize)
	assert.NoError(t, d.CheckStatus(raw))

	binary.LittleEndian.PutUint16(raw[offStatus:], 0xFFFF) // -1
	assert.ErrorContains(t, d.CheckStatus(raw), "authentication failed")

	assert.Error(t, d.CheckStatus(make([]byte, 4)), "short response")
}

func TestSendFrameRequiresAuth(t *testing.T) {
	d := testDevice()
	_, err := d.SendFrame(OpcodeControl, []byte("{}"))
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = d.Decrypt(make([]byte, 16))
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCryptoRoundTrip(t *testing.T) {
	plain := []byte(`{"ac_pwr":1}`)

	encrypted, err := encryptCBC(initialKey, plain)
	require.NoError(t, err)
	require.Equal(t, 16, len(encrypted), "zero-padded to one block")
	assert.NotEqual(t, plain, encrypted[:len(plain)])

	decrypted, err := decryptCBC(initialKey, encrypted)
	require.NoError(t, err)
	assert.Equal(t, plain, decrypted[:len(plain)])

	// Padding bytes come back as zeros.
	for _, b := range decrypted[len(plain):] {
		assert.Zero(t, b)
	}

	_, err = decryptCBC(initialKey, encrypted[:10])
	assert.Error(t, err, "partial block rejected")
}
