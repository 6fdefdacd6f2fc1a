package broadlink

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"
)

// Packet layout constants. See the package documentation for the full map.
const (
	headerSize = 0x38

	offChecksum        = 0x20
	offStatus          = 0x22
	offDeviceType      = 0x24
	offOpcode          = 0x26
	offCounter         = 0x28
	offMAC             = 0x2A
	offDeviceID        = 0x30
	offPayloadChecksum = 0x34

	// packetChecksumSeed seeds both packet checksums. Distinct from the
	// inner air-conditioner protocol seed.
	packetChecksumSeed = 0xBEAF
)

// Opcodes for the packets this package sends.
const (
	OpcodeAuth    uint16 = 0x65
	OpcodeControl uint16 = 0x6A
)

var packetMagic = [8]byte{0x5A, 0xA5, 0xAA, 0x55, 0x5A, 0xA5, 0xAA, 0x55}

// packetChecksum sums data seeded with 0xBEAF, modulo 65536.
func packetChecksum(data []byte) uint16 {
	sum := uint32(packetChecksumSeed)
	for _, b := range data {
		sum += uint32(b)
	}
	return uint16(sum)
}

// buildPacket assembles a control packet around the encrypted payload.
// The cleartext payload checksum goes in before encryption results are
// appended; the whole-packet checksum is written last.
func (d *Device) buildPacket(opcode uint16, payload []byte) ([]byte, error) {
	d.counter = (d.counter + 1) & 0xFFFF

	packet := make([]byte, headerSize)
	copy(packet[0:8], packetMagic[:])
	binary.LittleEndian.PutUint16(packet[offDeviceType:], d.DeviceType)
	binary.LittleEndian.PutUint16(packet[offOpcode:], opcode)
	binary.LittleEndian.PutUint16(packet[offCounter:], d.counter)
	copy(packet[offMAC:offMAC+6], d.MAC[:])
	copy(packet[offDeviceID:offDeviceID+4], d.id[:])

	binary.LittleEndian.PutUint16(packet[offPayloadChecksum:], packetChecksum(payload))

	encrypted, err := encryptCBC(d.sessionKey(), payload)
	if err != nil {
		return nil, err
	}
	packet = append(packet, encrypted...)

	binary.LittleEndian.PutUint16(packet[offChecksum:], packetChecksum(zeroChecksumField(packet)))
	return packet, nil
}

// verifyPacket checks the whole-packet checksum of a response.
func verifyPacket(packet []byte) error {
	if len(packet) < headerSize {
		return fmt.Errorf("response packet too short: %d bytes (minimum %d)", len(packet), headerSize)
	}
	declared := binary.LittleEndian.Uint16(packet[offChecksum:])
	if computed := packetChecksum(zeroChecksumField(packet)); computed != declared {
		return fmt.Errorf("response packet checksum mismatch: declared 0x%04x, computed 0x%04x", declared, computed)
	}
	return nil
}

// zeroChecksumField copies packet with the checksum field cleared, so the
// sum can be recomputed the way the device computes it.
func zeroChecksumField(packet []byte) []byte {
	cp := make([]byte, len(packet))
	copy(cp, packet)
	cp[offChecksum] = 0
	cp[offChecksum+1] = 0
	return cp
}

// buildHelloPacket assembles the 0x30-byte discovery datagram. The device
// echoes its identity (type code, MAC, name, lock state) in the response.
func buildHelloPacket(local *net.UDPAddr, now time.Time) []byte {
	packet := make([]byte, 0x30)

	_, tzSeconds := now.Zone()
	tz := tzSeconds / 3600
	if tz < 0 {
		packet[0x08] = byte(0xFF + tz - 1)
		packet[0x09] = 0xFF
		packet[0x0A] = 0xFF
		packet[0x0B] = 0xFF
	} else {
		packet[0x08] = byte(tz)
	}

	binary.LittleEndian.PutUint16(packet[0x0C:], uint16(now.Year()))
	packet[0x0E] = byte(now.Minute())
	packet[0x0F] = byte(now.Hour())
	packet[0x10] = byte(now.Year() % 100)
	packet[0x11] = byte(now.Weekday())
	packet[0x12] = byte(now.Day())
	packet[0x13] = byte(now.Month())

	if ip4 := local.IP.To4(); ip4 != nil {
		// Local address goes in reversed, per the vendor convention.
		packet[0x18] = ip4[3]
		packet[0x19] = ip4[2]
		packet[0x1A] = ip4[1]
		packet[0x1B] = ip4[0]
	}
	binary.LittleEndian.PutUint16(packet[0x1C:], uint16(local.Port))

	packet[0x26] = helloOpcode

	binary.LittleEndian.PutUint16(packet[offChecksum:], packetChecksum(zeroChecksumField(packet)))
	return packet
}
