package protocol

import (
	"encoding/binary"
	"fmt"
)

// Transport is the slice of the device session the codec needs to decode
// responses: status-code checking and payload decryption. The Broadlink
// transport satisfies it; tests use stubs.
type Transport interface {
	// CheckStatus inspects the device status code in a raw response and
	// returns a device error for nonzero codes.
	CheckStatus(raw []byte) error

	// Decrypt decrypts a response body with the current session key.
	// Requires a prior successful authentication.
	Decrypt(data []byte) ([]byte, error)
}

// ChecksumError reports a decrypted response whose embedded checksum does not
// match the recomputed sum. It usually means corruption, a session-key
// desync, or a response from the wrong kind of device.
type ChecksumError struct {
	Declared int16  // value stored in the response
	Computed uint16 // value recomputed from the response bytes
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("response checksum mismatch: declared 0x%04x, computed 0x%04x",
		uint16(e.Declared), e.Computed)
}

// Checksum sums data seeded with ChecksumSeed, modulo 65536.
func Checksum(data []byte) uint16 {
	sum := uint32(ChecksumSeed)
	for _, b := range data {
		sum += uint32(b)
	}
	return uint16(sum)
}

// EncodeCommand assembles an outbound command frame for the given command
// code and ASCII JSON payload. The payload may be empty. Always succeeds for
// payloads shorter than 64 KiB; longer payloads cannot be represented in the
// 2-byte length field and are a programming error.
//
// Some vendor firmware tooling wrote only the low byte of the length field;
// this writes both bytes, which is identical for every payload the facade
// produces (all well under 256 bytes).
func EncodeCommand(code uint16, payload []byte) []byte {
	frame := make([]byte, HeaderSize+len(payload))

	binary.LittleEndian.PutUint16(frame[0:2], code)
	copy(frame[2:6], Magic[:])

	if len(payload) <= SmallPayloadMax {
		frame[8] = SizeClassSmall
	} else {
		frame[8] = SizeClassLarge
	}
	frame[9] = VersionMarker
	binary.LittleEndian.PutUint16(frame[10:12], uint16(len(payload)))

	copy(frame[HeaderSize:], payload)

	// Checksum covers everything from the size-class flag to the end of the
	// payload. Written last so the field itself stays out of the sum.
	binary.LittleEndian.PutUint16(frame[6:8], Checksum(frame[8:]))

	return frame
}

// DecodeResponse extracts the JSON payload from a raw device response.
//
// The device status code is checked before anything else; a nonzero code is
// surfaced verbatim through the transport's error mapping and no decryption
// is attempted. The body is then decrypted, its checksum validated, and the
// payload sliced out per the declared length.
func DecodeResponse(raw []byte, t Transport) ([]byte, error) {
	if len(raw) < respMinSize {
		return nil, fmt.Errorf("response too short: %d bytes (minimum %d)", len(raw), respMinSize)
	}

	if err := t.CheckStatus(raw); err != nil {
		return nil, err
	}

	inner, err := t.Decrypt(raw[respBodyOffset:])
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt response body: %w", err)
	}

	if len(inner) < innerPayloadOffset {
		return nil, fmt.Errorf("decrypted body too short: %d bytes (minimum %d)", len(inner), innerPayloadOffset)
	}

	declared := int16(binary.LittleEndian.Uint16(inner[innerChecksumOffset : innerChecksumOffset+2]))
	computed := Checksum(inner[innerSumStart:])
	if int16(computed) != declared {
		return nil, &ChecksumError{Declared: declared, Computed: computed}
	}

	length := int(int16(binary.LittleEndian.Uint16(inner[innerLengthOffset : innerLengthOffset+2])))
	if length < 0 || innerPayloadOffset+length > len(inner) {
		return nil, fmt.Errorf("declared payload length %d exceeds body size %d", length, len(inner))
	}

	return inner[innerPayloadOffset : innerPayloadOffset+length], nil
}
