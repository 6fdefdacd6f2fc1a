package protocol

// Command codes understood by the unit's JSON control channel.
//
// 0x18 and 0x19 are shared by several features; the JSON key in the payload
// selects which one the command addresses.
const (
	CmdStatus      uint16 = 0x0E // query full state, payload "{}"
	CmdTemperature uint16 = 0x17 // "temp"
	CmdToggle      uint16 = 0x18 // "ac_pwr", "ac_slp", "mldprf"
	CmdAirflow     uint16 = 0x19 // "ac_mode", "ac_mark", "ac_vdir", "scrdisp"
	CmdTimer       uint16 = 0x1F // "timer"
)

const (
	// ChecksumSeed is added before summing frame bytes. Vendor-specific;
	// the Broadlink envelope uses a different seed (0xBEAF).
	ChecksumSeed = 0xC0AD

	// VersionMarker is the fixed protocol-version byte at header offset 9.
	VersionMarker = 0x0B

	// HeaderSize is the fixed outbound header length; payload bytes follow.
	HeaderSize = 13

	// SizeClassSmall / SizeClassLarge flag the payload size at offset 8.
	// The device parses small and large payloads differently.
	SizeClassSmall = 0x01
	SizeClassLarge = 0x02

	// SmallPayloadMax is the largest payload still flagged as small.
	SmallPayloadMax = 2
)

// Magic is the fixed marker at outbound header offset 2.
var Magic = [4]byte{0xA5, 0xA5, 0x5A, 0x5A}

// Raw response (Broadlink packet) and decrypted inner buffer offsets.
const (
	respStatusOffset = 0x22 // 2-byte device status code
	respBodyOffset   = 0x38 // start of the encrypted inner buffer
	respMinSize      = 0x38

	innerChecksumOffset = 6  // 2-byte checksum, compared as signed int16
	innerSumStart       = 8  // checksum covers bytes from here on
	innerLengthOffset   = 10 // 2-byte payload length, signed int16
	innerPayloadOffset  = 14
)
