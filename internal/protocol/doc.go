// Package protocol implements the Electrolux OEM air-conditioner binary
// protocol carried inside Broadlink control packets.
//
// The unit accepts JSON command documents wrapped in a small binary frame.
// Frames travel as the (encrypted) payload of a Broadlink 0x6A control
// packet; this package only deals with the inner frame, never with the
// Broadlink envelope or its crypto.
//
// # Command Frame Format
//
// Outbound frames have a 13-byte header followed by the ASCII JSON payload:
//
//	[0-1]   command code (little-endian uint16)
//	[2-5]   magic marker: a5 a5 5a 5a
//	[6-7]   checksum (little-endian, computed over bytes 8..end)
//	[8]     size class: 0x01 if payload is at most 2 bytes, else 0x02
//	[9]     protocol version marker: 0x0b
//	[10-11] payload length (little-endian uint16)
//	[12]    reserved (zero)
//	[13+]   payload bytes
//
// The checksum is the byte sum of everything from the size-class flag to the
// end of the payload, seeded with 0xC0AD and taken modulo 65536. The checksum
// field itself is written after summing, so it never contributes to the sum
// it protects.
//
// # Response Format
//
// Raw responses are Broadlink packets: a device status code sits at offset
// 0x22 and the AES-encrypted body starts at 0x38. Once decrypted, the inner
// buffer uses the same checksum/length layout as outbound frames, with the
// payload starting at offset 14. DecodeResponse checks the status code,
// decrypts, validates the inner checksum, and returns the JSON payload bytes.
//
// Both directions are stateless; session state (keys, packet counters) lives
// in the transport that implements the Transport interface.
package protocol
