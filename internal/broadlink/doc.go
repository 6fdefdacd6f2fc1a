// Package broadlink implements the minimal slice of the Broadlink device
// protocol the air-conditioner controller needs: targeted discovery of a
// device at a known address, session authentication with AES key exchange,
// and encrypted command/response datagram exchange over UDP.
//
// # Packet Format
//
// Every control packet starts with a 0x38-byte header:
//
//	[0x00-0x07] magic: 5a a5 aa 55 5a a5 aa 55
//	[0x20-0x21] whole-packet checksum (little-endian, seed 0xBEAF)
//	[0x22-0x23] device status code in responses (0x0000 = success)
//	[0x24-0x25] device type code (little-endian)
//	[0x26-0x27] packet opcode (little-endian)
//	[0x28-0x29] rolling packet counter
//	[0x2a-0x2f] device MAC
//	[0x30-0x33] session device id (zero before authentication)
//	[0x34-0x35] cleartext payload checksum (seed 0xBEAF)
//	[0x38+]     AES-128-CBC encrypted payload, zero-padded to block size
//
// Authentication (opcode 0x65) uses a well-known initial key; the response
// carries the session key and device id used for everything after.
//
// A Device is not safe for concurrent use: the packet counter and session
// key are plain fields, matching the one-command-per-invocation lifecycle of
// the CLI.
package broadlink
