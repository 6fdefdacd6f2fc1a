// Package aircon is the typed command facade for the Electrolux OEM air
// conditioner. Each device feature (power, mode, fan speed, swing, display
// light, sleep, self-clean, timer, temperature, status) maps to one method
// on Controller, which builds the single-key JSON payload the device
// expects, frames it with the protocol codec, and performs one encrypted
// round trip through the transport.
//
// Symbolic values (mode names, fan levels, on/off) are closed enumerations:
// parsing an unknown name fails with ErrInvalidArgument before any network
// traffic happens.
//
// The controller follows a two-phase lifecycle: New builds it around an
// unauthenticated transport, Connect performs the session handshake. Every
// operation before a successful Connect fails with ErrNotConnected.
package aircon
