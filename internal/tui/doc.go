// Package tui is the interactive dashboard for the air conditioner,
// launched by the watch subcommand.
//
// It polls the device status on a fixed interval and renders the parsed
// state in a bordered panel. Key bindings send commands through the same
// facade the one-shot CLI subcommands use:
//
//	p      toggle power
//	m      cycle operating mode
//	f      cycle fan speed
//	+ / -  adjust the setpoint by one degree
//	r      refresh now
//	q      quit
//
// The dashboard reuses one authenticated controller session for its polling
// loop; it never opens parallel sessions and sends at most one command at a
// time.
package tui
