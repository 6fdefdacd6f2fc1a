// Package logging provides structured logging for the air-conditioner CLI.
//
// It wraps zap with package-level convenience functions and a protocol
// hex-dump helper. The CLI is silent by default: unless the
// ELECTROLUX_LOG_LEVEL environment variable is set (debug, info, warn or
// error), a nop logger is installed and nothing is emitted. Log output goes
// to stderr so command output on stdout stays scriptable.
//
// Typical use at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// Protocol debugging:
//
//	logging.LogRawBytes("sending packet", packet)
//
// emits the packet length plus hex and ASCII dumps at debug level.
//
// All functions are safe for concurrent use; zap handles synchronization.
package logging
