// Package config loads the persisted CLI configuration.
//
// The configuration is a small JSON file with one recognized key,
// ip_address, naming the air conditioner to control:
//
//	{
//	  "ip_address": "10.0.0.248"
//	}
//
// The file lives in the OS-appropriate configuration directory
// ($XDG_CONFIG_HOME/electrolux-ac or $HOME/.config/electrolux-ac on
// Unix-likes, %LOCALAPPDATA%\electrolux-ac on Windows). When it does not
// exist, Load writes a default file with an empty address and reports that
// via the created flag so the CLI can tell the user to fill it in and stop.
package config
