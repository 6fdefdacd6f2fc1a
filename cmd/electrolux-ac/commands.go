package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/christiandt/electrolux-ac-cli/internal/aircon"
	"github.com/christiandt/electrolux-ac-cli/internal/broadlink"
	"github.com/christiandt/electrolux-ac-cli/internal/config"
	"github.com/christiandt/electrolux-ac-cli/internal/tui"
)

// Command flags
var (
	deviceIP       string
	timeoutSeconds int
	parsedOutput   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&deviceIP, "device", "", "Device IP address (skips the config file)")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 10, "Network timeout in seconds")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(tempCmd)
	rootCmd.AddCommand(powerCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(fanCmd)
	rootCmd.AddCommand(swingCmd)
	rootCmd.AddCommand(ledCmd)
	rootCmd.AddCommand(sleepCmd)
	rootCmd.AddCommand(selfcleanCmd)
	rootCmd.AddCommand(timerCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(watchCmd)
}

// resolveAddress picks the device address from the --device flag or the
// config file. A freshly created config file terminates the run with a hint,
// per the first-run convention.
func resolveAddress() (string, error) {
	if deviceIP != "" {
		return deviceIP, nil
	}

	cfg, created, err := config.Load()
	if err != nil {
		return "", err
	}

	path, pathErr := config.GetConfigPath()
	if pathErr != nil {
		path = "the config file"
	}
	if created {
		return "", fmt.Errorf("created default config at %s: set ip_address and run again", path)
	}
	if cfg.IPAddress == "" {
		return "", fmt.Errorf("no device address configured: set ip_address in %s or pass --device", path)
	}
	return cfg.IPAddress, nil
}

func timeout() time.Duration {
	return time.Duration(timeoutSeconds) * time.Second
}

// discover sends the hello datagram and returns the device handle.
func discover() (*broadlink.Device, error) {
	ip, err := resolveAddress()
	if err != nil {
		return nil, err
	}

	dev, err := broadlink.Hello(ip, timeout())
	if err != nil {
		return nil, fmt.Errorf("failed to reach device at %s: %w", ip, err)
	}
	dev.Manufacturer = "Electrolux"
	return dev, nil
}

// newController discovers the device and opens an authenticated session.
func newController() (*aircon.Controller, *broadlink.Device, error) {
	dev, err := discover()
	if err != nil {
		return nil, nil, err
	}

	ctl := aircon.New(dev)
	if err := ctl.Connect(); err != nil {
		return nil, nil, err
	}
	return ctl, dev, nil
}

// runOp is the shared one-shot flow: connect, run one operation, print the
// device's JSON reply.
func runOp(op func(*aircon.Controller) (string, error)) error {
	ctl, _, err := newController()
	if err != nil {
		return err
	}

	resp, err := op(ctl)
	if err != nil {
		return err
	}
	fmt.Println(resp)
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the full device state",
	Example: `  # Raw JSON state document
  electrolux-ac status

  # Human-readable summary
  electrolux-ac status --parsed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, _, err := newController()
		if err != nil {
			return err
		}

		resp, err := ctl.Status()
		if err != nil {
			return err
		}

		if parsedOutput {
			status, err := aircon.ParseStatus(resp)
			if err != nil {
				return err
			}
			fmt.Println(status.Format())
			return nil
		}
		fmt.Println(resp)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&parsedOutput, "parsed", false, "Print a human-readable summary instead of raw JSON")
}

var tempCmd = &cobra.Command{
	Use:   "temp <degrees>",
	Short: "Set the target temperature in °C",
	Long: fmt.Sprintf(`Set the target temperature in degrees Celsius.

Values outside the supported range (%d-%d) are clamped, matching the
behavior of the unit's own control panel.`, aircon.MinSetpoint, aircon.MaxSetpoint),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		degrees, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("temperature must be an integer: %q", args[0])
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.SetTemperature(degrees)
		})
	},
}

var powerCmd = &cobra.Command{
	Use:   "power <on|off>",
	Short: "Switch the unit on or off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := aircon.ParseSwitch(args[0])
		if err != nil {
			return err
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.SetPower(state)
		})
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode <auto|cool|heat|dry|fan|heat_8>",
	Short: "Select the operating mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := aircon.ParseMode(args[0])
		if err != nil {
			return err
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.SetMode(mode)
		})
	},
}

var fanCmd = &cobra.Command{
	Use:   "fan <auto|low|mid|high|turbo|quiet>",
	Short: "Select the fan speed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := aircon.ParseFanSpeed(args[0])
		if err != nil {
			return err
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.SetFanSpeed(speed)
		})
	},
}

var swingCmd = &cobra.Command{
	Use:   "swing <on|off>",
	Short: "Switch vertical louver swing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := aircon.ParseSwitch(args[0])
		if err != nil {
			return err
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.SetSwing(state)
		})
	},
}

var ledCmd = &cobra.Command{
	Use:   "led <on|off>",
	Short: "Switch the front-panel display light",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := aircon.ParseSwitch(args[0])
		if err != nil {
			return err
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.SetDisplay(state)
		})
	},
}

var sleepCmd = &cobra.Command{
	Use:   "sleep <on|off>",
	Short: "Switch sleep mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := aircon.ParseSwitch(args[0])
		if err != nil {
			return err
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.SetSleep(state)
		})
	},
}

var selfcleanCmd = &cobra.Command{
	Use:   "selfclean <on|off>",
	Short: "Switch the self-clean program",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := aircon.ParseSwitch(args[0])
		if err != nil {
			return err
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.SetSelfClean(state)
		})
	},
}

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Program or clear the on/off timer",
}

var timerSetCmd = &cobra.Command{
	Use:   "set <on|off> <hours> <minutes>",
	Short: "Program the timer",
	Long: `Program the on or off timer.

The first argument selects whether the timer switches the unit on or off
when it fires. Hours clamp to 0-23, minutes to 0-59.`,
	Example: `  # Switch on in 7 hours 30 minutes
  electrolux-ac timer set on 7 30

  # Switch off in 45 minutes
  electrolux-ac timer set off 0 45`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := aircon.ParseSwitch(args[0])
		if err != nil {
			return err
		}
		hours, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("hours must be an integer: %q", args[1])
		}
		minutes, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("minutes must be an integer: %q", args[2])
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.SetTimer(on == aircon.SwitchOn, hours, minutes)
		})
	},
}

var timerClearCmd = &cobra.Command{
	Use:   "clear <on|off>",
	Short: "Clear the timer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := aircon.ParseSwitch(args[0])
		if err != nil {
			return err
		}
		return runOp(func(c *aircon.Controller) (string, error) {
			return c.ClearTimer(on == aircon.SwitchOn)
		})
	},
}

func init() {
	timerCmd.AddCommand(timerSetCmd)
	timerCmd.AddCommand(timerClearCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show device identity without authenticating",
	Long: `Send a discovery hello to the configured address and print the identity
the device reports: name, hardware address, device-type code and lock state.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := discover()
		if err != nil {
			return err
		}

		fmt.Printf("Name:      %s\n", dev.Name)
		fmt.Printf("Address:   %s\n", dev.Addr)
		fmt.Printf("MAC:       %02x:%02x:%02x:%02x:%02x:%02x\n",
			dev.MAC[0], dev.MAC[1], dev.MAC[2], dev.MAC[3], dev.MAC[4], dev.MAC[5])
		fmt.Printf("Type code: 0x%04X\n", dev.DeviceType)
		fmt.Printf("Locked:    %v\n", dev.Locked)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live status dashboard",
	Long: `Open an interactive dashboard that polls the device state and accepts
single-key commands (power, mode, fan, setpoint). Requires a terminal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("watch requires an interactive terminal")
		}

		ctl, dev, err := newController()
		if err != nil {
			return err
		}

		name := dev.Name
		if name == "" {
			name = dev.Addr
		}
		return tui.Run(ctl, name)
	},
}
