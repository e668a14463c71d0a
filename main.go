package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"
)

func main() {
	r := &runner{}

	app := cli.NewApp()
	app.Name = "hc08ctl"
	app.Usage = "Configure an HC-08 Bluetooth LE module over its serial port"
	app.Version = "0.1.0"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{flgSerialPort, flgBaudRate, flgLogLevel, flgReadTimeout, flgBindAddress}
	app.Before = r.setup

	app.Commands = []cli.Command{
		{
			Name:   "ports",
			Usage:  "List serial ports present on this machine",
			Action: r.ports,
		},
		{
			Name:   "info",
			Usage:  "Print firmware version, mode and parameters",
			Action: r.info,
		},
		{
			Name:      "name",
			Usage:     "Set the advertised name, or read it back when NAME is omitted",
			ArgsUsage: "[NAME]",
			Action:    r.name,
			Flags:     []cli.Flag{flgNameLength},
		},
		{
			Name:      "mode",
			Usage:     "Switch the module to central, peripheral, observer or broadcast",
			ArgsUsage: "MODE",
			Action:    r.mode,
		},
		{
			Name:      "uuid",
			Usage:     "Set a UUID slot, or read it back when VALUE is omitted",
			ArgsUsage: "[VALUE]",
			Action:    r.uuid,
			Flags:     []cli.Flag{flgSlot},
		},
		{
			Name:   "interval",
			Usage:  "Set the connection interval bounds",
			Action: r.interval,
			Flags:  []cli.Flag{flgMin, flgMax},
		},
		{
			Name:   "timeout",
			Usage:  "Set the connection supervision timeout",
			Action: r.timeout,
			Flags:  []cli.Flag{flgTimeoutMs},
		},
		{
			Name:      "advertise",
			Usage:     "Switch to broadcast mode and advertise DATA",
			ArgsUsage: "DATA",
			Action:    r.advertise,
		},
		{
			Name:   "serve",
			Usage:  "Expose module status over HTTP",
			Action: r.serve,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger := r.logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger shared by every command.
func (r *runner) setup(c *cli.Context) error {
	config, err := LoadConfig(WithDefaults(), WithEnv(), WithCLI(c))
	if err != nil {
		return err
	}
	r.config = config
	r.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(config.LogLevel)}))
	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
