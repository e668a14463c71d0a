package main

import "github.com/urfave/cli"

var (
	flgSerialPort  = cli.StringFlag{Name: "serial-port, p", Usage: "Serial port the module is attached to"}
	flgBaudRate    = cli.IntFlag{Name: "baud-rate, b", Usage: "Baud rate of the module's UART"}
	flgLogLevel    = cli.StringFlag{Name: "log-level", Usage: "Log level (debug, info, warn, error)"}
	flgReadTimeout = cli.DurationFlag{Name: "read-timeout", Usage: "Give up on a reply byte after this long, 0 waits forever"}
	flgBindAddress = cli.StringFlag{Name: "bind-address", Usage: "Bind address for the HTTP server"}

	flgNameLength = cli.IntFlag{Name: "length, l", Value: len("HC-08"), Usage: "Length of the name to read back"}
	flgSlot       = cli.StringFlag{Name: "slot, s", Value: "connect", Usage: "UUID slot (connect, service, characteristic)"}
	flgMin        = cli.UintFlag{Name: "min", Usage: "Minimum connection interval, in 1.25 ms units"}
	flgMax        = cli.UintFlag{Name: "max", Usage: "Maximum connection interval, in 1.25 ms units"}
	flgTimeoutMs  = cli.UintFlag{Name: "ms", Value: 5000, Usage: "Supervision timeout"}
)
