package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"i4.energy/across/hc08ctl/at"
	"i4.energy/across/hc08ctl/hc08"
)

// runner carries what setup resolved into the command actions.
type runner struct {
	config *Config
	logger *slog.Logger
}

// open connects to the module. hc08.New factory resets it, so every command
// starts from Central mode.
func (r *runner) open(ctx context.Context) (*hc08.Central, error) {
	config, err := hc08.NewConfigBuilder().
		WithDialer(hc08.SerialDialer{
			PortName: r.config.SerialPort,
			BaudRate: r.config.BaudRate,
		}).
		WithLogger(r.logger.With("component", "hc08")).
		WithReadTimeout(r.config.ReadTimeout).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "create driver config")
	}

	c, err := hc08.New(ctx, config)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", r.config.SerialPort)
	}
	return c, nil
}

func (r *runner) ports(c *cli.Context) error {
	ports, err := hc08.ListPorts()
	if err != nil {
		return err
	}
	for _, p := range ports {
		fmt.Fprintln(c.App.Writer, p)
	}
	return nil
}

func (r *runner) info(c *cli.Context) error {
	central, err := r.open(context.Background())
	if err != nil {
		return err
	}
	defer central.Close()

	status, err := readStatus(central)
	if err != nil {
		return err
	}
	return printJSON(c, status)
}

func (r *runner) name(c *cli.Context) error {
	central, err := r.open(context.Background())
	if err != nil {
		return err
	}
	defer central.Close()

	if c.NArg() > 0 {
		return central.SetName(c.Args().First())
	}
	name, err := central.Name(make([]byte, c.Int("length")))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, name)
	return nil
}

func (r *runner) mode(c *cli.Context) error {
	m, err := hc08.ParseMode(c.Args().First())
	if err != nil {
		return err
	}
	central, err := r.open(context.Background())
	if err != nil {
		return err
	}

	d, err := hc08.Switch(central, m)
	defer d.Close()
	if err != nil {
		return err
	}
	actual, err := d.QueryMode()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, actual)
	return nil
}

func (r *runner) uuid(c *cli.Context) error {
	slot, err := hc08.ParseUUIDSlot(c.String("slot"))
	if err != nil {
		return err
	}
	var (
		value at.UUID
		set   = c.NArg() > 0
	)
	if set {
		if value, err = parseUUID(c.Args().First()); err != nil {
			return err
		}
	}

	central, err := r.open(context.Background())
	if err != nil {
		return err
	}

	if slot == at.ConnectSlot {
		defer central.Close()
		if set {
			return central.SetConnectUUID(value)
		}
		return printUUID(c, central.ConnectUUID)
	}

	p, err := central.IntoPeripheral()
	if err != nil {
		central.Close()
		return err
	}
	defer p.Close()

	switch {
	case slot == at.ServiceSlot && set:
		return p.SetServiceUUID(value)
	case slot == at.ServiceSlot:
		return printUUID(c, p.ServiceUUID)
	case set:
		return p.SetCharacteristicUUID(value)
	default:
		return printUUID(c, p.CharacteristicUUID)
	}
}

func (r *runner) interval(c *cli.Context) error {
	if !c.IsSet("min") || !c.IsSet("max") {
		return errors.New("both --min and --max are required")
	}
	central, err := r.open(context.Background())
	if err != nil {
		return err
	}
	defer central.Close()

	return central.SetConnInterval(uint32(c.Uint("min")), uint32(c.Uint("max")))
}

func (r *runner) timeout(c *cli.Context) error {
	central, err := r.open(context.Background())
	if err != nil {
		return err
	}
	defer central.Close()

	return central.SetConnTimeout(uint32(c.Uint("ms")))
}

func (r *runner) advertise(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("advertising data is required")
	}
	central, err := r.open(context.Background())
	if err != nil {
		return err
	}

	b, err := central.IntoBroadcast()
	if err != nil {
		central.Close()
		return err
	}
	defer b.Close()

	return b.SetBroadcastData([]byte(c.Args().First()))
}

func (r *runner) serve(c *cli.Context) error {
	central, err := r.open(context.Background())
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr: r.config.BindAddress,
		Handler: &Server{
			Logger: r.logger.With("component", "server"),
			Device: central,
		},
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		r.logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		r.logger.Info("Received shutdown signal", "signal", sig)
	case err := <-errChan:
		central.Close()
		return errors.Wrap(err, "HTTP server failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r.logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(ctx); err != nil {
		r.logger.Error("Failed to gracefully shutdown server", "error", err)
	}

	r.logger.Info("Closing module connection")
	return central.Close()
}

// parseUUID accepts a 16-bit value in hex ("FFE0", "0xffe0") or its
// 128-bit form on the Bluetooth base UUID.
func parseUUID(s string) (at.UUID, error) {
	if long, err := uuid.Parse(s); err == nil {
		return at.UUIDFromLong(long)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid UUID %q", s)
	}
	return at.UUID(v), nil
}

func printUUID(c *cli.Context, query func() (at.UUID, error)) error {
	u, err := query()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%s %s\n", u, u.Long())
	return nil
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
