package hc08_test

import (
	"errors"
	"testing"

	"i4.energy/across/hc08ctl/hc08"
)

func TestConfig(t *testing.T) {
	t.Run("ErrNoDialer when no dialer provided", func(t *testing.T) {
		_, err := hc08.NewConfigBuilder().Build()

		if !errors.Is(err, hc08.ErrNoDialer) {
			t.Errorf("expected ErrNoDialer, got: %v", err)
		}
	})

	t.Run("Builds with a dialer", func(t *testing.T) {
		_, err := hc08.NewConfigBuilder().
			WithDialer(hc08.SerialDialer{PortName: "/dev/ttyUSB0"}).
			Build()

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
