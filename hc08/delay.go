package hc08

//go:generate go tool mockgen -source=delay.go -destination=mock_delay.go -package=hc08

import "time"

// Delayer blocks the caller for a number of milliseconds.
type Delayer interface {
	DelayMs(ms uint32)
}

// SleepDelayer implements Delayer with time.Sleep.
type SleepDelayer struct{}

func (SleepDelayer) DelayMs(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// SettleDelay is the pause, in milliseconds, the module needs after a role
// or connectability change before it accepts the next command.
const SettleDelay uint32 = 200
