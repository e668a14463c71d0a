package hc08

import (
	"strconv"

	"github.com/pkg/errors"

	"i4.energy/across/hc08ctl/at"
)

// Mode is a combination of role and connectability.
type Mode uint8

const (
	ModeCentral    Mode = iota // Master, connectable
	ModePeripheral             // Slave, connectable
	ModeObserver               // Master, non-connectable
	ModeBroadcast              // Slave, non-connectable
)

// Modes lists every mode.
var Modes = []Mode{ModeCentral, ModePeripheral, ModeObserver, ModeBroadcast}

// ModeOf returns the mode for a role and connectability.
func ModeOf(r at.Role, c at.Connectable) Mode {
	switch {
	case r == at.Master && bool(c):
		return ModeCentral
	case r == at.Slave && bool(c):
		return ModePeripheral
	case r == at.Master:
		return ModeObserver
	default:
		return ModeBroadcast
	}
}

// Role returns the role the module has in m.
func (m Mode) Role() at.Role {
	if m == ModePeripheral || m == ModeBroadcast {
		return at.Slave
	}
	return at.Master
}

// Connectable reports whether the module accepts connections in m.
func (m Mode) Connectable() at.Connectable {
	return m == ModeCentral || m == ModePeripheral
}

func (m Mode) String() string {
	switch m {
	case ModeCentral:
		return "central"
	case ModePeripheral:
		return "peripheral"
	case ModeObserver:
		return "observer"
	case ModeBroadcast:
		return "broadcast"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode parses the name String returns.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown mode %q", s)
}

// ParseUUIDSlot parses "connect", "service" or "characteristic".
func ParseUUIDSlot(s string) (at.UUIDSlot, error) {
	for _, slot := range []at.UUIDSlot{at.ConnectSlot, at.ServiceSlot, at.CharacteristicSlot} {
		if slot.String() == s {
			return slot, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidChannel, "%q", s)
}

// Device is the set of operations every mode supports. *Central,
// *Peripheral, *Observer and *Broadcast implement it.
type Device interface {
	Mode() Mode
	Ping() error
	Parameters() (at.Parameters, error)
	Version() (string, error)
	Role() (at.Role, error)
	Connectable() (at.Connectable, error)
	QueryMode() (Mode, error)
	SetName(name string) error
	Name(buf []byte) (string, error)
	Write(p []byte) (int, error)
	FactoryReset() (*Central, error)
	IntoCentral() (*Central, error)
	IntoPeripheral() (*Peripheral, error)
	IntoObserver() (*Observer, error)
	IntoBroadcast() (*Broadcast, error)
	Close() error
}

var (
	_ Device = (*Central)(nil)
	_ Device = (*Peripheral)(nil)
	_ Device = (*Observer)(nil)
	_ Device = (*Broadcast)(nil)
)

// Central is a connectable master: it scans for and connects to peripherals.
type Central struct {
	connected
}

// Peripheral is a connectable slave exposing a GATT service.
type Peripheral struct {
	connected
}

// Observer is a non-connectable master that only listens to advertisements.
type Observer struct {
	base
}

// Broadcast is a non-connectable slave that only advertises.
type Broadcast struct {
	base
}

func newCentral(b base) *Central       { return &Central{connected{b}} }
func newPeripheral(b base) *Peripheral { return &Peripheral{connected{b}} }
func newObserver(b base) *Observer     { return &Observer{b} }
func newBroadcast(b base) *Broadcast   { return &Broadcast{b} }

// IntoCentral switches the module to master, connectable.
func (b *base) IntoCentral() (*Central, error) {
	return transition(b, ModeCentral, newCentral)
}

// IntoPeripheral switches the module to slave, connectable.
func (b *base) IntoPeripheral() (*Peripheral, error) {
	return transition(b, ModePeripheral, newPeripheral)
}

// IntoObserver switches the module to master, non-connectable.
func (b *base) IntoObserver() (*Observer, error) {
	return transition(b, ModeObserver, newObserver)
}

// IntoBroadcast switches the module to slave, non-connectable.
func (b *base) IntoBroadcast() (*Broadcast, error) {
	return transition(b, ModeBroadcast, newBroadcast)
}

// transition changes the role, waits SettleDelay, changes connectability
// and waits again. Only when both commands are acknowledged is b consumed
// and a handle for mode to returned.
func transition[T any](b *base, to Mode, wrap func(base) T) (T, error) {
	var zero T
	l, err := b.live()
	if err != nil {
		return zero, err
	}

	if err := l.changeRole(to.Role()); err != nil {
		l.log.Warn("Mode change failed", "from", b.mode, "to", to, "step", "role", "error", err)
		return zero, &TransitionError{From: b.mode, To: to, Step: "role", Err: err}
	}
	l.delayer.DelayMs(SettleDelay)

	if err := l.changeConnectable(to.Connectable()); err != nil {
		l.log.Warn("Mode change failed", "from", b.mode, "to", to, "step", "connectable", "error", err)
		return zero, &TransitionError{From: b.mode, To: to, Step: "connectable", RoleChanged: true, Err: err}
	}
	l.delayer.DelayMs(SettleDelay)

	l.log.Info("Mode changed", "from", b.mode, "to", to)
	return wrap(b.handover(to)), nil
}

// Switch moves d into mode m through the matching typed transition. On
// failure it returns d itself, still valid, together with the error.
func Switch(d Device, m Mode) (Device, error) {
	var (
		next Device
		err  error
	)
	switch m {
	case ModeCentral:
		var c *Central
		if c, err = d.IntoCentral(); err == nil {
			next = c
		}
	case ModePeripheral:
		var p *Peripheral
		if p, err = d.IntoPeripheral(); err == nil {
			next = p
		}
	case ModeObserver:
		var o *Observer
		if o, err = d.IntoObserver(); err == nil {
			next = o
		}
	case ModeBroadcast:
		var bc *Broadcast
		if bc, err = d.IntoBroadcast(); err == nil {
			next = bc
		}
	default:
		return d, errors.Errorf("unknown mode %v", m)
	}
	if err != nil {
		return d, err
	}
	return next, nil
}
