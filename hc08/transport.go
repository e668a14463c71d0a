package hc08

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=hc08

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"

	"i4.energy/across/hc08ctl/at"
)

// ErrWouldBlock is returned by Transport.ReadByte when no byte is available
// yet. The driver treats it as transient and polls again.
var ErrWouldBlock = errors.New("no byte available")

// Transport is an established, byte-oriented link to the module, typically
// a UART. The driver owns it exclusively once constructed.
//
// ReadByte returns ErrWouldBlock, not an error the driver gives up on, when
// the next byte has not arrived yet.
type Transport interface {
	ReadByte() (byte, error)
	WriteByte(c byte) error
	Close() error
}

// Dialer opens a Transport to the module.
//
// Dialer abstracts how the connection is created (serial port, test double)
// and is only used during construction.
type Dialer interface {
	// Dial returns a connected Transport. It should respect cancellation of
	// ctx while the link is being established.
	Dial(ctx context.Context) (Transport, error)
}

// DefaultPollInterval is how long a serial read waits for a byte before
// the transport reports ErrWouldBlock.
const DefaultPollInterval = 10 * time.Millisecond

// SerialDialer opens the module's UART with go.bug.st/serial.
type SerialDialer struct {
	// PortName is the device path, e.g. "/dev/ttyUSB0" or "COM4".
	PortName string
	// BaudRate must be one of the rates the module supports. Zero selects
	// the module's factory rate of 9600.
	BaudRate int
	// Mode overrides BaudRate and the 8N1 framing when set.
	Mode *serial.Mode
	// PollInterval bounds a single read attempt. Zero selects DefaultPollInterval.
	PollInterval time.Duration
}

// Dial opens the serial port described by d.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if d.PortName == "" {
		return nil, errors.New("hc08: serial port name is required")
	}
	if ctx == nil {
		return nil, errors.New("hc08: context is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		rate := d.BaudRate
		if rate == 0 {
			rate = int(at.Baud9600)
		}
		if _, err := at.BaudRateFrom(rate); err != nil {
			return nil, errors.Wrapf(ErrInvalidBaudRate, "%d", rate)
		}
		mode = &serial.Mode{
			BaudRate: rate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", d.PortName)
	}

	poll := d.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	if err := port.SetReadTimeout(poll); err != nil {
		port.Close()
		return nil, errors.Wrap(err, "set read timeout")
	}

	return &serialTransport{port: port}, nil
}

// ListPorts returns the serial ports present on the system.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, errors.Wrap(err, "list serial ports")
	}
	return ports, nil
}

// serialTransport adapts a serial.Port to the byte-at-a-time Transport.
type serialTransport struct {
	port serial.Port
	buf  [1]byte
}

func (t *serialTransport) ReadByte() (byte, error) {
	n, err := t.port.Read(t.buf[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		// read timeout elapsed
		return 0, ErrWouldBlock
	}
	return t.buf[0], nil
}

func (t *serialTransport) WriteByte(c byte) error {
	t.buf[0] = c
	n, err := t.port.Write(t.buf[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}

func (t *serialTransport) Close() error {
	return t.port.Close()
}
