// Package hc08 drives an HC-08 Bluetooth LE serial module through its AT
// command set.
//
// A driver is a handle typed by the module's mode. New returns a *Central
// after a factory reset; IntoPeripheral, IntoObserver, IntoBroadcast and
// IntoCentral switch modes and return a handle of the new type. Operations
// that only make sense in one mode exist only on that mode's type, so
// calling them in the wrong mode does not compile.
//
// A successful transition consumes the handle it was called on: every
// later call on the old handle fails with ErrConsumed. A failed transition
// leaves the old handle valid.
//
// All operations are synchronous. A command is written, then its complete
// reply is read, before the call returns. A handle must not be used from
// more than one goroutine at a time.
package hc08

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"i4.energy/across/hc08ctl/at"
)

// New opens the transport described by config, restores the module's
// factory settings and returns it in Central mode.
//
// Returns an error if the transport cannot be opened or the module does not
// acknowledge the reset; the transport is closed in the latter case.
func New(ctx context.Context, config Config) (*Central, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.setDefaults()

	transport, err := config.dialer.Dial(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "dial")
	}
	if transport == nil {
		return nil, ErrNotInitialized
	}

	b := base{
		l: &link{
			transport:   transport,
			delayer:     config.delayer,
			log:         config.logger,
			readTimeout: config.readTimeout,
		},
		mode: ModeCentral,
	}
	c, err := b.FactoryReset()
	if err != nil {
		transport.Close()
		return nil, errors.Wrap(err, "initialize module")
	}
	return c, nil
}

// link owns the transport. Exactly one live handle points at it.
type link struct {
	transport   Transport
	delayer     Delayer
	log         *slog.Logger
	readTimeout time.Duration
	closed      bool
}

func (l *link) write(p []byte) error {
	for _, c := range p {
		if err := l.transport.WriteByte(c); err != nil {
			return &TransportError{Op: OpWrite, Err: err}
		}
	}
	return nil
}

// readByte polls the transport until a byte arrives. ErrWouldBlock is
// retried immediately; without a read timeout this never gives up.
func (l *link) readByte() (byte, error) {
	var deadline time.Time
	if l.readTimeout > 0 {
		deadline = time.Now().Add(l.readTimeout)
	}
	for {
		c, err := l.transport.ReadByte()
		switch {
		case err == nil:
			return c, nil
		case !errors.Is(err, ErrWouldBlock):
			return 0, &TransportError{Op: OpRead, Err: err}
		case !deadline.IsZero() && time.Now().After(deadline):
			return 0, ErrReadTimeout
		}
	}
}

// read fills buf completely.
func (l *link) read(buf []byte) error {
	for i := range buf {
		c, err := l.readByte()
		if err != nil {
			return err
		}
		buf[i] = c
	}
	return nil
}

// readShort fills buf, except that it stops after short bytes when the
// reply started with lead. The module's variable-length replies are told
// apart by their first character.
func (l *link) readShort(buf []byte, short int, lead byte) ([]byte, error) {
	n := 0
	for n < len(buf) {
		if n == short && buf[0] == lead {
			break
		}
		c, err := l.readByte()
		if err != nil {
			return nil, err
		}
		buf[n] = c
		n++
	}
	return buf[:n], nil
}

func (l *link) send(cmd []byte) error {
	l.log.Debug("Sending command", "cmd", string(cmd))
	if err := l.write(cmd); err != nil {
		return errors.Wrapf(err, "write command %q", cmd)
	}
	return nil
}

// expect sends cmd and requires the reply to equal want byte for byte.
func (l *link) expect(cmd, want []byte) error {
	if err := l.send(cmd); err != nil {
		return err
	}
	got := make([]byte, len(want))
	if err := l.read(got); err != nil {
		return errors.Wrapf(err, "read reply to %q", cmd)
	}
	l.log.Debug("Received reply", "cmd", string(cmd), "reply", string(got))
	if !bytes.Equal(got, want) {
		return errors.Wrapf(ErrWrongResponse, "%s: got %q, want %q", cmd, got, want)
	}
	return nil
}

func (l *link) expectOK(cmd []byte) error {
	return l.expect(cmd, []byte(at.OK))
}

func (l *link) changeRole(r at.Role) error {
	cmd := at.ChangeRoleCommand(r)
	return l.expectOK(cmd[:])
}

func (l *link) changeConnectable(c at.Connectable) error {
	cmd := at.ChangeConnectableCommand(c)
	return l.expectOK(cmd[:])
}

func (l *link) queryUUID(slot at.UUIDSlot) (at.UUID, error) {
	if err := l.send([]byte(slot.Query())); err != nil {
		return 0, err
	}
	var reply [at.UUIDReplySize]byte
	if err := l.read(reply[:]); err != nil {
		return 0, errors.Wrapf(err, "read reply to %q", slot.Query())
	}
	l.log.Debug("Received reply", "cmd", slot.Query(), "reply", string(reply[:]))
	u, err := at.ParseUUIDReply(slot, reply[:])
	if errors.Is(err, at.ErrPrefixMismatch) {
		return 0, errors.Wrapf(ErrWrongResponse, "%s: got %q", slot.Query(), reply[:])
	}
	return u, err
}

func (l *link) setUUID(slot at.UUIDSlot, u at.UUID) error {
	cmd := at.SetUUIDCommand(slot, u)
	reply := at.SetUUIDReply(slot, u)
	return l.expect(cmd[:], reply[:])
}

// byteReader exposes the polling read as an io.Reader that never reads
// ahead: each Read returns exactly one byte.
type byteReader struct {
	l *link
}

func (r byteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c, err := r.l.readByte()
	if err != nil {
		return 0, err
	}
	p[0] = c
	return 1, nil
}

// base carries the operations every mode supports.
type base struct {
	l    *link
	mode Mode
}

// live returns the link, or why this handle may no longer use it.
func (b *base) live() (*link, error) {
	if b.l == nil {
		return nil, ErrConsumed
	}
	if b.l.closed {
		return nil, ErrAlreadyClosed
	}
	return b.l, nil
}

// handover moves the link to a new handle in mode m, consuming b.
func (b *base) handover(m Mode) base {
	l := b.l
	b.l = nil
	return base{l: l, mode: m}
}

// Mode returns the mode this handle was created for.
func (b *base) Mode() Mode {
	return b.mode
}

// Ping sends "AT" and checks for "OK".
func (b *base) Ping() error {
	l, err := b.live()
	if err != nil {
		return err
	}
	return l.expectOK([]byte(at.CmdAT))
}

// Parameters queries role, baud rate and address with AT+RX.
func (b *base) Parameters() (at.Parameters, error) {
	l, err := b.live()
	if err != nil {
		return at.Parameters{}, err
	}
	if err := l.send([]byte(at.CmdParams)); err != nil {
		return at.Parameters{}, err
	}

	scanner := bufio.NewScanner(byteReader{l})
	scanner.Buffer(make([]byte, at.MaxParamLine), at.MaxParamLine)
	scanner.Split(at.Splitter)

	lines := make([][]byte, 0, at.ParamLines)
	for len(lines) < at.ParamLines && scanner.Scan() {
		lines = append(lines, bytes.Clone(scanner.Bytes()))
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return at.Parameters{}, ErrLineTooLong
		}
		return at.Parameters{}, errors.Wrap(err, "read parameters")
	}
	l.log.Debug("Received reply", "cmd", at.CmdParams, "lines", len(lines))

	p, err := at.ParseParameters(lines)
	if err != nil {
		return at.Parameters{}, errors.Wrap(err, "parse parameters")
	}
	return p, nil
}

// FactoryReset restores the module's default settings with AT+DEFAULT. The
// module comes back in Central mode, so on success the receiver is consumed
// and a *Central is returned.
func (b *base) FactoryReset() (*Central, error) {
	l, err := b.live()
	if err != nil {
		return nil, err
	}
	if err := l.expectOK([]byte(at.CmdDefault)); err != nil {
		return nil, err
	}
	l.log.Info("Factory settings restored", "from", b.mode)
	return newCentral(b.handover(ModeCentral)), nil
}

// Version returns the firmware version string.
func (b *base) Version() (string, error) {
	l, err := b.live()
	if err != nil {
		return "", err
	}
	if err := l.send([]byte(at.CmdVersion)); err != nil {
		return "", err
	}
	var buf [at.VersionSize]byte
	if err := l.read(buf[:]); err != nil {
		return "", errors.Wrap(err, "read version")
	}
	if !utf8.Valid(buf[:]) {
		return "", errors.Wrapf(ErrWrongResponse, "version %q is not UTF-8", buf[:])
	}
	return string(buf[:]), nil
}

// Role queries the module's role.
func (b *base) Role() (at.Role, error) {
	l, err := b.live()
	if err != nil {
		return 0, err
	}
	if err := l.send([]byte(at.CmdQueryRole)); err != nil {
		return 0, err
	}

	var buf [len(at.MasterText)]byte
	word, err := l.readShort(buf[:], len(at.SlaveText), at.SlaveText[0])
	if err != nil {
		return 0, errors.Wrap(err, "read role")
	}
	l.log.Debug("Received reply", "cmd", at.CmdQueryRole, "reply", string(word))

	// Only a recognised role is known to be followed by CRLF.
	role, err := at.ParseRole(string(word))
	if err != nil {
		return 0, err
	}
	var term [len(at.CRLF)]byte
	if err := l.read(term[:]); err != nil {
		return 0, errors.Wrap(err, "read role")
	}
	if string(term[:]) != at.CRLF {
		return 0, &at.ParseError{Field: "role", Input: append(word, term[:]...), Err: at.ErrMissingTerminator}
	}
	return role, nil
}

// Connectable queries whether the module accepts connections.
func (b *base) Connectable() (at.Connectable, error) {
	l, err := b.live()
	if err != nil {
		return false, err
	}
	if err := l.send([]byte(at.CmdQueryConnectable)); err != nil {
		return false, err
	}

	var buf [len(at.NonConnectableText)]byte
	reply, err := l.readShort(buf[:], len(at.ConnectableText), at.ConnectableText[0])
	if err != nil {
		return false, errors.Wrap(err, "read connectable")
	}
	l.log.Debug("Received reply", "cmd", at.CmdQueryConnectable, "reply", string(reply))
	return at.ParseConnectable(reply)
}

// QueryMode asks the module for its role and connectability and combines
// them. The result can differ from Mode after a partially failed transition.
func (b *base) QueryMode() (Mode, error) {
	role, err := b.Role()
	if err != nil {
		return 0, err
	}
	c, err := b.Connectable()
	if err != nil {
		return 0, err
	}
	return ModeOf(role, c), nil
}

// SetName changes the advertised device name.
func (b *base) SetName(name string) error {
	l, err := b.live()
	if err != nil {
		return err
	}
	return l.expectOK(at.AppendName(nil, name))
}

// Name queries the device name. The reply fills buf exactly, so buf must be
// sized to the expected reply.
func (b *base) Name(buf []byte) (string, error) {
	l, err := b.live()
	if err != nil {
		return "", err
	}
	if err := l.send([]byte(at.CmdQueryName)); err != nil {
		return "", err
	}
	if err := l.read(buf); err != nil {
		return "", errors.Wrap(err, "read name")
	}
	if !utf8.Valid(buf) {
		return "", errors.Wrapf(ErrWrongResponse, "name %q is not UTF-8", buf)
	}
	return string(buf), nil
}

// Write sends p to the module unframed. Once a peer is connected the module
// forwards these bytes over the air.
func (b *base) Write(p []byte) (int, error) {
	l, err := b.live()
	if err != nil {
		return 0, err
	}
	for i, c := range p {
		if err := l.transport.WriteByte(c); err != nil {
			return i, &TransportError{Op: OpWrite, Err: err}
		}
	}
	return len(p), nil
}

// Close closes the transport. The handle cannot be used afterwards.
func (b *base) Close() error {
	if b.l == nil {
		return ErrConsumed
	}
	if b.l.closed {
		return ErrAlreadyClosed
	}
	b.l.closed = true
	return b.l.transport.Close()
}
