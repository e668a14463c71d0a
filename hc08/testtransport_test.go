package hc08

import (
	"bytes"
	"fmt"
	"io"
)

// TestTransport is a scripted Transport for tests. Each Expect queues one
// exchange: the reply only becomes readable once the driver has written the
// whole command, so replies can never be read ahead of their request.
//
// Reads past the script return io.EOF instead of blocking, which surfaces
// as ErrRead rather than hanging the test.
type TestTransport struct {
	exchanges []exchange
	pending   []byte
	readable  []byte
	commands  []string

	stalls     int
	stalled    int
	WouldBlock int

	closed bool
}

type exchange struct {
	cmd, reply string
}

// NewTestTransport creates an empty script.
func NewTestTransport() *TestTransport {
	return &TestTransport{}
}

// Expect queues a command the driver must write next and the reply the
// module answers with.
func (t *TestTransport) Expect(cmd, reply string) *TestTransport {
	t.exchanges = append(t.exchanges, exchange{cmd: cmd, reply: reply})
	return t
}

// Stall makes every byte report ErrWouldBlock n times before it is delivered.
func (t *TestTransport) Stall(n int) *TestTransport {
	t.stalls = n
	return t
}

// Commands returns the complete commands written so far.
func (t *TestTransport) Commands() []string {
	return t.commands
}

// Remaining returns the number of exchanges not yet written.
func (t *TestTransport) Remaining() int {
	return len(t.exchanges)
}

// Unread returns the number of reply bytes the driver has not read.
func (t *TestTransport) Unread() int {
	return len(t.readable)
}

func (t *TestTransport) Closed() bool {
	return t.closed
}

func (t *TestTransport) WriteByte(c byte) error {
	if t.closed {
		return io.ErrClosedPipe
	}
	t.pending = append(t.pending, c)
	if len(t.exchanges) == 0 {
		return fmt.Errorf("unexpected write %q", t.pending)
	}
	next := t.exchanges[0]
	if !bytes.HasPrefix([]byte(next.cmd), t.pending) {
		return fmt.Errorf("unexpected write %q, want %q", t.pending, next.cmd)
	}
	if len(t.pending) == len(next.cmd) {
		t.commands = append(t.commands, string(t.pending))
		t.readable = append(t.readable, next.reply...)
		t.pending = nil
		t.exchanges = t.exchanges[1:]
	}
	return nil
}

func (t *TestTransport) ReadByte() (byte, error) {
	if t.closed {
		return 0, io.ErrClosedPipe
	}
	if len(t.readable) == 0 {
		return 0, io.EOF
	}
	if t.stalled < t.stalls {
		t.stalled++
		t.WouldBlock++
		return 0, ErrWouldBlock
	}
	t.stalled = 0
	c := t.readable[0]
	t.readable = t.readable[1:]
	return c, nil
}

func (t *TestTransport) Close() error {
	t.closed = true
	return nil
}
