package hc08

import (
	"context"
	"errors"
	"io"
	"testing"

	"go.bug.st/serial"
	"go.uber.org/mock/gomock"
)

func TestSerialDialer_Dial_EmptyPortName(t *testing.T) {
	dialer := SerialDialer{
		PortName: "",
	}

	transport, err := dialer.Dial(context.Background())

	if err == nil {
		t.Fatal("expected error for empty port name")
	}
	if transport != nil {
		t.Error("expected nil transport for empty port name")
	}
	if err.Error() != "hc08: serial port name is required" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestSerialDialer_Dial_NilContext(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/ttyUSB0",
	}

	transport, err := dialer.Dial(nil)

	if err == nil {
		t.Fatal("expected error for nil context")
	}
	if transport != nil {
		t.Error("expected nil transport for nil context")
	}
	if err.Error() != "hc08: context is nil" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestSerialDialer_Dial_ContextCanceled(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent",
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transport, err := dialer.Dial(ctx)

	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport for canceled context")
	}
}

func TestSerialDialer_Dial_InvalidBaudRate(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent",
		BaudRate: 300,
	}

	transport, err := dialer.Dial(context.Background())

	if !errors.Is(err, ErrInvalidBaudRate) {
		t.Errorf("expected ErrInvalidBaudRate, got: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport for invalid baud rate")
	}
}

func TestSerialDialer_Dial_WithMode(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent",
		Mode: &serial.Mode{
			BaudRate: 115200,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		},
	}

	transport, err := dialer.Dial(context.Background())

	if err == nil {
		t.Error("expected error for non-existent port")
	}
	if transport != nil {
		t.Error("expected nil transport for non-existent port")
	}
}

func TestSerialDialer_Dial_DefaultMode(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent",
	}

	transport, err := dialer.Dial(context.Background())

	if err == nil {
		t.Error("expected error for non-existent port")
	}
	if errors.Is(err, ErrInvalidBaudRate) {
		t.Errorf("default baud rate should be valid, got: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport for non-existent port")
	}
}

// fakePort implements the parts of serial.Port the transport uses.
type fakePort struct {
	serial.Port
	reads   []byte
	written []byte
	err     error
	closed  bool
}

func (p *fakePort) Read(buf []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	if len(p.reads) == 0 {
		return 0, nil
	}
	buf[0] = p.reads[0]
	p.reads = p.reads[1:]
	return 1, nil
}

func (p *fakePort) Write(buf []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	p.written = append(p.written, buf...)
	return len(buf), nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestSerialTransport(t *testing.T) {
	t.Run("Read timeout reports ErrWouldBlock", func(t *testing.T) {
		tr := &serialTransport{port: &fakePort{}}

		if _, err := tr.ReadByte(); !errors.Is(err, ErrWouldBlock) {
			t.Errorf("expected ErrWouldBlock, got: %v", err)
		}
	})

	t.Run("Bytes are read one at a time", func(t *testing.T) {
		tr := &serialTransport{port: &fakePort{reads: []byte("OK")}}

		for _, want := range []byte("OK") {
			c, err := tr.ReadByte()
			if err != nil || c != want {
				t.Errorf("expected %q, got %q (%v)", want, c, err)
			}
		}
	})

	t.Run("Port errors are passed through", func(t *testing.T) {
		tr := &serialTransport{port: &fakePort{err: io.ErrUnexpectedEOF}}

		if _, err := tr.ReadByte(); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("expected port error, got: %v", err)
		}
		if err := tr.WriteByte('A'); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("expected port error, got: %v", err)
		}
	})

	t.Run("Write and close reach the port", func(t *testing.T) {
		port := &fakePort{}
		tr := &serialTransport{port: port}

		for _, c := range []byte("AT") {
			if err := tr.WriteByte(c); err != nil {
				t.Fatalf("unexpected write error: %v", err)
			}
		}
		if string(port.written) != "AT" {
			t.Errorf("expected %q written, got %q", "AT", port.written)
		}
		if err := tr.Close(); err != nil || !port.closed {
			t.Errorf("expected port to be closed, got: %v", err)
		}
	})
}

// Test the interface compliance
func TestTransportInterface(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTransport := NewMockTransport(ctrl)

	var _ Transport = mockTransport
	var _ Transport = &serialTransport{}
	var _ Dialer = SerialDialer{}

	mockTransport.EXPECT().WriteByte(byte('A')).Return(nil)
	mockTransport.EXPECT().ReadByte().Return(byte('O'), nil)
	mockTransport.EXPECT().Close().Return(nil)

	if err := mockTransport.WriteByte('A'); err != nil {
		t.Errorf("unexpected write error: %v", err)
	}
	c, err := mockTransport.ReadByte()
	if err != nil || c != 'O' {
		t.Errorf("expected 'O', got %q (%v)", c, err)
	}
	if err := mockTransport.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}
