package hc08_test

import (
	"i4.energy/across/hc08ctl/at"
	"i4.energy/across/hc08ctl/hc08"
)

// MockSequenceBuilder records byte-level transport expectations for a
// sequence of commands and replies, to be passed to gomock.InOrder.
type MockSequenceBuilder struct {
	transport *hc08.MockTransport
	calls     []any
}

func NewMockSequence(transport *hc08.MockTransport) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		transport: transport,
		calls:     []any{},
	}
}

// Command expects every byte of cmd to be written.
func (b *MockSequenceBuilder) Command(cmd string) *MockSequenceBuilder {
	for i := 0; i < len(cmd); i++ {
		b.calls = append(b.calls, b.transport.EXPECT().WriteByte(cmd[i]).Return(nil))
	}
	return b
}

// Reply delivers every byte of reply, one ReadByte each.
func (b *MockSequenceBuilder) Reply(reply string) *MockSequenceBuilder {
	for i := 0; i < len(reply); i++ {
		b.calls = append(b.calls, b.transport.EXPECT().ReadByte().Return(reply[i], nil))
	}
	return b
}

// NotReady reports ErrWouldBlock n times.
func (b *MockSequenceBuilder) NotReady(n int) *MockSequenceBuilder {
	b.calls = append(b.calls, b.transport.EXPECT().ReadByte().Return(byte(0), hc08.ErrWouldBlock).Times(n))
	return b
}

func (b *MockSequenceBuilder) FactoryReset() *MockSequenceBuilder {
	return b.Command(at.CmdDefault).Reply(at.OK)
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}
