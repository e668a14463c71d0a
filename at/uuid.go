package at

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/google/uuid"
)

// UUID is a 16-bit GATT UUID as the module carries it: four hex characters,
// least-significant nibble first.
type UUID uint16

// UUIDSize is the number of characters of a UUID on the wire.
const UUIDSize = 4

const hexDigits = "0123456789abcdef"

// Wire returns the four lowercase hex characters of u, least-significant
// nibble first. UUID(0x00ab) encodes as "ba00".
func (u UUID) Wire() [UUIDSize]byte {
	var out [UUIDSize]byte
	v := uint16(u)
	for i := range out {
		out[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return out
}

func (u UUID) String() string {
	return fmt.Sprintf("0x%04X", uint16(u))
}

// ParseUUID decodes up to four hex characters in the order Wire produces
// them. Longer payloads are rejected.
func ParseUUID(b []byte) (UUID, error) {
	if len(b) > UUIDSize {
		return 0, parseError("uuid", b, ErrUnrecognizedValue)
	}
	if !utf8.Valid(b) {
		return 0, parseError("uuid", b, ErrTextEncoding)
	}
	if len(b) == 0 {
		return 0, parseError("uuid", b, ErrIntegerFormat)
	}
	var v uint16
	for i := len(b) - 1; i >= 0; i-- {
		n, err := strconv.ParseUint(string(b[i]), 16, 8)
		if err != nil {
			return 0, parseError("uuid", b, fmt.Errorf("%w: %w", ErrIntegerFormat, err))
		}
		v = v<<4 | uint16(n)
	}
	return UUID(v), nil
}

// bluetoothBase is the Bluetooth SIG base UUID that 16-bit UUIDs expand into.
var bluetoothBase = uuid.MustParse("00000000-0000-1000-8000-00805f9b34fb")

// Long expands u into its 128-bit form on the Bluetooth base UUID.
func (u UUID) Long() uuid.UUID {
	long := bluetoothBase
	long[2] = byte(u >> 8)
	long[3] = byte(u)
	return long
}

// UUIDFromLong shortens a 128-bit UUID that sits on the Bluetooth base.
func UUIDFromLong(long uuid.UUID) (UUID, error) {
	short := UUID(uint16(long[2])<<8 | uint16(long[3]))
	if short.Long() != long {
		return 0, parseError("uuid", []byte(long.String()), ErrUnrecognizedValue)
	}
	return short, nil
}

// UUIDSlot selects which of the module's three UUID settings a command targets.
type UUIDSlot uint8

const (
	// ConnectSlot is the UUID a central connects to (AT+LUUID).
	ConnectSlot UUIDSlot = iota
	// ServiceSlot is the peripheral's service UUID (AT+SUUID).
	ServiceSlot
	// CharacteristicSlot is the peripheral's characteristic UUID (AT+TUUID).
	CharacteristicSlot
)

var slotLetters = [...]byte{ConnectSlot: 'L', ServiceSlot: 'S', CharacteristicSlot: 'T'}

func (s UUIDSlot) String() string {
	switch s {
	case ConnectSlot:
		return "connect"
	case ServiceSlot:
		return "service"
	case CharacteristicSlot:
		return "characteristic"
	}
	return "UUIDSlot(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s names one of the three slots.
func (s UUIDSlot) Valid() bool {
	return int(s) < len(slotLetters)
}

// SetBase returns the "AT+xUUID=" command base for the slot.
func (s UUIDSlot) SetBase() string {
	return "AT+" + string(slotLetters[s]) + "UUID="
}

// Query returns the "AT+xUUID=?" query command for the slot.
func (s UUIDSlot) Query() string {
	return s.SetBase() + "?"
}

// Reply returns the "OK+xUUID=" acknowledgement prefix for the slot.
func (s UUIDSlot) Reply() string {
	return "OK+" + string(slotLetters[s]) + "UUID="
}

// ParseUUIDReply decodes a 13-byte "OK+xUUID=hhhh" reply for the slot.
func ParseUUIDReply(s UUIDSlot, reply []byte) (UUID, error) {
	if !bytes.HasPrefix(reply, []byte(s.Reply())) {
		return 0, parseError(s.String()+" uuid", reply, ErrPrefixMismatch)
	}
	return ParseUUID(reply[len(s.Reply()):])
}
