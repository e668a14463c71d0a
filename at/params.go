package at

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Role is the GAP role of the module.
type Role uint8

const (
	Master Role = iota
	Slave
)

func (r Role) String() string {
	switch r {
	case Master:
		return MasterText
	case Slave:
		return SlaveText
	}
	return "Role(" + strconv.Itoa(int(r)) + ")"
}

// Wire returns the single character AT+ROLE= expects.
func (r Role) Wire() byte {
	if r == Slave {
		return 'S'
	}
	return 'M'
}

func (r Role) MarshalText() ([]byte, error) {
	if r != Master && r != Slave {
		return nil, parseError("role", []byte(r.String()), ErrUnrecognizedValue)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	v, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRole parses the bare "Master" or "Slave" text.
func ParseRole(s string) (Role, error) {
	switch s {
	case MasterText:
		return Master, nil
	case SlaveText:
		return Slave, nil
	}
	return 0, parseError("role", []byte(s), ErrUnrecognizedValue)
}

// ParseRoleLine parses a "Role:<text>\r\n" line of the AT+RX reply.
func ParseRoleLine(line []byte) (Role, error) {
	payload, err := framed("role", RolePrefix, line)
	if err != nil {
		return 0, err
	}
	return ParseRole(payload)
}

// Connectable reports whether the module accepts connections.
type Connectable bool

func (c Connectable) String() string {
	if c {
		return ConnectableText
	}
	return NonConnectableText
}

// Wire returns the character AT+CONT= expects. The module uses '0' for
// connectable and '1' for non-connectable.
func (c Connectable) Wire() byte {
	if c {
		return '0'
	}
	return '1'
}

func (c Connectable) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Connectable) UnmarshalText(text []byte) error {
	v, err := ParseConnectable(text)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseConnectable parses the exact AT+CONT=? reply text.
func ParseConnectable(b []byte) (Connectable, error) {
	switch string(b) {
	case ConnectableText:
		return true, nil
	case NonConnectableText:
		return false, nil
	}
	return false, parseError("connectable", b, ErrUnrecognizedValue)
}

// BaudRate is one of the UART rates the module supports.
type BaudRate uint32

const (
	Baud1200   BaudRate = 1200
	Baud2400   BaudRate = 2400
	Baud4800   BaudRate = 4800
	Baud9600   BaudRate = 9600
	Baud19200  BaudRate = 19200
	Baud38400  BaudRate = 38400
	Baud57600  BaudRate = 57600
	Baud115200 BaudRate = 115200
)

// BaudRates lists every supported rate in ascending order.
var BaudRates = []BaudRate{
	Baud1200, Baud2400, Baud4800, Baud9600,
	Baud19200, Baud38400, Baud57600, Baud115200,
}

// BaudRateFrom converts an integer rate. Values outside the supported set
// are an error, never a default.
func BaudRateFrom(v int) (BaudRate, error) {
	for _, b := range BaudRates {
		if int(b) == v {
			return b, nil
		}
	}
	return 0, parseError("baud rate", []byte(strconv.Itoa(v)), ErrUnrecognizedValue)
}

func (b BaudRate) String() string {
	return strconv.FormatUint(uint64(b), 10)
}

// ParseBaudRateLine parses a "Baud:<rate>,<parity>\r\n" line of the AT+RX
// reply. Only the rate is validated.
func ParseBaudRateLine(line []byte) (BaudRate, error) {
	payload, err := framed("baud rate", BaudPrefix, line)
	if err != nil {
		return 0, err
	}
	rate, _, ok := strings.Cut(payload, ",")
	if !ok {
		return 0, parseError("baud rate", line, ErrUnrecognizedValue)
	}
	v, err := strconv.Atoi(rate)
	if err != nil {
		return 0, parseError("baud rate", line, fmt.Errorf("%w: %w", ErrIntegerFormat, err))
	}
	return BaudRateFrom(v)
}

// Address is the module's 48-bit Bluetooth device address.
type Address [6]byte

func (a Address) String() string {
	var sb strings.Builder
	for i, b := range a {
		if i > 0 {
			sb.WriteByte(':')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAddressLine parses an "Addr:" line of the AT+RX reply. The twelve hex
// digits may be contiguous or split into colon-separated pairs. A line whose
// CRLF does not sit right after the digits fails with ErrMissingTerminator.
func ParseAddressLine(line []byte) (Address, error) {
	var a Address
	if !bytes.HasPrefix(line, []byte(AddrPrefix)) {
		return a, parseError("address", line, ErrPrefixMismatch)
	}
	n := len(line) - len(AddrPrefix) - len(CRLF)
	if !bytes.HasSuffix(line, []byte(CRLF)) || (n != 12 && n != 17) {
		return a, parseError("address", line, ErrMissingTerminator)
	}
	payload := line[len(AddrPrefix) : len(line)-len(CRLF)]
	if !utf8.Valid(payload) {
		return a, parseError("address", line, ErrTextEncoding)
	}
	stride := 2
	if n == 17 {
		stride = 3
	}
	for i := range a {
		pair := payload[i*stride : i*stride+2]
		if stride == 3 && i < len(a)-1 && payload[i*stride+2] != ':' {
			return a, parseError("address", line, ErrUnrecognizedValue)
		}
		if _, err := hex.Decode(a[i:i+1], pair); err != nil {
			return a, parseError("address", line, fmt.Errorf("%w: %w", ErrIntegerFormat, err))
		}
	}
	return a, nil
}

// Parameters is the snapshot returned by AT+RX.
type Parameters struct {
	Role     Role     `json:"role"`
	BaudRate BaudRate `json:"baud_rate"`
	Addr     Address  `json:"addr"`
}

// ParseParameters decodes the eight lines of an AT+RX reply. Lines 1, 2 and
// 3 carry the role, baud rate and address.
func ParseParameters(lines [][]byte) (Parameters, error) {
	var p Parameters
	if len(lines) < 4 {
		return p, parseError("parameters", bytes.Join(lines, nil), ErrUnrecognizedValue)
	}
	var err error
	if p.Role, err = ParseRoleLine(lines[1]); err != nil {
		return p, err
	}
	if p.BaudRate, err = ParseBaudRateLine(lines[2]); err != nil {
		return p, err
	}
	if p.Addr, err = ParseAddressLine(lines[3]); err != nil {
		return p, err
	}
	return p, nil
}

// framed checks prefix and terminator and returns the payload between them.
func framed(field, prefix string, line []byte) (string, error) {
	if !bytes.HasPrefix(line, []byte(prefix)) {
		return "", parseError(field, line, ErrPrefixMismatch)
	}
	if len(line) < len(prefix)+len(CRLF) || !bytes.HasSuffix(line, []byte(CRLF)) {
		return "", parseError(field, line, ErrMissingTerminator)
	}
	payload := line[len(prefix) : len(line)-len(CRLF)]
	if !utf8.Valid(payload) {
		return "", parseError(field, line, ErrTextEncoding)
	}
	return string(payload), nil
}
