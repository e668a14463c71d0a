package at

import "strconv"

// ChangeRoleCommand builds "AT+ROLE=M" or "AT+ROLE=S".
func ChangeRoleCommand(r Role) [len(RoleBase) + 1]byte {
	var cmd [len(RoleBase) + 1]byte
	copy(cmd[:], RoleBase)
	cmd[len(RoleBase)] = r.Wire()
	return cmd
}

// ChangeConnectableCommand builds "AT+CONT=0" (connectable) or "AT+CONT=1".
func ChangeConnectableCommand(c Connectable) [len(ConnectableBase) + 1]byte {
	var cmd [len(ConnectableBase) + 1]byte
	copy(cmd[:], ConnectableBase)
	cmd[len(ConnectableBase)] = c.Wire()
	return cmd
}

// AppendName appends "AT+NAME=<name>" to dst.
func AppendName(dst []byte, name string) []byte {
	return append(append(dst, NameBase...), name...)
}

// AppendAdvData appends "AT+AVDA=<data>" to dst.
func AppendAdvData(dst []byte, data []byte) []byte {
	return append(append(dst, AdvDataBase...), data...)
}

// ScaleInterval converts a connection interval from the module's native
// 1.25 ms tick count to the value AT+CINT takes. The division happens first,
// so remainders of v/4 are dropped. The result is widened so the largest
// uint32 input does not wrap.
func ScaleInterval(v uint32) uint64 {
	return uint64(v) / 4 * 5
}

// ScaleTimeout converts a supervision timeout to the value AT+CTOUT takes.
func ScaleTimeout(v uint32) uint32 {
	return v / 10
}

// AppendChangeInterval appends "AT+CINT=<min>[,<max>]" with both bounds
// scaled. A single value is written when the scaled bounds are equal.
func AppendChangeInterval(dst []byte, min, max uint32) []byte {
	return appendInterval(append(dst, IntervalBase...), min, max)
}

// AppendIntervalReply appends the "OK+CINT=..." echo the module sends for
// AppendChangeInterval(min, max).
func AppendIntervalReply(dst []byte, min, max uint32) []byte {
	return appendInterval(append(dst, IntervalReply...), min, max)
}

func appendInterval(dst []byte, min, max uint32) []byte {
	lo, hi := ScaleInterval(min), ScaleInterval(max)
	dst = appendDecimal(dst, lo)
	if lo != hi {
		dst = append(dst, ',')
		dst = appendDecimal(dst, hi)
	}
	return dst
}

// AppendChangeTimeout appends "AT+CTOUT=<time/10>".
func AppendChangeTimeout(dst []byte, time uint32) []byte {
	return appendDecimal(append(dst, TimeoutBase...), uint64(ScaleTimeout(time)))
}

// AppendTimeoutReply appends the "OK+CTOUT=..." echo for AppendChangeTimeout.
func AppendTimeoutReply(dst []byte, time uint32) []byte {
	return appendDecimal(append(dst, TimeoutReply...), uint64(ScaleTimeout(time)))
}

// appendDecimal writes the minimal decimal digits of v; zero is "0".
func appendDecimal(dst []byte, v uint64) []byte {
	return strconv.AppendUint(dst, v, 10)
}

// SetUUIDCommand builds "AT+xUUID=hhhh" for the slot.
func SetUUIDCommand(s UUIDSlot, u UUID) [UUIDReplySize]byte {
	return uuidMessage(s.SetBase(), u)
}

// SetUUIDReply builds the "OK+xUUID=hhhh" echo for SetUUIDCommand.
func SetUUIDReply(s UUIDSlot, u UUID) [UUIDReplySize]byte {
	return uuidMessage(s.Reply(), u)
}

func uuidMessage(base string, u UUID) [UUIDReplySize]byte {
	var msg [UUIDReplySize]byte
	n := copy(msg[:], base)
	w := u.Wire()
	copy(msg[n:], w[:])
	return msg
}
