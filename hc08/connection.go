package hc08

import "i4.energy/across/hc08ctl/at"

// connected carries the operations of the two connectable modes.
type connected struct {
	base
}

// SetConnInterval sets the connection interval bounds, given in 1.25 ms
// ticks. The module echoes the scaled values, which must match exactly.
func (c *connected) SetConnInterval(min, max uint32) error {
	l, err := c.live()
	if err != nil {
		return err
	}
	var cmd, reply [32]byte
	return l.expect(
		at.AppendChangeInterval(cmd[:0], min, max),
		at.AppendIntervalReply(reply[:0], min, max),
	)
}

// SetConnTimeout sets the supervision timeout. The module echoes time/10.
func (c *connected) SetConnTimeout(time uint32) error {
	l, err := c.live()
	if err != nil {
		return err
	}
	var cmd, reply [24]byte
	return l.expect(
		at.AppendChangeTimeout(cmd[:0], time),
		at.AppendTimeoutReply(reply[:0], time),
	)
}
