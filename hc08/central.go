package hc08

import "i4.energy/across/hc08ctl/at"

// ClearBondedAddr makes the central forget the peripheral it last bonded with.
func (c *Central) ClearBondedAddr() error {
	l, err := c.live()
	if err != nil {
		return err
	}
	return l.expectOK([]byte(at.CmdClear))
}

// ConnectUUID queries the service UUID the central connects to.
func (c *Central) ConnectUUID() (at.UUID, error) {
	l, err := c.live()
	if err != nil {
		return 0, err
	}
	return l.queryUUID(at.ConnectSlot)
}

// SetConnectUUID sets the service UUID the central connects to.
func (c *Central) SetConnectUUID(u at.UUID) error {
	l, err := c.live()
	if err != nil {
		return err
	}
	return l.setUUID(at.ConnectSlot, u)
}
