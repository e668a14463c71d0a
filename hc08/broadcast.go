package hc08

import "i4.energy/across/hc08ctl/at"

// SetBroadcastData replaces the advertising payload.
func (b *Broadcast) SetBroadcastData(data []byte) error {
	l, err := b.live()
	if err != nil {
		return err
	}
	return l.expectOK(at.AppendAdvData(nil, data))
}
