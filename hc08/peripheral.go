package hc08

import "i4.energy/across/hc08ctl/at"

func (p *Peripheral) ServiceUUID() (at.UUID, error) {
	l, err := p.live()
	if err != nil {
		return 0, err
	}
	return l.queryUUID(at.ServiceSlot)
}

func (p *Peripheral) SetServiceUUID(u at.UUID) error {
	l, err := p.live()
	if err != nil {
		return err
	}
	return l.setUUID(at.ServiceSlot, u)
}

func (p *Peripheral) CharacteristicUUID() (at.UUID, error) {
	l, err := p.live()
	if err != nil {
		return 0, err
	}
	return l.queryUUID(at.CharacteristicSlot)
}

func (p *Peripheral) SetCharacteristicUUID(u at.UUID) error {
	l, err := p.live()
	if err != nil {
		return err
	}
	return l.setUUID(at.CharacteristicSlot, u)
}
