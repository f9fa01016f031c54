package servo

import "github.com/mastercactapus/gservo/wire"

// SetAddress re-addresses the motor at (channel, current) to newAddr.
// The motor must be registered and must not be bound: changing the
// address under a live Motor handle would leave the handle pointing at
// a stale key. On success the old registry entry is dropped and a full
// re-scan learns the new mapping, since chain enumeration cannot be
// predicted host-side.
func (s *Session) SetAddress(channel, current, newAddr uint8) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	key := Key{Channel: channel, Address: current}
	st, ok := s.motors[key]
	if ok && st.active {
		return MotorInUseError{Channel: channel, Address: current}
	}
	if !ok || !st.connected {
		return UnregisteredMotorError{Channel: channel, Address: current}
	}

	err := s.write([]byte{wire.Selector, wire.OpSetAddr, channel, current, newAddr})
	if err != nil {
		return err
	}
	b, err := s.readReply("set address")
	if err != nil {
		return err
	}
	if b != wire.Ack {
		return DeviceNackError{Channel: channel, Address: current, Reply: b}
	}

	st.connected = false
	s.emit(Event{Type: EventAddressChanged, Channel: channel, Address: newAddr, Model: st.model})
	return s.discover()
}
