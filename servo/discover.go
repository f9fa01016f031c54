package servo

import (
	"time"

	"github.com/mastercactapus/gservo/wire"
)

// The protocol has no "discovery complete" marker: after the scan
// command the controller lets each chain report in, then dumps the
// records. All we can do is wait for the chains to settle before
// draining.
var discoverSettle = 500 * time.Millisecond

const maxDiscoverRecords = 3 * 253

// Discover runs a scan and registers every motor it reports. Scans are
// additive: motors absent from a re-scan keep their registry entries.
func (s *Session) Discover() error {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.discover()
}

// discover is the lock-held scan used by Discover, Connect, and
// SetAddress.
func (s *Session) discover() error {
	if err := s.write([]byte{wire.Selector, wire.OpDiscover}); err != nil {
		return err
	}
	time.Sleep(discoverSettle)

	data, err := s.drain(maxDiscoverRecords * wire.DiscoverRecordSize)
	if err != nil {
		return err
	}

	found := make([]Key, 0, len(data)/wire.DiscoverRecordSize)
	for off := 0; off+wire.DiscoverRecordSize <= len(data); off += wire.DiscoverRecordSize {
		key := Key{Channel: data[off], Address: data[off+1]}
		model := ModelName(wire.Uint32(data[off+2:]))

		st, ok := s.motors[key]
		if !ok {
			st = &motorState{}
			s.motors[key] = st
		}
		st.connected = true
		st.model = model
		found = append(found, key)

		s.emit(Event{Type: EventMotorFound, Channel: key.Channel, Address: key.Address, Model: model})
	}

	for _, key := range found {
		if err := s.setDefaultMode(key); err != nil {
			return err
		}
	}
	return nil
}

// drain reads until the transport goes idle (a zero-length read under
// its deadline) or max bytes arrive. Trailing partial records are
// ignored.
func (s *Session) drain(max int) ([]byte, error) {
	buf := make([]byte, max)
	off := 0
	for off < len(buf) {
		n, err := s.conn.Read(buf[off:])
		off += n
		if n == 0 {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return buf[:off], nil
}

func (s *Session) setDefaultMode(key Key) error {
	err := s.write([]byte{wire.Selector, wire.OpSetMode, key.Channel, key.Address, 1})
	if err != nil {
		return err
	}
	b, err := s.readReply("set default mode")
	if err != nil {
		return ModeSetError{Channel: key.Channel, Address: key.Address}
	}
	if b != wire.Ack {
		return ModeSetError{Channel: key.Channel, Address: key.Address, Reply: b}
	}
	return nil
}
