package servo

import (
	"github.com/mastercactapus/gservo/program"
	"github.com/mastercactapus/gservo/wire"
)

// LoadProgram uploads p to the given controller slot. The payload is
// sent as one write; the slot is marked loaded only after the
// controller acknowledges it. Re-loading an occupied slot overwrites
// it.
func (s *Session) LoadProgram(slot int, p *program.Program) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if slot < 0 || slot >= len(s.loaded) {
		return SlotRangeError{Slot: slot, Max: len(s.loaded)}
	}

	if err := s.write(p.Marshal(uint8(slot))); err != nil {
		return err
	}
	b, err := s.readReply("load program")
	if err != nil {
		return err
	}
	if b != wire.Ack {
		return UploadError{Slot: slot, Reply: b}
	}

	s.loaded[slot] = true
	s.emit(Event{Type: EventProgramLoaded, Slot: slot})
	return nil
}

// RunProgram starts execution of a loaded slot. The command is
// fire-and-forget: the controller runs the program on its own and
// nothing reports completion back to the host.
func (s *Session) RunProgram(slot int) error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if slot < 0 || slot >= len(s.loaded) {
		return SlotRangeError{Slot: slot, Max: len(s.loaded)}
	}
	if !s.loaded[slot] {
		return ProgramNotLoadedError{Slot: slot}
	}

	if err := s.write([]byte{wire.Selector, wire.OpRun, uint8(slot)}); err != nil {
		return err
	}
	s.emit(Event{Type: EventProgramRun, Slot: slot})
	return nil
}

// Loaded reports whether a slot has been successfully uploaded this
// session.
func (s *Session) Loaded(slot int) bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	return slot >= 0 && slot < len(s.loaded) && s.loaded[slot]
}
