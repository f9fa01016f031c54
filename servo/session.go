// Package servo drives a multi-channel daisy-chained servo controller
// over a byte-stream transport. A Session owns the transport, keeps a
// registry of discovered motors, and uploads and runs motor programs.
//
// The protocol has no framing or request IDs: exactly one command may be
// outstanding at a time, so every Session operation holds one mutex for
// the full request/response exchange.
package servo

import (
	"io"
	"sync"

	"github.com/mastercactapus/gservo/program"
	"github.com/mastercactapus/gservo/wire"
)

// Session is a connection to one controller. Capability fields are read
// from the device during Connect and are fixed for the session lifetime.
type Session struct {
	FirmwareVersion uint32
	HardwareVersion uint32
	MaxPrograms     uint32
	MaxSteps        uint32

	mx     sync.Mutex
	conn   io.ReadWriteCloser
	closed bool

	motors map[Key]*motorState
	loaded []bool
	events chan Event
}

// Connect performs the handshake and info query on rw, then runs an
// initial discovery scan. On any failure rw is closed before returning.
func Connect(rw io.ReadWriteCloser) (*Session, error) {
	s := &Session{
		conn:   rw,
		motors: make(map[Key]*motorState),
		events: make(chan Event, 64),
	}

	if err := s.handshake(); err != nil {
		rw.Close()
		return nil, err
	}
	if err := s.readInfo(); err != nil {
		rw.Close()
		return nil, err
	}
	s.loaded = make([]bool, s.MaxPrograms)

	if err := s.discover(); err != nil {
		rw.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the transport. It is idempotent and never errors; a
// failing transport close cannot be acted on at teardown anyway.
func (s *Session) Close() error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.conn.Close()
	return nil
}

// NewProgram returns an empty program sized to the controller's
// max-steps bound.
func (s *Session) NewProgram() *program.Program {
	return program.New(int(s.MaxSteps))
}

func (s *Session) handshake() error {
	if err := s.write([]byte{wire.Selector, wire.OpHandshake}); err != nil {
		return err
	}
	b, err := s.readReply("handshake")
	if err != nil {
		return err
	}
	if b != wire.HandshakeAck {
		return HandshakeError{Reply: b}
	}
	return nil
}

func (s *Session) readInfo() error {
	if err := s.write([]byte{wire.Selector, wire.OpInfo}); err != nil {
		return err
	}
	var buf [16]byte
	if err := s.readFull(buf[:], "info query"); err != nil {
		return err
	}
	s.FirmwareVersion = wire.Uint32(buf[0:])
	s.HardwareVersion = wire.Uint32(buf[4:])
	s.MaxPrograms = wire.Uint32(buf[8:])
	s.MaxSteps = wire.Uint32(buf[12:])
	return nil
}

func (s *Session) write(p []byte) error {
	_, err := s.conn.Write(p)
	return err
}

// readReply reads the single status byte a command produces. The
// transport is expected to enforce a read deadline; a zero-length read
// means the controller never answered.
func (s *Session) readReply(op string) (byte, error) {
	var b [1]byte
	n, err := s.conn.Read(b[:])
	if n == 0 || err != nil {
		return 0, ProtocolTimeoutError{Op: op}
	}
	return b[0], nil
}

func (s *Session) readFull(buf []byte, op string) error {
	off := 0
	for off < len(buf) {
		n, err := s.conn.Read(buf[off:])
		off += n
		if off == len(buf) {
			break
		}
		if n == 0 || err != nil {
			return ProtocolTimeoutError{Op: op}
		}
	}
	return nil
}
