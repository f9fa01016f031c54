package servo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gservo/wire"
)

func TestDiscover(t *testing.T) {
	s, conn := connectSession(t)
	defer s.Close()

	records := bytes.Join([][]byte{
		discoverRecord(1, 1, 1006),
		discoverRecord(1, 2, 2025),
		discoverRecord(3, 1, 9999), // not in the catalog
	}, nil)
	conn.queue(
		records,
		nil, // chain idle
		[]byte{wire.Ack},
		[]byte{wire.Ack},
		[]byte{wire.Ack},
	)

	require.NoError(t, s.Discover())

	motors := s.Motors()
	require.Len(t, motors, 3)
	assert.Equal(t, MotorInfo{Key: Key{1, 1}, Model: "S-06", Connected: true}, motors[0])
	assert.Equal(t, MotorInfo{Key: Key{1, 2}, Model: "M-25", Connected: true}, motors[1])
	assert.Equal(t, MotorInfo{Key: Key{3, 1}, Model: UnknownModel, Connected: true}, motors[2])

	// one default-mode command per discovered motor
	writes := conn.writes[3:]
	require.Len(t, writes, 4)
	assert.Equal(t, []byte{wire.Selector, wire.OpDiscover}, writes[0])
	assert.Equal(t, []byte{wire.Selector, wire.OpSetMode, 1, 1, 1}, writes[1])
	assert.Equal(t, []byte{wire.Selector, wire.OpSetMode, 1, 2, 1}, writes[2])
	assert.Equal(t, []byte{wire.Selector, wire.OpSetMode, 3, 1, 1}, writes[3])
}

func TestDiscover_SplitRecords(t *testing.T) {
	s, conn := connectSession(t)
	defer s.Close()

	// one record split across reads, plus a trailing partial record
	rec := discoverRecord(2, 3, 3040)
	conn.queue(rec[:4], rec[4:], []byte{1, 9}, nil, []byte{wire.Ack})

	require.NoError(t, s.Discover())

	motors := s.Motors()
	require.Len(t, motors, 1)
	assert.Equal(t, Key{2, 3}, motors[0].Key)
	assert.Equal(t, "H-40", motors[0].Model)
}

func TestDiscover_ModeSetFailure(t *testing.T) {
	s, conn := connectSession(t)
	defer s.Close()

	conn.queue(
		discoverRecord(1, 1, 1003),
		nil,
		[]byte{0x07},
	)

	err := s.Discover()
	assert.Equal(t, ModeSetError{Channel: 1, Address: 1, Reply: 0x07}, err)
}

func TestDiscover_ModeSetNoReply(t *testing.T) {
	s, conn := connectSession(t)
	defer s.Close()

	conn.queue(discoverRecord(1, 1, 1003), nil)

	err := s.Discover()
	assert.Equal(t, ModeSetError{Channel: 1, Address: 1}, err)
}

func TestDiscover_Additive(t *testing.T) {
	s, conn := connectSession(t)
	defer s.Close()

	conn.queue(discoverRecord(1, 1, 1003), nil, []byte{wire.Ack})
	require.NoError(t, s.Discover())

	// second scan reports a different motor; the first stays registered
	conn.queue(discoverRecord(1, 2, 1006), nil, []byte{wire.Ack})
	require.NoError(t, s.Discover())

	motors := s.Motors()
	require.Len(t, motors, 2)
	assert.True(t, motors[0].Connected)
	assert.True(t, motors[1].Connected)
}

func TestBind(t *testing.T) {
	s, conn := connectSession(t)
	defer s.Close()

	conn.queue(discoverRecord(1, 1, 1012), nil, []byte{wire.Ack})
	require.NoError(t, s.Discover())

	_, err := s.Bind(1, 2)
	assert.Equal(t, UnregisteredMotorError{Channel: 1, Address: 2}, err)

	m, err := s.Bind(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Key{1, 1}, m.Key())
	assert.Equal(t, "S-12", m.Model())
	assert.True(t, s.Motors()[0].Active)
}

func TestDiscover_Events(t *testing.T) {
	s, conn := connectSession(t)
	defer s.Close()

	conn.queue(discoverRecord(2, 5, 4016), nil, []byte{wire.Ack})
	require.NoError(t, s.Discover())

	select {
	case e := <-s.Events():
		assert.Equal(t, Event{Type: EventMotorFound, Channel: 2, Address: 5, Model: "G-16"}, e)
	default:
		t.Fatal("expected a motor-found event")
	}
}
