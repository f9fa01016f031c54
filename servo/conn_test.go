package servo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/gservo/wire"
)

func init() {
	discoverSettle = time.Millisecond
}

// testConn scripts the controller side of the exchange. Each Read pops
// the next queued reply; an empty entry (or an exhausted queue) acts as
// a read deadline expiring, which is how the real transport reports an
// absent reply.
type testConn struct {
	writes  [][]byte
	replies [][]byte
	closed  int
}

func (c *testConn) queue(replies ...[]byte) {
	c.replies = append(c.replies, replies...)
}

func (c *testConn) Write(p []byte) (int, error) {
	c.writes = append(c.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (c *testConn) Read(p []byte) (int, error) {
	if len(c.replies) == 0 {
		return 0, nil
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	if len(r) == 0 {
		return 0, nil
	}
	n := copy(p, r)
	if n < len(r) {
		c.replies = append([][]byte{r[n:]}, c.replies...)
	}
	return n, nil
}

func (c *testConn) Close() error {
	c.closed++
	return nil
}

func infoReply(firmware, hardware, maxPrograms, maxSteps uint32) []byte {
	b := wire.PutUint32(nil, firmware)
	b = wire.PutUint32(b, hardware)
	b = wire.PutUint32(b, maxPrograms)
	return wire.PutUint32(b, maxSteps)
}

func discoverRecord(channel, address uint8, model uint32) []byte {
	return wire.PutUint32([]byte{channel, address}, model)
}

// connectSession runs Connect against a scripted handshake/info exchange
// and an empty initial scan, then queues extra for later operations.
func connectSession(t *testing.T, extra ...[]byte) (*Session, *testConn) {
	t.Helper()
	conn := &testConn{}
	conn.queue(
		[]byte{wire.HandshakeAck},
		infoReply(0x010200, 0x0300, 4, 32),
		nil, // scan reports nothing
	)
	conn.queue(extra...)

	s, err := Connect(conn)
	require.NoError(t, err)
	return s, conn
}
