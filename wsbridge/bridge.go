// Package wsbridge tunnels a controller's byte stream over a websocket
// so the driver can talk to a controller plugged into another host.
//
// The server side forwards every serial read as one binary message,
// including zero-length reads from the port's deadline expiring. That
// keeps the driver's reply-timeout semantics intact across the bridge:
// a zero-length read on the client still means the controller stayed
// silent.
package wsbridge

import (
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Dial connects to a bridge endpoint and returns the remote port as a
// byte stream.
func Dial(url string) (io.ReadWriteCloser, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &conn{ws: ws}, nil
}

type conn struct {
	ws   *websocket.Conn
	rbuf []byte
}

func (c *conn) Read(p []byte) (int, error) {
	if len(c.rbuf) == 0 {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return 0, err
		}
		c.rbuf = data
	}
	n := copy(p, c.rbuf)
	c.rbuf = c.rbuf[n:]
	return n, nil
}

func (c *conn) Write(p []byte) (int, error) {
	if err := c.ws.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *conn) Close() error {
	return c.ws.Close()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler serves rw over websocket. The protocol has no framing, so
// only one client may hold the port; later connects are refused until
// the current one drops.
func Handler(rw io.ReadWriter) http.Handler {
	var mx sync.Mutex
	busy := false

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		mx.Lock()
		if busy {
			mx.Unlock()
			http.Error(w, "port is in use", http.StatusConflict)
			return
		}
		busy = true
		mx.Unlock()
		defer func() {
			mx.Lock()
			busy = false
			mx.Unlock()
		}()

		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			log.Println("ERROR: upgrade:", err)
			return
		}
		defer ws.Close()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				_, data, err := ws.ReadMessage()
				if err != nil {
					return
				}
				if _, err = rw.Write(data); err != nil {
					log.Println("ERROR: write to port:", err)
					return
				}
			}
		}()

		buf := make([]byte, 4096)
		for {
			select {
			case <-done:
				return
			default:
			}

			n, err := rw.Read(buf)
			if err != nil {
				log.Println("ERROR: read from port:", err)
				return
			}
			if err = ws.WriteMessage(websocket.BinaryMessage, buf[:n]); err != nil {
				return
			}
		}
	})
}
