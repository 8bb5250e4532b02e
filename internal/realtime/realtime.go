// Package realtime maintains the one push connection per authenticated
// session. The backend addresses the socket by user id and sends a single
// message kind, the status update of §reconcile. There is no client-side
// reconnect or backoff; the transport's own defaults apply and a dropped
// stream simply ends until the next sign-in or screen mount reconnects.
package realtime

import (
	"context"
	"sync"

	"appwatch/internal/models"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

type State int

const (
	StateDisconnected State = iota
	StateConnected
	StateReceiving
)

type Listener struct {
	socketURL string
	log       *log.Logger

	mu      sync.Mutex
	conn    *websocket.Conn
	state   State
	closing bool
	err     error

	updates chan models.StatusUpdate
}

func NewListener(socketURL string, logger *log.Logger) *Listener {
	return &Listener{socketURL: socketURL, log: logger}
}

// Connect dials the status channel for one user and starts the read loop.
func (l *Listener) Connect(ctx context.Context, userUUID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn != nil {
		return nil
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, l.socketURL+"?userId="+userUUID, nil)
	if err != nil {
		l.log.Error("realtime connect failed", "err", err)
		return err
	}

	l.conn = conn
	l.state = StateConnected
	l.closing = false
	l.err = nil
	l.updates = make(chan models.StatusUpdate, 16)
	go l.readLoop(conn, l.updates)
	return nil
}

// Updates delivers pushed status messages in arrival order. The channel is
// closed when the connection ends; check Err afterwards.
func (l *Listener) Updates() <-chan models.StatusUpdate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.updates
}

func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Listener) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close tears the connection down unconditionally (sign-out, screen unmount).
func (l *Listener) Close() {
	l.mu.Lock()
	conn := l.conn
	l.closing = true
	l.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func (l *Listener) readLoop(conn *websocket.Conn, out chan models.StatusUpdate) {
	defer close(out)
	for {
		var upd models.StatusUpdate
		if err := conn.ReadJSON(&upd); err != nil {
			l.mu.Lock()
			if !l.closing {
				l.err = err
				l.log.Warn("realtime stream ended", "err", err)
			}
			l.conn = nil
			l.state = StateDisconnected
			l.mu.Unlock()
			return
		}

		l.mu.Lock()
		l.state = StateReceiving
		l.mu.Unlock()
		out <- upd
	}
}
