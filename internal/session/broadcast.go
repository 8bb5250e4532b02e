package session

import "sync"

// Event mirrors the browser BroadcastChannel messages: sign-out is the only
// kind. Every attached dashboard session (local TUI or SSH connection) is the
// analog of an open tab.
type Event string

const EventSignOut Event = "signOut"

type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
}

func newBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{})}
}

func (b *Broadcaster) Attach() chan Event {
	ch := make(chan Event, 1)
	b.mu.Lock()
	if !b.closed {
		b.subs[ch] = struct{}{}
	}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) Detach(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish never blocks: a session that is not draining its channel misses the
// event rather than stalling everyone else.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Close() {
	b.mu.Lock()
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
	b.closed = true
	b.mu.Unlock()
}
