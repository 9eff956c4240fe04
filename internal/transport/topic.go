package transport

import (
	"sync"

	"github.com/bennjii/labjack/internal/modbus"
)

// topic is the transaction-id demultiplexer for a single TCP connection: one
// background reader goroutine publishes every frame it receives by its MBAP
// transaction id, and each in-flight caller subscribes on the id it is
// waiting for. Ported from the upstream queue buffer's Topic/Subscriber
// split (a mutex-guarded map plus one wakeup channel per waiter), in Go
// terms: sync.Mutex + per-waiter chan struct{} instead of tokio::Notify.
type topic struct {
	mu      sync.Mutex
	data    map[uint16]reply
	waiters map[uint16]chan struct{}
}

type reply struct {
	header modbus.Header
	frame  []byte
}

func newTopic() *topic {
	return &topic{
		data:    make(map[uint16]reply),
		waiters: make(map[uint16]chan struct{}),
	}
}

// subscribe registers a waiter for the given transaction id. The returned
// channel is closed by publish (or closeAll) exactly once. ok is false if a
// waiter is already registered for id (spec §4.7: refuse to allocate a TID
// that already has a live waiter rather than collide with it).
func (t *topic) subscribe(id uint16) (ch <-chan struct{}, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.waiters[id]; exists {
		return nil, false
	}
	c := make(chan struct{})
	t.waiters[id] = c
	return c, true
}

// take removes and returns the published reply for id, if one has arrived.
func (t *topic) take(id uint16) (reply, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.data[id]
	if ok {
		delete(t.data, id)
	}
	delete(t.waiters, id)
	return r, ok
}

// publish stores a frame under its transaction id and wakes the matching
// waiter, if any. Frames for transaction ids nobody is waiting on (a reply
// to a caller that already gave up) are dropped.
func (t *topic) publish(header modbus.Header, frame []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	waiter, ok := t.waiters[header.TransactionID]
	if !ok {
		return
	}
	t.data[header.TransactionID] = reply{header: header, frame: frame}
	close(waiter)
	delete(t.waiters, header.TransactionID)
}

// closeAll wakes every outstanding waiter without publishing data, so a
// reader-loop failure (connection closed, I/O error) doesn't strand callers
// blocked forever on subscribe's channel.
func (t *topic) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, waiter := range t.waiters {
		close(waiter)
		delete(t.waiters, id)
	}
}
