package app

import (
	"sync"
	"time"
)

// DefaultNotificationTTL matches the historical 5-second visible lifetime.
const DefaultNotificationTTL = 5 * time.Second

// Notifier is a single-slot transient message. Show replaces the current
// message and re-arms the expiry timer; there is no queueing. A sequence
// number guards the deferred expiry so a stale timer can never resurrect or
// clear a message it did not arm.
type Notifier struct {
	ttl time.Duration

	mu    sync.Mutex
	msg   string
	seq   uint64
	timer *time.Timer
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{ttl: ttl}
}

func (n *Notifier) Show(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	n.msg = message
	if n.timer != nil {
		n.timer.Stop()
	}
	seq := n.seq
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(seq) })
}

// Clear empties the slot before the timer fires.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seq++
	n.msg = ""
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

// Current returns the visible message, if any.
func (n *Notifier) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg, n.msg != ""
}

func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.seq != seq {
		return // replaced or cleared since this timer was armed
	}
	n.msg = ""
	n.timer = nil
}
