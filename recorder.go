package i2cbus

import (
	"sync"
	"time"
)

// Record is one completed transaction as observed by a Recorder. W and R are
// copies; they do not alias the caller's buffers.
type Record struct {
	Time time.Time
	Addr uint8
	Cmd  byte
	W    []byte
	R    []byte // populated only when the transaction succeeded with a read
	Err  error
}

// Recorder is a Bus decorator that fans completed transactions out to any
// number of subscribers via filters.
//
// It wraps the Bus rather than sniffing it: every Transact is forwarded to
// the inner Bus and the outcome is delivered to matching subscribers. This
// gives higher-level tooling (trace dumps, protocol decoders, test
// assertions) non-blocking, filtered observation of bus traffic without
// competing for the bus itself.
type Recorder struct {
	inner Bus

	mu   sync.RWMutex
	done bool
	subs map[uint64]*subscriber
	next uint64
}

type subscriber struct {
	filter TxFilter
	ch     chan Record
}

// NewRecorder creates a recorder wrapping the given Bus.
func NewRecorder(inner Bus) *Recorder {
	return &Recorder{
		inner: inner,
		subs:  make(map[uint64]*subscriber),
	}
}

// Subscribe registers a new subscriber with the provided filter and channel
// buffer. The returned channel receives records for transactions that match
// the filter. The cancel function should be called when no longer needed; it
// will close the channel.
func (r *Recorder) Subscribe(filter TxFilter, buffer int) (<-chan Record, func()) {
	if buffer < 0 {
		buffer = 0
	}
	s := &subscriber{filter: filter, ch: make(chan Record, buffer)}
	r.mu.Lock()
	id := r.next
	r.next++
	r.subs[id] = s
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		if cur, ok := r.subs[id]; ok && cur == s {
			close(cur.ch)
			delete(r.subs, id)
		}
		r.mu.Unlock()
	}
	return s.ch, cancel
}

// Transact forwards to the inner Bus and delivers the outcome to matching
// subscribers. Delivery never blocks the bus: records are dropped when a
// subscriber's channel is full.
func (r *Recorder) Transact(tx Tx) error {
	err := r.inner.Transact(tx)

	rec := Record{Time: time.Now(), Addr: tx.Addr, Cmd: tx.Cmd, Err: err}
	if len(tx.W) > 0 {
		rec.W = append([]byte(nil), tx.W...)
	}
	if err == nil && len(tx.R) > 0 {
		rec.R = append([]byte(nil), tx.R...)
	}

	r.mu.RLock()
	if !r.done {
		for _, s := range r.subs {
			if s.filter == nil || s.filter(tx) {
				select {
				case s.ch <- rec:
				default:
					// Drop if subscriber is slow and channel is full.
				}
			}
		}
	}
	r.mu.RUnlock()
	return err
}

// Close closes all subscriber channels and then the inner Bus.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if !r.done {
		r.done = true
		for id, s := range r.subs {
			close(s.ch)
			delete(r.subs, id)
		}
	}
	r.mu.Unlock()
	return r.inner.Close()
}
