package i2cbus

import (
	"fmt"
	"sync"
)

// Peripheral simulates one device on a loopback bus. Handle receives the
// command byte and write payload of a transaction and, when r is non-empty,
// must fill it with the bytes the device would return. Returning an error
// fails the whole transaction with ErrIO.
type Peripheral interface {
	Handle(cmd byte, w []byte, r []byte) error
}

// PeripheralFunc adapts a function to the Peripheral interface.
type PeripheralFunc func(cmd byte, w []byte, r []byte) error

func (f PeripheralFunc) Handle(cmd byte, w []byte, r []byte) error {
	return f(cmd, w, r)
}

// Phase labels for trace entries.
type Phase uint8

const (
	PhaseSelect Phase = iota // target address set on the bus
	PhaseWrite               // command byte + payload written
	PhaseRead                // bytes read back
)

func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhaseWrite:
		return "write"
	case PhaseRead:
		return "read"
	}
	return "unknown"
}

// TraceEntry records one bus phase as observed by a loopback bus.
type TraceEntry struct {
	Addr  uint8
	Phase Phase
	Data  []byte // written bytes (Cmd first) or bytes returned; nil for select
}

// LoopbackBus is an in-memory I2C bus for tests and simulations. Peripherals
// are attached per address; transactions against unattached addresses fail
// with ErrIO, mimicking a missing device that never acknowledges.
//
// The bus records every phase of every transaction in a trace. Because whole
// transactions run under the same exclusive lock the kernel-backed Dev uses,
// the trace shows the select, write and read phases of each call as one
// contiguous block, never interleaved with another call's phases.
type LoopbackBus struct {
	mu          sync.Mutex
	closed      bool
	peripherals map[uint8]Peripheral
	trace       []TraceEntry
}

// NewLoopbackBus creates a new loopback bus with no peripherals attached.
func NewLoopbackBus() *LoopbackBus {
	return &LoopbackBus{peripherals: make(map[uint8]Peripheral)}
}

// Connect attaches a peripheral at the given address, replacing any previous
// occupant. Connect on a closed bus is a no-op.
func (b *LoopbackBus) Connect(addr uint8, p Peripheral) {
	b.mu.Lock()
	if !b.closed {
		b.peripherals[addr] = p
	}
	b.mu.Unlock()
}

// Disconnect removes the peripheral at the given address, if any.
func (b *LoopbackBus) Disconnect(addr uint8) {
	b.mu.Lock()
	if !b.closed {
		delete(b.peripherals, addr)
	}
	b.mu.Unlock()
}

// Transact runs the exchange against the attached peripheral, recording each
// phase in the trace. The lock is held for the whole exchange.
func (b *LoopbackBus) Transact(tx Tx) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	b.trace = append(b.trace, TraceEntry{Addr: tx.Addr, Phase: PhaseSelect})
	p, ok := b.peripherals[tx.Addr]
	if !ok {
		return fmt.Errorf("%w: no device at %#02x", ErrIO, tx.Addr)
	}

	wire := make([]byte, 1+len(tx.W))
	wire[0] = tx.Cmd
	copy(wire[1:], tx.W)
	b.trace = append(b.trace, TraceEntry{Addr: tx.Addr, Phase: PhaseWrite, Data: wire})

	if err := p.Handle(tx.Cmd, tx.W, tx.R); err != nil {
		return fmt.Errorf("%w: device %#02x: %v", ErrIO, tx.Addr, err)
	}
	if len(tx.R) > 0 {
		got := make([]byte, len(tx.R))
		copy(got, tx.R)
		b.trace = append(b.trace, TraceEntry{Addr: tx.Addr, Phase: PhaseRead, Data: got})
	}
	return nil
}

// Trace returns a copy of the recorded phase trace.
func (b *LoopbackBus) Trace() []TraceEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]TraceEntry, len(b.trace))
	copy(out, b.trace)
	return out
}

// ResetTrace discards the recorded trace.
func (b *LoopbackBus) ResetTrace() {
	b.mu.Lock()
	b.trace = nil
	b.mu.Unlock()
}

// Close detaches all peripherals and fails subsequent transactions.
func (b *LoopbackBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	b.peripherals = nil
	return nil
}
