//go:build linux

package i2cbus

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// DefaultPath is the bus device node used when callers have no better idea.
// Bus 1 is the user-accessible bus on most SBCs (Raspberry Pi, Jetson).
const DefaultPath = "/dev/i2c-1"

// i2c-dev ioctl request numbers from <linux/i2c-dev.h>; x/sys/unix does not
// carry them.
const (
	i2cSlave = 0x0703 // I2C_SLAVE
	i2cFuncs = 0x0705 // I2C_FUNCS
)

// Dev implements Bus over a Linux /dev/i2c-* character device.
//
// A Dev begins life unopened; Init opens the device node exactly once and is
// safe to call repeatedly and concurrently. All transactions against the
// shared descriptor are serialized end-to-end by a single exclusive lock, so
// the address, write and read phases of one Transact never interleave with
// another's.
type Dev struct {
	path string

	mu     sync.Mutex // guards fd across Init, Transact and Close
	fd     int
	closed bool
}

// NewDev returns an unopened handle for the given device node. The node is
// not touched until Init (or the first failed Transact, which reports ErrIO
// without performing any bus I/O).
func NewDev(path string) *Dev {
	return &Dev{path: path, fd: -1}
}

// Open opens the given bus device node, e.g. "/dev/i2c-1". It is shorthand
// for NewDev followed by Init.
func Open(path string) (*Dev, error) {
	d := NewDev(path)
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init ensures the device node is open, opening it on the first call. Calls
// after a successful open are no-ops, so the descriptor is never leaked by
// repeated initialization.
func (d *Dev) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if d.fd >= 0 {
		return nil
	}
	fd, err := unix.Open(d.path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrIO, d.path, err)
	}
	d.fd = fd
	return nil
}

// Transact performs one addressed write-then-read exchange under the
// exclusive lock. The target address is set first, then the command byte and
// tx.W are written as a single buffer, then len(tx.R) bytes are read when a
// read was requested. A failed phase aborts the whole transaction; no retry
// or partial-completion recovery is attempted.
func (d *Dev) Transact(tx Tx) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if d.fd < 0 {
		return fmt.Errorf("%w: bus not initialized", ErrIO)
	}

	if err := unix.IoctlSetInt(d.fd, i2cSlave, int(tx.Addr)); err != nil {
		return fmt.Errorf("%w: set address %#02x: %v", ErrIO, tx.Addr, err)
	}

	buf := make([]byte, 1+len(tx.W))
	buf[0] = tx.Cmd
	copy(buf[1:], tx.W)
	n, err := unix.Write(d.fd, buf)
	if err != nil {
		return fmt.Errorf("%w: write %#02x: %v", ErrIO, tx.Addr, err)
	}
	if n != len(buf) {
		return fmt.Errorf("%w: short write %#02x: %d of %d bytes", ErrIO, tx.Addr, n, len(buf))
	}

	if len(tx.R) > 0 {
		n, err := unix.Read(d.fd, tx.R)
		if err != nil {
			return fmt.Errorf("%w: read %#02x: %v", ErrIO, tx.Addr, err)
		}
		if n != len(tx.R) {
			return fmt.Errorf("%w: short read %#02x: %d of %d bytes", ErrIO, tx.Addr, n, len(tx.R))
		}
	}
	return nil
}

// Path returns the device node this handle was created for.
func (d *Dev) Path() string {
	return d.path
}

// Close releases the descriptor. Close on an unopened or already-closed
// handle is a no-op.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	if d.fd < 0 {
		return nil
	}
	fd := d.fd
	d.fd = -1
	if err := unix.Close(fd); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrIO, d.path, err)
	}
	return nil
}
