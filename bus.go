package i2cbus

import (
	"errors"
)

// Bus is a connection to an I2C bus on which transactions can be issued.
// Implementations must be safe for concurrent use by multiple goroutines:
// each Transact call executes as one indivisible unit on the bus, with no
// interleaving of the address, write and read phases of concurrent calls.
type Bus interface {
	// Transact performs one complete exchange with the peripheral at tx.Addr:
	// the command byte and tx.W are written, then len(tx.R) bytes are read
	// into tx.R when a read was requested. It blocks for the full duration of
	// the underlying I/O; there is no timeout or cancellation, a stalled
	// peripheral stalls the caller per the platform's own semantics.
	Transact(tx Tx) error

	// Close releases the bus resources. Further Transact calls fail.
	Close() error
}

// ErrIO indicates a failure to open the bus device or to complete a bus
// transaction (address-set, write or read phase). Every I/O failure returned
// by this package satisfies errors.Is(err, ErrIO); any diagnostic detail is
// wrapped around it.
var ErrIO = errors.New("i2cbus: i/o failure")

// ErrClosed indicates the bus has been closed.
var ErrClosed = errors.New("i2cbus: closed")
