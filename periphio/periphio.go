// Package periphio adapts an i2cbus.Bus to the periph.io i2c.Bus interface,
// so device drivers written against periph can run over this module's
// transaction primitive.
package periphio

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/notnil/i2cbus"
)

// ErrUnsupported is returned for operations the underlying transaction
// primitive cannot express: command-less reads, 10-bit addresses and bus
// speed changes.
var ErrUnsupported = errors.New("periphio: operation not supported by the underlying bus")

// Wrap exposes the given bus as a periph.io i2c.Bus. The name is only used
// by String.
func Wrap(bus i2cbus.Bus, name string) i2c.Bus {
	return &wrapper{bus: bus, name: name}
}

type wrapper struct {
	bus  i2cbus.Bus
	name string
}

func (w *wrapper) String() string {
	return w.name
}

// Tx maps a periph write-then-read onto one i2cbus transaction: the first
// written byte becomes the command byte, the rest the payload. A transfer
// with an empty write is not expressible and fails with ErrUnsupported.
func (w *wrapper) Tx(addr uint16, wr, rd []byte) error {
	if addr > 0x7F {
		return fmt.Errorf("%w: 10-bit address %#x", ErrUnsupported, addr)
	}
	if len(wr) == 0 {
		return fmt.Errorf("%w: read without preceding write", ErrUnsupported)
	}
	return w.bus.Transact(i2cbus.Tx{
		Addr: uint8(addr),
		Cmd:  wr[0],
		W:    wr[1:],
		R:    rd,
	})
}

// SetSpeed fails: the devfs transaction primitive has no speed control, the
// adapter clock is fixed by the platform.
func (w *wrapper) SetSpeed(f physic.Frequency) error {
	return fmt.Errorf("%w: set speed %s", ErrUnsupported, f)
}
