package smbus

import (
	"encoding/binary"
	"fmt"

	"github.com/notnil/i2cbus"
)

// MaxBlockLen is the SMBus block transfer limit.
const MaxBlockLen = 32

// ErrBlockLen indicates a block transfer exceeding MaxBlockLen bytes.
var ErrBlockLen = fmt.Errorf("smbus: block exceeds %d bytes", MaxBlockLen)

// Conn binds a bus to one peripheral address. The zero value is not usable;
// construct with New. Conn is as safe for concurrent use as the underlying
// Bus: every helper issues exactly one transaction.
type Conn struct {
	Bus  i2cbus.Bus
	Addr uint8
}

// New returns a connection to the peripheral at addr on the given bus.
func New(bus i2cbus.Bus, addr uint8) Conn {
	return Conn{Bus: bus, Addr: addr}
}

// SendByte performs an SMBus Send Byte: the command byte alone, no payload,
// no read. Commonly used as a presence probe.
func (c Conn) SendByte(cmd byte) error {
	return c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: cmd})
}

// ReadByteData reads one byte from the given register.
func (c Conn) ReadByteData(reg byte) (byte, error) {
	buf := make([]byte, 1)
	if err := c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: reg, R: buf}); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteByteData writes one byte to the given register.
func (c Conn) WriteByteData(reg, v byte) error {
	return c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: reg, W: []byte{v}})
}

// ReadWordData reads a 16-bit word from the given register, little-endian
// per the SMBus specification.
func (c Conn) ReadWordData(reg byte) (uint16, error) {
	buf := make([]byte, 2)
	if err := c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: reg, R: buf}); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadWordDataBE reads a 16-bit word big-endian, for the many sensors that
// ignore the SMBus byte order.
func (c Conn) ReadWordDataBE(reg byte) (uint16, error) {
	buf := make([]byte, 2)
	if err := c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: reg, R: buf}); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// WriteWordData writes a 16-bit word to the given register, little-endian.
func (c Conn) WriteWordData(reg byte, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: reg, W: buf[:]})
}

// WriteWordDataBE writes a 16-bit word big-endian.
func (c Conn) WriteWordDataBE(reg byte, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: reg, W: buf[:]})
}

// ReadBlockData reads n bytes starting at the given register.
func (c Conn) ReadBlockData(reg byte, n int) ([]byte, error) {
	if n < 0 || n > MaxBlockLen {
		return nil, ErrBlockLen
	}
	buf := make([]byte, n)
	if err := c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: reg, R: buf}); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteBlockData writes up to MaxBlockLen bytes starting at the given
// register.
func (c Conn) WriteBlockData(reg byte, data []byte) error {
	if len(data) > MaxBlockLen {
		return ErrBlockLen
	}
	return c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: reg, W: data})
}
