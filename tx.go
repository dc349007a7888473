package i2cbus

import (
	"errors"
	"fmt"
	"strings"
)

// Tx describes one I2C transaction: an addressed write of a command byte
// plus optional payload, followed by an optional read.
//
// Supported features:
//   - 7-bit peripheral addresses
//   - Write payloads and read lengths of 0-255 bytes
//
// Not implemented: 10-bit addressing, command-less (pure read) transfers.
type Tx struct {
	Addr uint8  // 7-bit peripheral address
	Cmd  byte   // command/register byte, always written first
	W    []byte // payload written after Cmd; may be nil
	R    []byte // read target; len(R) bytes are read when non-empty
}

// Validation limits.
const (
	maxAddr  = 0x7F
	maxCount = 255
)

var (
	ErrInvalidAddr = errors.New("i2cbus: invalid peripheral address")
	ErrInvalidLen  = errors.New("i2cbus: invalid transfer length")
)

// Validate returns an error if the transaction is not valid. Validation
// failures are caller bugs and are distinct from ErrIO.
func (t Tx) Validate() error {
	if t.Addr > maxAddr {
		return ErrInvalidAddr
	}
	if len(t.W) > maxCount || len(t.R) > maxCount {
		return ErrInvalidLen
	}
	return nil
}

// MustTx constructs a write-then-read Tx and panics if invalid. Convenience
// for examples and tests.
func MustTx(addr uint8, cmd byte, w []byte, readLen int) Tx {
	if readLen < 0 || readLen > maxCount {
		panic("i2cbus: invalid read length")
	}
	t := Tx{Addr: addr, Cmd: cmd, W: w}
	if readLen > 0 {
		t.R = make([]byte, readLen)
	}
	if err := t.Validate(); err != nil {
		panic(err)
	}
	return t
}

// String renders the transaction in a compact trace form, e.g.
// "50 W[10 AA BB]" or "50 W[00] R[4]".
func (t Tx) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02X W[%02X", t.Addr, t.Cmd)
	for _, v := range t.W {
		fmt.Fprintf(&b, " %02X", v)
	}
	b.WriteByte(']')
	if len(t.R) > 0 {
		fmt.Fprintf(&b, " R[%d]", len(t.R))
	}
	return b.String()
}
