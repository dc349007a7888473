package smbus

import (
	"fmt"

	"github.com/notnil/i2cbus"
)

// SMBus Packet Error Code: CRC-8 with polynomial x^8 + x^2 + x + 1 (0x07),
// initial value 0, computed over the whole packet including the addressing
// bytes.

// ErrPEC indicates a packet error code mismatch on a read.
var ErrPEC = fmt.Errorf("smbus: packet error code mismatch")

// CRC8 computes the SMBus CRC-8 over data.
func CRC8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// writePEC computes the PEC for a write: addr+W bit, command, payload.
func writePEC(addr uint8, cmd byte, data []byte) byte {
	buf := make([]byte, 0, 2+len(data))
	buf = append(buf, addr<<1, cmd)
	buf = append(buf, data...)
	return CRC8(buf)
}

// readPEC computes the PEC for a command read: addr+W, command, repeated
// addr+R, returned bytes.
func readPEC(addr uint8, cmd byte, data []byte) byte {
	buf := make([]byte, 0, 3+len(data))
	buf = append(buf, addr<<1, cmd, addr<<1|1)
	buf = append(buf, data...)
	return CRC8(buf)
}

// WriteByteDataPEC writes one byte to the given register with a trailing
// packet error code.
func (c Conn) WriteByteDataPEC(reg, v byte) error {
	pec := writePEC(c.Addr, reg, []byte{v})
	return c.Bus.Transact(i2cbus.Tx{Addr: c.Addr, Cmd: reg, W: []byte{v, pec}})
}

// ReadByteDataPEC reads one byte from the given register followed by the
// peripheral's packet error code, and verifies it.
func (c Conn) ReadByteDataPEC(reg byte) (byte, error) {
	buf, err := c.ReadBlockData(reg, 2)
	if err != nil {
		return 0, err
	}
	if readPEC(c.Addr, reg, buf[:1]) != buf[1] {
		return 0, ErrPEC
	}
	return buf[0], nil
}
