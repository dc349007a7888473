package smbus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notnil/i2cbus"
)

func TestCRC8_KnownVectors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want byte
	}{
		{"empty", nil, 0x00},
		{"single zero", []byte{0x00}, 0x00},
		{"0xC2", []byte{0xC2}, 0x40},
		{"ascii 123456789", []byte("123456789"), 0xF4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CRC8(tc.in))
		})
	}
}

func TestByteDataPEC_RoundTrip(t *testing.T) {
	bus := i2cbus.NewLoopbackBus()
	defer bus.Close()

	// Peripheral that stores PEC-protected writes after verifying the
	// trailing code, and answers reads with value plus read-direction PEC.
	const addr = 0x48
	regs := map[byte]byte{}
	bus.Connect(addr, i2cbus.PeripheralFunc(func(cmd byte, w, r []byte) error {
		if len(w) == 2 {
			if writePEC(addr, cmd, w[:1]) != w[1] {
				return ErrPEC
			}
			regs[cmd] = w[0]
		}
		if len(r) == 2 {
			r[0] = regs[cmd]
			r[1] = readPEC(addr, cmd, r[:1])
		}
		return nil
	}))

	c := New(bus, addr)
	require.NoError(t, c.WriteByteDataPEC(0x10, 0x42))

	got, err := c.ReadByteDataPEC(0x10)
	require.NoError(t, err)
	require.Equal(t, byte(0x42), got)
}

func TestReadByteDataPEC_Mismatch(t *testing.T) {
	bus := i2cbus.NewLoopbackBus()
	defer bus.Close()

	bus.Connect(0x48, i2cbus.PeripheralFunc(func(cmd byte, w, r []byte) error {
		if len(r) == 2 {
			r[0] = 0x42
			r[1] = 0xFF // corrupted code
		}
		return nil
	}))

	c := New(bus, 0x48)
	_, err := c.ReadByteDataPEC(0x10)
	require.ErrorIs(t, err, ErrPEC)
}
