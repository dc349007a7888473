package i2cbus_test

import (
	"fmt"

	"github.com/notnil/i2cbus"
)

func ExampleLoopbackBus() {
	bus := i2cbus.NewLoopbackBus()
	defer bus.Close()

	// A fake sensor at 0x48 that answers register 0x00 with a temperature.
	bus.Connect(0x48, i2cbus.PeripheralFunc(func(cmd byte, w, r []byte) error {
		if cmd == 0x00 {
			copy(r, []byte{0x19, 0x80})
		}
		return nil
	}))

	tx := i2cbus.MustTx(0x48, 0x00, nil, 2)
	if err := bus.Transact(tx); err != nil {
		panic(err)
	}
	fmt.Printf("%s -> %X\n", tx, tx.R)
	// Output: 48 W[00] R[2] -> 1980
}
