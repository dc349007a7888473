//go:build linux

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/notnil/i2cbus"
)

var xferCommand = &cli.Command{
	Name:  "xfer",
	Usage: "run one write-then-read transaction",
	Flags: []cli.Flag{
		&cli.UintFlag{Name: "addr", Aliases: []string{"a"}, Required: true, Usage: "7-bit peripheral address"},
		&cli.UintFlag{Name: "cmd", Aliases: []string{"c"}, Required: true, Usage: "command/register byte"},
		&cli.StringFlag{Name: "write", Aliases: []string{"w"}, Usage: "payload as hex, e.g. aabb"},
		&cli.IntFlag{Name: "read", Aliases: []string{"r"}, Usage: "number of bytes to read back"},
	},
	Action: func(c *cli.Context) error {
		addr := c.Uint("addr")
		cmd := c.Uint("cmd")
		if addr > 0x7F {
			return errors.Errorf("address %#x out of 7-bit range", addr)
		}
		if cmd > 0xFF {
			return errors.Errorf("command %#x out of byte range", cmd)
		}
		w, err := hex.DecodeString(c.String("write"))
		if err != nil {
			return errors.Wrap(err, "decode payload")
		}
		n := c.Int("read")
		if n < 0 || n > 255 {
			return errors.Errorf("read length %d out of range", n)
		}

		bus, err := openBus(c)
		if err != nil {
			return err
		}
		defer bus.Close()

		tx := i2cbus.Tx{Addr: uint8(addr), Cmd: byte(cmd), W: w}
		if n > 0 {
			tx.R = make([]byte, n)
		}
		if err := bus.Transact(tx); err != nil {
			return errors.Wrap(err, tx.String())
		}
		if n > 0 {
			fmt.Printf("% 02X\n", tx.R)
		}
		return nil
	},
}
