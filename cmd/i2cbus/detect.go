//go:build linux

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/notnil/i2cbus"
)

var busesCommand = &cli.Command{
	Name:  "buses",
	Usage: "list I2C adapter nodes and their functionality",
	Action: func(c *cli.Context) error {
		if err := i2cbus.EnsureDevInterface(); err != nil {
			return err
		}
		buses, err := i2cbus.ListBuses()
		if err != nil {
			return err
		}
		if len(buses) == 0 {
			return errors.New("no /dev/i2c-* nodes found")
		}
		var errs error
		for _, b := range buses {
			funcs, err := i2cbus.Funcs(b.Path)
			if err != nil {
				errs = multierr.Append(errs, errors.Wrap(err, b.Path))
				continue
			}
			fmt.Printf("%s\t%s\n", b.Path, funcs)
		}
		return errs
	},
}

var detectCommand = &cli.Command{
	Name:  "detect",
	Usage: "scan a bus for responsive peripherals (i2cdetect-style grid)",
	Action: func(c *cli.Context) error {
		path := c.String("bus")
		found, err := i2cbus.Scan(path)
		if err != nil {
			return errors.Wrapf(err, "scan %s", path)
		}
		present := make(map[uint8]bool, len(found))
		for _, a := range found {
			present[a] = true
		}

		hit := color.New(color.FgGreen, color.Bold)
		miss := color.New(color.Faint)

		fmt.Println("     0  1  2  3  4  5  6  7  8  9  a  b  c  d  e  f")
		for row := uint8(0x00); row <= 0x70; row += 0x10 {
			fmt.Printf("%02x: ", row)
			for col := uint8(0); col < 0x10; col++ {
				addr := row + col
				switch {
				case addr < i2cbus.ScanFirstAddr || addr > i2cbus.ScanLastAddr:
					fmt.Print("   ")
				case present[addr]:
					hit.Printf("%02x ", addr)
				default:
					miss.Print("-- ")
				}
			}
			fmt.Println()
		}
		fmt.Printf("%d device(s) found on %s\n", len(found), path)
		return nil
	},
}
