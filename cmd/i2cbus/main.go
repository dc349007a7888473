//go:build linux

// Command i2cbus is a transaction-level test tool for Linux I2C buses:
// list adapters, scan for peripherals, run one-shot transfers and poll a
// device into MQTT.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/notnil/i2cbus"
)

func main() {
	app := &cli.App{
		Name:  "i2cbus",
		Usage: "inspect and exercise Linux I2C buses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bus",
				Aliases: []string{"b"},
				Value:   i2cbus.DefaultPath,
				Usage:   "bus device node",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every transaction",
			},
		},
		Commands: []*cli.Command{
			busesCommand,
			detectCommand,
			xferCommand,
			pollCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openBus opens the selected bus, wrapping it in the logging decorator when
// --verbose is set.
func openBus(c *cli.Context) (i2cbus.Bus, error) {
	dev, err := i2cbus.Open(c.String("bus"))
	if err != nil {
		return nil, err
	}
	if !c.Bool("verbose") {
		return dev, nil
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return i2cbus.NewLoggedBus(dev, logger, slog.LevelDebug, i2cbus.LogAll), nil
}
