//go:build linux

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/notnil/i2cbus"
)

// pollSample is the JSON payload published per successful poll.
type pollSample struct {
	Bus  string `json:"bus"`
	Addr uint8  `json:"addr"`
	Cmd  byte   `json:"cmd"`
	Data string `json:"data"` // hex encoded
	At   int64  `json:"at"`   // unix millis
}

var pollCommand = &cli.Command{
	Name:  "poll",
	Usage: "poll a read transaction periodically and publish the payload to MQTT",
	Flags: []cli.Flag{
		&cli.UintFlag{Name: "addr", Aliases: []string{"a"}, Required: true, Usage: "7-bit peripheral address"},
		&cli.UintFlag{Name: "cmd", Aliases: []string{"c"}, Required: true, Usage: "command/register byte"},
		&cli.IntFlag{Name: "read", Aliases: []string{"r"}, Value: 1, Usage: "number of bytes to read per poll"},
		&cli.DurationFlag{Name: "interval", Aliases: []string{"i"}, Value: time.Second, Usage: "poll interval"},
		&cli.StringFlag{Name: "broker", Value: "tcp://localhost:1883", Usage: "MQTT broker URL"},
		&cli.StringFlag{Name: "topic", Required: true, Usage: "MQTT topic to publish to"},
	},
	Action: func(c *cli.Context) error {
		addr := c.Uint("addr")
		cmd := c.Uint("cmd")
		n := c.Int("read")
		if addr > 0x7F || cmd > 0xFF || n < 1 || n > 255 {
			return errors.New("invalid addr/cmd/read")
		}

		bus, err := openBus(c)
		if err != nil {
			return err
		}
		defer bus.Close()

		hostname, _ := os.Hostname()
		opts := mqtt.NewClientOptions().
			AddBroker(c.String("broker")).
			SetClientID("i2cbus-" + hostname).
			SetAutoReconnect(true)
		conn := mqtt.NewClient(opts)
		if tok := conn.Connect(); tok.Wait() && tok.Error() != nil {
			return errors.Wrap(tok.Error(), "connect to broker")
		}
		defer conn.Disconnect(250)

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		ticker := time.NewTicker(c.Duration("interval"))
		defer ticker.Stop()

		topic := c.String("topic")
		tx := i2cbus.Tx{Addr: uint8(addr), Cmd: byte(cmd), R: make([]byte, n)}
		for {
			select {
			case <-stop:
				return nil
			case <-ticker.C:
			}
			if err := bus.Transact(tx); err != nil {
				fmt.Fprintf(os.Stderr, "poll: %v\n", err)
				continue
			}
			payload, err := json.Marshal(pollSample{
				Bus:  c.String("bus"),
				Addr: uint8(addr),
				Cmd:  byte(cmd),
				Data: hex.EncodeToString(tx.R),
				At:   time.Now().UnixMilli(),
			})
			if err != nil {
				return err
			}
			if tok := conn.Publish(topic, 0, false, payload); tok.Wait() && tok.Error() != nil {
				fmt.Fprintf(os.Stderr, "publish: %v\n", tok.Error())
			}
		}
	},
}
