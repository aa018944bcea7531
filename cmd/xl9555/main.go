// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// xl9555 reads and drives the lines of an XL9555 I/O expander.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// opener opens the named I²C bus.
type opener func(name string) (i2c.BusCloser, error)

func openBus(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return i2creg.Open(name)
}

func newApp(open opener) *cli.App {
	app := cli.NewApp()
	app.Name = "xl9555"
	app.Usage = "read and drive the lines of an XL9555 I/O expander"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load configuration from `FILE`",
		},
		cli.StringFlag{
			Name:  "bus, b",
			Usage: "I²C bus name, default is the first bus",
		},
		cli.BoolFlag{Name: "a0", Usage: "A0 address pin tied high"},
		cli.BoolFlag{Name: "a1", Usage: "A1 address pin tied high"},
		cli.BoolFlag{Name: "a2", Usage: "A2 address pin tied high"},
		cli.StringFlag{
			Name:  "directions",
			Usage: "direction map written after opening the device, 1 = input",
		},
		cli.IntFlag{
			Name:  "loglevel",
			Value: 4,
			Usage: "the loglevel to use, from 0 to 6",
		},
	}
	app.Commands = commands(open)
	return app
}

func main() {
	if err := newApp(openBus).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "xl9555: %s.\n", err)
		os.Exit(1)
	}
}
