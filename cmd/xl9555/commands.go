// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/xl9555/pinscreen"
	"github.com/GermanBionicSystems/xl9555/xl9555"
)

// session is what every command runs with: an opened device and where to
// report.
type session struct {
	cfg *config
	log *logrus.Entry
	dev *xl9555.Dev
	out io.Writer
}

// screen returns a pinscreen drawing on the session output.
func (s *session) screen() *pinscreen.Dev {
	if s.out == os.Stdout {
		return pinscreen.NewStdout(nil)
	}
	return pinscreen.New(s.out, nil)
}

func commands(open opener) []cli.Command {
	return []cli.Command{
		{
			Name:   "read",
			Usage:  "print the level of all 16 lines",
			Action: withDevice(open, read),
		},
		{
			Name:      "get",
			Usage:     "print the level of one line",
			ArgsUsage: "<pin>",
			Action:    withDevice(open, get),
		},
		{
			Name:      "set",
			Usage:     "drive one line, which must be configured as output",
			ArgsUsage: "<pin> <high|low>",
			Action:    withDevice(open, set),
		},
		{
			Name:      "config",
			Usage:     "print or overwrite the direction map, 1 = input",
			ArgsUsage: "[value]",
			Action: withDevice(open, func(s *session, c *cli.Context) error {
				return word(s, c, "directions", s.dev.ReadDirections, s.dev.ConfigureDirections)
			}),
		},
		{
			Name:      "polarity",
			Usage:     "print or overwrite the polarity inversion map, 1 = inverted",
			ArgsUsage: "[value]",
			Action: withDevice(open, func(s *session, c *cli.Context) error {
				return word(s, c, "polarity", s.dev.ReadPolarity, s.dev.SetPolarity)
			}),
		},
		{
			Name:  "watch",
			Usage: "poll the inputs and draw them until interrupted",
			Flags: []cli.Flag{
				cli.DurationFlag{Name: "interval, i", Usage: "polling interval"},
				cli.IntFlag{Name: "count, n", Usage: "stop after `N` samples, 0 means forever"},
			},
			Action: withDevice(open, watch),
		},
		{
			Name:      "snapshot",
			Usage:     "save the level of all 16 lines as a PNG image",
			ArgsUsage: "<file.png>",
			Action:    withDevice(open, snapshot),
		},
	}
}

// withDevice opens the bus and the device for fn and closes the bus after.
func withDevice(open opener, fn func(s *session, c *cli.Context) error) func(*cli.Context) error {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		errw := c.App.ErrWriter
		if errw == nil {
			errw = os.Stderr
		}
		log := newLogger(errw, cfg.LogLevel)

		bus, err := open(cfg.Bus)
		if err != nil {
			return fmt.Errorf("opening I²C bus %q: %w", cfg.Bus, err)
		}
		defer func() {
			if err := bus.Close(); err != nil {
				log.WithError(err).Warn("closing bus")
			}
		}()
		dev, err := xl9555.New(bus, &cfg.Opts)
		if err != nil {
			return err
		}
		log.WithField("dev", dev).Debug("device found")
		if cfg.Directions != nil {
			if err := dev.ConfigureDirections(*cfg.Directions); err != nil {
				return err
			}
			log.WithField("directions", fmt.Sprintf("0x%04x", *cfg.Directions)).Debug("directions configured")
		}
		return fn(&session{cfg: cfg, log: log, dev: dev, out: c.App.Writer}, c)
	}
}

func read(s *session, c *cli.Context) error {
	v, err := s.dev.ReadAllValue()
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(s.out, "0x%04x\t%s\n", v, xl9555.Pin(v)); err != nil {
		return err
	}
	screen := s.screen()
	if err := screen.Show(v, 0xFFFF); err != nil {
		return err
	}
	return screen.Halt()
}

func get(s *session, c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("get: expected one pin")
	}
	p, err := xl9555.ParsePin(c.Args().First())
	if err != nil {
		return err
	}
	v, err := s.dev.ReadValue(p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.out, "%s\t%s\n", p, gpio.Level(v))
	return err
}

func set(s *session, c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("set: expected a pin and a level")
	}
	p, err := xl9555.ParsePin(c.Args().Get(0))
	if err != nil {
		return err
	}
	l, err := parseLevel(c.Args().Get(1))
	if err != nil {
		return err
	}
	if _, err := xl9555.NewOutput(s.dev, p, l); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"pin": p, "level": l}).Info("pin set")
	return nil
}

// word prints the register pair returned by rd, or passes the argument to
// wr when one is given.
func word(s *session, c *cli.Context, name string, rd func() (uint16, error), wr func(uint16) error) error {
	if c.NArg() == 0 {
		v, err := rd()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(s.out, "0x%04x\n", v)
		return err
	}
	v, err := parseWord(c.Args().First())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := wr(v); err != nil {
		return err
	}
	s.log.WithField(name, fmt.Sprintf("0x%04x", v)).Info("written")
	return nil
}

func watch(s *session, c *cli.Context) error {
	interval := s.cfg.Interval
	if c.IsSet("interval") {
		interval = c.Duration("interval")
	}
	if interval <= 0 {
		return fmt.Errorf("watch: invalid interval %s", interval)
	}
	count := c.Int("count")
	if count < 0 {
		return fmt.Errorf("watch: invalid count %d", count)
	}

	// Only inputs are drawn, outputs show as unused.
	inputs, err := s.dev.ReadDirections()
	if err != nil {
		return err
	}
	screen := s.screen()
	defer func() { _ = screen.Halt() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	defer signal.Stop(stop)
	t := time.NewTicker(interval)
	defer t.Stop()

	last := -1
	for n := 0; count == 0 || n < count; n++ {
		if n != 0 {
			select {
			case <-stop:
				return nil
			case <-t.C:
			}
		}
		v, err := s.dev.ReadAllValue()
		if err != nil {
			return err
		}
		if int(v) != last {
			s.log.WithField("levels", fmt.Sprintf("0x%04x", v)).Debug("levels changed")
			last = int(v)
		}
		if err := screen.Show(v, inputs); err != nil {
			return err
		}
	}
	return nil
}

func snapshot(s *session, c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("snapshot: expected a file name")
	}
	v, err := s.dev.ReadAllValue()
	if err != nil {
		return err
	}
	f, err := os.Create(c.Args().First())
	if err != nil {
		return err
	}
	if err := pinscreen.WritePNG(f, v, 0xFFFF, nil); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.log.WithField("file", f.Name()).Info("snapshot saved")
	return nil
}

func parseLevel(s string) (gpio.Level, error) {
	switch strings.ToLower(s) {
	case "high", "h", "1", "on":
		return gpio.High, nil
	case "low", "l", "0", "off":
		return gpio.Low, nil
	}
	return gpio.Low, fmt.Errorf("invalid level %q", s)
}
