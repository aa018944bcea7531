// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/urfave/cli"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/GermanBionicSystems/xl9555/xl9555"
)

// config is the merged view of the configuration file, the XL9555_*
// environment variables and the global flags, in increasing priority.
type config struct {
	Bus        string
	Opts       xl9555.Opts
	Directions *uint16
	LogLevel   logrus.Level
	Interval   time.Duration
}

func loadConfig(c *cli.Context) (*config, error) {
	v := viper.New()
	v.SetDefault("bus", "")
	v.SetDefault("a0", false)
	v.SetDefault("a1", false)
	v.SetDefault("a2", false)
	v.SetDefault("directions", "")
	v.SetDefault("loglevel", int(logrus.InfoLevel))
	v.SetDefault("interval", 200*time.Millisecond)
	v.SetEnvPrefix("XL9555")
	v.AutomaticEnv()

	if file := c.GlobalString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
	}
	for _, name := range []string{"bus", "directions"} {
		if c.GlobalIsSet(name) {
			v.Set(name, c.GlobalString(name))
		}
	}
	for _, name := range []string{"a0", "a1", "a2"} {
		if c.GlobalIsSet(name) {
			v.Set(name, c.GlobalBool(name))
		}
	}
	if c.GlobalIsSet("loglevel") {
		v.Set("loglevel", c.GlobalInt("loglevel"))
	}

	cfg := &config{
		Bus: v.GetString("bus"),
		Opts: xl9555.Opts{
			A0: v.GetBool("a0"),
			A1: v.GetBool("a1"),
			A2: v.GetBool("a2"),
		},
		LogLevel: logrus.Level(v.GetInt("loglevel")),
		Interval: v.GetDuration("interval"),
	}
	if s := v.GetString("directions"); s != "" {
		d, err := parseWord(s)
		if err != nil {
			return nil, fmt.Errorf("directions: %w", err)
		}
		cfg.Directions = &d
	}
	return cfg, nil
}

// parseWord accepts decimal, 0x hexadecimal and 0b binary 16-bit values.
func parseWord(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// newLogger mirrors the prefixed logrus setup used across our tools.
func newLogger(w io.Writer, level logrus.Level) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	f := new(prefixed.TextFormatter)
	f.TimestampFormat = "2006-01-02 15:04:05"
	f.FullTimestamp = true
	f.SpacePadding = 50
	logger.SetFormatter(f)
	return logrus.NewEntry(logger).WithField("prefix", "xl9555")
}
