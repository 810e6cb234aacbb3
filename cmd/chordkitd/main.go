// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command chordkitd is the daemon entrypoint (SPEC_FULL.md §13):
// assembles the interpreter, registers the standard library, optionally
// runs a bootstrap script, then either drives the cooperative event
// loop or, with -i, drops into an interactive REPL instead — grounded
// on birowo-yaegi/yaegi.go's flag-parse-then-Eval-or-Repl shape.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/chordkit/chordkit/internal/action"
	"github.com/chordkit/chordkit/internal/chord"
	"github.com/chordkit/chordkit/internal/command"
	"github.com/chordkit/chordkit/internal/config"
	"github.com/chordkit/chordkit/internal/device"
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/eventloop"
	"github.com/chordkit/chordkit/internal/gc"
	"github.com/chordkit/chordkit/internal/logging"
	"github.com/chordkit/chordkit/internal/reader"
	"github.com/chordkit/chordkit/internal/stdlib"
	"github.com/chordkit/chordkit/kont"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "chordkitd:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if cfg.PrintVersion {
		fmt.Println(stdlib.BuildVersion)
		return nil
	}

	log := logging.New(logging.ParseLevel(cfg.LogLevel))

	it := eval.New(cfg.StackDepth)
	stdlib.Register(it)

	if cfg.BootstrapPath != "" {
		src, err := os.ReadFile(cfg.BootstrapPath)
		if err != nil {
			return fmt.Errorf("read bootstrap script: %w", err)
		}
		forms, err := reader.Read(it, string(src))
		if err != nil {
			return fmt.Errorf("parse bootstrap script: %w", err)
		}
		if _, err := it.EvalBody(it.MainEnv(), forms); err != nil {
			return fmt.Errorf("run bootstrap script: %w", err)
		}
	}

	if cfg.Interactive {
		return runREPL(it, log)
	}

	return serve(it, cfg, log)
}

func serve(it *eval.Interp, cfg config.Config, log *slog.Logger) error {
	devices := device.NewRegistry()
	roots := gc.NewRoots()

	requests := make(chan command.Request)
	results := make(chan command.Result, 16)

	loop := eventloop.NewLoop(it, devices, noopWorker{}, noopListenerFactory, roots, cfg.GCPeriod, requests, results, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("chordkitd starting", "socket", cfg.SocketPath, "gcPeriod", cfg.GCPeriod)
	err := loop.Run(ctx)
	log.Info("chordkitd stopped")
	return err
}

// noopWorker discards every Command it is handed. A real Worker
// (spec.md §6) drives an OS-specific input-injection backend
// (uinput, X11, ...); no such backend is in scope here, so the daemon
// is runnable end-to-end without one, matching the reader's own
// "minimal conforming implementation so the system runs" treatment.
type noopWorker struct{}

func (noopWorker) Execute(action.Command) error { return nil }

// noopListener never produces an event; paired with noopWorker so a
// freshly started daemon with no registered devices is inert but
// correct, rather than requiring a real input backend to boot.
type noopListener struct{}

func (noopListener) TryReceiveEvent() (chord.KeyChord, bool) { return chord.KeyChord{}, false }
func (noopListener) Stop()                                   {}

func noopListenerFactory([]device.Info, map[device.ID][]chord.Key, []chord.Mapping) (eventloop.Listener, error) {
	return noopListener{}, nil
}

// runREPL drives an interactive session over stdin/stdout. When stdin
// is a terminal it puts the terminal into raw mode (via kont.Bracket,
// the same acquire/release-on-exit shape internal/eventloop uses for
// the listener lifecycle) and runs its own byte-level line editor;
// otherwise (piped input, e.g. scripted tests) it falls back to plain
// line-buffered reading.
func runREPL(it *eval.Interp, log *slog.Logger) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return scannerREPL(it, os.Stdin, os.Stdout)
	}

	comp := kont.Bracket[string, *term.State, struct{}](
		func(k func(*term.State) kont.Resumed) kont.Resumed {
			state, err := term.MakeRaw(fd)
			if err != nil {
				log.Warn("could not enter raw terminal mode, falling back to line mode", "error", err)
				return k(nil)
			}
			return k(state)
		},
		func(state *term.State) kont.Cont[kont.Resumed, struct{}] {
			return func(k func(struct{}) kont.Resumed) kont.Resumed {
				if state != nil {
					_ = term.Restore(fd, state)
				}
				return k(struct{}{})
			}
		},
		func(state *term.State) kont.Cont[kont.Resumed, struct{}] {
			var err error
			if state != nil {
				err = rawREPL(it, os.Stdin, os.Stdout)
			} else {
				err = scannerREPL(it, os.Stdin, os.Stdout)
			}
			if err != nil {
				return kont.ThrowError[string, struct{}](err.Error())
			}
			return kont.Return[kont.Resumed](struct{}{})
		},
	)

	result := kont.Handle(comp, kont.HandleFunc[kont.Either[string, struct{}]](func(op kont.Operation) (kont.Resumed, bool) {
		panic("chordkitd: unexpected effect in REPL")
	}))
	if !result.IsRight() {
		msg, _ := result.GetLeft()
		return fmt.Errorf("%s", msg)
	}
	return nil
}

const prompt = "chordkit> "

// scannerREPL is the plain, non-raw line editor: one evaluated form
// per newline-terminated line.
func scannerREPL(it *eval.Interp, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		evalPrint(it, scanner.Text(), out)
		fmt.Fprint(out, prompt)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

// rawREPL hand-rolls line editing (backspace erase, Ctrl-C/Ctrl-D to
// quit) over a raw-mode terminal, since raw mode disables the tty
// driver's own line discipline.
func rawREPL(it *eval.Interp, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	var line []byte
	fmt.Fprint(out, prompt)
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				fmt.Fprint(out, "\r\n")
				return nil
			}
			return err
		}
		switch b {
		case '\r', '\n':
			fmt.Fprint(out, "\r\n")
			src := string(line)
			line = line[:0]
			evalPrint(it, src, out)
			fmt.Fprint(out, prompt)
		case 127, '\b':
			if len(line) > 0 {
				line = line[:len(line)-1]
				fmt.Fprint(out, "\b \b")
			}
		case 3, 4: // Ctrl-C, Ctrl-D
			fmt.Fprint(out, "\r\n")
			return nil
		default:
			line = append(line, b)
			fmt.Fprintf(out, "%c", b)
		}
	}
}

func evalPrint(it *eval.Interp, src string, out io.Writer) {
	if strings.TrimSpace(src) == "" {
		return
	}
	forms, err := reader.Read(it, src)
	if err != nil {
		fmt.Fprintln(out, "parse error:", err)
		return
	}
	v, err := it.EvalBody(it.MainEnv(), forms)
	if err != nil {
		fmt.Fprintln(out, "error:", err)
		return
	}
	fmt.Fprintln(out, v.String())
}
