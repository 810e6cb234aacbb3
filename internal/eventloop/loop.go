// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package eventloop implements the cooperative scheduler and listener
// lifecycle (spec.md §4.5, §5): a single-threaded loop owning the
// interpreter, multiplexing the command channel, the chord-sequence
// state machine's emitted actions, the interpreter's `--actions`
// queue, and the garbage collector's periodic tick, while supervising
// the listener thread's start/stop and a worker-command consumer
// thread via an errgroup.Group (SPEC_FULL.md §11).
package eventloop

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chordkit/chordkit/internal/action"
	"github.com/chordkit/chordkit/internal/chord"
	"github.com/chordkit/chordkit/internal/command"
	"github.com/chordkit/chordkit/internal/device"
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/gc"
	"github.com/chordkit/chordkit/internal/reader"
	"github.com/chordkit/chordkit/kont"
)

// Listener is the listener contract consumed per spec.md §6: a handle
// over a running listener thread that owns its own device handle and
// state-machine instance externally to this package.
type Listener interface {
	// TryReceiveEvent is a non-blocking poll for the next matched
	// KeyChord, the listener's own chord-matching already applied.
	TryReceiveEvent() (chord.KeyChord, bool)
	// Stop signals the listener to release its device handle and
	// exit; cooperative, per spec.md §5's Cancellation policy.
	Stop()
}

// ListenerFactory builds a Listener for the current device/modifier
// registration and mapping snapshot, invoked each time listening is
// (re)enabled (spec.md §4.6 `start-listening`).
type ListenerFactory func(devices []device.Info, modifiers map[device.ID][]chord.Key, mappings []chord.Mapping) (Listener, error)

// Worker is the Worker contract consumed per spec.md §6: accepts
// device Commands, returning success or a worker-dead error.
type Worker interface {
	Execute(action.Command) error
}

var errShutdown = errors.New("eventloop: command channel closed")

// Loop is the event-loop thread's state (spec.md §4.5, §5).
type Loop struct {
	it      *eval.Interp
	devices *device.Registry
	disp    *command.Dispatcher
	worker  Worker
	newListener ListenerFactory
	roots    *gc.Roots
	gcPeriod time.Duration
	log      *slog.Logger

	requests <-chan command.Request
	results  chan<- command.Result

	commands chan action.Command

	listener Listener
	machine  *chord.Machine

	lastGC time.Time
}

// NewLoop wires a Loop: it builds the command.Dispatcher with
// startListening/stopListening bound to this Loop's own listener
// lifecycle (spec.md §5: "only the event-loop thread may touch the
// interpreter or trigger listener lifecycle").
func NewLoop(
	it *eval.Interp,
	devices *device.Registry,
	worker Worker,
	newListener ListenerFactory,
	roots *gc.Roots,
	gcPeriod time.Duration,
	requests <-chan command.Request,
	results chan<- command.Result,
	log *slog.Logger,
) *Loop {
	lp := &Loop{
		it: it, devices: devices, worker: worker, newListener: newListener,
		roots: roots, gcPeriod: gcPeriod, log: log,
		requests: requests, results: results,
		commands: make(chan action.Command, 256),
		lastGC:   time.Now(),
	}
	lp.disp = command.NewDispatcher(it, devices, lp.startListening, lp.stopListening)
	return lp
}

func (lp *Loop) startListening(snapshot []chord.Mapping) error {
	machine, err := chord.BuildMachine(snapshot)
	if err != nil {
		return err
	}
	modifiers := make(map[device.ID][]chord.Key)
	for _, d := range lp.devices.All() {
		modifiers[d.ID] = lp.devices.Modifiers(d.ID)
	}
	listener, err := lp.newListener(lp.devices.All(), modifiers, snapshot)
	if err != nil {
		return err
	}
	lp.listener = listener
	lp.machine = machine
	return nil
}

func (lp *Loop) stopListening() error {
	if lp.listener != nil {
		lp.listener.Stop()
		lp.listener = nil
		lp.machine = nil
	}
	return nil
}

// Run drives the event loop until the command channel closes (a clean
// shutdown signal, spec.md §4.5) or a fatal error occurs. The listener
// and worker-consumer thread are guaranteed torn down on exit via
// kont.Bracket, the same acquire/use/release shape kont/doc.go
// describes for this daemon's resource-safety concerns.
func (lp *Loop) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(lp.runWorker)

	comp := kont.Bracket[string, struct{}, struct{}](
		kont.Return[kont.Resumed](struct{}{}),
		func(struct{}) kont.Cont[kont.Resumed, struct{}] {
			_ = lp.stopListening()
			close(lp.commands)
			return kont.Return[kont.Resumed](struct{}{})
		},
		func(struct{}) kont.Cont[kont.Resumed, struct{}] {
			if err := lp.runScheduler(gctx); err != nil {
				return kont.ThrowError[string, struct{}](err.Error())
			}
			return kont.Return[kont.Resumed](struct{}{})
		},
	)

	result := kont.Handle(comp, kont.HandleFunc[kont.Either[string, struct{}]](func(op kont.Operation) (kont.Resumed, bool) {
		panic("eventloop: unexpected effect reached the driver")
	}))

	if !result.IsRight() {
		msg, _ := result.GetLeft()
		lp.log.Error("event loop exited with a fatal error", "error", msg)
	}
	return g.Wait()
}

func (lp *Loop) runWorker() error {
	for cmd := range lp.commands {
		if err := lp.worker.Execute(cmd); err != nil {
			lp.log.Error("worker command failed", "kind", cmd.Kind, "error", err)
		}
	}
	return nil
}

func (lp *Loop) runScheduler(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		didWork, err := lp.tick()
		if err != nil {
			if errors.Is(err, errShutdown) {
				return nil
			}
			return err
		}
		if !didWork {
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// tick runs one scheduler iteration's seven steps (spec.md §4.5).
func (lp *Loop) tick() (didWork bool, err error) {
	// 1. Non-blocking receive from the command channel.
	select {
	case req, ok := <-lp.requests:
		if !ok {
			return false, errShutdown
		}
		res := lp.disp.Handle(req)
		select {
		case lp.results <- res:
		default:
			lp.log.Warn("command result dropped: result channel full")
		}
		didWork = true
	default:
	}

	// 2. Listener start/stop reconciliation happens synchronously
	// inside step 1's dispatch (the Dispatcher's start-listening/
	// stop-listening handlers call lp.startListening/lp.stopListening
	// directly) — there is no separate flag-diff step here.

	var deque []action.Descriptor

	// 3. Drain the listener (if running).
	if lp.listener != nil {
		for {
			c, ok := lp.listener.TryReceiveEvent()
			if !ok {
				break
			}
			didWork = true
			res := lp.machine.Feed(c)
			switch res.Outcome {
			case chord.Excited:
				deque = append(deque, res.Action)
			case chord.Fallback:
				for _, fc := range res.Chords {
					lp.forwardChord(fc)
				}
			}
		}
	}

	// 4. Drain the interpreter's `--actions` queue.
	queued, qerr := action.DrainQueue(lp.it, lp.it.MainEnv())
	if qerr != nil {
		lp.log.Error("drain actions queue", "error", qerr)
	}
	if len(queued) > 0 {
		didWork = true
		deque = append(deque, queued...)
	}

	// 5. Dispatch.
	for _, d := range deque {
		lp.dispatchAction(d)
	}

	// 6. Probabilistic GC.
	lp.maybeCollect()

	// 7. (no action collected -> caller sleeps) is handled by the
	// caller inspecting didWork.
	return didWork, nil
}

func (lp *Loop) dispatchAction(d action.Descriptor) {
	switch d.Kind {
	case action.Wait:
		// The worker handles timing (spec.md §4.4); no-op here.
		return
	case action.ExecuteCode:
		forms, err := reader.Read(lp.it, d.Text)
		if err != nil {
			lp.log.Error("exec-code action: parse failed", "error", err)
			return
		}
		if _, err := lp.it.EvalBody(lp.it.MainEnv(), forms); err != nil {
			lp.log.Error("exec-code action: eval failed", "error", err)
		}
		return
	case action.ExecuteFunction:
		fn, err := lp.it.LookupFunctionByName(d.FunctionName)
		if err != nil {
			lp.log.Error("exec-function action: lookup failed", "error", err)
			return
		}
		if _, err := lp.it.CallNullary(fn); err != nil {
			lp.log.Error("exec-function action: call failed", "error", err)
		}
		return
	case action.ExecuteFunctionValue:
		fn, err := lp.it.LookupFunctionByID(d.FunctionID)
		if err != nil {
			lp.log.Error("exec-function-value action: lookup failed", "error", err)
			return
		}
		if _, err := lp.it.CallNullary(fn); err != nil {
			lp.log.Error("exec-function-value action: call failed", "error", err)
		}
		return
	}

	cmd, ok := action.Translate(d)
	if !ok {
		return
	}
	lp.sendCommand(cmd)
}

func (lp *Loop) forwardChord(c chord.KeyChord) {
	lp.sendCommand(action.Command{
		Kind:      action.ForwardKeyChord,
		Modifiers: toChordKeys(c.Modifiers),
		Trigger:   toChordKey(c.Key),
	})
}

func (lp *Loop) sendCommand(cmd action.Command) {
	select {
	case lp.commands <- cmd:
	default:
		lp.log.Warn("worker command dropped: queue full", "kind", cmd.Kind)
	}
}

func toChordKey(k chord.Key) action.ChordKey {
	return action.ChordKey{DeviceID: k.DeviceID, HasDevice: k.HasDevice, KeyID: k.KeyID}
}

func toChordKeys(ks []chord.Key) []action.ChordKey {
	out := make([]action.ChordKey, len(ks))
	for i, k := range ks {
		out[i] = toChordKey(k)
	}
	return out
}

// maybeCollect probabilistically triggers the garbage collector based
// on elapsed time since the last collection (spec.md §4.2, §4.5 step
// 6): below one period the probability is elapsed/gcPeriod, and once a
// full period has elapsed the collection always runs.
func (lp *Loop) maybeCollect() {
	if lp.gcPeriod <= 0 {
		return
	}
	elapsed := time.Since(lp.lastGC)
	p := float64(elapsed) / float64(lp.gcPeriod)
	if p <= 0 {
		return
	}
	if p < 1 && rand.Float64() >= p {
		return
	}
	stats := gc.Collect(lp.it, lp.roots)
	lp.log.Debug("gc collect",
		"freedEnvs", stats.FreedEnvs, "freedCons", stats.FreedCons,
		"freedObjects", stats.FreedObjects, "freedFuncs", stats.FreedFuncs,
		"freedStrings", stats.FreedStrings, "freedKeywords", stats.FreedKeywords,
		"freedSymbols", stats.FreedSymbols)
	lp.lastGC = time.Now()
}
