// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package eval implements the tree-walking evaluator (spec.md §4.1):
// value-directed dispatch, function invocation, argument binding,
// special forms, and macro expansion.
package eval

import (
	"errors"

	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/callstack"
	"github.com/chordkit/chordkit/internal/cons"
	"github.com/chordkit/chordkit/internal/env"
	"github.com/chordkit/chordkit/internal/function"
	"github.com/chordkit/chordkit/internal/intern"
	"github.com/chordkit/chordkit/internal/module"
	"github.com/chordkit/chordkit/internal/object"
	"github.com/chordkit/chordkit/internal/value"
)

// Interp is the interpreter's process-wide state: every arena, the
// module registry, the call stack, and the single dynamic-scope slot
// for `this` (spec.md §9 "Dynamic scope for this").
type Interp struct {
	Strings  *intern.Table
	Keywords *intern.Table
	Symbols  *intern.Symbols
	Cons     *cons.Arena
	Objects  *object.Arena
	Envs     *env.Arena
	Funcs    *function.Arena
	Modules  *module.Registry
	Stack    *callstack.Stack

	NilSym   arena.ID
	ThisSym  arena.ID
	SuperSym arena.ID

	// ActionsSym is the process-wide `--actions` variable symbol
	// (spec.md §4.4) that builtins append Action descriptors to.
	ActionsSym arena.ID

	receiver    value.Value
	hasReceiver bool

	specials map[arena.ID]func(*Interp, arena.ID, arena.ID) (value.Value, error)
}

// New constructs an interpreter with a fresh heap and root/main
// modules, interns the reserved names, and binds `nil` to itself as a
// constant (spec.md §3 invariants).
func New(depthLimit int) *Interp {
	it := &Interp{
		Strings:  intern.NewTable(),
		Keywords: intern.NewTable(),
		Symbols:  intern.NewSymbols(),
		Cons:     cons.New(),
		Objects:  object.New(),
		Envs:     env.New(),
		Funcs:    function.New(),
		Stack:    callstack.New(depthLimit),
	}
	it.Modules = module.NewRegistry(it.Envs)
	it.NilSym = it.Symbols.Intern(intern.NameNil)
	it.ThisSym = it.Symbols.Intern(intern.NameThis)
	it.SuperSym = it.Symbols.Intern(intern.NameSuper)
	it.ActionsSym = it.Symbols.Intern("--actions")

	root := it.Modules.Root().Env
	nilVal := value.Sym(it.NilSym)
	_ = it.Envs.DefineVariable(root, it.NilSym, nilVal, env.Constant)
	_ = it.Envs.DefineVariable(root, it.ActionsSym, nilVal, env.Default)

	it.registerSpecialForms()
	return it
}

// NilValue returns the interned nil symbol as a Value.
func (it *Interp) NilValue() value.Value { return value.Sym(it.NilSym) }

// RootEnv returns the global environment.
func (it *Interp) RootEnv() arena.ID { return it.Modules.Root().Env }

// MainEnv returns the main module's environment.
func (it *Interp) MainEnv() arena.ID { return it.Modules.Main().Env }

// NewChildEnv implements function.Host.
func (it *Interp) NewChildEnv(envID arena.ID) arena.ID {
	return it.Envs.NewChild(envID)
}

// Truthy implements spec.md §4.1.4's truthiness rule: falsy iff
// boolean false or the nil symbol; everything else is truthy.
func (it *Interp) Truthy(v value.Value) bool {
	switch v.Kind() {
	case value.Boolean:
		return v.AsBool()
	case value.Symbol:
		return v.ID() != it.NilSym
	default:
		return true
	}
}

// Evaluate implements function.Host and is the recursive evaluator
// entry point (spec.md §4.1).
func (it *Interp) Evaluate(envID arena.ID, v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.Integer, value.Float, value.Boolean, value.String,
		value.Keyword, value.Function, value.Object:
		return v, nil

	case value.Symbol:
		return it.evalSymbol(envID, v)

	case value.Cons:
		return it.evalCall(envID, v)

	default:
		return value.Value{}, newError(KindGenericExecution, "cannot evaluate value of unknown kind")
	}
}

func (it *Interp) evalSymbol(envID arena.ID, v value.Value) (value.Value, error) {
	sym := v.ID()

	if intern.Marker(symbolName(it, sym)) {
		return value.Value{}, newError(KindGenericExecution, "cannot evaluate arglist marker symbol")
	}

	if special, ok := it.specials[sym]; ok {
		return special(it, envID, sym)
	}

	val, err := it.Envs.LookupVariable(envID, sym)
	if err != nil {
		if errors.Is(err, env.ErrUndefined) {
			return value.Value{}, newError(KindGenericExecution, "undefined variable %q", symbolName(it, sym))
		}
		return value.Value{}, newError(KindGenericExecution, "%v", err)
	}
	return val, nil
}

func symbolName(it *Interp, id arena.ID) string {
	s, ok := it.Symbols.Lookup(id)
	if !ok {
		return ""
	}
	return s.Name
}

// evalCall implements spec.md §4.1.1 function invocation.
func (it *Interp) evalCall(envID arena.ID, form value.Value) (value.Value, error) {
	cell, ok := it.Cons.Get(form.ID())
	if !ok {
		return value.Value{}, newError(KindGenericExecution, "malformed call form")
	}
	head := cell.Car
	rawArgs, ok := it.Cons.ToSlice(cell.Cdr, it.NilSym)
	if !ok {
		return value.Value{}, newError(KindInvalidArgument, "improper argument list in call form")
	}

	var fnVal value.Value
	switch head.Kind() {
	case value.Symbol:
		var err error
		fnVal, err = it.Envs.LookupFunction(envID, head.ID())
		if err != nil {
			return value.Value{}, newError(KindGenericExecution, "undefined function %q", symbolName(it, head.ID()))
		}
	case value.Cons:
		// A head of the property-get-chain shape `(:prop obj)` (reader.go's
		// lowering of `obj:prop`) means this call is a method invocation:
		// fetch the property once, then invoke it with the receiver set to
		// obj for the call's duration (spec.md §4.1.3, §8 scenario 3).
		if recvForm, propKw, ok := it.asPropertyGetChain(head); ok {
			target, err := it.Evaluate(envID, recvForm)
			if err != nil {
				return value.Value{}, err
			}
			propVal, err := it.Objects.Get(target.ID(), it.keywordSymbol(propKw))
			if err != nil {
				return value.Value{}, newError(KindGenericExecution, "%v", err)
			}
			if propVal.Kind() != value.Function {
				return value.Value{}, newError(KindInvalidArgument, "value is not callable")
			}
			fn, ok := it.Funcs.Get(propVal.ID())
			if !ok {
				return value.Value{}, newError(KindGenericExecution, "dangling function handle")
			}
			return it.WithReceiver(target, func() (value.Value, error) {
				return it.invoke(envID, fn, rawArgs)
			})
		}
		var err error
		fnVal, err = it.Evaluate(envID, head)
		if err != nil {
			return value.Value{}, err
		}
	case value.Keyword:
		// A bare keyword head applied to an object performs get-property
		// without invoking the result (spec.md §4.1.3).
		if len(rawArgs) != 1 {
			return value.Value{}, newError(KindInvalidArgumentCount, "keyword property access takes exactly one argument")
		}
		target, err := it.Evaluate(envID, rawArgs[0])
		if err != nil {
			return value.Value{}, err
		}
		return it.Objects.Get(target.ID(), it.keywordSymbol(head.ID()))
	default:
		return value.Value{}, newError(KindInvalidArgument, "call head must be a symbol, list, or keyword")
	}

	if fnVal.Kind() != value.Function {
		return value.Value{}, newError(KindInvalidArgument, "value is not callable")
	}
	fn, ok := it.Funcs.Get(fnVal.ID())
	if !ok {
		return value.Value{}, newError(KindGenericExecution, "dangling function handle")
	}

	return it.invoke(envID, fn, rawArgs)
}

// asPropertyGetChain reports whether head is itself a property-get
// form `(:prop obj)`, returning the unevaluated receiver form and the
// property's keyword id.
func (it *Interp) asPropertyGetChain(head value.Value) (recv value.Value, propKw arena.ID, ok bool) {
	cell, found := it.Cons.Get(head.ID())
	if !found || cell.Car.Kind() != value.Keyword {
		return value.Value{}, 0, false
	}
	args, listOK := it.Cons.ToSlice(cell.Cdr, it.NilSym)
	if !listOK || len(args) != 1 {
		return value.Value{}, 0, false
	}
	return args[0], cell.Car.ID(), true
}

// keywordSymbol maps a keyword's interned text to the symbol table so
// object property lookups (keyed by symbol id) can use a keyword head
// as the property name. Keywords and symbols share text but are
// distinct arena categories; this bridges them at the one call site
// that needs it (`(:prop obj)`).
func (it *Interp) keywordSymbol(kwID arena.ID) arena.ID {
	name, _ := it.Keywords.Lookup(kwID)
	return it.Symbols.Intern(name)
}

func (it *Interp) invoke(callerEnv arena.ID, fn *function.Function, rawArgs []value.Value) (value.Value, error) {
	switch fn.Kind {
	case function.SpecialForm:
		return fn.NativeSpecial(it, callerEnv, rawArgs)

	case function.Builtin:
		args, err := it.evalAll(callerEnv, rawArgs)
		if err != nil {
			return value.Value{}, err
		}
		return fn.Native(it, callerEnv, args)

	case function.Macro:
		return it.invokeMacro(callerEnv, fn, rawArgs)

	case function.Interpreted:
		args, err := it.evalAll(callerEnv, rawArgs)
		if err != nil {
			return value.Value{}, err
		}
		return it.invokeInterpreted(fn, args)

	default:
		return value.Value{}, newError(KindGenericExecution, "unknown function kind")
	}
}

func (it *Interp) evalAll(envID arena.ID, forms []value.Value) ([]value.Value, error) {
	out := make([]value.Value, len(forms))
	for i, f := range forms {
		v, err := it.Evaluate(envID, f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (it *Interp) pushFrame(fn *function.Function, callEnv arena.ID, args []value.Value) error {
	return it.Stack.Push(callstack.Frame{
		Env:     callEnv,
		Name:    fn.Name,
		HasName: fn.Name != 0,
		Args:    args,
	})
}

func (it *Interp) invokeInterpreted(fn *function.Function, args []value.Value) (value.Value, error) {
	callEnv := it.Envs.NewChild(fn.Closure)
	if err := it.pushFrame(fn, callEnv, args); err != nil {
		return value.Value{}, newError(KindOverflow, "call stack overflow")
	}
	defer it.Stack.Pop()

	if err := bindArguments(it, callEnv, fn.Args, args); err != nil {
		return value.Value{}, err
	}
	return it.evalBody(callEnv, fn.Body)
}

func (it *Interp) invokeMacro(callerEnv arena.ID, fn *function.Function, rawArgs []value.Value) (value.Value, error) {
	expandEnv := it.Envs.NewChild(fn.Closure)
	if err := it.pushFrame(fn, expandEnv, rawArgs); err != nil {
		return value.Value{}, newError(KindOverflow, "call stack overflow")
	}
	defer it.Stack.Pop()

	if err := bindArguments(it, expandEnv, fn.Args, rawArgs); err != nil {
		return value.Value{}, err
	}
	expansion, err := it.evalBody(expandEnv, fn.Body)
	if err != nil {
		return value.Value{}, err
	}
	return it.Evaluate(callerEnv, expansion)
}

// EvalBody evaluates a sequence of forms in envID and returns the last
// result, exported for callers outside the package that need to run a
// parsed script (the command layer's `execute code` handler, the
// event loop's ExecuteCode action dispatch).
func (it *Interp) EvalBody(envID arena.ID, forms []value.Value) (value.Value, error) {
	return it.evalBody(envID, forms)
}

// evalBody evaluates a sequence of forms and returns the last result,
// restored from the original's execute_forms helper (SPEC_FULL.md §12)
// and shared by Interpreted and Macro invocation and the special forms
// that run a body. No module-loading path calls it.
func (it *Interp) evalBody(envID arena.ID, forms []value.Value) (value.Value, error) {
	result := it.NilValue()
	for _, f := range forms {
		v, err := it.Evaluate(envID, f)
		if err != nil {
			return value.Value{}, err
		}
		result = v
	}
	return result, nil
}

// CallNullary invokes fn with no arguments, used by the event loop's
// ExecuteFunction/ExecuteFunctionValue action dispatch (spec.md §4.4),
// which both resolve to a zero-argument call in the main environment.
func (it *Interp) CallNullary(fn value.Value) (value.Value, error) {
	if fn.Kind() != value.Function {
		return value.Value{}, newError(KindInvalidArgument, "value is not callable")
	}
	f, ok := it.Funcs.Get(fn.ID())
	if !ok {
		return value.Value{}, newError(KindGenericExecution, "dangling function handle")
	}
	return it.invoke(it.MainEnv(), f, nil)
}

// LookupFunctionByID returns the function Value for a raw function
// arena id, used by the event loop's ExecuteFunctionValue dispatch,
// which carries an already-resolved handle rather than a name.
func (it *Interp) LookupFunctionByID(id uint32) (value.Value, error) {
	fnID := arena.ID(id)
	if _, ok := it.Funcs.Get(fnID); !ok {
		return value.Value{}, newError(KindGenericExecution, "dangling function handle")
	}
	return value.Fn(fnID), nil
}

// LookupFunctionByName resolves a function binding by name in the main
// environment, used by the event loop's ExecuteFunction dispatch.
func (it *Interp) LookupFunctionByName(name string) (value.Value, error) {
	sym := it.Symbols.Intern(name)
	fn, err := it.Envs.LookupFunction(it.MainEnv(), sym)
	if err != nil {
		return value.Value{}, newError(KindGenericExecution, "undefined function %q", name)
	}
	return fn, nil
}

// WithReceiver sets the current `this` object for the dynamic extent
// of body, restoring the previous receiver afterward even on error
// (spec.md §4.1.3, §9).
func (it *Interp) WithReceiver(recv value.Value, body func() (value.Value, error)) (value.Value, error) {
	prevRecv, prevHas := it.receiver, it.hasReceiver
	it.receiver, it.hasReceiver = recv, true
	defer func() { it.receiver, it.hasReceiver = prevRecv, prevHas }()
	return body()
}

// Receiver returns the current `this` object, if any.
func (it *Interp) Receiver() (value.Value, bool) {
	return it.receiver, it.hasReceiver
}

// Super returns one step up the prototype chain from the current
// receiver.
func (it *Interp) Super() (value.Value, error) {
	recv, ok := it.hasReceiverOK()
	if !ok {
		return value.Value{}, newError(KindGenericExecution, "`super` used outside of a method call")
	}
	proto, ok := it.Objects.Prototype(recv.ID())
	if !ok {
		return value.Value{}, newError(KindGenericExecution, "receiver has no prototype")
	}
	return value.Obj(proto), nil
}

func (it *Interp) hasReceiverOK() (value.Value, bool) {
	return it.receiver, it.hasReceiver
}
