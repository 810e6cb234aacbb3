// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"errors"

	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/env"
	"github.com/chordkit/chordkit/internal/function"
	"github.com/chordkit/chordkit/internal/intern"
	"github.com/chordkit/chordkit/internal/value"
)

// registerSpecialForms binds every form in spec.md §4.1.4's table into
// the root environment's function namespace, plus the `this`/`super`
// special-variable handlers (spec.md §4.1.3).
func (it *Interp) registerSpecialForms() {
	root := it.RootEnv()
	def := func(name string, fn func(*Interp, arena.ID, []value.Value) (value.Value, error)) {
		sym := it.Symbols.Intern(name)
		native := func(h function.Host, callerEnv arena.ID, args []value.Value) (value.Value, error) {
			return fn(h.(*Interp), callerEnv, args)
		}
		f := it.Funcs.AllocSpecialForm(sym, native)
		_ = it.Envs.DefineFunction(root, sym, f, env.Constant)
	}

	def("quote", sfQuote)
	def("function", sfFunction)
	def("let", sfLet)
	def("let*", sfLetStar)
	def("cond", sfCond)
	def("while", sfWhile)
	def("set!", sfSetBang)
	def("define-variable", sfDefineVariable)
	def("define-function", sfDefineFunction)
	def("with-this", sfWithThis)
	def("and", sfAnd)
	def("or", sfOr)
	def("try", sfTry)
	def("throw", sfThrow)
	def("if", sfIf)
	def("fn", sfFn)
	def("defn", sfDefn)

	it.specials = map[arena.ID]func(*Interp, arena.ID, arena.ID) (value.Value, error){
		it.ThisSym:  func(i *Interp, _ arena.ID, _ arena.ID) (value.Value, error) { return i.thisValue() },
		it.SuperSym: func(i *Interp, _ arena.ID, _ arena.ID) (value.Value, error) { return i.Super() },
	}
}

func (it *Interp) thisValue() (value.Value, error) {
	recv, ok := it.Receiver()
	if !ok {
		return value.Value{}, newError(KindGenericExecution, "`this` used outside of a method call")
	}
	return recv, nil
}

// sfQuote: returns its single unevaluated argument.
func sfQuote(it *Interp, _ arena.ID, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, newError(KindInvalidArgumentCount, "quote takes exactly one argument")
	}
	return args[0], nil
}

// sfFunction: takes an unevaluated (lambda args body...) or
// (macro args body...) list and builds/registers a function value.
func sfFunction(it *Interp, env arena.ID, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Value{}, newError(KindInvalidArgumentCount, "function takes exactly one argument")
	}
	elems, ok := it.Cons.ToSlice(args[0], it.NilSym)
	if !ok || len(elems) < 2 {
		return value.Value{}, newError(KindInvalidArgument, "function expects (lambda (args...) body...) or (macro ...)")
	}
	head := elems[0]
	if head.Kind() != value.Symbol {
		return value.Value{}, newError(KindInvalidArgument, "function's first element must be `lambda` or `macro`")
	}
	headName := symbolName(it, head.ID())

	argList, err := parseArgList(it, elems[1])
	if err != nil {
		return value.Value{}, err
	}
	body := elems[2:]

	switch headName {
	case "lambda":
		return it.Funcs.AllocInterpreted(0, env, argList, body), nil
	case "macro":
		return it.Funcs.AllocMacro(0, env, argList, body), nil
	default:
		return value.Value{}, newError(KindInvalidArgument, "function's first element must be `lambda` or `macro`")
	}
}

// buildInterpretedFunction parses an unevaluated (args...) form and body
// into a closed-over Interpreted function value, shared by sfFn and
// sfDefn (sfFunction's lambda branch does the same steps inline).
func buildInterpretedFunction(it *Interp, closureEnv arena.ID, argsForm value.Value, body []value.Value) (value.Value, error) {
	argList, err := parseArgList(it, argsForm)
	if err != nil {
		return value.Value{}, err
	}
	return it.Funcs.AllocInterpreted(0, closureEnv, argList, body), nil
}

// sfIf: evaluate the test; if truthy evaluate and return the then-form,
// else evaluate and return the else-form if present, otherwise nil
// (spec.md §8: `(if (= 0 0) 1 2)` → `1`).
func sfIf(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return value.Value{}, newError(KindInvalidArgumentCount, "if expects (if test then [else])")
	}
	test, err := it.Evaluate(callerEnv, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if it.Truthy(test) {
		return it.Evaluate(callerEnv, args[1])
	}
	if len(args) == 3 {
		return it.Evaluate(callerEnv, args[2])
	}
	return it.NilValue(), nil
}

// sfFn: (fn (args...) body...) builds an anonymous function closed over
// the calling environment, shorthand for (function (lambda ...)).
func sfFn(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, newError(KindInvalidArgumentCount, "fn requires an argument list")
	}
	return buildInterpretedFunction(it, callerEnv, args[0], args[1:])
}

// sfDefn: (defn name (args...) body...) defines a named function in the
// current environment, shorthand for (define-function name (fn ...)).
func sfDefn(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) < 2 || args[0].Kind() != value.Symbol {
		return value.Value{}, newError(KindInvalidArgument, "defn expects (defn name (args...) body...)")
	}
	fn, err := buildInterpretedFunction(it, callerEnv, args[1], args[2:])
	if err != nil {
		return value.Value{}, err
	}
	if f, ok := it.Funcs.Get(fn.ID()); ok {
		f.Name = args[0].ID()
	}
	if err := it.Envs.DefineFunction(callerEnv, args[0].ID(), fn, env.Default); err != nil {
		return value.Value{}, newError(KindGenericExecution, "%v", err)
	}
	return fn, nil
}

// parseArgList parses the argument-list form into function.ArgList,
// per spec.md §3 "Argument list": positional symbols, then an #opt
// section, then #rest, then #keys. Section entries are either a bare
// symbol (no default, no predicate) or a (name default [predicate])
// list.
func parseArgList(it *Interp, form value.Value) (function.ArgList, error) {
	elems, ok := it.Cons.ToSlice(form, it.NilSym)
	if !ok {
		return function.ArgList{}, newError(KindInvalidArgument, "malformed argument list")
	}

	var out function.ArgList
	section := "positional"
	for _, e := range elems {
		if e.Kind() == value.Symbol {
			name := symbolName(it, e.ID())
			switch name {
			case intern.MarkerOpt:
				section = "opt"
				continue
			case intern.MarkerRest:
				section = "rest"
				continue
			case intern.MarkerKeys:
				section = "keys"
				continue
			}
		}
		switch section {
		case "positional":
			if e.Kind() != value.Symbol {
				return function.ArgList{}, newError(KindInvalidArgument, "positional parameter must be a symbol")
			}
			out.Positional = append(out.Positional, e.ID())
		case "rest":
			if e.Kind() != value.Symbol {
				return function.ArgList{}, newError(KindInvalidArgument, "#rest parameter must be a symbol")
			}
			out.Rest = e.ID()
			out.HasRest = true
		case "opt":
			p, err := parseOptionalParam(it, e)
			if err != nil {
				return function.ArgList{}, err
			}
			out.Optional = append(out.Optional, p)
		case "keys":
			p, err := parseOptionalParam(it, e)
			if err != nil {
				return function.ArgList{}, err
			}
			out.Keys = append(out.Keys, p)
		}
	}
	return out, nil
}

func parseOptionalParam(it *Interp, e value.Value) (function.OptionalParam, error) {
	if e.Kind() == value.Symbol {
		return function.OptionalParam{Name: e.ID()}, nil
	}
	elems, ok := it.Cons.ToSlice(e, it.NilSym)
	if !ok || len(elems) < 1 || elems[0].Kind() != value.Symbol {
		return function.OptionalParam{}, newError(KindInvalidArgument, "malformed optional/keyword parameter")
	}
	p := function.OptionalParam{Name: elems[0].ID()}
	if len(elems) >= 2 {
		p.Default = elems[1]
		p.HasDefault = true
	}
	if len(elems) >= 3 {
		if elems[2].Kind() != value.Symbol {
			return function.OptionalParam{}, newError(KindInvalidArgument, "predicate name must be a symbol")
		}
		p.Predicate = elems[2].ID()
	}
	return p, nil
}

// sfLet: bindings evaluated in the outer env; body runs in a fresh
// child env.
func sfLet(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, newError(KindInvalidArgumentCount, "let requires a bindings list")
	}
	bindings, ok := it.Cons.ToSlice(args[0], it.NilSym)
	if !ok {
		return value.Value{}, newError(KindInvalidArgument, "let bindings must be a list")
	}
	newEnv := it.Envs.NewChild(callerEnv)
	for _, b := range bindings {
		sym, form, err := parseBinding(it, b)
		if err != nil {
			return value.Value{}, err
		}
		v, err := it.Evaluate(callerEnv, form) // evaluated in the OUTER env
		if err != nil {
			return value.Value{}, err
		}
		if err := it.Envs.DefineVariable(newEnv, sym, v, env.Default); err != nil {
			return value.Value{}, newError(KindGenericExecution, "%v", err)
		}
	}
	return it.evalBody(newEnv, args[1:])
}

// sfLetStar: bindings evaluated in the growing inner env.
func sfLetStar(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, newError(KindInvalidArgumentCount, "let* requires a bindings list")
	}
	bindings, ok := it.Cons.ToSlice(args[0], it.NilSym)
	if !ok {
		return value.Value{}, newError(KindInvalidArgument, "let* bindings must be a list")
	}
	newEnv := it.Envs.NewChild(callerEnv)
	for _, b := range bindings {
		sym, form, err := parseBinding(it, b)
		if err != nil {
			return value.Value{}, err
		}
		v, err := it.Evaluate(newEnv, form) // evaluated in the GROWING inner env
		if err != nil {
			return value.Value{}, err
		}
		if err := it.Envs.DefineVariable(newEnv, sym, v, env.Default); err != nil {
			return value.Value{}, newError(KindGenericExecution, "%v", err)
		}
	}
	return it.evalBody(newEnv, args[1:])
}

func parseBinding(it *Interp, b value.Value) (arena.ID, value.Value, error) {
	elems, ok := it.Cons.ToSlice(b, it.NilSym)
	if !ok || len(elems) != 2 || elems[0].Kind() != value.Symbol {
		return 0, value.Value{}, newError(KindInvalidArgument, "malformed let binding, expected (symbol form)")
	}
	return elems[0].ID(), elems[1], nil
}

// sfCond: pairs of (test body...); first truthy test's body runs.
func sfCond(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	for _, clause := range args {
		elems, ok := it.Cons.ToSlice(clause, it.NilSym)
		if !ok || len(elems) < 1 {
			return value.Value{}, newError(KindInvalidArgument, "malformed cond clause")
		}
		test, err := it.Evaluate(callerEnv, elems[0])
		if err != nil {
			return value.Value{}, err
		}
		if it.Truthy(test) {
			return it.evalBody(callerEnv, elems[1:])
		}
	}
	return it.NilValue(), nil
}

// sfWhile: repeat body while test is truthy; body env binds break and
// continue to interpreter-internal functions that raise typed
// sentinel errors this form catches (spec.md §4.1.4, §9).
func sfWhile(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, newError(KindInvalidArgumentCount, "while requires a test form")
	}
	test, body := args[0], args[1:]

	loopEnv := it.Envs.NewChild(callerEnv)
	breakSym := it.Symbols.Intern("break")
	continueSym := it.Symbols.Intern("continue")
	_ = it.Envs.DefineFunction(loopEnv, breakSym,
		it.Funcs.AllocBuiltin(breakSym, func(function.Host, arena.ID, []value.Value) (value.Value, error) {
			return value.Value{}, breakSignal{}
		}), env.Default)
	_ = it.Envs.DefineFunction(loopEnv, continueSym,
		it.Funcs.AllocBuiltin(continueSym, func(function.Host, arena.ID, []value.Value) (value.Value, error) {
			return value.Value{}, continueSignal{}
		}), env.Default)

	result := it.NilValue()
	for {
		tv, err := it.Evaluate(loopEnv, test)
		if err != nil {
			return value.Value{}, err
		}
		if !it.Truthy(tv) {
			return result, nil
		}
		v, err := it.evalBody(loopEnv, body)
		if err != nil {
			var bs breakSignal
			var cs continueSignal
			if errors.As(err, &bs) {
				return result, nil
			}
			if errors.As(err, &cs) {
				continue
			}
			return value.Value{}, err
		}
		result = v
	}
}

// sfSetBang: rewrite the nearest enclosing binding.
func sfSetBang(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind() != value.Symbol {
		return value.Value{}, newError(KindInvalidArgument, "set! expects (set! symbol form)")
	}
	v, err := it.Evaluate(callerEnv, args[1])
	if err != nil {
		return value.Value{}, err
	}
	if err := it.Envs.SetVariable(callerEnv, args[0].ID(), v); err != nil {
		return value.Value{}, newError(KindGenericExecution, "%v", err)
	}
	return v, nil
}

// sfDefineVariable: create a new binding in the current environment.
func sfDefineVariable(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind() != value.Symbol {
		return value.Value{}, newError(KindInvalidArgument, "define-variable expects (define-variable symbol form)")
	}
	if !intern.Assignable(symbolName(it, args[0].ID())) {
		return value.Value{}, newError(KindGenericExecution, "cannot rebind reserved name")
	}
	v, err := it.Evaluate(callerEnv, args[1])
	if err != nil {
		return value.Value{}, err
	}
	if err := it.Envs.DefineVariable(callerEnv, args[0].ID(), v, env.Default); err != nil {
		return value.Value{}, newError(KindGenericExecution, "%v", err)
	}
	return v, nil
}

// sfDefineFunction: create a new function binding in the current
// environment.
func sfDefineFunction(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind() != value.Symbol {
		return value.Value{}, newError(KindInvalidArgument, "define-function expects (define-function symbol form)")
	}
	v, err := it.Evaluate(callerEnv, args[1])
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() != value.Function {
		return value.Value{}, newError(KindInvalidArgument, "define-function's form must evaluate to a function")
	}
	if fn, ok := it.Funcs.Get(v.ID()); ok {
		fn.Name = args[0].ID()
	}
	if err := it.Envs.DefineFunction(callerEnv, args[0].ID(), v, env.Default); err != nil {
		return value.Value{}, newError(KindGenericExecution, "%v", err)
	}
	return v, nil
}

// sfWithThis: evaluate the first argument, set it as receiver for the
// dynamic extent of the body.
func sfWithThis(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, newError(KindInvalidArgumentCount, "with-this requires a receiver form")
	}
	recv, err := it.Evaluate(callerEnv, args[0])
	if err != nil {
		return value.Value{}, err
	}
	return it.WithReceiver(recv, func() (value.Value, error) {
		return it.evalBody(callerEnv, args[1:])
	})
}

// sfAnd: short-circuiting; returns the first falsy value, else the
// last value (#t if no arguments).
func sfAnd(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	result := value.Bool(true)
	for _, a := range args {
		v, err := it.Evaluate(callerEnv, a)
		if err != nil {
			return value.Value{}, err
		}
		if !it.Truthy(v) {
			return v, nil
		}
		result = v
	}
	return result, nil
}

// sfOr: short-circuiting; returns the first truthy value, else the
// last value (nil if no arguments).
func sfOr(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	result := it.NilValue()
	for _, a := range args {
		v, err := it.Evaluate(callerEnv, a)
		if err != nil {
			return value.Value{}, err
		}
		if it.Truthy(v) {
			return v, nil
		}
		result = v
	}
	return result, nil
}
