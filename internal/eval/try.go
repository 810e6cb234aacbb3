// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"errors"

	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/env"
	"github.com/chordkit/chordkit/internal/value"
	"github.com/chordkit/chordkit/kont"
)

// sfTry and sfThrow implement spec.md §4.1.4's try/throw special
// forms: "raise and catch by symbolic error tag." This is the one
// place in the evaluator that routes through kont's Error[E] effect
// (E = *EvalError) rather than plain Go error returns — see
// DESIGN.md's internal/eval entry for why the rest of the evaluator
// does not.
//
// Syntax: (try body-form (catch tag-symbol handler-body...) ...)
//
// Break, Continue, and Failure-kind errors are never caught here —
// they pass through untouched (spec.md §7: "Break/Continue are caught
// by the enclosing while form only"; Failure "skip[s] local handlers").
func sfTry(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, newError(KindInvalidArgumentCount, "try requires a body form")
	}
	bodyForm, clauses := args[0], args[1:]

	var passthrough error

	comp := kont.Suspend(func(k func(value.Value) kont.Resumed) kont.Resumed {
		v, err := it.Evaluate(callerEnv, bodyForm)
		if err == nil {
			return k(v)
		}
		var ee *EvalError
		if !errors.As(err, &ee) || !ee.Recoverable() || ee.Kind == KindBreak || ee.Kind == KindContinue {
			passthrough = err
			return k(it.NilValue())
		}
		return kont.ThrowError[*EvalError, value.Value](ee)(k)
	})

	either := kont.RunError[*EvalError, value.Value](comp)
	if passthrough != nil {
		return value.Value{}, passthrough
	}
	if either.IsRight() {
		v, _ := either.GetRight()
		return v, nil
	}
	caught, _ := either.GetLeft()

	for _, clause := range clauses {
		elems, ok := it.Cons.ToSlice(clause, it.NilSym)
		if !ok || len(elems) < 2 || elems[0].Kind() != value.Symbol ||
			symbolName(it, elems[0].ID()) != "catch" {
			return value.Value{}, newError(KindInvalidArgument, "try clause must be (catch tag body...)")
		}
		tagSym := elems[1]
		if tagSym.Kind() != value.Symbol {
			return value.Value{}, newError(KindInvalidArgument, "catch tag must be a symbol")
		}
		if symbolName(it, tagSym.ID()) == caught.Tag {
			handlerEnv := it.Envs.NewChild(callerEnv)
			msgSym := it.Symbols.Intern("*caught-message*")
			_ = it.Envs.DefineVariable(handlerEnv, msgSym, it.messageValue(caught.Message), env.Default)
			return it.evalBody(handlerEnv, elems[2:])
		}
	}
	// No matching catch clause: the error keeps propagating.
	return value.Value{}, caught
}

// sfThrow: raise an error tagged with an unevaluated symbol name and a
// message produced by evaluating the second argument.
func sfThrow(it *Interp, callerEnv arena.ID, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind() != value.Symbol {
		return value.Value{}, newError(KindInvalidArgument, "throw expects (throw tag-symbol message-form)")
	}
	msgVal, err := it.Evaluate(callerEnv, args[1])
	if err != nil {
		return value.Value{}, err
	}
	msg := msgVal.String()
	if msgVal.Kind() == value.String {
		if s, ok := it.Strings.Lookup(msgVal.ID()); ok {
			msg = s
		}
	}
	return value.Value{}, &EvalError{
		Kind:    KindGenericExecution,
		Tag:     symbolName(it, args[0].ID()),
		Message: msg,
	}
}

func (it *Interp) messageValue(msg string) value.Value {
	return value.Str(it.Strings.Intern(msg))
}
