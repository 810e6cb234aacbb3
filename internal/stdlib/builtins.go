// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"fmt"

	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/value"
)

func arityError(want int, got int, name string) (value.Value, error) {
	return value.Value{}, &eval.EvalError{
		Kind:    eval.KindInvalidArgumentCount,
		Message: fmt.Sprintf("%s expects %d argument(s), got %d", name, want, got),
	}
}

func invalidArgError(msg string) (value.Value, error) {
	return value.Value{}, &eval.EvalError{Kind: eval.KindInvalidArgument, Message: msg}
}

func assertionError(msg string) (value.Value, error) {
	return value.Value{}, &eval.EvalError{Kind: eval.KindAssertion, Message: msg}
}

func biCons(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return arityError(2, len(args), "cons")
	}
	return it.Cons.Alloc(args[0], args[1]), nil
}

func biCar(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind() != value.Cons {
		return invalidArgError("car expects a single cons argument")
	}
	cell, ok := it.Cons.Get(args[0].ID())
	if !ok {
		return invalidArgError("car: dangling cons handle")
	}
	return cell.Car, nil
}

func biCdr(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 || args[0].Kind() != value.Cons {
		return invalidArgError("cdr expects a single cons argument")
	}
	cell, ok := it.Cons.Get(args[0].ID())
	if !ok {
		return invalidArgError("cdr: dangling cons handle")
	}
	return cell.Cdr, nil
}

func biList(it *eval.Interp, args []value.Value) (value.Value, error) {
	return it.Cons.List(it.NilValue(), args...), nil
}

func biNot(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return arityError(1, len(args), "not")
	}
	return value.Bool(!it.Truthy(args[0])), nil
}

// biEqual implements `equal?`: deep structural equality, walking cons
// chains and comparing interned string/keyword text rather than arena
// ids (original_source's stdlib/builtin_functions/equal_question.rs).
func biEqual(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return arityError(2, len(args), "equal?")
	}
	return value.Bool(deepEqual(it, args[0], args[1])), nil
}

func deepEqual(it *eval.Interp, a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case value.Integer, value.Float, value.Boolean, value.Symbol, value.Function, value.Object:
		return a.Equal(b)
	case value.String:
		sa, _ := it.Strings.Lookup(a.ID())
		sb, _ := it.Strings.Lookup(b.ID())
		return sa == sb
	case value.Keyword:
		sa, _ := it.Keywords.Lookup(a.ID())
		sb, _ := it.Keywords.Lookup(b.ID())
		return sa == sb
	case value.Cons:
		if a.ID() == b.ID() {
			return true
		}
		ca, okA := it.Cons.Get(a.ID())
		cb, okB := it.Cons.Get(b.ID())
		if !okA || !okB {
			return false
		}
		return deepEqual(it, ca.Car, cb.Car) && deepEqual(it, ca.Cdr, cb.Cdr)
	default:
		return false
	}
}

func biGensym(it *eval.Interp, args []value.Value) (value.Value, error) {
	base := "g"
	if len(args) == 1 {
		if args[0].Kind() != value.String {
			return invalidArgError("gensym's argument must be a string")
		}
		base, _ = it.Strings.Lookup(args[0].ID())
	} else if len(args) > 1 {
		return arityError(1, len(args), "gensym")
	}
	return value.Sym(it.Symbols.Gensym(base)), nil
}

// kindPredicate builds a type-predicate builtin (integer?, string?, …)
// for the given value.Kind.
func kindPredicate(k value.Kind) builtinFunc {
	return func(it *eval.Interp, args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return arityError(1, len(args), k.String()+"?")
		}
		return value.Bool(args[0].Kind() == k), nil
	}
}

// biAssert: (assert condition message) raises KindAssertion with
// message when condition is falsy (original_source's
// library/assertion.rs, restored per SPEC_FULL.md §12).
func biAssert(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return arityError(2, len(args), "assert")
	}
	if it.Truthy(args[0]) {
		return value.Bool(true), nil
	}
	msg := args[1].String()
	if args[1].Kind() == value.String {
		if s, ok := it.Strings.Lookup(args[1].ID()); ok {
			msg = s
		}
	}
	return assertionError(msg)
}

// biTruthyP / biFalsyP expose the evaluator's truthiness predicate as
// library functions (original_source's is_truthy.rs / is_falsy.rs).
func biTruthyP(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return arityError(1, len(args), "truthy?")
	}
	return value.Bool(it.Truthy(args[0])), nil
}

func biFalsyP(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return arityError(1, len(args), "falsy?")
	}
	return value.Bool(!it.Truthy(args[0])), nil
}
