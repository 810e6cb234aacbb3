// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdlib

import (
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/value"
)

// numericOperand reads an Integer or Float argument as a float64 plus
// whether the original was an Integer, so a variadic operator can stay
// integer-typed when every operand is (spec.md §8: `(+ (+ (+ 1 2) 3) 4)`
// → `10`, not `10.0`).
func numericOperand(v value.Value) (f float64, isInt bool, ok bool) {
	switch v.Kind() {
	case value.Integer:
		return float64(v.AsInt()), true, true
	case value.Float:
		return v.AsFloat(), false, true
	default:
		return 0, false, false
	}
}

func numericResult(f float64, allInt bool) value.Value {
	if allInt {
		return value.Int(int64(f))
	}
	return value.Flt(f)
}

func biAdd(it *eval.Interp, args []value.Value) (value.Value, error) {
	sum, allInt := 0.0, true
	for _, a := range args {
		f, isInt, ok := numericOperand(a)
		if !ok {
			return invalidArgError("+ expects numeric arguments")
		}
		sum += f
		allInt = allInt && isInt
	}
	return numericResult(sum, allInt), nil
}

func biSub(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return arityError(1, 0, "-")
	}
	first, allInt, ok := numericOperand(args[0])
	if !ok {
		return invalidArgError("- expects numeric arguments")
	}
	if len(args) == 1 {
		return numericResult(-first, allInt), nil
	}
	acc := first
	for _, a := range args[1:] {
		f, isInt, ok := numericOperand(a)
		if !ok {
			return invalidArgError("- expects numeric arguments")
		}
		acc -= f
		allInt = allInt && isInt
	}
	return numericResult(acc, allInt), nil
}

func biMul(it *eval.Interp, args []value.Value) (value.Value, error) {
	prod, allInt := 1.0, true
	for _, a := range args {
		f, isInt, ok := numericOperand(a)
		if !ok {
			return invalidArgError("* expects numeric arguments")
		}
		prod *= f
		allInt = allInt && isInt
	}
	return numericResult(prod, allInt), nil
}

func biDiv(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return arityError(2, len(args), "/")
	}
	acc, allInt, ok := numericOperand(args[0])
	if !ok {
		return invalidArgError("/ expects numeric arguments")
	}
	for _, a := range args[1:] {
		f, isInt, ok := numericOperand(a)
		if !ok {
			return invalidArgError("/ expects numeric arguments")
		}
		if f == 0 {
			return value.Value{}, &eval.EvalError{Kind: eval.KindZeroDivision, Message: "/ by zero"}
		}
		acc /= f
		allInt = allInt && isInt
	}
	return numericResult(acc, allInt), nil
}

// biMod implements integer remainder; both operands must be Integer
// (original_source's arithmetic builtins only define it that way).
func biMod(it *eval.Interp, args []value.Value) (value.Value, error) {
	if len(args) != 2 || args[0].Kind() != value.Integer || args[1].Kind() != value.Integer {
		return invalidArgError("mod expects two integer arguments")
	}
	if args[1].AsInt() == 0 {
		return value.Value{}, &eval.EvalError{Kind: eval.KindZeroDivision, Message: "mod by zero"}
	}
	return value.Int(args[0].AsInt() % args[1].AsInt()), nil
}

// numericCompare folds pairwise comparisons across args (spec.md-style
// variadic numeric comparison: `(< 1 2 3)` is true iff every adjacent
// pair satisfies pred).
func numericCompare(name string, args []value.Value, pred func(a, b float64) bool) (value.Value, error) {
	if len(args) < 2 {
		return arityError(2, len(args), name)
	}
	prev, _, ok := numericOperand(args[0])
	if !ok {
		return invalidArgError(name + " expects numeric arguments")
	}
	for _, a := range args[1:] {
		cur, _, ok := numericOperand(a)
		if !ok {
			return invalidArgError(name + " expects numeric arguments")
		}
		if !pred(prev, cur) {
			return value.Bool(false), nil
		}
		prev = cur
	}
	return value.Bool(true), nil
}

func biNumEq(it *eval.Interp, args []value.Value) (value.Value, error) {
	return numericCompare("=", args, func(a, b float64) bool { return a == b })
}

func biLt(it *eval.Interp, args []value.Value) (value.Value, error) {
	return numericCompare("<", args, func(a, b float64) bool { return a < b })
}

func biGt(it *eval.Interp, args []value.Value) (value.Value, error) {
	return numericCompare(">", args, func(a, b float64) bool { return a > b })
}

func biLe(it *eval.Interp, args []value.Value) (value.Value, error) {
	return numericCompare("<=", args, func(a, b float64) bool { return a <= b })
}

func biGe(it *eval.Interp, args []value.Value) (value.Value, error) {
	return numericCompare(">=", args, func(a, b float64) bool { return a >= b })
}
