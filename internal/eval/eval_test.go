// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/chordkit/chordkit/internal/value"
)

func TestQuoteReturnsUnevaluated(t *testing.T) {
	it := New(0)
	sym := it.Symbols.Intern("undefined-thing")
	form := it.Cons.List(it.NilValue(), value.Sym(it.Symbols.Intern("quote")), value.Sym(sym))
	v, err := it.Evaluate(it.RootEnv(), form)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != value.Symbol || v.ID() != sym {
		t.Fatalf("quote result = %v; want symbol %v", v, sym)
	}
}

func TestTruthiness(t *testing.T) {
	it := New(0)
	if it.Truthy(value.Bool(false)) {
		t.Error("false should be falsy")
	}
	if it.Truthy(value.Sym(it.NilSym)) {
		t.Error("nil should be falsy")
	}
	if !it.Truthy(value.Int(0)) {
		t.Error("0 should be truthy")
	}
	if !it.Truthy(value.Bool(true)) {
		t.Error("true should be truthy")
	}
}

func TestDefineVariableAndLookup(t *testing.T) {
	it := New(0)
	sym := it.Symbols.Intern("x")
	form := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("define-variable")),
		value.Sym(sym),
		value.Int(42),
	)
	v, err := it.Evaluate(it.RootEnv(), form)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 42 {
		t.Fatalf("define-variable result = %v; want 42", v)
	}
	v2, err := it.Evaluate(it.RootEnv(), value.Sym(sym))
	if err != nil {
		t.Fatal(err)
	}
	if v2.AsInt() != 42 {
		t.Fatalf("lookup = %v; want 42", v2)
	}
}

func TestAndOrShortCircuit(t *testing.T) {
	it := New(0)
	andForm := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("and")), value.Bool(true), value.Int(5))
	v, err := it.Evaluate(it.RootEnv(), andForm)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 5 {
		t.Fatalf("and result = %v; want 5", v)
	}

	orForm := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("or")), value.Bool(false), value.Int(7))
	v, err = it.Evaluate(it.RootEnv(), orForm)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 7 {
		t.Fatalf("or result = %v; want 7", v)
	}
}

func TestTryThrowCatch(t *testing.T) {
	it := New(0)
	tag := it.Symbols.Intern("my-error")

	throwForm := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("throw")), value.Sym(tag), value.Int(99))

	catchClause := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("catch")), value.Sym(tag), value.Int(1))

	tryForm := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("try")), throwForm, catchClause)

	v, err := it.Evaluate(it.RootEnv(), tryForm)
	if err != nil {
		t.Fatal(err)
	}
	if v.AsInt() != 1 {
		t.Fatalf("try/catch result = %v; want 1", v)
	}
}

func TestTryUncaughtPropagates(t *testing.T) {
	it := New(0)
	tag := it.Symbols.Intern("my-error")
	otherTag := it.Symbols.Intern("other-error")

	throwForm := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("throw")), value.Sym(tag), value.Int(99))
	catchClause := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("catch")), value.Sym(otherTag), value.Int(1))
	tryForm := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("try")), throwForm, catchClause)

	_, err := it.Evaluate(it.RootEnv(), tryForm)
	if err == nil {
		t.Fatal("expected uncaught throw to propagate")
	}
}

func TestCallStackOverflow(t *testing.T) {
	it := New(5)
	// (define-function f (function (lambda () (f))))
	fSym := it.Symbols.Intern("f")
	lambdaForm := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("lambda")),
		it.NilValue(),
		it.Cons.List(it.NilValue(), value.Sym(fSym)),
	)
	functionForm := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("function")), lambdaForm)
	defForm := it.Cons.List(it.NilValue(),
		value.Sym(it.Symbols.Intern("define-function")), value.Sym(fSym), functionForm)
	if _, err := it.Evaluate(it.RootEnv(), defForm); err != nil {
		t.Fatal(err)
	}

	callForm := it.Cons.List(it.NilValue(), value.Sym(fSym))
	_, err := it.Evaluate(it.RootEnv(), callForm)
	if err == nil {
		t.Fatal("expected stack overflow error")
	}
	var ee *EvalError
	if !asEvalError(err, &ee) || ee.Kind != KindOverflow {
		t.Fatalf("err = %v; want KindOverflow EvalError", err)
	}

	// A second invocation must again yield the same error, not abort.
	_, err2 := it.Evaluate(it.RootEnv(), callForm)
	if err2 == nil {
		t.Fatal("expected stack overflow error on second call")
	}
}

func asEvalError(err error, target **EvalError) bool {
	if ee, ok := err.(*EvalError); ok {
		*target = ee
		return true
	}
	return false
}
