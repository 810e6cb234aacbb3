// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stdlib is the registration mechanism plus the data table of
// built-in functions (spec.md §1: "the core provides the registration
// and invocation mechanism; which built-ins exist is a data table").
// Register installs every entry into an interpreter's root environment.
package stdlib

import (
	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/env"
	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/function"
	"github.com/chordkit/chordkit/internal/value"
)

// builtinFunc is the concrete signature every entry in the table is
// written against; Register adapts it to function.BuiltinFunc via a
// type assertion on the Host argument, the same pattern
// internal/eval's registerSpecialForms uses for special forms.
type builtinFunc func(it *eval.Interp, args []value.Value) (value.Value, error)

type entry struct {
	name string
	fn   builtinFunc
}

// table is the data table spec.md §1 hands off to the registration
// mechanism. Entries beyond the core list/predicate primitives are
// restored from original_source/ per SPEC_FULL.md §12.
var table = []entry{
	{"+", biAdd},
	{"-", biSub},
	{"*", biMul},
	{"/", biDiv},
	{"mod", biMod},
	{"=", biNumEq},
	{"<", biLt},
	{">", biGt},
	{"<=", biLe},
	{">=", biGe},

	{"cons", biCons},
	{"car", biCar},
	{"cdr", biCdr},
	{"list", biList},
	{"not", biNot},
	{"equal?", biEqual},
	{"gensym", biGensym},

	{"integer?", kindPredicate(value.Integer)},
	{"float?", kindPredicate(value.Float)},
	{"boolean?", kindPredicate(value.Boolean)},
	{"string?", kindPredicate(value.String)},
	{"keyword?", kindPredicate(value.Keyword)},
	{"symbol?", kindPredicate(value.Symbol)},
	{"cons?", kindPredicate(value.Cons)},
	{"object?", kindPredicate(value.Object)},
	{"function?", kindPredicate(value.Function)},

	// Supplemented (SPEC_FULL.md §12).
	{"assert", biAssert},
	{"truthy?", biTruthyP},
	{"falsy?", biFalsyP},
	{"key-chord->list", biKeyChordToList},
	{"list->key-chord", biListToKeyChord},

	// Action queueing (spec.md §4.4): each appends a tagged-list-encoded
	// Descriptor to the process-wide `--actions` variable for the event
	// loop to drain and dispatch.
	{"key-press", biKeyPress},
	{"key-click", biKeyClick},
	{"key-release", biKeyRelease},
	{"mouse-button-press", biMouseButtonPress},
	{"mouse-button-click", biMouseButtonClick},
	{"mouse-button-release", biMouseButtonRelease},
	{"mouse-move-to", biMouseMoveTo},
	{"mouse-move-by", biMouseMoveBy},
	{"type-text", biTypeText},
	{"wait", biWait},
	{"exec-os-command", biExecOSCommand},
	{"exec-code", biExecCode},
	{"exec-function", biExecFunction},

	{"version", biVersion},
}

// Register installs every table entry as a constant builtin binding in
// it's root environment.
func Register(it *eval.Interp) {
	root := it.RootEnv()
	for _, e := range table {
		fn := e.fn
		sym := it.Symbols.Intern(e.name)
		native := func(h function.Host, _ arena.ID, args []value.Value) (value.Value, error) {
			return fn(h.(*eval.Interp), args)
		}
		f := it.Funcs.AllocBuiltin(sym, native)
		_ = it.Envs.DefineFunction(root, sym, f, env.Constant)
	}
}
