// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eval

import (
	"github.com/chordkit/chordkit/internal/arena"
	"github.com/chordkit/chordkit/internal/env"
	"github.com/chordkit/chordkit/internal/function"
	"github.com/chordkit/chordkit/internal/value"
)

// bindArguments implements spec.md §4.1.2: positional, then #opt, then
// #rest, then #keys, binding into callEnv.
func bindArguments(it *Interp, callEnv arena.ID, list function.ArgList, args []value.Value) error {
	i := 0

	for _, sym := range list.Positional {
		if i >= len(args) {
			return newError(KindInvalidArgumentCount, "too few positional arguments")
		}
		if err := it.Envs.DefineVariable(callEnv, sym, args[i], env.Default); err != nil {
			return newError(KindGenericExecution, "%v", err)
		}
		i++
	}

	for _, opt := range list.Optional {
		var v value.Value
		supplied := i < len(args)
		if supplied {
			v = args[i]
			i++
		} else if opt.HasDefault {
			ev, err := it.Evaluate(callEnv, opt.Default)
			if err != nil {
				return err
			}
			v = ev
		} else {
			v = it.NilValue()
		}
		if err := it.Envs.DefineVariable(callEnv, opt.Name, v, env.Default); err != nil {
			return newError(KindGenericExecution, "%v", err)
		}
		if opt.Predicate != 0 {
			if err := it.Envs.DefineVariable(callEnv, opt.Predicate, value.Bool(supplied), env.Default); err != nil {
				return newError(KindGenericExecution, "%v", err)
			}
		}
	}

	if list.HasRest {
		rest := it.Cons.List(it.NilValue(), args[i:]...)
		if err := it.Envs.DefineVariable(callEnv, list.Rest, rest, env.Default); err != nil {
			return newError(KindGenericExecution, "%v", err)
		}
		i = len(args)
	} else if len(list.Keys) == 0 && i < len(args) {
		return newError(KindInvalidArgumentCount, "too many arguments")
	}

	if len(list.Keys) > 0 {
		remaining := args[i:]
		if len(remaining)%2 != 0 {
			return newError(KindInvalidArgumentCount, "odd tail in keyword arguments")
		}
		buf := make(map[arena.ID]value.Value, len(remaining)/2)
		for j := 0; j < len(remaining); j += 2 {
			keyVal := remaining[j]
			if keyVal.Kind() != value.Keyword {
				return newError(KindInvalidArgument, "keyword argument name must be a keyword")
			}
			name, _ := it.Keywords.Lookup(keyVal.ID())
			sym := it.Symbols.Intern(name)
			buf[sym] = remaining[j+1]
		}
		for _, key := range list.Keys {
			v, supplied := buf[key.Name]
			delete(buf, key.Name)
			if !supplied {
				if key.HasDefault {
					ev, err := it.Evaluate(callEnv, key.Default)
					if err != nil {
						return err
					}
					v = ev
				} else {
					v = it.NilValue()
				}
			}
			if err := it.Envs.DefineVariable(callEnv, key.Name, v, env.Default); err != nil {
				return newError(KindGenericExecution, "%v", err)
			}
			if key.Predicate != 0 {
				if err := it.Envs.DefineVariable(callEnv, key.Predicate, value.Bool(supplied), env.Default); err != nil {
					return newError(KindGenericExecution, "%v", err)
				}
			}
		}
		if len(buf) > 0 {
			return newError(KindInvalidArgument, "unknown keyword argument")
		}
	}

	return nil
}
