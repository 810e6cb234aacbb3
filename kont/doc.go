// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package kont provides continuation-passing style primitives and a small
// algebraic effects core used by the interpreter and event loop packages of
// chordkit.
//
// The core type [Cont] represents a computation that accepts a continuation
// and produces a final result. chordkit uses it for exactly two concerns
// that recursive, error-returning Go code expresses awkwardly:
//
//   - the evaluator's try/throw special form, via [ThrowError] and
//     [RunError];
//   - the event loop's listener-thread lifecycle, via [Bracket], which
//     stops the device listener even if the loop body throws (a panic is
//     not recovered).
//
// # Core Operations
//
// Minimal monad operations:
//
//   - [Return]: Lift a pure value into a continuation
//   - [Bind]: Sequence two continuations
//
// Derived operations:
//
//   - [Map]: Apply a function to the result — equivalent to Bind(m, func(a) Return(f(a)))
//   - [Then]: Sequence, discarding first result — equivalent to Bind(m, func(_) n)
//
// Execution:
//
//   - [Suspend]: Create a continuation from a CPS function
//   - [Run]: Execute a continuation to obtain the result
//   - [RunWith]: Execute with a custom final handler
//
// # Algebraic Effects
//
// Effects are defined as types implementing the F-bounded [Op] constraint,
// and handlers interpret these effects via the F-bounded [Handler] interface.
// Handler dispatch returns (resumeValue, true) to continue the computation,
// or (finalResult, false) to short-circuit.
//
//   - [Op]: F-bounded effect operation interface
//   - [Handler]: F-bounded effect interpreter interface
//   - [Perform]: Trigger an effect operation
//   - [Handle]: Run a computation with an F-bounded effect handler
//   - [HandleFunc]: Create a handler from a dispatch function
//
// # Error Effect
//
// Error[E] provides exception-like error handling, the basis of the
// evaluator's try/throw form (other evaluator errors are plain Go error
// returns):
//
//   - [Throw], [Catch]: Effect operations
//   - [ThrowError], [CatchError]: Convenience constructors (Cont)
//   - [RunError]: Run with Error effect (Cont), returns [Either]
//
// # Either Type
//
//   - [Left], [Right]: Constructors
//   - [Either.IsLeft], [Either.IsRight]: Predicates
//   - [Either.GetLeft], [Either.GetRight]: Accessors
//   - [MatchEither]: Pattern matching
//   - [MapEither]: Functor map over Right
//   - [FlatMapEither]: Monadic bind
//   - [MapLeftEither]: Transform Left value
//
// # Resource Safety
//
// Exception-safe resource management, used for the listener thread's
// start/stop lifecycle:
//
//   - [Bracket]: Acquire-release-use with guaranteed cleanup
//   - [OnError]: Run cleanup only on error
package kont
