// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reader implements the minimal conforming reader spec.md §6
// lists as an external collaborator's contract — parse(text) plus
// read_elements(tree) collapsed into a single pass over source text,
// interning directly into an interpreter's arenas as it goes. It
// satisfies exactly the lexical table in §6 and no more (DESIGN.md's
// Open Question resolution).
package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chordkit/chordkit/internal/eval"
	"github.com/chordkit/chordkit/internal/object"
	"github.com/chordkit/chordkit/internal/value"
)

// Read parses src into a sequence of top-level forms, ready for
// evaluation via (*eval.Interp).Evaluate.
func Read(it *eval.Interp, src string) ([]value.Value, error) {
	r := &reader{it: it, src: []rune(src)}
	var forms []value.Value
	for {
		r.skipSpace()
		if r.atEnd() {
			return forms, nil
		}
		v, err := r.readForm()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
}

type reader struct {
	it  *eval.Interp
	src []rune
	pos int
}

func (r *reader) atEnd() bool { return r.pos >= len(r.src) }

func (r *reader) peek() rune {
	if r.atEnd() {
		return 0
	}
	return r.src[r.pos]
}

func (r *reader) next() rune {
	c := r.src[r.pos]
	r.pos++
	return c
}

func (r *reader) skipSpace() {
	for !r.atEnd() {
		switch r.peek() {
		case ' ', '\t', '\n', '\r':
			r.pos++
		default:
			return
		}
	}
}

func isDelimiter(c rune) bool {
	switch c {
	case 0, ' ', '\t', '\n', '\r', '(', ')', '{', '}', '\'', '`', ',', '"':
		return true
	default:
		return false
	}
}

func (r *reader) readForm() (value.Value, error) {
	switch c := r.peek(); c {
	case '(':
		r.pos++
		return r.readList(')')
	case '{':
		r.pos++
		return r.readObjectLiteral()
	case '#':
		if r.pos+1 < len(r.src) && r.src[r.pos+1] == '(' {
			return r.readHash()
		}
		return r.readAtom()
	case ':':
		r.pos++
		return r.readKeyword()
	case '\'':
		r.pos++
		return r.readWrapped("quote")
	case '`':
		r.pos++
		return r.readWrapped("quasiquote")
	case ',':
		r.pos++
		return r.readWrapped("unquote")
	case '"':
		r.pos++
		return r.readString()
	default:
		return r.readAtom()
	}
}

// readList reads forms up to the given closing rune, returning a
// proper list terminated by the interned nil symbol.
func (r *reader) readList(close rune) (value.Value, error) {
	var elems []value.Value
	for {
		r.skipSpace()
		if r.atEnd() {
			return value.Value{}, fmt.Errorf("reader: unexpected end of input, expected %q", close)
		}
		if r.peek() == close {
			r.pos++
			return r.it.Cons.List(r.it.NilValue(), elems...), nil
		}
		v, err := r.readForm()
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, v)
	}
}

// readObjectLiteral reads `{:k v …}` (spec.md §6).
func (r *reader) readObjectLiteral() (value.Value, error) {
	objVal := r.it.Objects.Alloc()
	for {
		r.skipSpace()
		if r.atEnd() {
			return value.Value{}, fmt.Errorf("reader: unexpected end of input in object literal")
		}
		if r.peek() == '}' {
			r.pos++
			return objVal, nil
		}
		if r.peek() != ':' {
			return value.Value{}, fmt.Errorf("reader: object literal keys must be keywords")
		}
		r.pos++
		keyVal, err := r.readKeyword()
		if err != nil {
			return value.Value{}, err
		}
		name, _ := r.it.Keywords.Lookup(keyVal.ID())
		propSym := r.it.Symbols.Intern(name)

		r.skipSpace()
		if r.atEnd() {
			return value.Value{}, fmt.Errorf("reader: object literal key %q missing a value", name)
		}
		v, err := r.readForm()
		if err != nil {
			return value.Value{}, err
		}
		if err := r.it.Objects.Define(objVal.ID(), propSym, v, object.Default); err != nil {
			return value.Value{}, fmt.Errorf("reader: object literal: %w", err)
		}
	}
}

// readHash reads `#(…)` short lambdas with positional holes `%1`,
// `%2`, … (spec.md §6), lowered into `(fn (%1 %2 …) body…)`.
func (r *reader) readHash() (value.Value, error) {
	r.pos++ // consume '#'
	if r.atEnd() || r.peek() != '(' {
		return value.Value{}, fmt.Errorf("reader: expected '(' after '#'")
	}
	r.pos++
	var body []value.Value
	for {
		r.skipSpace()
		if r.atEnd() {
			return value.Value{}, fmt.Errorf("reader: unexpected end of input in short lambda")
		}
		if r.peek() == ')' {
			r.pos++
			break
		}
		v, err := r.readForm()
		if err != nil {
			return value.Value{}, err
		}
		body = append(body, v)
	}

	maxHole := 0
	for _, v := range body {
		scanHoles(r.it, v, &maxHole)
	}
	params := make([]value.Value, maxHole)
	for i := 0; i < maxHole; i++ {
		params[i] = value.Sym(r.it.Symbols.Intern(fmt.Sprintf("%%%d", i+1)))
	}
	paramList := r.it.Cons.List(r.it.NilValue(), params...)
	fnSym := value.Sym(r.it.Symbols.Intern("fn"))
	elems := append([]value.Value{fnSym, paramList}, body...)
	return r.it.Cons.List(r.it.NilValue(), elems...), nil
}

// scanHoles walks a parsed form for symbols named "%N", updating
// *maxHole to the highest N seen.
func scanHoles(it *eval.Interp, v value.Value, maxHole *int) {
	switch v.Kind() {
	case value.Symbol:
		sym, ok := it.Symbols.Lookup(v.ID())
		if !ok || len(sym.Name) < 2 || sym.Name[0] != '%' {
			return
		}
		n, err := strconv.Atoi(sym.Name[1:])
		if err != nil || n <= 0 {
			return
		}
		if n > *maxHole {
			*maxHole = n
		}
	case value.Cons:
		cell, ok := it.Cons.Get(v.ID())
		if !ok {
			return
		}
		scanHoles(it, cell.Car, maxHole)
		scanHoles(it, cell.Cdr, maxHole)
	}
}

// readKeyword reads a keyword's name (the leading ':' has already been
// consumed by the caller).
func (r *reader) readKeyword() (value.Value, error) {
	start := r.pos
	for !r.atEnd() && !isDelimiter(r.peek()) {
		r.pos++
	}
	if r.pos == start {
		return value.Value{}, fmt.Errorf("reader: empty keyword")
	}
	name := string(r.src[start:r.pos])
	return value.Kw(r.it.Keywords.Intern(name)), nil
}

// readWrapped reads the next form and wraps it as `(name form)`, used
// for `'x`, `` `x ``, and `,x` (spec.md §6).
func (r *reader) readWrapped(name string) (value.Value, error) {
	r.skipSpace()
	v, err := r.readForm()
	if err != nil {
		return value.Value{}, err
	}
	sym := value.Sym(r.it.Symbols.Intern(name))
	return r.it.Cons.List(r.it.NilValue(), sym, v), nil
}

// readString reads a double-quoted string literal (the opening '"'
// has already been consumed), honoring \\, \", \n, \t, \r escapes.
func (r *reader) readString() (value.Value, error) {
	var b strings.Builder
	for {
		if r.atEnd() {
			return value.Value{}, fmt.Errorf("reader: unterminated string literal")
		}
		c := r.next()
		if c == '"' {
			return value.Str(r.it.Strings.Intern(b.String())), nil
		}
		if c == '\\' {
			if r.atEnd() {
				return value.Value{}, fmt.Errorf("reader: unterminated escape in string literal")
			}
			switch e := r.next(); e {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			default:
				b.WriteRune(e)
			}
			continue
		}
		b.WriteRune(c)
	}
}

// readAtom reads a run of non-delimiter runes and classifies it as
// `#t`/`#f`/`nil`, a numeric literal, a delimited symbol (`a:b:c`,
// lowered to a property-get chain), or a plain symbol (spec.md §6,
// §4.1.3).
func (r *reader) readAtom() (value.Value, error) {
	start := r.pos
	for !r.atEnd() && !isDelimiter(r.peek()) {
		r.pos++
	}
	if r.pos == start {
		return value.Value{}, fmt.Errorf("reader: unexpected character %q", r.peek())
	}
	tok := string(r.src[start:r.pos])

	switch tok {
	case "#t":
		return value.Bool(true), nil
	case "#f":
		return value.Bool(false), nil
	case "nil":
		return r.it.NilValue(), nil
	}

	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return value.Int(i), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil && strings.ContainsAny(tok, ".eE") {
		return value.Flt(f), nil
	}

	if strings.Contains(tok, ":") {
		return r.lowerDelimitedSymbol(tok)
	}
	return value.Sym(r.it.Symbols.Intern(tok)), nil
}

// lowerDelimitedSymbol lowers `a:b:c` into the property-get chain
// `(:c (:b a))` (spec.md §4.1.3).
func (r *reader) lowerDelimitedSymbol(tok string) (value.Value, error) {
	segments := strings.Split(tok, ":")
	if len(segments) < 2 || segments[0] == "" {
		return value.Value{}, fmt.Errorf("reader: malformed delimited symbol %q", tok)
	}
	result := value.Sym(r.it.Symbols.Intern(segments[0]))
	for _, seg := range segments[1:] {
		if seg == "" {
			return value.Value{}, fmt.Errorf("reader: malformed delimited symbol %q", tok)
		}
		kw := value.Kw(r.it.Keywords.Intern(seg))
		result = r.it.Cons.List(r.it.NilValue(), kw, result)
	}
	return result, nil
}
