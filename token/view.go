// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains View, a cursor over a token slice supporting the lookahead,
// consumption and balanced-span operations the parameter matcher, template
// applier and expander are built from.
package token

// View is a cursor over an immutable token slice. All lookahead methods are
// relative to the current position and never panic: indices outside the
// slice read back as the EOF sentinel.
type View struct {
	toks []Token
	pos  int
}

// NewView wraps toks with the cursor positioned at its start.
func NewView(toks []Token) *View {
	return &View{toks: toks}
}

// Size returns the total number of tokens the view was built from.
func (v *View) Size() int { return len(v.toks) }

// RemainingSize returns how many tokens are left from the current position
// onward.
func (v *View) RemainingSize() int {
	if v.pos >= len(v.toks) {
		return 0
	}
	return len(v.toks) - v.pos
}

// IsAtEnd reports whether the position offset tokens ahead of the cursor is
// at or past the end of the view.
func (v *View) IsAtEnd(offset int) bool {
	return v.pos+offset >= len(v.toks)
}

// Pos returns the cursor's current index into the underlying slice.
func (v *View) Pos() int { return v.pos }

// Peek returns the token offset positions ahead of the cursor without
// consuming anything.
func (v *View) Peek(offset int) Token {
	idx := v.pos + offset
	if idx < 0 || idx >= len(v.toks) {
		return Token{Kind: KindEOF}
	}
	return v.toks[idx]
}

// PeekBack returns the token offset positions behind the cursor.
func (v *View) PeekBack(offset int) Token {
	return v.Peek(-offset)
}

// Pop returns the current token and advances the cursor by one, unless
// already at the end.
func (v *View) Pop() Token {
	t := v.Peek(0)
	if !v.IsAtEnd(0) {
		v.pos++
	}
	return t
}

// Advance moves the cursor forward by steps, clamped to the end of the
// view.
func (v *View) Advance(steps int) {
	v.pos += steps
	if v.pos > len(v.toks) {
		v.pos = len(v.toks)
	}
	if v.pos < 0 {
		v.pos = 0
	}
}

// Match reports whether the current token's kind is one of kinds, without
// consuming it.
func (v *View) Match(kinds ...Kind) bool {
	cur := v.Peek(0)
	for _, k := range kinds {
		if cur.Kind == k {
			return true
		}
	}
	return false
}

// MatchSequence reports whether the upcoming tokens, in order starting at
// the cursor, have exactly the given kinds. It never consumes.
func (v *View) MatchSequence(kinds ...Kind) bool {
	if v.RemainingSize() < len(kinds) {
		return false
	}
	for i, k := range kinds {
		if v.toks[v.pos+i].Kind != k {
			return false
		}
	}
	return true
}

// Consume pops the current token if it matches one of kinds, returning the
// popped token and true; otherwise it returns the zero token and false
// without moving the cursor.
func (v *View) Consume(kinds ...Kind) (Token, bool) {
	if !v.Match(kinds...) {
		return Token{}, false
	}
	return v.Pop(), true
}

// Skip repeatedly consumes tokens whose kind is one of kinds and returns how
// many were consumed.
func (v *View) Skip(kinds ...Kind) int {
	n := 0
	for v.Match(kinds...) {
		v.Pop()
		n++
	}
	return n
}

// SkipUntil pops tokens until the cursor sits on a token of kind target (not
// consuming that token), or until the view is exhausted. It returns how many
// tokens were popped.
func (v *View) SkipUntil(target Kind) int {
	n := 0
	for !v.IsAtEnd(0) && v.Peek(0).Kind != target {
		v.Pop()
		n++
	}
	return n
}

// Until returns a sub-view of the tokens strictly before the first
// occurrence of target (the terminator is not included), and advances the
// receiver's cursor to just past that terminator. The second result is
// false if target was never found before the view was exhausted, in which
// case the returned sub-view covers everything from the starting position
// to the end and the receiver is left fully consumed.
func (v *View) Until(target Kind) (*View, bool) {
	start := v.pos
	for !v.IsAtEnd(0) && v.Peek(0).Kind != target {
		v.Pop()
	}
	span := append([]Token(nil), v.toks[start:v.pos]...)
	if v.IsAtEnd(0) {
		return NewView(span), false
	}
	v.Pop() // consume the terminator
	return NewView(span), true
}

// Between treats the current token as an opening head token and scans
// forward tracking head/tail nesting depth, returning the sub-view strictly
// between the outermost matching head/tail pair. The receiver's cursor is
// left just past the matching tail. The second result (inScope) is false if
// the view ran out before the nesting closed, in which case the returned
// view spans everything consumed and the receiver is left fully consumed.
func (v *View) Between(head, tail Kind) (*View, bool) {
	if v.Peek(0).Kind != head {
		return NewView(nil), false
	}
	v.Pop() // consume the opening head
	start := v.pos
	depth := 1
	for !v.IsAtEnd(0) {
		switch v.Peek(0).Kind {
		case head:
			depth++
		case tail:
			depth--
			if depth == 0 {
				span := append([]Token(nil), v.toks[start:v.pos]...)
				v.Pop() // consume the matching tail
				return NewView(span), true
			}
		}
		v.Pop()
	}
	span := append([]Token(nil), v.toks[start:v.pos]...)
	return NewView(span), false
}

// SubView returns a new, independent view over the next size tokens from
// the current position, without moving the receiver's cursor. size is
// clamped to the remaining length.
func (v *View) SubView(size int) *View {
	if size < 0 {
		size = 0
	}
	end := v.pos + size
	if end > len(v.toks) {
		end = len(v.toks)
	}
	return NewView(append([]Token(nil), v.toks[v.pos:end]...))
}

// Construct materializes every token from the current position to the end
// of the view into a standalone Stream, without moving the receiver's
// cursor.
func (v *View) Construct() *Stream {
	return NewStream(append([]Token(nil), v.toks[v.pos:]...))
}

// Rest returns the remaining tokens as a plain slice, without moving the
// cursor. Callers must not mutate the result.
func (v *View) Rest() []Token {
	if v.pos >= len(v.toks) {
		return nil
	}
	return v.toks[v.pos:]
}
