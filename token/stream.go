// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the Stream type: an append-only, ordered token buffer that a
// View cursors over.
package token

// Stream owns an ordered token buffer. It never removes tokens except via
// PopBack, so any View taken over it stays valid as long as the Stream is
// only ever appended to after the view was constructed.
type Stream struct {
	toks []Token
}

// NewStream wraps an already-lexed token slice. Callers that lex from
// scratch should prefer a Lexer (see the lex package), which returns a
// *Stream with the KindEOF sentinel already appended.
func NewStream(toks []Token) *Stream {
	return &Stream{toks: toks}
}

// Empty reports whether the stream holds no tokens at all (not even EOF).
func (s *Stream) Empty() bool { return len(s.toks) == 0 }

// Size returns the number of tokens currently buffered.
func (s *Stream) Size() int { return len(s.toks) }

// At returns the token at index i, or the EOF sentinel if i is out of
// range.
func (s *Stream) At(i int) Token {
	if i < 0 || i >= len(s.toks) {
		return Token{Kind: KindEOF}
	}
	return s.toks[i]
}

// PushBack appends a token to the end of the stream.
func (s *Stream) PushBack(t Token) { s.toks = append(s.toks, t) }

// Append appends every token in toks, in order.
func (s *Stream) Append(toks ...Token) { s.toks = append(s.toks, toks...) }

// PopBack removes the last token, if any.
func (s *Stream) PopBack() {
	if len(s.toks) > 0 {
		s.toks = s.toks[:len(s.toks)-1]
	}
}

// Tokens returns the underlying slice. Callers must not mutate it.
func (s *Stream) Tokens() []Token { return s.toks }

// View returns a cursor over the whole stream, starting at position 0.
func (s *Stream) View() *View { return NewView(s.toks) }
