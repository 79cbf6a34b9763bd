// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the Lexer: turns a source string into a token.Stream under a
// given Vocabulary, the same way the scar dslLexer's tokenize/
// tokenTypeToName pair did, generalized to take any Vocabulary instead of a
// single package-level lexer definition.
package lex

import (
	"fmt"

	plexer "github.com/alecthomas/participle/v2/lexer"

	"macten/token"
	"macten/voc"
)

// Error reports a lexical failure: either participle itself rejected the
// input, or a lexeme matched no known symbol and came back classified as
// token.KindError.
type Error struct {
	Source  string
	Line    int
	Lexeme  string
	Message string
}

func (e *Error) Error() string {
	if e.Lexeme == "" {
		return fmt.Sprintf("[ (line:%d) %s ]", e.Line, e.Message)
	}
	return fmt.Sprintf("[ (line:%d) %s: %q ]", e.Line, e.Message, e.Lexeme)
}

// Lexer turns source text into a token.Stream under a fixed Vocabulary.
type Lexer struct {
	vocabulary *voc.Vocabulary
	nameByType map[string]string // participle TokenType name cache, reused across calls
}

// New builds a Lexer for v.
func New(v *voc.Vocabulary) *Lexer {
	return &Lexer{vocabulary: v}
}

// Lex tokenizes input, tagging every produced token with source as its
// origin name for diagnostics. The returned stream always ends with the
// KindEOF sentinel.
func (lx *Lexer) Lex(source, input string) (*token.Stream, error) {
	plex, err := lx.vocabulary.Definition().LexString(source, input)
	if err != nil {
		return nil, &Error{Source: source, Message: err.Error()}
	}

	symbols := lx.vocabulary.Definition().Symbols()
	typeToName := make(map[plexer.TokenType]string, len(symbols))
	for name, tt := range symbols {
		typeToName[tt] = name
	}

	var toks []token.Token
	line := 1
	for {
		tk, err := plex.Next()
		if err != nil {
			return nil, &Error{Source: source, Line: line, Message: err.Error()}
		}
		if tk.EOF() {
			break
		}
		line = tk.Pos.Line
		name := typeToName[tk.Type]
		kind, ok := lx.vocabulary.KindOf(name)
		if !ok {
			kind = token.KindError
		}
		toks = append(toks, token.Token{
			Kind:   kind,
			Lexeme: tk.Value,
			Line:   tk.Pos.Line,
			Source: source,
		})
		if kind == token.KindError {
			return nil, &Error{Source: source, Line: tk.Pos.Line, Lexeme: tk.Value, Message: "unrecognized token"}
		}
	}
	toks = append(toks, token.Token{Kind: token.KindEOF, Line: line, Source: source})
	return token.NewStream(toks), nil
}
