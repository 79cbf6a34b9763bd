package token

import "testing"

func mkToks(kinds ...Kind) []Token {
	toks := make([]Token, len(kinds))
	for i, k := range kinds {
		toks[i] = Token{Kind: k, Lexeme: k.String(), Line: 1}
	}
	return toks
}

func TestViewPeekAndPop(t *testing.T) {
	v := NewView(mkToks(KindIdentifier, KindNumber, KindRaw))
	if v.Peek(0).Kind != KindIdentifier {
		t.Fatalf("expected Identifier at 0, got %v", v.Peek(0).Kind)
	}
	if v.Peek(1).Kind != KindNumber {
		t.Fatalf("expected Number at +1, got %v", v.Peek(1).Kind)
	}
	first := v.Pop()
	if first.Kind != KindIdentifier {
		t.Fatalf("expected popped Identifier, got %v", first.Kind)
	}
	if v.PeekBack(1).Kind != KindIdentifier {
		t.Fatalf("expected peek_back(1) to see the popped token, got %v", v.PeekBack(1).Kind)
	}
}

func TestViewIsAtEndAndRemainingSize(t *testing.T) {
	v := NewView(mkToks(KindIdentifier, KindNumber))
	if v.IsAtEnd(0) {
		t.Fatal("should not be at end at position 0")
	}
	if v.RemainingSize() != 2 {
		t.Fatalf("expected remaining size 2, got %d", v.RemainingSize())
	}
	v.Advance(2)
	if !v.IsAtEnd(0) {
		t.Fatal("should be at end after advancing past all tokens")
	}
	if v.RemainingSize() != 0 {
		t.Fatalf("expected remaining size 0, got %d", v.RemainingSize())
	}
	if !v.Pop().EOF() {
		t.Fatal("popping past the end should yield the EOF sentinel")
	}
}

func TestViewMatchAndMatchSequence(t *testing.T) {
	v := NewView(mkToks(KindIdentifier, KindNumber, KindRaw))
	if !v.Match(KindNumber, KindIdentifier) {
		t.Fatal("expected Match to find Identifier among alternatives")
	}
	if v.Match(KindNumber) {
		t.Fatal("Match should not report Number at position 0")
	}
	if !v.MatchSequence(KindIdentifier, KindNumber) {
		t.Fatal("expected MatchSequence to confirm Identifier,Number in order")
	}
	if v.MatchSequence(KindNumber, KindIdentifier) {
		t.Fatal("MatchSequence should reject the wrong order")
	}
	if v.Pos() != 0 {
		t.Fatal("Match/MatchSequence must not consume")
	}
}

func TestViewConsumeAndSkip(t *testing.T) {
	v := NewView(mkToks(KindIdentifier, KindIdentifier, KindNumber))
	n := v.Skip(KindIdentifier)
	if n != 2 {
		t.Fatalf("expected to skip 2 identifiers, skipped %d", n)
	}
	tok, ok := v.Consume(KindNumber)
	if !ok || tok.Kind != KindNumber {
		t.Fatalf("expected to consume a Number, got %v ok=%v", tok, ok)
	}
	if _, ok := v.Consume(KindIdentifier); ok {
		t.Fatal("Consume should fail and not move the cursor past the end")
	}
}

func TestViewUntil(t *testing.T) {
	v := NewView(mkToks(KindIdentifier, KindNumber, KindRaw, KindError))
	span, found := v.Until(KindRaw)
	if !found {
		t.Fatal("expected Until to find the terminator")
	}
	if span.Size() != 2 {
		t.Fatalf("expected span of 2 tokens before the terminator, got %d", span.Size())
	}
	if v.Peek(0).Kind != KindError {
		t.Fatalf("expected cursor to land just past the terminator, got %v", v.Peek(0).Kind)
	}
}

func TestViewUntilNotFound(t *testing.T) {
	v := NewView(mkToks(KindIdentifier, KindNumber))
	span, found := v.Until(KindRaw)
	if found {
		t.Fatal("Until should report not-found when the terminator never appears")
	}
	if span.Size() != 2 {
		t.Fatalf("expected the whole view back when not found, got %d", span.Size())
	}
	if !v.IsAtEnd(0) {
		t.Fatal("expected the receiver fully consumed when the terminator was never found")
	}
}

func TestViewBetweenBalanced(t *testing.T) {
	// ( ( ) ) tail
	toks := mkToks(Kind(1), Kind(1), Kind(2), Kind(2), KindIdentifier)
	v := NewView(toks)
	span, ok := v.Between(Kind(1), Kind(2))
	if !ok {
		t.Fatal("expected Between to find the balanced span")
	}
	if span.Size() != 2 {
		t.Fatalf("expected the strictly-inside span to hold 2 tokens, got %d", span.Size())
	}
	if v.Peek(0).Kind != KindIdentifier {
		t.Fatalf("expected cursor just past the matching tail, got %v", v.Peek(0).Kind)
	}
}

func TestViewBetweenUnbalanced(t *testing.T) {
	toks := mkToks(Kind(1), Kind(1), Kind(2))
	v := NewView(toks)
	_, ok := v.Between(Kind(1), Kind(2))
	if ok {
		t.Fatal("expected Between to report out-of-scope when nesting never closes")
	}
}

func TestViewSubViewAndConstruct(t *testing.T) {
	v := NewView(mkToks(KindIdentifier, KindNumber, KindRaw))
	sub := v.SubView(2)
	if sub.Size() != 2 {
		t.Fatalf("expected sub-view of size 2, got %d", sub.Size())
	}
	if v.Pos() != 0 {
		t.Fatal("SubView must not move the receiver's cursor")
	}
	v.Pop()
	s := v.Construct()
	if s.Size() != 2 {
		t.Fatalf("expected Construct to materialize the remaining 2 tokens, got %d", s.Size())
	}
}

func TestTokenLexicallyEqual(t *testing.T) {
	a := Token{Kind: KindIdentifier, Lexeme: "foo"}
	b := Token{Kind: KindIdentifier, Lexeme: "foo"}
	c := Token{Kind: KindIdentifier, Lexeme: "bar"}
	if !a.LexicallyEqual(b) {
		t.Fatal("expected identical kind+lexeme to be lexically equal")
	}
	if a.LexicallyEqual(c) {
		t.Fatal("expected different lexemes to not be lexically equal")
	}
}
