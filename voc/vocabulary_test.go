package voc

import (
	"testing"

	"macten/token"
)

func TestMetaKindAssignment(t *testing.T) {
	m := Meta()
	if k, ok := m.KindOf("Identifier"); !ok || k != token.KindIdentifier {
		t.Fatalf("expected Identifier symbol to map to the reserved Identifier kind, got %v ok=%v", k, ok)
	}
	if k, ok := m.KindOf("Number"); !ok || k != token.KindNumber {
		t.Fatalf("expected Number symbol to map to the reserved Number kind, got %v ok=%v", k, ok)
	}
	if _, ok := m.KindOf("DefDeclarative"); !ok {
		t.Fatal("expected DefDeclarative to be declared in the meta vocabulary")
	}
}

func TestHostExtendsWithExtraSymbols(t *testing.T) {
	h := Host(Symbol{Name: "Semicolon", Pattern: `;`})
	if _, ok := h.KindOf("Semicolon"); !ok {
		t.Fatal("expected Host to carry the caller-supplied extra symbol")
	}
	if _, ok := h.KindOf("LParen"); !ok {
		t.Fatal("expected Host to keep the shared structural symbols")
	}
}

func TestDistinctVocabulariesAssignIndependentKinds(t *testing.T) {
	m := Meta()
	h := Host()
	mk, _ := m.KindOf("Bang")
	hk, _ := h.KindOf("Bang")
	if mk != hk {
		t.Fatalf("expected Bang to keep the same declaration-order kind across vocabularies sharing the same prefix, got meta=%v host=%v", mk, hk)
	}
}
