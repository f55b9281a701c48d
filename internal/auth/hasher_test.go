package auth

import "testing"

func TestHashDeterministic(t *testing.T) {
	h := NewHasher("secret-a")

	first := h.Hash("1234")
	second := h.Hash("1234")
	if first != second {
		t.Fatalf("same pin and secret produced different digests: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(first))
	}
	if first == "1234" {
		t.Fatal("digest must not equal the raw pin")
	}
}

func TestHashDependsOnSecret(t *testing.T) {
	a := NewHasher("secret-a")
	b := NewHasher("secret-b")

	if a.Hash("1234") == b.Hash("1234") {
		t.Fatal("different secrets produced the same digest")
	}
}

func TestCompare(t *testing.T) {
	h := NewHasher("secret-a")
	digest := h.Hash("1234")

	if !h.Compare("1234", digest) {
		t.Fatal("expected matching pin to compare true")
	}
	if h.Compare("4321", digest) {
		t.Fatal("expected mismatching pin to compare false")
	}
	if h.Compare("1234", "") {
		t.Fatal("expected empty stored digest to compare false")
	}
}
