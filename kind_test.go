package symast_test

import (
	"testing"

	"github.com/benbjohnson/symast"
)

func TestKind_String(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		if s := symast.BVADD.String(); s != "bvadd" {
			t.Fatalf("unexpected string: %s", s)
		} else if s := symast.EQUAL.String(); s != "=" {
			t.Fatalf("unexpected string: %s", s)
		}
	})
	t.Run("Unknown", func(t *testing.T) {
		if s := symast.Kind(1000).String(); s != "Kind<1000>" {
			t.Fatalf("unexpected string: %s", s)
		}
	})
}

func TestKinds(t *testing.T) {
	kinds := symast.Kinds()
	if len(kinds) != 50 {
		t.Fatalf("unexpected kind count: %d", len(kinds))
	}

	var unary, binary, nary int
	for _, k := range kinds {
		if !k.IsValid() {
			t.Fatalf("invalid kind: %d", k)
		}
		switch {
		case k.IsUnary():
			unary++
		case k.IsBinary():
			binary++
		case k.IsNary():
			nary++
		}
	}
	if unary != 3 || binary != 28 || nary != 4 {
		t.Fatalf("unexpected arity counts: %d, %d, %d", unary, binary, nary)
	}
}
