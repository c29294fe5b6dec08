package symast_test

import (
	"math/big"
	"testing"

	"github.com/benbjohnson/symast"
	"github.com/google/go-cmp/cmp"
)

func TestMask(t *testing.T) {
	for _, tt := range []struct {
		width uint
		hex   string
	}{
		{1, "1"},
		{8, "ff"},
		{12, "fff"},
		{64, "ffffffffffffffff"},
		{65, "1ffffffffffffffff"},
	} {
		if got := symast.Mask(tt.width).Text(16); got != tt.hex {
			t.Fatalf("Mask(%d)=%s, expected %s", tt.width, got, tt.hex)
		}
	}
}

func TestTruncate(t *testing.T) {
	v := big.NewInt(0x1FF)
	if diff := cmp.Diff(big.NewInt(0xFF), symast.Truncate(v, 8), cmp.Comparer(func(x, y *big.Int) bool {
		return x.Cmp(y) == 0
	})); diff != "" {
		t.Fatal(diff)
	}
	if v.Int64() != 0x1FF {
		t.Fatal("input modified")
	}
}
