package symast

import (
	"fmt"
	"math/big"
)

var bigOne = big.NewInt(1)

// Mask returns 2^width - 1.
func Mask(width uint) *big.Int {
	m := new(big.Int).Lsh(bigOne, width)
	return m.Sub(m, bigOne)
}

// Truncate returns v & Mask(width) as a new integer.
func Truncate(v *big.Int, width uint) *big.Int {
	return new(big.Int).And(v, Mask(width))
}

// fits returns true if v is non-negative and fits in width bits.
func fits(v *big.Int, width uint) bool {
	return v.Sign() >= 0 && uint(v.BitLen()) <= width
}

// hexString returns the unpadded hexadecimal literal of v, e.g. 0xFF.
func hexString(v *big.Int) string {
	return fmt.Sprintf("0x%X", v)
}
