package pricing

import (
	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/libs/num"
)

// ErrInvalidPrice is returned when a price cannot be packed, or when a
// band's bounds are out of order.
var ErrInvalidPrice = errors.New("invalid-price")

const (
	// mantissaBits is the width of the codeword's mantissa field.
	mantissaBits = 24
	// literalBits is the widest price stored literally, with a zero
	// exponent field.
	literalBits = mantissaBits + 1

	mantissaMask = uint32(1)<<mantissaBits - 1
)

var twoPow24 = num.NewUint(1 << mantissaBits)

// PackPrice encodes a price in the universal 18-decimal scale into a
// 32-bit codeword: exponent in the top 8 bits, mantissa in the bottom
// 24. Prices of 25 bits or fewer are stored literally (exponent 0),
// wider prices are right-shifted so 25 significant bits remain, with the
// implicit leading bit dropped from the mantissa and the shift plus one
// stored as the exponent.
//
// Codewords order the same way the prices they encode do, so two
// codewords can be compared directly as uint32 without unpacking.
func PackPrice(price *num.Uint) (uint32, error) {
	if price.IsZero() {
		return 0, ErrInvalidPrice
	}
	bits := price.BitLen()
	if bits <= literalBits {
		return uint32(price.Uint64()), nil
	}
	// a 256-bit price shifts by at most 231, the 8-bit exponent field
	// cannot overflow
	shift := uint(bits - literalBits)
	mantissa := num.UintZero().Rsh(price, shift).Uint64() - (1 << mantissaBits)
	return uint32(shift+1)<<mantissaBits | uint32(mantissa), nil
}

// UnpackPrice decodes a 32-bit codeword back into the universal
// 18-decimal scale. Total over all codewords, never fails. The round
// trip through PackPrice loses at most one unit in the 24-bit mantissa
// scale, a relative error of at most 2^-24.
func UnpackPrice(code uint32) *num.Uint {
	m := num.NewUint(uint64(code & mantissaMask))
	exp := code >> mantissaBits
	if exp == 0 {
		return m
	}
	m.Add(m, twoPow24)
	return m.Lsh(m, uint(exp-1))
}

// ValidateBand rejects a band whose decoded low bound exceeds its high
// bound. Codewords preserve price ordering so the comparison is done on
// the raw words.
func ValidateBand(high, low uint32) error {
	if low > high {
		return ErrInvalidPrice
	}
	return nil
}
