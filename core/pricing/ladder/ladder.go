// Package ladder implements a geometric price-tick ladder: grid indices
// map to exponentially spaced prices, every step multiplying the price
// by a near-constant ratio. Two densities are provided, 256 steps per
// doubling (ratio ~1.0027) and 64 steps per doubling (ratio ~1.0109).
// It is a candidate tick scheme for quoting tools, it is not used by the
// robot ledger itself.
package ladder

import (
	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/libs/num"
)

var (
	// ErrPriceOutOfRange is returned for prices below the first rung or
	// for grids whose price does not fit in 256 bits.
	ErrPriceOutOfRange = errors.New("price out of ladder range")
)

// Sub-step multiplier tables. An index splits into head (number of
// doublings), and a tail selecting one multiplier from each table, the
// product of the two spans one octave in 16x16 (or 8x8) near-equal
// ratio steps.
var (
	x256 = [16]uint64{
		1048576, 1051419, 1054270, 1057128,
		1059994, 1062868, 1065750, 1068639,
		1071537, 1074442, 1077355, 1080276,
		1083205, 1086142, 1089087, 1092040,
	}
	y256 = [16]uint64{
		65536, 68438, 71468, 74632,
		77936, 81386, 84990, 88752,
		92682, 96785, 101070, 105545,
		110218, 115098, 120194, 125515,
	}

	x64 = [8]uint64{
		524288, 529997, 535768, 541603,
		547500, 553462, 559489, 565581,
	}
	y64 = [8]uint64{
		65536, 71468, 77936, 84990,
		92682, 101070, 110218, 120194,
	}
)

// GridToPrice256 returns the price at a rung of the dense ladder,
// 256 rungs per doubling.
func GridToPrice256(grid uint32) (*num.Uint, error) {
	head := uint(grid / 256)
	tail := grid % 256
	before := num.NewUint(x256[tail%16] * y256[tail/16])
	if before.BitLen()+int(head) > 256 {
		return nil, ErrPriceOutOfRange
	}
	return before.Lsh(before, head), nil
}

// GridToPrice64 returns the price at a rung of the coarse ladder,
// 64 rungs per doubling.
func GridToPrice64(grid uint32) (*num.Uint, error) {
	head := uint(grid / 64)
	tail := grid % 64
	before := num.NewUint(x64[tail%8] * y64[tail/8])
	if before.BitLen()+int(head) > 256 {
		return nil, ErrPriceOutOfRange
	}
	return before.Lsh(before, head), nil
}

// PriceToGrid256 returns the highest rung of the dense ladder whose
// price does not exceed the given price.
func PriceToGrid256(price *num.Uint) (uint32, error) {
	return priceToGrid(price, 256, 16, GridToPrice256)
}

// PriceToGrid64 returns the highest rung of the coarse ladder whose
// price does not exceed the given price.
func PriceToGrid64(price *num.Uint) (uint32, error) {
	return priceToGrid(price, 64, 8, GridToPrice64)
}

func priceToGrid(
	price *num.Uint,
	perOctave, span uint32,
	toPrice func(uint32) (*num.Uint, error),
) (uint32, error) {
	base, _ := toPrice(0)
	if price.LT(base) {
		return 0, ErrPriceOutOfRange
	}
	grid := uint32(0)
	// narrow down octave, then row, then column, each scan stops at the
	// first rung above the price
	for _, step := range []uint32{perOctave, span, 1} {
		for {
			next := grid + step
			p, err := toPrice(next)
			if err != nil || p.GT(price) {
				break
			}
			grid = next
		}
	}
	return grid, nil
}
