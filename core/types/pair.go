package types

import (
	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/libs/num"

	ethcmn "github.com/ethereum/go-ethereum/common"
)

// PriceScaleDecimals is the universal scale all price bands are quoted
// in, regardless of the tokens' own decimal counts.
const PriceScaleDecimals = 18

// PairConfigSize is the byte length of a binary encoded PairConfig,
// two addresses followed by two 32 byte scale factors.
const PairConfigSize = 20 + 20 + 32 + 32

var ErrInvalidPairConfig = errors.New("invalid pair config encoding")

// PairConfig is the immutable configuration of one deployed pair
// instance. PriceDiv and PriceMul convert amounts between the universal
// 18-decimal price scale and the money token's native units:
// priceMul/priceDiv == 10^(moneyDecimals-stockDecimals), at least one of
// the two is always 1.
type PairConfig struct {
	StockToken ethcmn.Address
	MoneyToken ethcmn.Address
	PriceDiv   *num.Uint
	PriceMul   *num.Uint
}

// NewPairConfig derives the scale factors for a pair from the two
// tokens' native decimal counts. Done once at deployment, fixed for the
// instance's lifetime.
func NewPairConfig(stock, money ethcmn.Address, stockDecimals, moneyDecimals uint8) PairConfig {
	div, mul := num.UintOne(), num.UintOne()
	if moneyDecimals >= stockDecimals {
		mul = num.Exp10(uint64(moneyDecimals - stockDecimals))
	} else {
		div = num.Exp10(uint64(stockDecimals - moneyDecimals))
	}
	return PairConfig{
		StockToken: stock,
		MoneyToken: money,
		PriceDiv:   div,
		PriceMul:   mul,
	}
}

// Encode serialises the config into the fixed byte layout appended to a
// pair stub's code by the factory.
func (c PairConfig) Encode() []byte {
	out := make([]byte, 0, PairConfigSize)
	out = append(out, c.StockToken.Bytes()...)
	out = append(out, c.MoneyToken.Bytes()...)
	div := c.PriceDiv.Bytes()
	mul := c.PriceMul.Bytes()
	out = append(out, div[:]...)
	out = append(out, mul[:]...)
	return out
}

// DecodePairConfig reads a config back from its binary encoding.
func DecodePairConfig(b []byte) (PairConfig, error) {
	if len(b) != PairConfigSize {
		return PairConfig{}, ErrInvalidPairConfig
	}
	return PairConfig{
		StockToken: ethcmn.BytesToAddress(b[0:20]),
		MoneyToken: ethcmn.BytesToAddress(b[20:40]),
		PriceDiv:   num.UintFromBytes(b[40:72]),
		PriceMul:   num.UintFromBytes(b[72:104]),
	}, nil
}
