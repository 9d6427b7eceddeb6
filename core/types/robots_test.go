package types_test

import (
	"testing"

	"code.continuecash.io/continuecash/core/types"
	"code.continuecash.io/continuecash/libs/num"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobotID(t *testing.T) {
	owner := ethcmn.HexToAddress("0xAbCdEf0123456789aBcDEF0123456789ABCdef01")

	t.Run("packs owner and sequence", func(t *testing.T) {
		id := types.NewRobotID(owner, num.NewUint(7))
		assert.Equal(t, owner, id.Owner())
		assert.True(t, num.NewUint(7).EQ(id.Seq()))
	})

	t.Run("zero sequence", func(t *testing.T) {
		id := types.NewRobotID(owner, num.UintZero())
		assert.Equal(t, owner, id.Owner())
		assert.True(t, id.Seq().IsZero())
	})

	t.Run("round trips through packed form", func(t *testing.T) {
		id := types.NewRobotID(owner, num.NewUint(123456789))
		back := types.RobotIDFromUint(id.Uint())
		assert.Equal(t, id, back)
	})

	t.Run("distinct owners give distinct ids", func(t *testing.T) {
		other := ethcmn.HexToAddress("0x0000000000000000000000000000000000000002")
		a := types.NewRobotID(owner, num.NewUint(1))
		b := types.NewRobotID(other, num.NewUint(1))
		assert.NotEqual(t, a, b)
	})

	t.Run("sequence occupies the low 96 bits", func(t *testing.T) {
		// owner<<96 | seq as one big integer
		id := types.NewRobotID(owner, num.NewUint(5))
		want := num.UintZero().Lsh(num.UintFromBytes(owner.Bytes()), 96)
		want.Or(want, num.NewUint(5))
		assert.True(t, want.EQ(id.Uint()))
	})
}

func TestRobotInfoPack(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		info := types.RobotInfo{
			StockAmount: num.MustUintFromString("100000000000000000000"),
			MoneyAmount: num.MustUintFromString("500000000000000000000"),
			HighPrice:   0x89000000,
			LowPrice:    0x88A8F5C2,
		}
		back := types.UnpackRobotInfo(info.Pack())
		assert.True(t, info.StockAmount.EQ(back.StockAmount))
		assert.True(t, info.MoneyAmount.EQ(back.MoneyAmount))
		assert.Equal(t, info.HighPrice, back.HighPrice)
		assert.Equal(t, info.LowPrice, back.LowPrice)
	})

	t.Run("max reserves fit", func(t *testing.T) {
		info := types.RobotInfo{
			StockAmount: types.MaxAmount.Clone(),
			MoneyAmount: types.MaxAmount.Clone(),
			HighPrice:   0xFFFFFFFF,
			LowPrice:    0xFFFFFFFF,
		}
		back := types.UnpackRobotInfo(info.Pack())
		assert.True(t, types.MaxAmount.EQ(back.StockAmount))
		assert.True(t, types.MaxAmount.EQ(back.MoneyAmount))
	})

	t.Run("field layout", func(t *testing.T) {
		// stock<<160 | money<<64 | high<<32 | low, checked bit by bit
		info := types.RobotInfo{
			StockAmount: num.NewUint(3),
			MoneyAmount: num.NewUint(5),
			HighPrice:   7,
			LowPrice:    11,
		}
		w := info.Pack()
		assert.EqualValues(t, 11, w.Uint64()&0xFFFFFFFF)
		assert.EqualValues(t, 7, num.UintZero().Rsh(w, 32).Uint64()&0xFFFFFFFF)
		assert.EqualValues(t, 5, num.UintZero().Rsh(w, 64).Uint64()&0xFFFFFFFF)
		assert.EqualValues(t, 3, num.UintZero().Rsh(w, 160).Uint64())
	})

	t.Run("clone is independent", func(t *testing.T) {
		info := types.RobotInfo{
			StockAmount: num.NewUint(10),
			MoneyAmount: num.NewUint(20),
			HighPrice:   1,
			LowPrice:    1,
		}
		cp := info.Clone()
		cp.StockAmount.Add(cp.StockAmount, num.NewUint(1))
		assert.True(t, num.NewUint(10).EQ(info.StockAmount))
	})
}

func TestPairConfig(t *testing.T) {
	stock := ethcmn.HexToAddress("0x1111111111111111111111111111111111111111")
	money := ethcmn.HexToAddress("0x2222222222222222222222222222222222222222")

	t.Run("scale factors", func(t *testing.T) {
		tcs := []struct {
			name     string
			stockDec uint8
			moneyDec uint8
			div      *num.Uint
			mul      *num.Uint
		}{
			{"equal", 18, 18, num.UintOne(), num.UintOne()},
			{"coarse stock", 8, 18, num.UintOne(), num.Exp10(10)},
			{"fine stock", 20, 18, num.Exp10(2), num.UintOne()},
			{"coarse money", 18, 6, num.Exp10(12), num.UintOne()},
		}
		for _, tc := range tcs {
			t.Run(tc.name, func(t *testing.T) {
				cfg := types.NewPairConfig(stock, money, tc.stockDec, tc.moneyDec)
				assert.True(t, tc.div.EQ(cfg.PriceDiv), "div: want %s got %s", tc.div, cfg.PriceDiv)
				assert.True(t, tc.mul.EQ(cfg.PriceMul), "mul: want %s got %s", tc.mul, cfg.PriceMul)
			})
		}
	})

	t.Run("encode decode round trip", func(t *testing.T) {
		cfg := types.NewPairConfig(stock, money, 8, 18)
		b := cfg.Encode()
		require.Len(t, b, types.PairConfigSize)

		back, err := types.DecodePairConfig(b)
		require.NoError(t, err)
		assert.Equal(t, cfg.StockToken, back.StockToken)
		assert.Equal(t, cfg.MoneyToken, back.MoneyToken)
		assert.True(t, cfg.PriceDiv.EQ(back.PriceDiv))
		assert.True(t, cfg.PriceMul.EQ(back.PriceMul))
	})

	t.Run("decode rejects wrong length", func(t *testing.T) {
		_, err := types.DecodePairConfig(make([]byte, types.PairConfigSize-1))
		require.ErrorIs(t, err, types.ErrInvalidPairConfig)
	})
}
