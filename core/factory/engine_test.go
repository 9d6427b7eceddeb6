package factory_test

import (
	"context"
	"testing"

	"code.continuecash.io/continuecash/core/collateral"
	"code.continuecash.io/continuecash/core/events"
	"code.continuecash.io/continuecash/core/factory"
	"code.continuecash.io/continuecash/core/types"
	"code.continuecash.io/continuecash/libs/num"
	"code.continuecash.io/continuecash/logging"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	deployer = ethcmn.HexToAddress("0xFAC70000000000000000000000000000000000fa")
	logic    = ethcmn.HexToAddress("0x1000000000000000000000000000000000000001")
	stockTk  = ethcmn.HexToAddress("0x2000000000000000000000000000000000000002")
	moneyTk  = ethcmn.HexToAddress("0x3000000000000000000000000000000000000003")
)

type stubBroker struct {
	events []events.Event
}

func (b *stubBroker) Send(evt events.Event) {
	b.events = append(b.events, evt)
}

type testFactory struct {
	*factory.Engine
	broker     *stubBroker
	collateral *collateral.Engine
}

func newTestFactory(t *testing.T, stockDec, moneyDec uint8) *testFactory {
	t.Helper()
	log := logging.NewTestLogger()
	col := collateral.New(log, collateral.NewDefaultConfig())
	require.NoError(t, col.EnableToken(collateral.NewToken(stockTk, "STK", stockDec)))
	require.NoError(t, col.EnableToken(collateral.NewToken(moneyTk, "MNY", moneyDec)))
	broker := &stubBroker{}
	return &testFactory{
		Engine:     factory.New(log, factory.NewDefaultConfig(), deployer, col, col, broker),
		broker:     broker,
		collateral: col,
	}
}

func TestPairAddressDeterministic(t *testing.T) {
	fac := newTestFactory(t, 18, 18)

	// precomputable before anything is deployed
	predicted, err := fac.PairAddress(stockTk, moneyTk, logic)
	require.NoError(t, err)

	again, err := fac.PairAddress(stockTk, moneyTk, logic)
	require.NoError(t, err)
	assert.Equal(t, predicted, again)

	pair, err := fac.Create(context.Background(), stockTk, moneyTk, logic)
	require.NoError(t, err)
	assert.Equal(t, predicted, pair.Address)

	// the reversed pair is a different instance at a different address
	reversed, err := fac.PairAddress(moneyTk, stockTk, logic)
	require.NoError(t, err)
	assert.NotEqual(t, predicted, reversed)
}

func TestCreateDuplicatePair(t *testing.T) {
	fac := newTestFactory(t, 18, 18)

	_, err := fac.Create(context.Background(), stockTk, moneyTk, logic)
	require.NoError(t, err)

	_, err = fac.Create(context.Background(), stockTk, moneyTk, logic)
	require.ErrorIs(t, err, factory.ErrPairAlreadyExists)
}

func TestCreateIdenticalTokens(t *testing.T) {
	fac := newTestFactory(t, 18, 18)

	_, err := fac.Create(context.Background(), stockTk, stockTk, logic)
	require.ErrorIs(t, err, factory.ErrIdenticalTokens)
	_, err = fac.PairAddress(moneyTk, moneyTk, logic)
	require.ErrorIs(t, err, factory.ErrIdenticalTokens)
}

func TestCreateUnknownToken(t *testing.T) {
	fac := newTestFactory(t, 18, 18)

	unknown := ethcmn.HexToAddress("0xdeadbeef00000000000000000000000000000000")
	_, err := fac.Create(context.Background(), unknown, moneyTk, logic)
	require.ErrorIs(t, err, collateral.ErrUnknownToken)
	_, err = fac.PairAddress(stockTk, unknown, logic)
	require.ErrorIs(t, err, collateral.ErrUnknownToken)
}

func TestCreateEmitsPairCreated(t *testing.T) {
	fac := newTestFactory(t, 18, 18)

	pair, err := fac.Create(context.Background(), stockTk, moneyTk, logic)
	require.NoError(t, err)

	require.Len(t, fac.broker.events, 1)
	evt, ok := fac.broker.events[0].(*events.PairCreated)
	require.True(t, ok)
	assert.Equal(t, stockTk, evt.StockToken)
	assert.Equal(t, moneyTk, evt.MoneyToken)
	assert.Equal(t, pair.Address, evt.Pair)
}

func TestPairLookup(t *testing.T) {
	fac := newTestFactory(t, 18, 18)

	pair, err := fac.Create(context.Background(), stockTk, moneyTk, logic)
	require.NoError(t, err)

	got, err := fac.Pair(pair.Address)
	require.NoError(t, err)
	assert.Same(t, pair, got)

	_, err = fac.Pair(deployer)
	require.ErrorIs(t, err, factory.ErrPairNotFound)
}

func TestDeployedCodeCarriesConfig(t *testing.T) {
	tcs := []struct {
		name     string
		stockDec uint8
		moneyDec uint8
		div      *num.Uint
		mul      *num.Uint
	}{
		{
			name:     "equal decimals",
			stockDec: 18,
			moneyDec: 18,
			div:      num.UintOne(),
			mul:      num.UintOne(),
		},
		{
			name:     "money finer than stock",
			stockDec: 8,
			moneyDec: 18,
			div:      num.UintOne(),
			mul:      num.Exp10(10),
		},
		{
			name:     "stock finer than money",
			stockDec: 20,
			moneyDec: 18,
			div:      num.Exp10(2),
			mul:      num.UintOne(),
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			fac := newTestFactory(t, tc.stockDec, tc.moneyDec)

			pair, err := fac.Create(context.Background(), stockTk, moneyTk, logic)
			require.NoError(t, err)

			code := fac.CodeAt(pair.Address)
			require.NotNil(t, code)

			// the pair's live config is whatever its code says
			cfg, err := factory.LoadParams(code)
			require.NoError(t, err)
			assert.Equal(t, stockTk, cfg.StockToken)
			assert.Equal(t, moneyTk, cfg.MoneyToken)
			assert.True(t, tc.div.EQ(cfg.PriceDiv))
			assert.True(t, tc.mul.EQ(cfg.PriceMul))
			assert.True(t, cfg.PriceDiv.EQ(pair.Config.PriceDiv))
			assert.True(t, cfg.PriceMul.EQ(pair.Config.PriceMul))

			stubLogic, err := factory.StubLogic(code)
			require.NoError(t, err)
			assert.Equal(t, logic, stubLogic)
		})
	}
}

func TestLoadParamsRejectsForeignCode(t *testing.T) {
	cfg := types.NewPairConfig(stockTk, moneyTk, 18, 18)
	code := factory.BuildStub(logic, cfg)

	t.Run("truncated", func(t *testing.T) {
		_, err := factory.LoadParams(code[:len(code)-1])
		require.ErrorIs(t, err, factory.ErrNotAPairStub)
	})

	t.Run("corrupted template", func(t *testing.T) {
		bad := append([]byte{}, code...)
		bad[0] ^= 0xff
		_, err := factory.LoadParams(bad)
		require.ErrorIs(t, err, factory.ErrNotAPairStub)
		_, err = factory.StubLogic(bad)
		require.ErrorIs(t, err, factory.ErrNotAPairStub)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := factory.LoadParams(nil)
		require.ErrorIs(t, err, factory.ErrNotAPairStub)
	})
}
