package collateral_test

import (
	"testing"

	"code.continuecash.io/continuecash/core/collateral"
	"code.continuecash.io/continuecash/libs/num"
	"code.continuecash.io/continuecash/logging"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tokenAddr = ethcmn.HexToAddress("0xaaaa000000000000000000000000000000000001")
	alice     = ethcmn.HexToAddress("0x0000000000000000000000000000000000000a11")
	bob       = ethcmn.HexToAddress("0x0000000000000000000000000000000000000b0b")
	vault     = ethcmn.HexToAddress("0x00000000000000000000000000000000000f00d1")
)

func TestCollateral(t *testing.T) {
	t.Run("transfer moves balances", testTransfer)
	t.Run("transfer past balance fails", testTransferOverdraw)
	t.Run("transferFrom consumes allowance", testTransferFrom)
	t.Run("transferFrom without approval fails", testTransferFromNoApproval)
	t.Run("unknown and duplicate tokens", testTokenRegistry)
}

func newTestEngine(t *testing.T) *collateral.Engine {
	t.Helper()
	eng := collateral.New(logging.NewTestLogger(), collateral.NewDefaultConfig())
	tok := collateral.NewToken(tokenAddr, "fUSD", 8)
	tok.Mint(alice, num.NewUint(10_000))
	require.NoError(t, eng.EnableToken(tok))
	return eng
}

func testTransfer(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Transfer(tokenAddr, alice, bob, num.NewUint(600)))
	assert.True(t, eng.BalanceOf(tokenAddr, alice).EQ(num.NewUint(9_400)))
	assert.True(t, eng.BalanceOf(tokenAddr, bob).EQ(num.NewUint(600)))
}

func testTransferOverdraw(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.Transfer(tokenAddr, alice, bob, num.NewUint(10_001))
	assert.ErrorIs(t, err, collateral.ErrInsufficientBalance)
	assert.True(t, eng.BalanceOf(tokenAddr, alice).EQ(num.NewUint(10_000)))
}

func testTransferFrom(t *testing.T) {
	eng := newTestEngine(t)
	tok, err := eng.Token(tokenAddr)
	require.NoError(t, err)

	tok.Approve(alice, vault, num.NewUint(1_000))
	require.NoError(t, eng.TransferFrom(tokenAddr, vault, alice, vault, num.NewUint(700)))
	assert.True(t, tok.Allowance(alice, vault).EQ(num.NewUint(300)))
	assert.True(t, eng.BalanceOf(tokenAddr, vault).EQ(num.NewUint(700)))

	// remaining allowance no longer covers this
	err = eng.TransferFrom(tokenAddr, vault, alice, vault, num.NewUint(400))
	assert.ErrorIs(t, err, collateral.ErrInsufficientAllowance)
}

func testTransferFromNoApproval(t *testing.T) {
	eng := newTestEngine(t)

	err := eng.TransferFrom(tokenAddr, vault, alice, vault, num.NewUint(1))
	assert.ErrorIs(t, err, collateral.ErrInsufficientAllowance)
}

func testTokenRegistry(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Token(bob)
	assert.ErrorIs(t, err, collateral.ErrUnknownToken)
	_, err = eng.Decimals(bob)
	assert.ErrorIs(t, err, collateral.ErrUnknownToken)
	assert.True(t, eng.BalanceOf(bob, alice).IsZero())

	err = eng.EnableToken(collateral.NewToken(tokenAddr, "fUSD", 8))
	assert.ErrorIs(t, err, collateral.ErrTokenAlreadyEnabled)

	dec, err := eng.Decimals(tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, uint8(8), dec)
}
