// Package collateral holds the fungible-token ledgers the pair
// instances move custody through. It is the in-process stand-in for the
// external token contracts: the trade engine only ever touches it
// through its transfer surface, and custody failures propagate to the
// trade caller verbatim.
package collateral

import (
	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/libs/num"
	"code.continuecash.io/continuecash/logging"

	ethcmn "github.com/ethereum/go-ethereum/common"
)

var (
	ErrUnknownToken        = errors.New("unknown token")
	ErrTokenAlreadyEnabled = errors.New("token already enabled")
)

type Engine struct {
	Config
	log    *logging.Logger
	tokens map[ethcmn.Address]*Token
}

func New(log *logging.Logger, conf Config) *Engine {
	// setup logger
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config: conf,
		log:    log,
		tokens: map[ethcmn.Address]*Token{},
	}
}

// EnableToken registers a token ledger with the engine.
func (e *Engine) EnableToken(t *Token) error {
	if _, ok := e.tokens[t.Address()]; ok {
		return ErrTokenAlreadyEnabled
	}
	e.tokens[t.Address()] = t
	e.log.Info("token enabled",
		logging.String("address", t.Address().Hex()),
		logging.String("symbol", t.Symbol()),
		logging.Int("decimals", int(t.Decimals())),
	)
	return nil
}

// Token returns the ledger for the given token address.
func (e *Engine) Token(address ethcmn.Address) (*Token, error) {
	t, ok := e.tokens[address]
	if !ok {
		return nil, ErrUnknownToken
	}
	return t, nil
}

// Decimals returns a token's native decimal count, the factory derives
// pair scale factors from it at deployment.
func (e *Engine) Decimals(address ethcmn.Address) (uint8, error) {
	t, err := e.Token(address)
	if err != nil {
		return 0, err
	}
	return t.Decimals(), nil
}

// BalanceOf returns holder's balance of the given token, zero for
// unknown tokens.
func (e *Engine) BalanceOf(token, holder ethcmn.Address) *num.Uint {
	t, err := e.Token(token)
	if err != nil {
		return num.UintZero()
	}
	return t.BalanceOf(holder)
}

// Transfer moves amount of token from from's balance to to.
func (e *Engine) Transfer(token, from, to ethcmn.Address, amount *num.Uint) error {
	t, err := e.Token(token)
	if err != nil {
		return err
	}
	return t.Transfer(from, to, amount)
}

// CheckTransferFrom verifies a TransferFrom with the same arguments
// would succeed, without moving anything. Lets a caller that needs two
// pulls in one atomic operation validate both before touching either.
func (e *Engine) CheckTransferFrom(token, spender, from ethcmn.Address, amount *num.Uint) error {
	t, err := e.Token(token)
	if err != nil {
		return err
	}
	if t.Allowance(from, spender).LT(amount) {
		return ErrInsufficientAllowance
	}
	if t.BalanceOf(from).LT(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// TransferFrom moves amount of token from from to to on behalf of
// spender, gated by from's prior approval of spender.
func (e *Engine) TransferFrom(token, spender, from, to ethcmn.Address, amount *num.Uint) error {
	t, err := e.Token(token)
	if err != nil {
		return err
	}
	return t.TransferFrom(spender, from, to, amount)
}
