package collateral

import (
	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/libs/num"

	ethcmn "github.com/ethereum/go-ethereum/common"
)

// Custody failure messages keep the ERC20 wording, callers of the trade
// engine see them verbatim.
var (
	ErrInsufficientBalance   = errors.New("ERC20: insufficient balance")
	ErrInsufficientAllowance = errors.New("ERC20: insufficient allowance")
)

// Token is one fungible token ledger with ERC20 transfer semantics:
// balances per holder and spender allowances granted by approve.
type Token struct {
	address  ethcmn.Address
	symbol   string
	decimals uint8

	balances   map[ethcmn.Address]*num.Uint
	allowances map[ethcmn.Address]map[ethcmn.Address]*num.Uint
}

func NewToken(address ethcmn.Address, symbol string, decimals uint8) *Token {
	return &Token{
		address:    address,
		symbol:     symbol,
		decimals:   decimals,
		balances:   map[ethcmn.Address]*num.Uint{},
		allowances: map[ethcmn.Address]map[ethcmn.Address]*num.Uint{},
	}
}

func (t *Token) Address() ethcmn.Address {
	return t.address
}

func (t *Token) Symbol() string {
	return t.symbol
}

func (t *Token) Decimals() uint8 {
	return t.decimals
}

// Mint credits freshly issued units to a holder.
func (t *Token) Mint(to ethcmn.Address, amount *num.Uint) {
	t.credit(to, amount)
}

func (t *Token) BalanceOf(holder ethcmn.Address) *num.Uint {
	if b, ok := t.balances[holder]; ok {
		return b.Clone()
	}
	return num.UintZero()
}

// Approve grants spender the right to move up to amount from owner's
// balance. A later approve replaces the previous allowance.
func (t *Token) Approve(owner, spender ethcmn.Address, amount *num.Uint) {
	spenders, ok := t.allowances[owner]
	if !ok {
		spenders = map[ethcmn.Address]*num.Uint{}
		t.allowances[owner] = spenders
	}
	spenders[spender] = amount.Clone()
}

func (t *Token) Allowance(owner, spender ethcmn.Address) *num.Uint {
	if spenders, ok := t.allowances[owner]; ok {
		if a, ok := spenders[spender]; ok {
			return a.Clone()
		}
	}
	return num.UintZero()
}

// Transfer moves amount from the caller's own balance.
func (t *Token) Transfer(from, to ethcmn.Address, amount *num.Uint) error {
	return t.move(from, to, amount)
}

// TransferFrom moves amount out of from's balance on behalf of spender,
// consuming spender's allowance.
func (t *Token) TransferFrom(spender, from, to ethcmn.Address, amount *num.Uint) error {
	allowance := t.Allowance(from, spender)
	if allowance.LT(amount) {
		return ErrInsufficientAllowance
	}
	if err := t.move(from, to, amount); err != nil {
		return err
	}
	t.allowances[from][spender] = allowance.Sub(allowance, amount)
	return nil
}

func (t *Token) move(from, to ethcmn.Address, amount *num.Uint) error {
	bal, ok := t.balances[from]
	if !ok || bal.LT(amount) {
		return ErrInsufficientBalance
	}
	bal.Sub(bal, amount)
	t.credit(to, amount)
	return nil
}

func (t *Token) credit(to ethcmn.Address, amount *num.Uint) {
	if b, ok := t.balances[to]; ok {
		b.Add(b, amount)
		return
	}
	t.balances[to] = amount.Clone()
}
