// Package execution implements the trade engine of one pair instance:
// robot creation and unwinding, and the sell-to / buy-from operations
// counterparties execute against a robot's reserves.
//
// A robot deals at its band's decoded bounds: it buys stock at the low
// bound and sells stock at the high bound. Trades move reserves only,
// the stored band codewords never change.
package execution

import (
	"context"

	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/core/events"
	"code.continuecash.io/continuecash/core/pricing"
	"code.continuecash.io/continuecash/core/robots"
	"code.continuecash.io/continuecash/core/types"
	"code.continuecash.io/continuecash/libs/num"
	"code.continuecash.io/continuecash/logging"

	ethcmn "github.com/ethereum/go-ethereum/common"
)

var (
	// ErrDontSendNativeCoin, the instrument moves only the two
	// configured tokens, never the chain's native asset.
	ErrDontSendNativeCoin = errors.New("dont-send-native-coin")
	ErrNotEnoughMoney     = errors.New("not-enough-money")
	ErrNotEnoughStock     = errors.New("not-enough-stock")
)

// priceScale is 10^18, the universal scale band prices are quoted in.
var priceScale = num.Exp10(types.PriceScaleDecimals)

// Collateral is the custody surface of the token collaborator. Failures
// propagate to the trade caller unchanged.
type Collateral interface {
	Transfer(token, from, to ethcmn.Address, amount *num.Uint) error
	TransferFrom(token, spender, from, to ethcmn.Address, amount *num.Uint) error
	CheckTransferFrom(token, spender, from ethcmn.Address, amount *num.Uint) error
}

type Broker interface {
	Send(events.Event)
}

type Engine struct {
	Config
	log *logging.Logger

	// immutable for the lifetime of the instance, read once from the
	// deployed stub at construction
	cfg types.PairConfig
	// the instance's own address, custody account for all reserves
	self ethcmn.Address

	ledger     *robots.Engine
	collateral Collateral
	broker     Broker
}

func New(
	log *logging.Logger,
	conf Config,
	cfg types.PairConfig,
	self ethcmn.Address,
	ledger *robots.Engine,
	collateral Collateral,
	broker Broker,
) *Engine {
	// setup logger
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:     conf,
		log:        log,
		cfg:        cfg,
		self:       self,
		ledger:     ledger,
		collateral: collateral,
		broker:     broker,
	}
}

// Params returns the instance's immutable pair configuration.
func (e *Engine) Params() types.PairConfig {
	return e.cfg
}

// Address returns the instance's custody address.
func (e *Engine) Address() ethcmn.Address {
	return e.self
}

// CreateRobot funds a new robot from owner's balances and inserts it in
// the ledger. Prices are given in the universal 18-decimal scale and
// are stored as packed codewords. All validation happens before any
// custody movement, so a failure leaves no state change.
func (e *Engine) CreateRobot(
	ctx context.Context,
	owner ethcmn.Address,
	stockAmount, moneyAmount *num.Uint,
	highPrice, lowPrice *num.Uint,
	valueSent *num.Uint,
) (types.RobotID, error) {
	if !valueSent.IsZero() {
		return types.RobotID{}, ErrDontSendNativeCoin
	}

	highCode, err := pricing.PackPrice(highPrice)
	if err != nil {
		return types.RobotID{}, err
	}
	lowCode, err := pricing.PackPrice(lowPrice)
	if err != nil {
		return types.RobotID{}, err
	}
	if err := pricing.ValidateBand(highCode, lowCode); err != nil {
		return types.RobotID{}, err
	}
	if stockAmount.GT(types.MaxAmount) || moneyAmount.GT(types.MaxAmount) {
		return types.RobotID{}, robots.ErrAmountTooLarge
	}

	// both pulls are validated before either executes, a failure on the
	// second token must not leave the first one moved. When both sides
	// are the same token the first pull consumes allowance and balance
	// the second one needs, so the check covers the sum.
	if e.cfg.StockToken == e.cfg.MoneyToken {
		total, overflow := num.UintZero().AddOverflow(stockAmount, moneyAmount)
		if overflow {
			return types.RobotID{}, robots.ErrAmountTooLarge
		}
		if err := e.collateral.CheckTransferFrom(e.cfg.StockToken, e.self, owner, total); err != nil {
			return types.RobotID{}, err
		}
	} else {
		if err := e.collateral.CheckTransferFrom(e.cfg.StockToken, e.self, owner, stockAmount); err != nil {
			return types.RobotID{}, err
		}
		if err := e.collateral.CheckTransferFrom(e.cfg.MoneyToken, e.self, owner, moneyAmount); err != nil {
			return types.RobotID{}, err
		}
	}
	if err := e.collateral.TransferFrom(
		e.cfg.StockToken, e.self, owner, e.self, stockAmount,
	); err != nil {
		e.log.Panic("stock pull failed after validation", logging.Error(err))
	}
	if err := e.collateral.TransferFrom(
		e.cfg.MoneyToken, e.self, owner, e.self, moneyAmount,
	); err != nil {
		e.log.Panic("money pull failed after validation", logging.Error(err))
	}

	info := types.RobotInfo{
		StockAmount: stockAmount.Clone(),
		MoneyAmount: moneyAmount.Clone(),
		HighPrice:   highCode,
		LowPrice:    lowCode,
	}
	id, err := e.ledger.Create(owner, info)
	if err != nil {
		// creation was fully validated upfront
		e.log.Panic("robot insertion failed after custody moved", logging.Error(err))
	}

	e.broker.Send(events.NewRobotCreated(ctx, e.self, id, info))
	return id, nil
}

// DeleteRobot unwinds the robot at the given live-index slot, returning
// its full reserves to the caller. Identity and index staleness checks
// are the ledger's.
func (e *Engine) DeleteRobot(ctx context.Context, index uint64, id types.RobotID, caller ethcmn.Address) error {
	info, err := e.ledger.Delete(index, id, caller)
	if err != nil {
		return err
	}

	// custody always covers the recorded reserves
	if err := e.collateral.Transfer(e.cfg.StockToken, e.self, caller, info.StockAmount); err != nil {
		e.log.Panic("stock refund failed", logging.Error(err))
	}
	if err := e.collateral.Transfer(e.cfg.MoneyToken, e.self, caller, info.MoneyAmount); err != nil {
		e.log.Panic("money refund failed", logging.Error(err))
	}

	e.broker.Send(events.NewRobotDeleted(ctx, e.self, id))
	return nil
}

// SellToRobot sells stockIn units of stock to the robot at its decoded
// low price, paying the taker money out of the robot's reserve.
func (e *Engine) SellToRobot(ctx context.Context, id types.RobotID, stockIn *num.Uint, taker ethcmn.Address) (*num.Uint, error) {
	info, err := e.ledger.Get(id)
	if err != nil {
		return nil, err
	}

	// moneyOut = stockIn * lowPrice * priceMul / (priceDiv * 10^18)
	low := pricing.UnpackPrice(info.LowPrice)
	moneyOut, err := mulDiv(stockIn, low, e.cfg.PriceMul, e.cfg.PriceDiv, priceScale)
	if err != nil {
		return nil, err
	}
	if moneyOut.GT(info.MoneyAmount) {
		return nil, ErrNotEnoughMoney
	}
	newStock, overflow := num.UintZero().AddOverflow(info.StockAmount, stockIn)
	if overflow || newStock.GT(types.MaxAmount) {
		return nil, robots.ErrAmountTooLarge
	}

	if err := e.collateral.TransferFrom(e.cfg.StockToken, e.self, taker, e.self, stockIn); err != nil {
		return nil, err
	}
	if err := e.collateral.Transfer(e.cfg.MoneyToken, e.self, taker, moneyOut); err != nil {
		e.log.Panic("payout failed with checked reserve", logging.Error(err))
	}

	info.StockAmount = newStock
	info.MoneyAmount = num.UintZero().Sub(info.MoneyAmount, moneyOut)
	if err := e.ledger.Update(id, info); err != nil {
		e.log.Panic("robot update failed mid trade", logging.Error(err))
	}

	e.broker.Send(events.NewTrade(ctx, e.self, id, events.SideSellToRobot, taker, stockIn, moneyOut))
	return moneyOut, nil
}

// BuyFromRobot buys stock from the robot at its decoded high price for
// moneyIn units of money.
func (e *Engine) BuyFromRobot(ctx context.Context, id types.RobotID, moneyIn *num.Uint, taker ethcmn.Address) (*num.Uint, error) {
	info, err := e.ledger.Get(id)
	if err != nil {
		return nil, err
	}

	// stockOut = moneyIn * 10^18 * priceDiv / (priceMul * highPrice)
	high := pricing.UnpackPrice(info.HighPrice)
	stockOut, err := mulDiv(moneyIn, priceScale, e.cfg.PriceDiv, e.cfg.PriceMul, high)
	if err != nil {
		return nil, err
	}
	if stockOut.GT(info.StockAmount) {
		return nil, ErrNotEnoughStock
	}
	newMoney, overflow := num.UintZero().AddOverflow(info.MoneyAmount, moneyIn)
	if overflow || newMoney.GT(types.MaxAmount) {
		return nil, robots.ErrAmountTooLarge
	}

	if err := e.collateral.TransferFrom(e.cfg.MoneyToken, e.self, taker, e.self, moneyIn); err != nil {
		return nil, err
	}
	if err := e.collateral.Transfer(e.cfg.StockToken, e.self, taker, stockOut); err != nil {
		e.log.Panic("payout failed with checked reserve", logging.Error(err))
	}

	info.MoneyAmount = newMoney
	info.StockAmount = num.UintZero().Sub(info.StockAmount, stockOut)
	if err := e.ledger.Update(id, info); err != nil {
		e.log.Panic("robot update failed mid trade", logging.Error(err))
	}

	e.broker.Send(events.NewTrade(ctx, e.self, id, events.SideBuyFromRobot, taker, stockOut, moneyIn))
	return stockOut, nil
}

// mulDiv computes amount * m1 * m2 / (d1 * d2) with 256-bit
// intermediates and truncating division.
func mulDiv(amount, m1, m2, d1, d2 *num.Uint) (*num.Uint, error) {
	t, overflow := num.UintZero().MulOverflow(amount, m1)
	if overflow {
		return nil, robots.ErrAmountTooLarge
	}
	if t, overflow = t.MulOverflow(t, m2); overflow {
		return nil, robots.ErrAmountTooLarge
	}
	denom, overflow := num.UintZero().MulOverflow(d1, d2)
	if overflow {
		return nil, robots.ErrAmountTooLarge
	}
	return t.Div(t, denom), nil
}

// GetRobot returns the robot's current state.
func (e *Engine) GetRobot(id types.RobotID) (types.RobotInfo, error) {
	return e.ledger.Get(id)
}

// ListRobots returns the live robots in current index order.
func (e *Engine) ListRobots() []robots.Entry {
	return e.ledger.List()
}

// CreatedRobotCount returns how many robots were ever created on this
// pair.
func (e *Engine) CreatedRobotCount() *num.Uint {
	return e.ledger.CreatedCount()
}
