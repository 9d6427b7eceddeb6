// Package events defines the notifications the engines publish on the
// broker: pair deployments, robot lifecycle and trades.
package events

import (
	"context"

	"code.continuecash.io/continuecash/core/types"
	"code.continuecash.io/continuecash/libs/num"

	ethcmn "github.com/ethereum/go-ethereum/common"
)

type Type int

const (
	PairCreatedEvent Type = iota
	RobotCreatedEvent
	RobotDeletedEvent
	TradeEvent
)

// Event is the base interface all bus events share.
type Event interface {
	Type() Type
	Context() context.Context
}

// Base common denominator all bus events share.
type Base struct {
	ctx context.Context
	et  Type
}

func newBase(ctx context.Context, et Type) Base {
	return Base{ctx: ctx, et: et}
}

func (b Base) Type() Type {
	return b.et
}

func (b Base) Context() context.Context {
	return b.ctx
}

// PairCreated is emitted by the factory when a new pair instance is
// deployed.
type PairCreated struct {
	Base
	StockToken ethcmn.Address
	MoneyToken ethcmn.Address
	Pair       ethcmn.Address
}

func NewPairCreated(ctx context.Context, stock, money, pair ethcmn.Address) *PairCreated {
	return &PairCreated{
		Base:       newBase(ctx, PairCreatedEvent),
		StockToken: stock,
		MoneyToken: money,
		Pair:       pair,
	}
}

// RobotCreated is emitted when a robot is funded and inserted in the
// ledger.
type RobotCreated struct {
	Base
	Pair ethcmn.Address
	ID   types.RobotID
	Info types.RobotInfo
}

func NewRobotCreated(ctx context.Context, pair ethcmn.Address, id types.RobotID, info types.RobotInfo) *RobotCreated {
	return &RobotCreated{
		Base: newBase(ctx, RobotCreatedEvent),
		Pair: pair,
		ID:   id,
		Info: info.Clone(),
	}
}

// RobotDeleted is emitted when a robot is unwound and removed.
type RobotDeleted struct {
	Base
	Pair ethcmn.Address
	ID   types.RobotID
}

func NewRobotDeleted(ctx context.Context, pair ethcmn.Address, id types.RobotID) *RobotDeleted {
	return &RobotDeleted{
		Base: newBase(ctx, RobotDeletedEvent),
		Pair: pair,
		ID:   id,
	}
}

// TradeSide says which way the taker traded against the robot.
type TradeSide int

const (
	// SideSellToRobot, the taker sold stock to the robot.
	SideSellToRobot TradeSide = iota
	// SideBuyFromRobot, the taker bought stock from the robot.
	SideBuyFromRobot
)

// Trade is emitted for every executed sell-to or buy-from.
type Trade struct {
	Base
	Pair       ethcmn.Address
	ID         types.RobotID
	Side       TradeSide
	Taker      ethcmn.Address
	StockDelta *num.Uint
	MoneyDelta *num.Uint
}

func NewTrade(
	ctx context.Context,
	pair ethcmn.Address,
	id types.RobotID,
	side TradeSide,
	taker ethcmn.Address,
	stockDelta, moneyDelta *num.Uint,
) *Trade {
	return &Trade{
		Base:       newBase(ctx, TradeEvent),
		Pair:       pair,
		ID:         id,
		Side:       side,
		Taker:      taker,
		StockDelta: stockDelta.Clone(),
		MoneyDelta: moneyDelta.Clone(),
	}
}
