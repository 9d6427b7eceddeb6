// Package robots owns the per-pair position ledger: the mapping from
// robot ID to packed robot state and the dense index of live robots.
// Creation, deletion and enumeration are all O(1) per element.
//
// Operations are not internally synchronised, the surrounding system
// sequences calls the way a chain sequences transactions.
package robots

import (
	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/core/pricing"
	"code.continuecash.io/continuecash/core/types"
	"code.continuecash.io/continuecash/libs/num"
	"code.continuecash.io/continuecash/logging"

	ethcmn "github.com/ethereum/go-ethereum/common"
)

var (
	ErrRobotNotFound = errors.New("robot-not-found")
	ErrNotOwner      = errors.New("not-owner")
	ErrInvalidIndex  = errors.New("invalid-index")
	// ErrAmountTooLarge is returned when a reserve would not fit its
	// 96-bit field.
	ErrAmountTooLarge = errors.New("amount too large")
)

// Entry pairs a live robot's ID with its current state.
type Entry struct {
	ID   types.RobotID
	Info types.RobotInfo
}

type Engine struct {
	Config
	log *logging.Logger

	// monotonic, counts every robot ever created, never decremented
	createdCount *num.Uint
	robots       map[types.RobotID]types.RobotInfo
	// dense index of live IDs, order changes on every delete
	live []types.RobotID
}

func New(log *logging.Logger, conf Config) *Engine {
	// setup logger
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:       conf,
		log:          log,
		createdCount: num.UintZero(),
		robots:       map[types.RobotID]types.RobotInfo{},
		live:         []types.RobotID{},
	}
}

// Create allocates the next ID for owner, stores the robot and appends
// it to the live index.
func (e *Engine) Create(owner ethcmn.Address, info types.RobotInfo) (types.RobotID, error) {
	if err := pricing.ValidateBand(info.HighPrice, info.LowPrice); err != nil {
		return types.RobotID{}, err
	}
	if info.StockAmount.GT(types.MaxAmount) || info.MoneyAmount.GT(types.MaxAmount) {
		return types.RobotID{}, ErrAmountTooLarge
	}

	id := types.NewRobotID(owner, e.createdCount)
	e.createdCount.Add(e.createdCount, num.UintOne())
	e.robots[id] = info.Clone()
	e.live = append(e.live, id)

	if e.log.IsDebug() {
		e.log.Debug("robot created",
			logging.String("robot-id", id.String()),
			logging.BigUint("stock-amount", info.StockAmount),
			logging.BigUint("money-amount", info.MoneyAmount),
		)
	}
	return id, nil
}

// Get returns the robot's current state.
func (e *Engine) Get(id types.RobotID) (types.RobotInfo, error) {
	info, ok := e.robots[id]
	if !ok {
		return types.RobotInfo{}, ErrRobotNotFound
	}
	return info.Clone(), nil
}

// Update replaces the robot's state in place, the live index is not
// touched.
func (e *Engine) Update(id types.RobotID, info types.RobotInfo) error {
	if _, ok := e.robots[id]; !ok {
		return ErrRobotNotFound
	}
	if info.StockAmount.GT(types.MaxAmount) || info.MoneyAmount.GT(types.MaxAmount) {
		return ErrAmountTooLarge
	}
	e.robots[id] = info.Clone()
	return nil
}

// Delete removes the robot at the given live-index slot. The caller must
// be the owner embedded in the ID, and the slot must still hold that ID:
// any other deletion on the pair reorders the index, the double check
// rejects a stale slot instead of deleting the wrong robot. The freed
// slot is filled by the last live entry (swap and pop), so external
// index references are invalidated by every deletion.
//
// The removed state is returned so the caller can unwind the reserves.
func (e *Engine) Delete(index uint64, id types.RobotID, caller ethcmn.Address) (types.RobotInfo, error) {
	if id.Owner() != caller {
		return types.RobotInfo{}, ErrNotOwner
	}
	if index >= uint64(len(e.live)) || e.live[index] != id {
		return types.RobotInfo{}, ErrInvalidIndex
	}

	info := e.robots[id]
	delete(e.robots, id)

	last := uint64(len(e.live) - 1)
	e.live[index] = e.live[last]
	e.live = e.live[:last]

	if e.log.IsDebug() {
		e.log.Debug("robot deleted",
			logging.String("robot-id", id.String()),
			logging.Uint64("index", index),
		)
	}
	return info, nil
}

// ForEach walks the live set in current index order, stopping early if
// fn returns false. Each call restarts from slot zero.
func (e *Engine) ForEach(fn func(id types.RobotID, info types.RobotInfo) bool) {
	for _, id := range e.live {
		if !fn(id, e.robots[id]) {
			return
		}
	}
}

// List returns a snapshot of the live set in current index order. The
// order is only meaningful until the next deletion.
func (e *Engine) List() []Entry {
	out := make([]Entry, 0, len(e.live))
	for _, id := range e.live {
		out = append(out, Entry{ID: id, Info: e.robots[id].Clone()})
	}
	return out
}

// CreatedCount returns how many robots were ever created on this pair.
func (e *Engine) CreatedCount() *num.Uint {
	return e.createdCount.Clone()
}

// LiveCount returns how many robots are currently live.
func (e *Engine) LiveCount() int {
	return len(e.live)
}
