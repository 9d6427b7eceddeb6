// Package factory deploys pair instances at deterministic addresses.
// Each instance is a minimal stub carrying its immutable configuration
// in its own code, the address is a pure function of the deployer, the
// token pair and the stub code, so anyone can compute it before the
// deployment exists.
package factory

import (
	"context"

	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/core/events"
	"code.continuecash.io/continuecash/core/execution"
	"code.continuecash.io/continuecash/core/robots"
	"code.continuecash.io/continuecash/core/types"
	"code.continuecash.io/continuecash/logging"

	ethcmn "github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrPairAlreadyExists, the address derivation is deterministic so a
	// second create of the same pair collides, it must fail cleanly
	// rather than overwrite.
	ErrPairAlreadyExists = errors.New("pair already exists")
	ErrPairNotFound      = errors.New("pair not found")
	// ErrIdenticalTokens, a pair needs two distinct tokens to price one
	// against the other.
	ErrIdenticalTokens = errors.New("identical tokens")
)

// Assets exposes the one token property the factory needs, the native
// decimal count the pair scale factors derive from.
type Assets interface {
	Decimals(token ethcmn.Address) (uint8, error)
}

type Broker interface {
	Send(events.Event)
}

// Pair is one deployed instance: its address, the configuration read
// back from its own code, and the trade engine bound to it.
type Pair struct {
	Address ethcmn.Address
	Config  types.PairConfig
	Engine  *execution.Engine
}

type Engine struct {
	Config
	log *logging.Logger

	// the factory's own identity, part of every derived address
	deployer ethcmn.Address

	assets     Assets
	collateral execution.Collateral
	broker     Broker

	pairs map[ethcmn.Address]*Pair
	codes map[ethcmn.Address][]byte
}

func New(
	log *logging.Logger,
	conf Config,
	deployer ethcmn.Address,
	assets Assets,
	collateral execution.Collateral,
	broker Broker,
) *Engine {
	// setup logger
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:     conf,
		log:        log,
		deployer:   deployer,
		assets:     assets,
		collateral: collateral,
		broker:     broker,
		pairs:      map[ethcmn.Address]*Pair{},
		codes:      map[ethcmn.Address][]byte{},
	}
}

// PairAddress computes where a pair instance for the given tokens and
// logic template will live. Pure, callable before the pair exists. The
// derivation is the content-addressed scheme: hash of deployer, a salt
// built from the two token identities, and the hash of the stub code
// that would be deployed.
func (e *Engine) PairAddress(stock, money, logic ethcmn.Address) (ethcmn.Address, error) {
	if stock == money {
		return ethcmn.Address{}, ErrIdenticalTokens
	}
	stockDec, err := e.assets.Decimals(stock)
	if err != nil {
		return ethcmn.Address{}, err
	}
	moneyDec, err := e.assets.Decimals(money)
	if err != nil {
		return ethcmn.Address{}, err
	}
	cfg := types.NewPairConfig(stock, money, stockDec, moneyDec)
	code := BuildStub(logic, cfg)
	return e.deriveAddress(stock, money, code), nil
}

// Create deploys the pair instance for (stock, money) behind the given
// logic template and returns it live. The emitted PairCreated carries
// the two token identities and the resulting address.
func (e *Engine) Create(ctx context.Context, stock, money, logic ethcmn.Address) (*Pair, error) {
	if stock == money {
		return nil, ErrIdenticalTokens
	}
	stockDec, err := e.assets.Decimals(stock)
	if err != nil {
		return nil, err
	}
	moneyDec, err := e.assets.Decimals(money)
	if err != nil {
		return nil, err
	}

	cfg := types.NewPairConfig(stock, money, stockDec, moneyDec)
	code := BuildStub(logic, cfg)
	addr := e.deriveAddress(stock, money, code)
	if _, ok := e.pairs[addr]; ok {
		return nil, ErrPairAlreadyExists
	}

	// the instance recovers its configuration from its own code, the
	// cfg used to build the stub is deliberately not reused
	loaded, err := LoadParams(code)
	if err != nil {
		e.log.Panic("freshly built stub failed introspection", logging.Error(err))
	}

	pair := &Pair{
		Address: addr,
		Config:  loaded,
		Engine: execution.New(
			e.log,
			e.Config.Execution,
			loaded, addr,
			robots.New(e.log, e.Config.Robots),
			e.collateral,
			e.broker,
		),
	}
	e.pairs[addr] = pair
	e.codes[addr] = code

	e.log.Info("pair created",
		logging.String("stock", stock.Hex()),
		logging.String("money", money.Hex()),
		logging.String("pair", addr.Hex()),
	)
	e.broker.Send(events.NewPairCreated(ctx, stock, money, addr))
	return pair, nil
}

// Pair returns the live instance deployed at the given address.
func (e *Engine) Pair(addr ethcmn.Address) (*Pair, error) {
	p, ok := e.pairs[addr]
	if !ok {
		return nil, ErrPairNotFound
	}
	return p, nil
}

// CodeAt returns the code deployed at the given address, nil if none.
func (e *Engine) CodeAt(addr ethcmn.Address) []byte {
	return e.codes[addr]
}

func (e *Engine) deriveAddress(stock, money ethcmn.Address, code []byte) ethcmn.Address {
	return DeriveAddress(e.deployer, stock, money, code)
}

// DeriveAddress computes the deterministic deployment address of a pair
// instance from the deployer identity, the token pair and the stub code.
func DeriveAddress(deployer, stock, money ethcmn.Address, code []byte) ethcmn.Address {
	var salt [32]byte
	copy(salt[:], ethcrypto.Keccak256(stock.Bytes(), money.Bytes()))
	return ethcrypto.CreateAddress2(deployer, salt, ethcrypto.Keccak256(code))
}
