package types

import (
	"encoding/hex"

	"code.continuecash.io/continuecash/libs/num"

	ethcmn "github.com/ethereum/go-ethereum/common"
)

// MaxAmount is the largest reserve amount a robot can hold,
// reserves are stored in 96-bit fields.
var MaxAmount = num.MustUintFromString("79228162514264337593543950335") // 2^96 - 1

// RobotID identifies a robot within a pair instance. It packs the owner
// address in the top 160 bits and the creation sequence number in the
// bottom 96 bits. IDs are assigned from a monotonic counter and are
// never reused, even after the robot is deleted.
type RobotID [32]byte

// NewRobotID builds the ID of the seq-th robot created by owner.
func NewRobotID(owner ethcmn.Address, seq *num.Uint) RobotID {
	id := num.UintZero().Lsh(num.UintFromBytes(owner.Bytes()), 96)
	id.Or(id, seq)
	return RobotID(id.Bytes())
}

// RobotIDFromUint converts a packed 256-bit value into a RobotID.
func RobotIDFromUint(u *num.Uint) RobotID {
	return RobotID(u.Bytes())
}

// Owner returns the address embedded in the top 160 bits of the ID.
func (id RobotID) Owner() ethcmn.Address {
	return ethcmn.BytesToAddress(id[:20])
}

// Seq returns the creation sequence number embedded in the bottom
// 96 bits of the ID.
func (id RobotID) Seq() *num.Uint {
	return num.UintFromBytes(id[20:])
}

// Uint returns the packed 256-bit form of the ID.
func (id RobotID) Uint() *num.Uint {
	return num.UintFromBytes(id[:])
}

func (id RobotID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// RobotInfo is the full state of a single robot: two reserve balances in
// the tokens' native integer units and the quoted price band as packed
// 32-bit codewords in the universal 18-decimal scale.
type RobotInfo struct {
	StockAmount *num.Uint
	MoneyAmount *num.Uint
	HighPrice   uint32
	LowPrice    uint32
}

func (r RobotInfo) Clone() RobotInfo {
	return RobotInfo{
		StockAmount: r.StockAmount.Clone(),
		MoneyAmount: r.MoneyAmount.Clone(),
		HighPrice:   r.HighPrice,
		LowPrice:    r.LowPrice,
	}
}

// Pack serialises the robot state into a single 256-bit word:
// stockAmount<<160 | moneyAmount<<64 | highPrice<<32 | lowPrice.
// The field order and widths are fixed, they are the storage layout of
// already deployed instances.
func (r RobotInfo) Pack() *num.Uint {
	w := num.UintZero().Lsh(r.StockAmount, 160)
	w.Or(w, num.UintZero().Lsh(r.MoneyAmount, 64))
	w.Or(w, num.UintZero().Lsh(num.NewUint(uint64(r.HighPrice)), 32))
	w.Or(w, num.NewUint(uint64(r.LowPrice)))
	return w
}

// UnpackRobotInfo deserialises a packed 256-bit robot word.
func UnpackRobotInfo(w *num.Uint) RobotInfo {
	mask96 := MaxAmount
	return RobotInfo{
		StockAmount: num.UintZero().Rsh(w, 160),
		MoneyAmount: num.UintZero().And(num.UintZero().Rsh(w, 64), mask96),
		HighPrice:   uint32(num.UintZero().Rsh(w, 32).Uint64() & 0xFFFFFFFF),
		LowPrice:    uint32(w.Uint64() & 0xFFFFFFFF),
	}
}
