package factory

import (
	"bytes"

	"github.com/pkg/errors"

	"code.continuecash.io/continuecash/core/types"

	ethcmn "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrNotAPairStub is returned when code bytes do not carry the
// forwarding template and an embedded pair config.
var ErrNotAPairStub = errors.New("not a pair stub")

// The minimal delegate-forwarding template. A deployed stub is the
// template with the logic template's address spliced in, followed by
// the binary encoded PairConfig. The forwarder never reads past its own
// 45 bytes, the appended config is dead weight to execution and is only
// recovered by self-introspection through LoadParams.
var (
	stubPrefix = hexutil.MustDecode("0x363d3d373d3d3d363d73")
	stubSuffix = hexutil.MustDecode("0x5af43d82803e903d91602b57fd5bf3")
)

// stubTemplateSize is the length of the forwarding template, and so the
// fixed offset of the embedded config.
var stubTemplateSize = len(stubPrefix) + ethcmn.AddressLength + len(stubSuffix)

// BuildStub assembles the deployable code of a pair instance,
// forwarding template plus embedded configuration.
func BuildStub(logic ethcmn.Address, cfg types.PairConfig) []byte {
	code := make([]byte, 0, stubTemplateSize+types.PairConfigSize)
	code = append(code, stubPrefix...)
	code = append(code, logic.Bytes()...)
	code = append(code, stubSuffix...)
	code = append(code, cfg.Encode()...)
	return code
}

// LoadParams recovers the PairConfig a stub was deployed with by
// reading its own code at the fixed offset past the template. No
// storage is involved, the configuration lives in the executable
// payload itself.
func LoadParams(code []byte) (types.PairConfig, error) {
	if len(code) != stubTemplateSize+types.PairConfigSize {
		return types.PairConfig{}, ErrNotAPairStub
	}
	if !bytes.HasPrefix(code, stubPrefix) {
		return types.PairConfig{}, ErrNotAPairStub
	}
	if !bytes.Equal(code[len(stubPrefix)+ethcmn.AddressLength:stubTemplateSize], stubSuffix) {
		return types.PairConfig{}, ErrNotAPairStub
	}
	return types.DecodePairConfig(code[stubTemplateSize:])
}

// StubLogic returns the logic template address spliced into a stub.
func StubLogic(code []byte) (ethcmn.Address, error) {
	if _, err := LoadParams(code); err != nil {
		return ethcmn.Address{}, err
	}
	return ethcmn.BytesToAddress(code[len(stubPrefix) : len(stubPrefix)+ethcmn.AddressLength]), nil
}
