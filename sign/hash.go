package sign

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"hl-signing/action"
	"hl-signing/eip712"
	"hl-signing/keccak"
)

// Agent source tags selecting the network identity inside the struct hash.
const (
	mainnetSource = "a"
	testnetSource = "b"
)

// exchangeDomainSeparator is constant for every L1 action on both
// networks (the network lives in the Agent source tag, not the domain).
var exchangeDomainSeparator = eip712.DomainSeparator(eip712.Domain{
	Name:    "Exchange",
	Version: "1",
	ChainID: big.NewInt(1337),
})

// transactionDomainSeparator covers user-signed actions
// (HyperliquidSignTransaction, chain id 0x66eee).
var transactionDomainSeparator = eip712.DomainSeparator(eip712.Domain{
	Name:    "HyperliquidSignTransaction",
	Version: "1",
	ChainID: big.NewInt(0x66eee),
})

// ConnectionID hashes the serialized action together with its replay
// metadata. The result binds one signature to one action instance; it is
// never transmitted itself.
func ConnectionID(a action.Value, nonce uint64, vault *common.Address, expiresAfter *uint64) ([32]byte, error) {
	return connectionID(a, nonce, vault, expiresAfter, false)
}

func connectionID(a action.Value, nonce uint64, vault *common.Address, expiresAfter *uint64, flagOnlyVault bool) ([32]byte, error) {
	payload, err := actionPayload(a, nonce, vault, expiresAfter, flagOnlyVault)
	if err != nil {
		return [32]byte{}, err
	}
	return keccak.Sum256(payload), nil
}

// actionPayload assembles the exact byte stream the verifier hashes:
// msgpack(action) ‖ nonce (8 bytes BE) ‖ vault flag (+ 20 address bytes)
// ‖ expiry flag + timestamp (present case only; absence appends nothing).
func actionPayload(a action.Value, nonce uint64, vault *common.Address, expiresAfter *uint64, flagOnlyVault bool) ([]byte, error) {
	data, err := action.Encode(a)
	if err != nil {
		return nil, err
	}
	var nonceBytes [8]byte
	binary.BigEndian.PutUint64(nonceBytes[:], nonce)
	data = append(data, nonceBytes[:]...)
	if vault == nil {
		data = append(data, 0x00)
	} else {
		data = append(data, 0x01)
		if !flagOnlyVault {
			data = append(data, vault.Bytes()...)
		}
	}
	if expiresAfter != nil {
		data = append(data, 0x00)
		var expBytes [8]byte
		binary.BigEndian.PutUint64(expBytes[:], *expiresAfter)
		data = append(data, expBytes[:]...)
	}
	return data, nil
}

// AgentDigest builds the final signing digest for a connection id:
// struct hash of the Agent record under the Exchange domain, with the
// 0x19 0x01 prefix folded in.
func AgentDigest(connID [32]byte, mainnet bool) ([32]byte, error) {
	source := testnetSource
	if mainnet {
		source = mainnetSource
	}
	structHash, err := eip712.HashStruct(eip712.Type{
		Name: "Agent",
		Fields: []eip712.Field{
			{Name: "source", Type: "string", Value: source},
			{Name: "connectionId", Type: "bytes32", Value: connID},
		},
	})
	if err != nil {
		return [32]byte{}, err
	}
	return eip712.Digest(exchangeDomainSeparator, structHash), nil
}
