// Package eip712 is a minimal implementation of EIP-712 typed structured
// data hashing, supporting the fixed four-field domain and a small closed
// set of primitive field types. See https://eips.ethereum.org/EIPS/eip-712.
package eip712

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"hl-signing/keccak"
)

// ErrUnsupportedFieldType reports a field type outside the supported set.
var ErrUnsupportedFieldType = errors.New("eip712: unsupported field type")

// Domain identifies the protocol a signature is bound to.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// Type is the primary data type of a typed message.
type Type struct {
	Name   string
	Fields []Field
}

// Field is one field of a primary data type. Supported types and their
// expected Go values: string (string), uint64 (uint64), uint256
// (*big.Int), address (common.Address), bytes32 ([32]byte), bool (bool).
type Field struct {
	Name  string
	Type  string
	Value any
}

// domainTypeHash is the type hash of the fixed four-field domain record.
var domainTypeHash = keccak.Sum256([]byte(
	"EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))

// DomainSeparator hashes the domain record. Constant for a fixed domain,
// so callers may compute it once and reuse it.
func DomainSeparator(d Domain) [32]byte {
	var h keccak.Hasher
	h.Write(domainTypeHash[:])
	name := keccak.Sum256([]byte(d.Name))
	h.Write(name[:])
	version := keccak.Sum256([]byte(d.Version))
	h.Write(version[:])
	h.Write(pad32Big(d.ChainID))
	h.Write(pad32Address(d.VerifyingContract))
	return h.Sum256()
}

// HashStruct hashes a typed record: keccak(typeHash ‖ enc(field 0) ‖ ...).
func HashStruct(t Type) ([32]byte, error) {
	var h keccak.Hasher
	typeHash := keccak.Sum256(encodeType(t))
	h.Write(typeHash[:])
	for _, f := range t.Fields {
		enc, err := encodeField(f)
		if err != nil {
			return [32]byte{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		h.Write(enc)
	}
	return h.Sum256(), nil
}

// Digest assembles the final signing digest:
// keccak(0x19 ‖ 0x01 ‖ domainSeparator ‖ structHash).
func Digest(domainSeparator, structHash [32]byte) [32]byte {
	var h keccak.Hasher
	h.Write([]byte{0x19, 0x01})
	h.Write(domainSeparator[:])
	h.Write(structHash[:])
	return h.Sum256()
}

// encodeType renders `Name(type0 name0,type1 name1,...)`.
func encodeType(t Type) []byte {
	out := make([]byte, 0, 64)
	out = append(out, t.Name...)
	out = append(out, '(')
	for i, f := range t.Fields {
		if i != 0 {
			out = append(out, ',')
		}
		out = append(out, f.Type...)
		out = append(out, ' ')
		out = append(out, f.Name...)
	}
	return append(out, ')')
}

func encodeField(f Field) ([]byte, error) {
	switch f.Type {
	case "string":
		s, ok := f.Value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", f.Value)
		}
		sum := keccak.Sum256([]byte(s))
		return sum[:], nil
	case "uint64":
		n, ok := f.Value.(uint64)
		if !ok {
			return nil, fmt.Errorf("expected uint64, got %T", f.Value)
		}
		return pad32Big(new(big.Int).SetUint64(n)), nil
	case "uint256":
		n, ok := f.Value.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("expected *big.Int, got %T", f.Value)
		}
		return pad32Big(n), nil
	case "address":
		addr, ok := f.Value.(common.Address)
		if !ok {
			return nil, fmt.Errorf("expected common.Address, got %T", f.Value)
		}
		return pad32Address(addr), nil
	case "bytes32":
		switch v := f.Value.(type) {
		case [32]byte:
			out := v
			return out[:], nil
		case common.Hash:
			return v.Bytes(), nil
		default:
			return nil, fmt.Errorf("expected [32]byte, got %T", f.Value)
		}
	case "bool":
		b, ok := f.Value.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", f.Value)
		}
		out := make([]byte, 32)
		if b {
			out[31] = 1
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFieldType, f.Type)
	}
}

// pad32Big left-pads n into a 32-byte big-endian block.
func pad32Big(n *big.Int) []byte {
	out := make([]byte, 32)
	if n != nil {
		n.FillBytes(out)
	}
	return out
}

func pad32Address(addr common.Address) []byte {
	out := make([]byte, 32)
	copy(out[12:], addr.Bytes())
	return out
}
