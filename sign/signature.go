package sign

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrSignatureLength reports a wire blob that is not exactly 65 bytes.
var ErrSignatureLength = errors.New("sign: signature must be 65 bytes")

// ErrSignatureV reports a recovery byte outside {0, 1, 27, 28}.
var ErrSignatureV = errors.New("sign: signature v out of range")

// Signature is the wire form the exchange verifies: hex r and s, and
// v in {27, 28}. It embeds verbatim into the outgoing request body.
type Signature struct {
	R string `json:"r"`
	S string `json:"s"`
	V int    `json:"v"`
}

// signatureFromBytes converts the curve library's compact output
// (r ‖ s ‖ recovery id 0/1) into the wire form.
func signatureFromBytes(raw []byte) (Signature, error) {
	if len(raw) != 65 {
		return Signature{}, fmt.Errorf("%w: got %d", ErrSignatureLength, len(raw))
	}
	return Signature{
		R: hexutil.Encode(raw[:32]),
		S: hexutil.Encode(raw[32:64]),
		V: int(raw[64]) + 27,
	}, nil
}

// ParseSignature decodes a 130-hex-character blob (0x prefix optional)
// into r ‖ s ‖ v. A raw 0/1 recovery byte is normalized to 27/28; any
// other length or recovery value is rejected, never truncated or padded.
func ParseSignature(blob string) (Signature, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(blob), "0x")
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return Signature{}, fmt.Errorf("sign: decode signature: %w", err)
	}
	if len(raw) != 65 {
		return Signature{}, fmt.Errorf("%w: got %d hex chars", ErrSignatureLength, len(clean))
	}
	v := int(raw[64])
	switch v {
	case 0, 1:
		v += 27
	case 27, 28:
	default:
		return Signature{}, fmt.Errorf("%w: %d", ErrSignatureV, v)
	}
	return Signature{
		R: hexutil.Encode(raw[:32]),
		S: hexutil.Encode(raw[32:64]),
		V: v,
	}, nil
}

// Bytes returns the compact 65-byte form with a trailing 0/1 recovery id,
// as the curve library consumes it.
func (sig Signature) Bytes() ([]byte, error) {
	r, err := hexutil.Decode(sig.R)
	if err != nil {
		return nil, fmt.Errorf("sign: decode r: %w", err)
	}
	s, err := hexutil.Decode(sig.S)
	if err != nil {
		return nil, fmt.Errorf("sign: decode s: %w", err)
	}
	if len(r) != 32 || len(s) != 32 {
		return nil, fmt.Errorf("%w: r %d bytes, s %d bytes", ErrSignatureLength, len(r), len(s))
	}
	if sig.V != 27 && sig.V != 28 {
		return nil, fmt.Errorf("%w: %d", ErrSignatureV, sig.V)
	}
	out := make([]byte, 65)
	copy(out, r)
	copy(out[32:], s)
	out[64] = byte(sig.V - 27)
	return out, nil
}

// Hex returns the 130-hex wire blob with v encoded as 27/28.
func (sig Signature) Hex() (string, error) {
	raw, err := sig.Bytes()
	if err != nil {
		return "", err
	}
	raw[64] += 27
	return hexutil.Encode(raw), nil
}

// RecoverAddress reconstructs the signing address from a digest and its
// signature.
func RecoverAddress(digest [32]byte, sig Signature) (common.Address, error) {
	raw, err := sig.Bytes()
	if err != nil {
		return common.Address{}, err
	}
	pub, err := crypto.SigToPub(digest[:], raw)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
