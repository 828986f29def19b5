// Package sign produces recoverable secp256k1 signatures over exchange
// actions. An action is serialized canonically, bound to its nonce and
// optional vault/expiry metadata, hashed into a connection id, and signed
// through the EIP-712 Agent record the remote verifier reconstructs.
package sign

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"hl-signing/action"
	"hl-signing/eip712"
)

// ErrMalformedKey reports unusable private key material. It is the only
// key-related failure; signing itself never revalidates the key.
var ErrMalformedKey = errors.New("sign: malformed private key")

// Signer holds one private key and signs actions for one network. Safe
// for concurrent use; all state is set at construction and immutable.
type Signer struct {
	key           *ecdsa.PrivateKey
	address       common.Address
	mainnet       bool
	flagOnlyVault bool
	log           *zap.Logger
}

// Option configures a Signer at construction.
type Option func(*Signer)

// WithLogger attaches a logger for debug-level signing events. The
// private key never appears in log output.
func WithLogger(log *zap.Logger) Option {
	return func(s *Signer) { s.log = log }
}

// WithFlagOnlyVaultHash hashes vault presence as a bare flag byte without
// the 20 address bytes. Exists for differential testing against verifiers
// with the flag-only byte layout; the live verifier wants the bytes.
func WithFlagOnlyVaultHash() Option {
	return func(s *Signer) { s.flagOnlyVault = true }
}

// New parses a hex-encoded secp256k1 private key (0x prefix optional)
// and returns a signer for the selected network.
func New(hexKey string, mainnet bool, opts ...Option) (*Signer, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if clean == "" {
		return nil, fmt.Errorf("%w: empty key", ErrMalformedKey)
	}
	key, err := crypto.HexToECDSA(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	s := &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		mainnet: mainnet,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Address returns the account address derived from the signer's key.
func (s *Signer) Address() common.Address {
	return s.address
}

// ChainName returns the network name user-signed actions carry in their
// hyperliquidChain field.
func (s *Signer) ChainName() string {
	if s.mainnet {
		return "Mainnet"
	}
	return "Testnet"
}

// SignAction signs an L1 action. The caller supplies the nonce and the
// optional vault address and expiry exactly as they will appear in the
// outgoing request; any divergence produces a digest the verifier will
// reject.
func (s *Signer) SignAction(a action.Value, nonce uint64, vault *common.Address, expiresAfter *uint64) (Signature, error) {
	connID, err := connectionID(a, nonce, vault, expiresAfter, s.flagOnlyVault)
	if err != nil {
		return Signature{}, err
	}
	digest, err := AgentDigest(connID, s.mainnet)
	if err != nil {
		return Signature{}, err
	}
	s.log.Debug("signing action",
		zap.Uint64("nonce", nonce),
		zap.Bool("vault", vault != nil),
		zap.Bool("mainnet", s.mainnet),
		zap.String("digest", hexutil.Encode(digest[:])))
	return s.SignDigest(digest)
}

// SignUserAction signs a directly-typed action (transfers, withdrawals,
// agent approval and similar) under the HyperliquidSignTransaction
// domain. The caller supplies the schema fields, including the
// hyperliquidChain field matching ChainName.
func (s *Signer) SignUserAction(primaryType string, fields []eip712.Field) (Signature, error) {
	structHash, err := eip712.HashStruct(eip712.Type{Name: primaryType, Fields: fields})
	if err != nil {
		return Signature{}, err
	}
	digest := eip712.Digest(transactionDomainSeparator, structHash)
	s.log.Debug("signing user action",
		zap.String("primaryType", primaryType),
		zap.String("digest", hexutil.Encode(digest[:])))
	return s.SignDigest(digest)
}

// SignDigest signs a prepared 32-byte digest. Curve failures propagate
// verbatim; they are deterministic and not retried here.
func (s *Signer) SignDigest(digest [32]byte) (Signature, error) {
	raw, err := crypto.Sign(digest[:], s.key)
	if err != nil {
		return Signature{}, err
	}
	return signatureFromBytes(raw)
}
