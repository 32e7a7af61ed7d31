package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PublicKeyLength is the size of an uncompressed secp256k1 point without
// its 0x04 prefix byte
const PublicKeyLength = 64

// KeyPair holds a freshly generated secp256k1 private key and its public point.
// Nothing in this package persists it
type KeyPair struct {
	PrivateKey *ecdsa.PrivateKey
	PublicKey  []byte // x || y, 64 bytes
}

// GenerateKeyPair picks a random scalar in [1, n-1] using crypto/rand and
// derives the matching public point
func GenerateKeyPair() (*KeyPair, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &KeyPair{
		PrivateKey: key,
		PublicKey:  crypto.FromECDSAPub(&key.PublicKey)[1:],
	}, nil
}

// Address returns the account address of the key pair
func (kp *KeyPair) Address() common.Address {
	addr, _ := DeriveAddress(kp.PublicKey)
	return addr
}

// PrivateKeyHex returns the 32 byte private scalar as unprefixed hex
func (kp *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(crypto.FromECDSA(kp.PrivateKey))
}

// PublicKeyHex returns the 64 byte public key as unprefixed hex
func (kp *KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(kp.PublicKey)
}

// DeriveAddress maps an uncompressed public key to its 20 byte address, the
// last 20 bytes of keccak256(x || y). A 65 byte key carrying the 0x04 prefix
// is accepted as well. Keys of any other length, or points that are not on
// the curve, fail with InvalidKey before anything is hashed
func DeriveAddress(pub []byte) (common.Address, error) {
	if len(pub) == PublicKeyLength+1 && pub[0] == 0x04 {
		pub = pub[1:]
	}
	if len(pub) != PublicKeyLength {
		return common.Address{}, errorf(InvalidKey, "public key must be %d bytes, got %d", PublicKeyLength, len(pub))
	}

	// decred only parses prefixed encodings
	prefixed := make([]byte, 0, PublicKeyLength+1)
	prefixed = append(append(prefixed, 0x04), pub...)
	if _, err := secp256k1.ParsePubKey(prefixed); err != nil {
		return common.Address{}, Wrap(InvalidKey, err)
	}

	return common.BytesToAddress(crypto.Keccak256(pub)[12:]), nil
}

// ParsePrivateKey decodes a hex encoded private key, with or without a 0x prefix
func ParsePrivateKey(s string) (*ecdsa.PrivateKey, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
	}
	key, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, Wrap(InvalidKey, err)
	}
	return key, nil
}

// ParseAddress decodes a hex account address, with or without a 0x prefix.
// Checksums are not enforced
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, errorf(InvalidAddress, "%q is not a 20 byte hex address", s)
	}
	return common.HexToAddress(s), nil
}
