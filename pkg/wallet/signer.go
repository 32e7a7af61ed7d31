package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Node is the part of the chain client needed to sign and submit a transaction
type Node interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
}

// SignTx signs a fully populated transaction with replay protection for
// tx.ChainID. Nothing is read from or sent to the network
func SignTx(tx *Transaction, key *ecdsa.PrivateKey) (*SignedTransaction, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if tx.ChainID == nil || tx.ChainID.Sign() <= 0 {
		return nil, errors.New("transaction has no chain id")
	}
	if tx.GasPrice == nil {
		return nil, errors.New("transaction has no gas price")
	}

	chainID := new(big.Int).Set(tx.ChainID)
	signed, err := types.SignTx(tx.legacy(), types.NewEIP155Signer(chainID), key)
	if err != nil {
		return nil, Wrap(InvalidKey, err)
	}
	return &SignedTransaction{tx: signed, chainID: chainID}, nil
}

// SignAndSend fills in the sender's nonce, the gas price and the chain id from
// the node, signs the transaction and submits it. All three values are read
// fresh on every call. Failures are returned as they happen and never retried:
// ChainQueryFailed for the reads, SubmissionRejected with the node's reason
// for the submission. The caller's tx is left untouched
func SignAndSend(ctx context.Context, node Node, tx *Transaction, key *ecdsa.PrivateKey) (common.Hash, error) {
	if err := checkKey(key); err != nil {
		return common.Hash{}, err
	}
	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := node.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, Wrap(ChainQueryFailed, err)
	}
	gasPrice, err := node.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, Wrap(ChainQueryFailed, err)
	}
	chainID, err := node.ChainID(ctx)
	if err != nil {
		return common.Hash{}, Wrap(ChainQueryFailed, err)
	}
	if gasPrice == nil || gasPrice.Sign() < 0 {
		return common.Hash{}, errorf(ChainQueryFailed, "node reported gas price %v", gasPrice)
	}
	if chainID == nil || chainID.Sign() <= 0 {
		return common.Hash{}, errorf(ChainQueryFailed, "node reported chain id %v", chainID)
	}

	populated := tx.Copy()
	populated.Nonce = nonce
	populated.GasPrice = gasPrice
	populated.GasLimit = DefaultGasLimit
	populated.ChainID = chainID

	signed, err := SignTx(populated, key)
	if err != nil {
		return common.Hash{}, err
	}
	raw, err := signed.RawBytes()
	if err != nil {
		return common.Hash{}, Wrap(SubmissionRejected, err)
	}

	hash, err := node.SendRawTransaction(ctx, raw)
	if err != nil {
		return common.Hash{}, Wrap(SubmissionRejected, err)
	}
	return hash, nil
}

// ZeroKey wipes the private scalar in place
func ZeroKey(key *ecdsa.PrivateKey) {
	if key == nil || key.D == nil {
		return
	}
	b := key.D.Bits()
	for i := range b {
		b[i] = 0
	}
}

func checkKey(key *ecdsa.PrivateKey) error {
	if key == nil || key.D == nil {
		return errorf(InvalidKey, "missing private key")
	}
	if key.PublicKey.X == nil || key.PublicKey.Y == nil {
		return errorf(InvalidKey, "private key has no public point")
	}
	if key.D.Sign() <= 0 || key.D.Cmp(crypto.S256().Params().N) >= 0 {
		return errorf(InvalidKey, "private key out of range")
	}
	x, y := crypto.S256().ScalarBaseMult(key.D.Bytes())
	if x.Cmp(key.PublicKey.X) != 0 || y.Cmp(key.PublicKey.Y) != 0 {
		return errorf(InvalidKey, "public key does not belong to the private key")
	}
	return nil
}
