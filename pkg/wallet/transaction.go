package wallet

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
)

// DefaultGasLimit is the gas used by a plain value transfer
const DefaultGasLimit = params.TxGas

// Transaction is an unsigned value transfer. Nonce, GasPrice and ChainID are
// left empty by the constructors and filled from the node right before signing
type Transaction struct {
	To       common.Address
	Value    *big.Int // wei
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	ChainID  *big.Int
	Data     []byte
}

// NewTransaction builds a transfer of valueInEther to the recipient. The value
// is converted to wei with EtherToWei
func NewTransaction(to common.Address, valueInEther float64) (*Transaction, error) {
	wei, err := EtherToWei(valueInEther)
	if err != nil {
		return nil, err
	}
	return NewTransactionWei(to, wei)
}

// NewTransactionWei builds a transfer of an exact wei amount to the recipient
func NewTransactionWei(to common.Address, wei *big.Int) (*Transaction, error) {
	if wei == nil || wei.Sign() < 0 {
		return nil, errorf(InvalidAmount, "amount must not be negative")
	}
	if _, overflow := uint256.FromBig(wei); overflow {
		return nil, errorf(InvalidAmount, "amount %s does not fit in 256 bits", wei)
	}
	return &Transaction{
		To:    to,
		Value: new(big.Int).Set(wei),
		Data:  []byte{},
	}, nil
}

// Copy returns a deep copy of the transaction
func (tx *Transaction) Copy() *Transaction {
	cp := *tx
	cp.Value = copyBig(tx.Value)
	cp.GasPrice = copyBig(tx.GasPrice)
	cp.ChainID = copyBig(tx.ChainID)
	cp.Data = append([]byte{}, tx.Data...)
	return &cp
}

// legacy converts the transaction into go-ethereum's pre-typed envelope,
// the format EIP-155 signatures are defined over
func (tx *Transaction) legacy() *types.Transaction {
	to := tx.To
	return types.NewTx(&types.LegacyTx{
		Nonce:    tx.Nonce,
		GasPrice: copyBig(tx.GasPrice),
		Gas:      tx.GasLimit,
		To:       &to,
		Value:    copyBig(tx.Value),
		Data:     append([]byte{}, tx.Data...),
	})
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// SignedTransaction is a transaction together with its EIP-155 signature
type SignedTransaction struct {
	tx      *types.Transaction
	chainID *big.Int
}

// SignatureValues returns the raw v, r and s. v already carries the chain id
// as chainId*2 + 35 + recoveryId
func (stx *SignedTransaction) SignatureValues() (v, r, s *big.Int) {
	return stx.tx.RawSignatureValues()
}

// ChainID returns the chain the signature is bound to
func (stx *SignedTransaction) ChainID() *big.Int {
	return new(big.Int).Set(stx.chainID)
}

// Nonce returns the account nonce the transaction was signed with
func (stx *SignedTransaction) Nonce() uint64 {
	return stx.tx.Nonce()
}

// Hash returns the transaction hash, keccak256 of the signed RLP payload
func (stx *SignedTransaction) Hash() common.Hash {
	return stx.tx.Hash()
}

// RawBytes returns the RLP encoded signed payload ready for eth_sendRawTransaction
func (stx *SignedTransaction) RawBytes() ([]byte, error) {
	return stx.tx.MarshalBinary()
}

// ToRawTransaction returns the signed payload as 0x prefixed hex
func (stx *SignedTransaction) ToRawTransaction() (string, error) {
	raw, err := stx.RawBytes()
	if err != nil {
		return "", err
	}
	return hexutil.Encode(raw), nil
}

// Sender recovers the signing address from the signature
func (stx *SignedTransaction) Sender() (common.Address, error) {
	return types.Sender(types.NewEIP155Signer(stx.chainID), stx.tx)
}
