// Package ethtest provides an in-memory stand-in for an Ethereum node that
// speaks the handful of JSON-RPC methods the wallet uses. It enforces
// nonces, chain ids and balances so rejections look like a real node's
package ethtest

import (
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

// Node is the state behind the fake eth namespace
type Node struct {
	mu       sync.Mutex
	chainID  *big.Int
	gasPrice *big.Int
	block    uint64
	nonces   map[common.Address]uint64
	balances map[common.Address]*big.Int
	failures map[string]error
	sent     []*types.Transaction
}

// NewNode creates an empty chain with the given id and gas price
func NewNode(chainID, gasPrice int64) *Node {
	return &Node{
		chainID:  big.NewInt(chainID),
		gasPrice: big.NewInt(gasPrice),
		nonces:   make(map[common.Address]uint64),
		balances: make(map[common.Address]*big.Int),
		failures: make(map[string]error),
	}
}

// Fund sets the balance of an account
func (n *Node) Fund(addr common.Address, wei *big.Int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balances[addr] = new(big.Int).Set(wei)
}

// SetNonce sets the next expected nonce of an account
func (n *Node) SetNonce(addr common.Address, nonce uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nonces[addr] = nonce
}

// SetBlock sets the head block number
func (n *Node) SetBlock(number uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.block = number
}

// Fail makes every call to the named method, e.g. "eth_gasPrice", return err
func (n *Node) Fail(method string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures[method] = err
}

// Sent returns the transactions accepted so far
func (n *Node) Sent() []*types.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*types.Transaction{}, n.sent...)
}

// Server returns an rpc server exposing the node under the eth namespace.
// It can be dialed in process or mounted as an http.Handler
func (n *Node) Server() *rpc.Server {
	srv := rpc.NewServer()
	if err := srv.RegisterName("eth", &service{n}); err != nil {
		panic(err)
	}
	return srv
}

// Dial returns an in process connection to the node
func (n *Node) Dial() *rpc.Client {
	return rpc.DialInProc(n.Server())
}

func (n *Node) failure(method string) error {
	return n.failures[method]
}

// service holds the exported rpc methods
type service struct {
	n *Node
}

func (s *service) ChainId() (*hexutil.Big, error) {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	if err := s.n.failure("eth_chainId"); err != nil {
		return nil, err
	}
	return (*hexutil.Big)(new(big.Int).Set(s.n.chainID)), nil
}

func (s *service) GasPrice() (*hexutil.Big, error) {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	if err := s.n.failure("eth_gasPrice"); err != nil {
		return nil, err
	}
	return (*hexutil.Big)(new(big.Int).Set(s.n.gasPrice)), nil
}

func (s *service) GetTransactionCount(addr common.Address, block string) (hexutil.Uint64, error) {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	if err := s.n.failure("eth_getTransactionCount"); err != nil {
		return 0, err
	}
	return hexutil.Uint64(s.n.nonces[addr]), nil
}

func (s *service) GetBalance(addr common.Address, block string) (*hexutil.Big, error) {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	if err := s.n.failure("eth_getBalance"); err != nil {
		return nil, err
	}
	balance := new(big.Int)
	if b, ok := s.n.balances[addr]; ok {
		balance.Set(b)
	}
	return (*hexutil.Big)(balance), nil
}

func (s *service) BlockNumber() (hexutil.Uint64, error) {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	if err := s.n.failure("eth_blockNumber"); err != nil {
		return 0, err
	}
	return hexutil.Uint64(s.n.block), nil
}

func (s *service) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	s.n.mu.Lock()
	defer s.n.mu.Unlock()
	if err := s.n.failure("eth_sendRawTransaction"); err != nil {
		return common.Hash{}, err
	}

	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, fmt.Errorf("rlp: %v", err)
	}
	if tx.ChainId().Cmp(s.n.chainID) != 0 {
		return common.Hash{}, errors.New("invalid chain id for signer")
	}
	from, err := types.Sender(types.NewEIP155Signer(s.n.chainID), tx)
	if err != nil {
		return common.Hash{}, errors.New("invalid sender")
	}

	expected := s.n.nonces[from]
	switch {
	case tx.Nonce() < expected:
		return common.Hash{}, fmt.Errorf("nonce too low: address %v, tx: %d state: %d", from.Hex(), tx.Nonce(), expected)
	case tx.Nonce() > expected:
		return common.Hash{}, fmt.Errorf("nonce too high: address %v, tx: %d state: %d", from.Hex(), tx.Nonce(), expected)
	}

	balance := s.n.balances[from]
	if balance == nil || balance.Cmp(tx.Cost()) < 0 {
		return common.Hash{}, errors.New("insufficient funds for gas * price + value")
	}

	s.n.balances[from] = new(big.Int).Sub(balance, tx.Cost())
	to := *tx.To()
	if s.n.balances[to] == nil {
		s.n.balances[to] = new(big.Int)
	}
	s.n.balances[to] = new(big.Int).Add(s.n.balances[to], tx.Value())
	s.n.nonces[from] = expected + 1
	s.n.sent = append(s.n.sent, tx)
	return tx.Hash(), nil
}
