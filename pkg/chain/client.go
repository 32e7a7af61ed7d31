// Package chain talks to an Ethereum JSON-RPC node over a single long lived
// connection. Every method is exactly one round trip; nothing is cached,
// batched or retried
package chain

import (
	"context"
	"errors"
	"io"
	"log"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/solipsis/go-ethwallet/pkg/wallet"
)

// Client is a connection to a node
type Client struct {
	rpc *rpc.Client
	eth *ethclient.Client
	logger
}

// Config specifies optional attributes of a node connection such as where
// to write the per-call trace
type Config struct {
	Logger logger
}

// logger is a simple printf style output interface
type logger interface {
	Printf(string, ...interface{})
}

// DefaultConfig discards all logging
func DefaultConfig() *Config {
	return &Config{Logger: log.New(io.Discard, "", 0)}
}

// Dial connects to the node at url (http, https, ws, wss or an ipc path) and
// asks it for its chain id to make sure it is reachable. Any failure is
// reported as ConnectionFailed
func Dial(ctx context.Context, url string, cfg *Config) (*Client, error) {
	conn, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, wallet.Wrap(wallet.ConnectionFailed, err)
	}
	c := NewClient(conn, cfg)
	id, err := c.ChainID(ctx)
	if err != nil {
		c.Close()
		return nil, &wallet.Error{Kind: wallet.ConnectionFailed, Err: unwrapKind(err)}
	}
	c.log("connected to %s, chain id %s", url, id)
	return c, nil
}

// NewClient wraps an established rpc connection
func NewClient(conn *rpc.Client, cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{
		rpc:    conn,
		eth:    ethclient.NewClient(conn),
		logger: cfg.Logger,
	}
}

// SetLogger sets the trace output for this client
func (c *Client) SetLogger(l logger) {
	c.logger = l
}

// Close tears down the connection
func (c *Client) Close() {
	if c.rpc != nil {
		c.rpc.Close()
		c.rpc = nil
	}
}

// PendingNonceAt returns the next nonce for account, counting transactions
// still waiting in the node's pool
func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	var nonce uint64
	err := c.exchange("eth_getTransactionCount", func() (err error) {
		nonce, err = c.eth.PendingNonceAt(ctx, account)
		return err
	})
	return nonce, wallet.Wrap(wallet.ChainQueryFailed, err)
}

// SuggestGasPrice returns the node's current gas price in wei
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	var price *big.Int
	err := c.exchange("eth_gasPrice", func() (err error) {
		price, err = c.eth.SuggestGasPrice(ctx)
		return err
	})
	return price, wallet.Wrap(wallet.ChainQueryFailed, err)
}

// ChainID returns the EIP-155 chain identifier of the node's network
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	var id *big.Int
	err := c.exchange("eth_chainId", func() (err error) {
		id, err = c.eth.ChainID(ctx)
		return err
	})
	return id, wallet.Wrap(wallet.ChainQueryFailed, err)
}

// SendRawTransaction submits a signed RLP payload and returns the hash the
// node assigned to it. An error answer from the node is SubmissionRejected
// with the node's message as is; a transport failure is ChainQueryFailed
func (c *Client) SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error) {
	var hash common.Hash
	err := c.exchange("eth_sendRawTransaction", func() error {
		return c.rpc.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Bytes(raw))
	})
	if err == nil {
		return hash, nil
	}
	var answer rpc.Error
	if errors.As(err, &answer) {
		return hash, wallet.Wrap(wallet.SubmissionRejected, err)
	}
	return hash, wallet.Wrap(wallet.ChainQueryFailed, err)
}

// BalanceAt returns the balance of account in wei at the latest block
func (c *Client) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance *big.Int
	err := c.exchange("eth_getBalance", func() (err error) {
		balance, err = c.eth.BalanceAt(ctx, account, nil)
		return err
	})
	return balance, wallet.Wrap(wallet.ChainQueryFailed, err)
}

// BlockNumber returns the number of the most recent block
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var number uint64
	err := c.exchange("eth_blockNumber", func() (err error) {
		number, err = c.eth.BlockNumber(ctx)
		return err
	})
	return number, wallet.Wrap(wallet.ChainQueryFailed, err)
}

// exchange runs a single request against the node and traces it
func (c *Client) exchange(method string, call func() error) error {
	start := time.Now()
	err := call()
	if err != nil {
		c.log("%s failed after %v: %v", method, time.Since(start), err)
		return err
	}
	c.log("%s ok in %v", method, time.Since(start))
	return nil
}

func (c *Client) log(str string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(str, args...)
	}
}

func unwrapKind(err error) error {
	if e, ok := err.(*wallet.Error); ok && e.Err != nil {
		return e.Err
	}
	return err
}
