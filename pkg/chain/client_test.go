package chain

import (
	"context"
	"errors"
	"math/big"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/solipsis/go-ethwallet/internal/ethtest"
	"github.com/solipsis/go-ethwallet/pkg/wallet"
)

const testKeyHex = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

// hash of 1.5 ether to 0x..01, nonce 7, 20 gwei, chain 17000 signed with testKeyHex
const goldenTxHash = "0x3dc78823979340991424a5705712276f0eb099df48f01ce0d17b6337b1b49ca6"

var oneAddress = common.HexToAddress("0x0000000000000000000000000000000000000001")

type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Logf(format, args...)
}

func newTestClient(t *testing.T) (*ethtest.Node, *Client) {
	t.Helper()
	node := ethtest.NewNode(17000, 20000000000)
	client := NewClient(node.Dial(), &Config{Logger: testLogger{t}})
	t.Cleanup(client.Close)
	return node, client
}

func TestClientQueries(t *testing.T) {

	node, client := newTestClient(t)
	ctx := context.Background()
	addr := common.HexToAddress("0x71562b71999873DB5b286dF957af199Ec94617F7")

	id, err := client.ChainID(ctx)
	if err != nil || id.Int64() != 17000 {
		t.Errorf("ChainID: %v, %v", id, err)
	}
	price, err := client.SuggestGasPrice(ctx)
	if err != nil || price.Int64() != 20000000000 {
		t.Errorf("SuggestGasPrice: %v, %v", price, err)
	}

	balance, err := client.BalanceAt(ctx, addr)
	if err != nil {
		t.Fatal(err)
	}
	if balance.Sign() != 0 {
		t.Errorf("Expected zero balance for an unused account, got %s", balance)
	}

	node.Fund(addr, big.NewInt(1000000000000000000))
	node.SetNonce(addr, 3)
	node.SetBlock(1234567)

	if balance, _ = client.BalanceAt(ctx, addr); balance.String() != "1000000000000000000" {
		t.Errorf("Incorrect balance: %s", balance)
	}
	if nonce, err := client.PendingNonceAt(ctx, addr); err != nil || nonce != 3 {
		t.Errorf("PendingNonceAt: %d, %v", nonce, err)
	}
	if number, err := client.BlockNumber(ctx); err != nil || number != 1234567 {
		t.Errorf("BlockNumber: %d, %v", number, err)
	}
}

func TestClientQueryFailed(t *testing.T) {

	node, client := newTestClient(t)
	node.Fail("eth_blockNumber", errors.New("header not found"))

	_, err := client.BlockNumber(context.Background())
	if !errors.Is(err, wallet.ErrChainQueryFailed) {
		t.Fatalf("Expected chain query failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "header not found") {
		t.Errorf("Node message lost: %s", err)
	}
}

func TestSignAndSendThroughClient(t *testing.T) {

	node, client := newTestClient(t)
	ctx := context.Background()

	key, err := wallet.ParsePrivateKey(testKeyHex)
	if err != nil {
		t.Fatal(err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)
	node.Fund(from, big.NewInt(2000000000000000000))
	node.SetNonce(from, 7)

	tx, err := wallet.NewTransaction(oneAddress, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	hash, err := wallet.SignAndSend(ctx, client, tx, key)
	if err != nil {
		t.Fatalf("Unable to send: %s", err)
	}
	if hash.Hex() != goldenTxHash {
		t.Errorf("Incorrect tx hash, expected: %s, got: %s", goldenTxHash, hash.Hex())
	}

	sent := node.Sent()
	if len(sent) != 1 || sent[0].Nonce() != 7 || sent[0].Gas() != wallet.DefaultGasLimit {
		t.Fatalf("Unexpected transactions on node: %v", sent)
	}
	if balance, _ := client.BalanceAt(ctx, oneAddress); balance.String() != "1500000000000000000" {
		t.Errorf("Recipient balance %s", balance)
	}
}

func TestStaleNonceRejected(t *testing.T) {

	node, client := newTestClient(t)
	ctx := context.Background()

	key, _ := wallet.ParsePrivateKey(testKeyHex)
	from := crypto.PubkeyToAddress(key.PublicKey)
	node.Fund(from, big.NewInt(2000000000000000000))
	node.SetNonce(from, 9)

	tx, _ := wallet.NewTransaction(oneAddress, 0.5)
	tx.Nonce = 7
	tx.GasPrice = big.NewInt(20000000000)
	tx.GasLimit = wallet.DefaultGasLimit
	tx.ChainID = big.NewInt(17000)
	signed, err := wallet.SignTx(tx, key)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := signed.RawBytes()

	_, err = client.SendRawTransaction(ctx, raw)
	if !errors.Is(err, wallet.ErrSubmissionRejected) {
		t.Fatalf("Expected submission rejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "nonce too low") {
		t.Errorf("Node reason not surfaced: %s", err)
	}
	if len(node.Sent()) != 0 {
		t.Error("Stale transaction accepted")
	}
}

func TestSendConnectionLost(t *testing.T) {

	node := ethtest.NewNode(17000, 20000000000)
	conn := node.Dial()
	client := NewClient(conn, &Config{Logger: testLogger{t}})
	conn.Close()

	_, err := client.SendRawTransaction(context.Background(), []byte{0xc0})
	if !errors.Is(err, wallet.ErrChainQueryFailed) {
		t.Errorf("Expected chain query failure for a closed connection, got %v", err)
	}
	if errors.Is(err, wallet.ErrSubmissionRejected) {
		t.Errorf("Transport failure reported as a node rejection: %v", err)
	}
}

func TestInsufficientFundsRejected(t *testing.T) {

	_, client := newTestClient(t)
	key, _ := wallet.ParsePrivateKey(testKeyHex)
	tx, _ := wallet.NewTransaction(oneAddress, 1)

	_, err := wallet.SignAndSend(context.Background(), client, tx, key)
	if !errors.Is(err, wallet.ErrSubmissionRejected) || !strings.Contains(err.Error(), "insufficient funds") {
		t.Errorf("Expected insufficient funds rejection, got %v", err)
	}
}

func TestDial(t *testing.T) {

	node := ethtest.NewNode(17000, 1)
	srv := httptest.NewServer(node.Server())
	defer srv.Close()

	client, err := Dial(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Unable to dial test node: %s", err)
	}
	defer client.Close()

	if number, err := client.BlockNumber(context.Background()); err != nil || number != 0 {
		t.Errorf("BlockNumber over http: %d, %v", number, err)
	}
}

func TestDialFailed(t *testing.T) {

	srv := httptest.NewServer(ethtest.NewNode(1, 1).Server())
	url := srv.URL
	srv.Close()

	if _, err := Dial(context.Background(), url, nil); !errors.Is(err, wallet.ErrConnectionFailed) {
		t.Errorf("Expected connection failure, got %v", err)
	}
	if _, err := Dial(context.Background(), "ftp://example.com", nil); !errors.Is(err, wallet.ErrConnectionFailed) {
		t.Errorf("Expected connection failure for unsupported scheme, got %v", err)
	}
}
