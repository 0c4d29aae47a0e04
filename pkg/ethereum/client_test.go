package ethereum

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/veridlabs/biomint-middleware/pkg/config"
	"github.com/veridlabs/biomint-middleware/pkg/ethereum/contracts"
)

type fakeBackend struct {
	mu sync.Mutex

	estimateGas     uint64
	estimateErr     error
	blockEstimation bool
	gasPrice        *big.Int
	nonce           uint64
	nonceFetches    int
	sendErr         error
	receipt         *types.Receipt
	receiptErr      error
	sentTx          *types.Transaction
	deadlines       map[string]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		estimateGas: 100_000,
		gasPrice:    big.NewInt(1_000_000_000),
		receipt: &types.Receipt{
			Status:  types.ReceiptStatusSuccessful,
			GasUsed: 90_000,
		},
		deadlines: make(map[string]bool),
	}
}

func (f *fakeBackend) note(call string, ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, bounded := ctx.Deadline()
	f.deadlines[call] = bounded
}

func (f *fakeBackend) ChainID(_ context.Context) (*big.Int, error) {
	return big.NewInt(1337), nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, _ geth.CallMsg) (uint64, error) {
	f.note("estimate_gas", ctx)
	if f.blockEstimation {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	return f.estimateGas, f.estimateErr
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	f.note("gas_price", ctx)
	return f.gasPrice, nil
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, _ common.Address) (uint64, error) {
	f.note("pending_nonce", ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nonceFetches++
	return f.nonce, nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	f.note("send_transaction", ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentTx = tx
	return f.sendErr
}

func (f *fakeBackend) TransactionReceipt(ctx context.Context, _ common.Hash) (*types.Receipt, error) {
	f.note("transaction_receipt", ctx)
	if f.receiptErr != nil {
		return nil, f.receiptErr
	}
	return f.receipt, nil
}

func (f *fakeBackend) Close() {}

func newTestClient(t *testing.T, backend rpcBackend) *Client {
	t.Helper()

	key, err := crypto.HexToECDSA("4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	if err != nil {
		t.Fatalf("failed to load test key: %v", err)
	}
	contractABI, err := contracts.BiometricNFTMetaData.GetAbi()
	if err != nil {
		t.Fatalf("failed to parse contract ABI: %v", err)
	}

	cfg := &config.EthereumConfig{
		ChainID:             1337,
		GasLimitBuffer:      10_000,
		ConfirmationTimeout: time.Second,
		PollInterval:        5 * time.Millisecond,
		RequestTimeout:      100 * time.Millisecond,
	}
	address := crypto.PubkeyToAddress(key.PublicKey)

	c := &Client{
		config:          cfg,
		client:          backend,
		privateKey:      key,
		address:         address,
		contractAddress: common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		contractABI:     contractABI,
		signer:          types.LatestSignerForChainID(big.NewInt(cfg.ChainID)),
		maxGasPrice:     big.NewInt(20_000_000_000),
		logger:          zap.NewNop(),
	}
	c.nonces = newNonceAllocator(func(ctx context.Context) (uint64, error) {
		return backend.PendingNonceAt(ctx, address)
	})
	return c
}

func TestMintAttestation_Confirmed(t *testing.T) {
	backend := newFakeBackend()
	c := newTestClient(t, backend)

	receipt, err := c.MintAttestation(context.Background(), "ipfs://QmMeta")
	if err != nil {
		t.Fatalf("MintAttestation() failed: %v", err)
	}
	if receipt.Status != StatusConfirmed {
		t.Errorf("unexpected status %s", receipt.Status)
	}
	if receipt.GasUsed != 90_000 {
		t.Errorf("unexpected gas used %d", receipt.GasUsed)
	}

	tx := backend.sentTx
	if tx == nil {
		t.Fatal("no transaction was sent")
	}
	if tx.Gas() != 110_000 {
		t.Errorf("gas limit %d, want estimate plus buffer 110000", tx.Gas())
	}
	if tx.GasPrice().Cmp(big.NewInt(1_000_000_000)) != 0 {
		t.Errorf("gas price %s, want suggested 1 gwei", tx.GasPrice())
	}
	if tx.Nonce() != 0 {
		t.Errorf("nonce %d, want 0", tx.Nonce())
	}
	if *tx.To() != c.contractAddress {
		t.Errorf("tx to %s, want contract %s", tx.To(), c.contractAddress)
	}
}

func TestMintAttestation_BoundsEveryPreConfirmationCall(t *testing.T) {
	backend := newFakeBackend()
	c := newTestClient(t, backend)

	// The orchestrator submits on a detached context with no deadline.
	if _, err := c.MintAttestation(context.Background(), "ipfs://QmMeta"); err != nil {
		t.Fatalf("MintAttestation() failed: %v", err)
	}

	for _, call := range []string{"estimate_gas", "gas_price", "pending_nonce", "send_transaction"} {
		bounded, seen := backend.deadlines[call]
		if !seen {
			t.Errorf("%s was never called", call)
			continue
		}
		if !bounded {
			t.Errorf("%s ran without a deadline", call)
		}
	}
}

func TestMintAttestation_HungNodeTimesOut(t *testing.T) {
	backend := newFakeBackend()
	backend.blockEstimation = true
	c := newTestClient(t, backend)

	start := time.Now()
	_, err := c.MintAttestation(context.Background(), "ipfs://QmMeta")
	elapsed := time.Since(start)

	var estimation *EstimationError
	if !errors.As(err, &estimation) {
		t.Fatalf("expected EstimationError, got %v", err)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("unresponsive node held the call for %s", elapsed)
	}
	if backend.sentTx != nil {
		t.Error("no transaction may be sent after a failed estimation")
	}
}

func TestMintAttestation_Reverted(t *testing.T) {
	backend := newFakeBackend()
	backend.receipt = &types.Receipt{Status: types.ReceiptStatusFailed, GasUsed: 90_000}
	c := newTestClient(t, backend)

	_, err := c.MintAttestation(context.Background(), "ipfs://QmMeta")
	if !errors.Is(err, ErrConfirmedFailure) {
		t.Fatalf("expected ErrConfirmedFailure, got %v", err)
	}
}

func TestMintAttestation_ConfirmationTimeout(t *testing.T) {
	backend := newFakeBackend()
	backend.receiptErr = geth.NotFound
	c := newTestClient(t, backend)
	c.config.ConfirmationTimeout = 30 * time.Millisecond

	_, err := c.MintAttestation(context.Background(), "ipfs://QmMeta")
	if !errors.Is(err, ErrConfirmationTimeout) {
		t.Fatalf("expected ErrConfirmationTimeout, got %v", err)
	}
}

func TestMintAttestation_SubmissionFailureResyncsNonce(t *testing.T) {
	backend := newFakeBackend()
	backend.sendErr = errors.New("nonce too low")
	c := newTestClient(t, backend)

	_, err := c.MintAttestation(context.Background(), "ipfs://QmMeta")
	var submission *SubmissionError
	if !errors.As(err, &submission) {
		t.Fatalf("expected SubmissionError, got %v", err)
	}

	backend.mu.Lock()
	backend.sendErr = nil
	backend.nonce = 7
	backend.mu.Unlock()

	if _, err := c.MintAttestation(context.Background(), "ipfs://QmMeta"); err != nil {
		t.Fatalf("MintAttestation() after resync failed: %v", err)
	}
	if got := backend.sentTx.Nonce(); got != 7 {
		t.Errorf("nonce %d after resync, want refetched 7", got)
	}
	if backend.nonceFetches != 2 {
		t.Errorf("expected 2 nonce fetches, got %d", backend.nonceFetches)
	}
}

func TestMintAttestation_CapsGasPrice(t *testing.T) {
	backend := newFakeBackend()
	backend.gasPrice = big.NewInt(50_000_000_000)
	c := newTestClient(t, backend)

	if _, err := c.MintAttestation(context.Background(), "ipfs://QmMeta"); err != nil {
		t.Fatalf("MintAttestation() failed: %v", err)
	}
	if backend.sentTx.GasPrice().Cmp(c.maxGasPrice) != 0 {
		t.Errorf("gas price %s, want capped at %s", backend.sentTx.GasPrice(), c.maxGasPrice)
	}
}
