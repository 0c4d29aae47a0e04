// Package ethereum submits and confirms mint transactions on the ledger.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/veridlabs/biomint-middleware/internal/metrics"
	"github.com/veridlabs/biomint-middleware/pkg/config"
	"github.com/veridlabs/biomint-middleware/pkg/ethereum/contracts"
)

// rpcBackend is the slice of the ethclient surface the Client depends on.
type rpcBackend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg geth.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Close()
}

// Client wraps the Ethereum RPC connection and the custodial minter key.
// A single Client is shared by all requests; nonce allocation is serialized
// internally.
type Client struct {
	config          *config.EthereumConfig
	client          rpcBackend
	privateKey      *ecdsa.PrivateKey
	address         common.Address
	contractAddress common.Address
	nft             *contracts.BiometricNFT
	contractABI     *abi.ABI
	signer          types.Signer
	maxGasPrice     *big.Int
	nonces          *nonceAllocator
	logger          *zap.Logger
}

// NewClient creates a new Ethereum client
func NewClient(cfg *config.EthereumConfig, logger *zap.Logger) (*Client, error) {
	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.MinterPrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to load minter private key: %w", err)
	}

	address := crypto.PubkeyToAddress(privateKey.PublicKey)
	contractAddress := common.HexToAddress(cfg.ContractAddress)

	nft, err := contracts.NewBiometricNFT(contractAddress, client)
	if err != nil {
		return nil, fmt.Errorf("failed to load NFT contract: %w", err)
	}

	contractABI, err := contracts.BiometricNFTMetaData.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to parse NFT contract ABI: %w", err)
	}

	maxGwei, err := decimal.NewFromString(cfg.MaxGasPriceGwei)
	if err != nil {
		return nil, fmt.Errorf("failed to parse max gas price %q: %w", cfg.MaxGasPriceGwei, err)
	}
	// gwei -> wei
	maxGasPrice := maxGwei.Shift(9).BigInt()

	c := &Client{
		config:          cfg,
		client:          client,
		privateKey:      privateKey,
		address:         address,
		contractAddress: contractAddress,
		nft:             nft,
		contractABI:     contractABI,
		signer:          types.LatestSignerForChainID(big.NewInt(cfg.ChainID)),
		maxGasPrice:     maxGasPrice,
		logger:          logger,
	}
	c.nonces = newNonceAllocator(func(ctx context.Context) (uint64, error) {
		return client.PendingNonceAt(ctx, address)
	})

	logger.Info("Connected to Ethereum",
		zap.Int64("chain_id", cfg.ChainID),
		zap.String("rpc_url", cfg.RPCURL),
		zap.String("nft_contract", contractAddress.Hex()),
		zap.String("minter_address", address.Hex()))

	return c, nil
}

// Close closes the Ethereum client
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Health verifies RPC connectivity and that the node serves the configured chain.
func (c *Client) Health(ctx context.Context) error {
	chainID, err := c.client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to query chain ID: %w", err)
	}
	if chainID.Int64() != c.config.ChainID {
		return fmt.Errorf("connected to chain %s, expected %d", chainID, c.config.ChainID)
	}
	return nil
}

// HasMinted reports whether the given wallet already holds a minted identity.
func (c *Client) HasMinted(ctx context.Context, wallet common.Address) (bool, error) {
	minted, err := c.nft.HasUserMinted(&bind.CallOpts{Context: ctx}, wallet)
	if err != nil {
		return false, fmt.Errorf("failed to query hasUserMinted: %w", err)
	}
	return minted, nil
}

// MintAttestation submits a mintNFT transaction carrying the metadata URI and
// waits for it to be mined. The estimation, submission, timeout and reverted
// outcomes surface as distinct error types.
func (c *Client) MintAttestation(ctx context.Context, uri string) (*Receipt, error) {
	callData, err := c.contractABI.Pack("mintNFT", uri)
	if err != nil {
		return nil, fmt.Errorf("failed to pack mintNFT call: %w", err)
	}

	// The caller's context may carry no deadline (submission runs detached
	// from the request), so every RPC before the confirmation wait gets its
	// own bound. A hung node must not pin the nonce allocator forever.
	buildCtx, cancelBuild := context.WithTimeout(ctx, c.config.RequestTimeout)
	defer cancelBuild()

	gasLimit, err := c.client.EstimateGas(buildCtx, geth.CallMsg{
		From: c.address,
		To:   &c.contractAddress,
		Data: callData,
	})
	if err != nil {
		return nil, &EstimationError{Err: err}
	}
	gasLimit += c.config.GasLimitBuffer

	gasPrice, err := c.client.SuggestGasPrice(buildCtx)
	if err != nil {
		return nil, &EstimationError{Err: fmt.Errorf("failed to suggest gas price: %w", err)}
	}
	if gasPrice.Cmp(c.maxGasPrice) > 0 {
		c.logger.Warn("Suggested gas price exceeds maximum",
			zap.String("suggested", gasPrice.String()),
			zap.String("max", c.maxGasPrice.String()))
		gasPrice = c.maxGasPrice
	}

	nonce, err := c.nonces.Next(buildCtx)
	if err != nil {
		return nil, &SubmissionError{Err: fmt.Errorf("failed to allocate nonce: %w", err)}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.contractAddress,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     callData,
	})

	signedTx, err := types.SignTx(tx, c.signer, c.privateKey)
	if err != nil {
		return nil, &SubmissionError{Err: fmt.Errorf("failed to sign transaction: %w", err)}
	}

	if err := c.client.SendTransaction(buildCtx, signedTx); err != nil {
		// Local counter may no longer match the node's view.
		c.nonces.Invalidate()
		metrics.TransactionsSent.WithLabelValues("submission_failed").Inc()
		return nil, &SubmissionError{Err: err}
	}

	txHash := signedTx.Hash()
	c.logger.Info("Mint transaction submitted",
		zap.String("tx_hash", txHash.Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", gasLimit),
		zap.String("gas_price", gasPrice.String()))

	waitCtx, cancel := context.WithTimeout(ctx, c.config.ConfirmationTimeout)
	defer cancel()

	receipt, err := c.waitMined(waitCtx, txHash)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			metrics.TransactionsSent.WithLabelValues("timeout").Inc()
			return nil, fmt.Errorf("%w: tx %s", ErrConfirmationTimeout, txHash.Hex())
		}
		return nil, fmt.Errorf("failed to await transaction %s: %w", txHash.Hex(), err)
	}

	if receipt.Status == types.ReceiptStatusFailed {
		metrics.TransactionsSent.WithLabelValues("reverted").Inc()
		return nil, fmt.Errorf("%w: tx %s", ErrConfirmedFailure, txHash.Hex())
	}

	metrics.TransactionsSent.WithLabelValues("confirmed").Inc()
	metrics.GasUsed.Observe(float64(receipt.GasUsed))

	return &Receipt{
		TxHash:  txHash,
		GasUsed: receipt.GasUsed,
		Status:  StatusConfirmed,
	}, nil
}

// waitMined polls for the transaction receipt at the configured interval
// until the context expires.
func (c *Client) waitMined(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, geth.NotFound) {
			c.logger.Warn("Receipt lookup failed",
				zap.String("tx_hash", txHash.Hex()),
				zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
