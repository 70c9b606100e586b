package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
)

// Config holds the settings needed to reach the registry contract.
type Config struct {
	RPCURL          string
	PrivateKey      string
	ContractAddress string

	// ABIPath is optional, the embedded registry ABI is used when empty
	ABIPath string

	// ChainID is optional, the node is asked when zero
	ChainID int64

	// GasLimit is optional, gas is estimated per transaction when zero
	GasLimit uint64

	CallTimeout time.Duration
}

// CertificateRecord is the Certificate struct returned by the registry's view functions.
//
// Field names and order mirror the ABI tuple so the decoded value converts directly.
type CertificateRecord struct {
	CertificateId     *big.Int
	StudentIdentifier string
	CertificateHash   [32]byte
	MetadataURI       string
	IssuedAt          *big.Int
	Revoked           bool
}

// Client is the gateway's connection to the certificate registry.
//
// A single Client is created at startup and shared by all requests.
// It is safe for concurrent use.
type Client struct {
	rpc         *ethclient.Client
	contract    *bind.BoundContract
	abi         abi.ABI
	address     common.Address
	signer      common.Address
	key         *ecdsa.PrivateKey
	chainID     *big.Int
	gasLimit    uint64
	callTimeout time.Duration
	nonces      *nonceTracker
	logger      *slog.Logger
}

// Dial connects to the ledger node and binds the registry contract.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address: %q", cfg.ContractAddress)
	}
	address := common.HexToAddress(cfg.ContractAddress)

	contractABI, err := LoadABI(cfg.ABIPath)
	if err != nil {
		return nil, err
	}

	rpcClient, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ledger RPC endpoint: %w", err)
	}

	chainID := big.NewInt(cfg.ChainID)
	if cfg.ChainID == 0 {
		chainID, err = rpcClient.ChainID(ctx)
		if err != nil {
			rpcClient.Close()
			return nil, fmt.Errorf("failed to fetch chain id: %w", err)
		}
	}

	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}

	signer := crypto.PubkeyToAddress(key.PublicKey)

	c := &Client{
		rpc:         rpcClient,
		contract:    bind.NewBoundContract(address, contractABI, rpcClient, rpcClient, rpcClient),
		abi:         contractABI,
		address:     address,
		signer:      signer,
		key:         key,
		chainID:     chainID,
		gasLimit:    cfg.GasLimit,
		callTimeout: callTimeout,
		logger:      logger,
	}
	c.nonces = newNonceTracker(func(ctx context.Context) (uint64, error) {
		return rpcClient.PendingNonceAt(ctx, signer)
	})

	logger.Info("ledger client initialized",
		slog.String("contract_address", address.Hex()),
		slog.String("signer_address", signer.Hex()),
		slog.String("chain_id", chainID.String()),
	)

	return c, nil
}

// ParsePrivateKey parses a hex encoded secp256k1 private key, with or without the 0x prefix.
func ParsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid signing key: %w", err)
	}
	return key, nil
}

// Close releases the RPC connection.
func (c *Client) Close() {
	c.rpc.Close()
}

// ContractAddress returns the address of the registry contract.
func (c *Client) ContractAddress() common.Address { return c.address }

// SignerAddress returns the address of the identity that signs transactions.
func (c *Client) SignerAddress() common.Address { return c.signer }

// Ping checks connectivity with the node and the contract and logs what it finds.
func (c *Client) Ping(ctx context.Context) error {
	networkID, err := c.rpc.NetworkID(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch network id: %w", err)
	}

	balance, err := c.rpc.BalanceAt(ctx, c.signer, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch signer balance: %w", err)
	}

	total, err := c.TotalCertificates(ctx)
	if err != nil {
		return fmt.Errorf("failed to call registry contract: %w", err)
	}

	c.logger.Info("connected to ledger",
		slog.String("network_id", networkID.String()),
		slog.String("chain_id", c.chainID.String()),
		slog.String("signer_address", c.signer.Hex()),
		slog.String("signer_balance_eth", formatEther(balance)),
		slog.String("total_certificates", total.String()),
	)
	return nil
}

// IssueCertificate submits an issueCertificate transaction. It returns once the node has accepted the
// transaction; use WaitMined to wait for confirmation.
func (c *Client) IssueCertificate(ctx context.Context, studentIdentifier string, certificateHash common.Hash, metadataURI string) (*types.Transaction, error) {
	return c.transact(ctx, methodIssueCertificate, studentIdentifier, [32]byte(certificateHash), metadataURI)
}

// RevokeCertificate submits a revokeCertificate transaction.
func (c *Client) RevokeCertificate(ctx context.Context, certificateID *big.Int) (*types.Transaction, error) {
	return c.transact(ctx, methodRevokeCertificate, certificateID)
}

// WaitMined blocks until tx is included in a block or ctx is done.
//
// A receipt with a failed status is returned together with an error wrapping ErrTransactionReverted.
func (c *Client) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.rpc, tx)
	if err != nil {
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, wrapReverted(tx.Hash().Hex(), c.replay(ctx, tx, receipt.BlockNumber))
	}

	return receipt, nil
}

// CertificateExists reports whether a certificate with the given id has been issued.
func (c *Client) CertificateExists(ctx context.Context, certificateID *big.Int) (bool, error) {
	out, err := c.call(ctx, methodDoesCertificateExist, certificateID)
	if err != nil {
		return false, err
	}
	return convertOutput[bool](out)
}

// CertificateHashExists reports whether a certificate with the given hash has been issued.
func (c *Client) CertificateHashExists(ctx context.Context, certificateHash common.Hash) (bool, error) {
	out, err := c.call(ctx, methodDoesCertificateHashExist, [32]byte(certificateHash))
	if err != nil {
		return false, err
	}
	return convertOutput[bool](out)
}

// GetCertificate reads a certificate by id.
func (c *Client) GetCertificate(ctx context.Context, certificateID *big.Int) (*CertificateRecord, error) {
	out, err := c.call(ctx, methodGetCertificate, certificateID)
	if err != nil {
		return nil, err
	}
	record, err := convertOutput[CertificateRecord](out)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetCertificateByHash reads a certificate by hash.
func (c *Client) GetCertificateByHash(ctx context.Context, certificateHash common.Hash) (*CertificateRecord, error) {
	out, err := c.call(ctx, methodGetCertificateByHash, [32]byte(certificateHash))
	if err != nil {
		return nil, err
	}
	record, err := convertOutput[CertificateRecord](out)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// TotalCertificates returns the number of certificates issued by the registry.
func (c *Client) TotalCertificates(ctx context.Context) (*big.Int, error) {
	out, err := c.call(ctx, methodGetTotalCertificates)
	if err != nil {
		return nil, err
	}
	return convertOutput[*big.Int](out)
}

// call runs a read-only contract call bounded by the configured call timeout.
func (c *Client) call(ctx context.Context, method string, args ...any) ([]any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	var out []any
	err := c.contract.Call(&bind.CallOpts{Context: ctx, From: c.signer}, &out, method, args...)
	if err != nil {
		return nil, decodeRevert(c.abi, err)
	}
	return out, nil
}

// transact packs, signs and sends a contract transaction.
//
// Gas is estimated here rather than inside bind so that a revert during estimation keeps its
// revert data and can be decoded.
func (c *Client) transact(ctx context.Context, method string, args ...any) (*types.Transaction, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s call: %w", method, err)
	}

	gasLimit := c.gasLimit
	if gasLimit == 0 {
		gasLimit, err = c.rpc.EstimateGas(ctx, ethereum.CallMsg{
			From: c.signer,
			To:   &c.address,
			Data: input,
		})
		if err != nil {
			return nil, decodeRevert(c.abi, err)
		}
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	opts.GasLimit = gasLimit

	return c.nonces.submit(ctx, func(nonce uint64) (*types.Transaction, error) {
		opts.Nonce = new(big.Int).SetUint64(nonce)
		tx, err := c.contract.RawTransact(opts, input)
		if err != nil {
			return nil, decodeRevert(c.abi, err)
		}
		return tx, nil
	})
}

// replay re-executes a failed transaction at its block to recover the revert reason.
func (c *Client) replay(ctx context.Context, tx *types.Transaction, blockNumber *big.Int) error {
	_, err := c.rpc.CallContract(ctx, ethereum.CallMsg{
		From:  c.signer,
		To:    tx.To(),
		Gas:   tx.Gas(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}, blockNumber)
	if err == nil {
		return nil
	}
	return decodeRevert(c.abi, err)
}

// convertOutput converts the single return value of a contract call to T.
func convertOutput[T any](out []any) (v T, err error) {
	if len(out) != 1 {
		return v, fmt.Errorf("expected 1 return value, got %d", len(out))
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected return type %T: %v", out[0], r)
		}
	}()

	return *abi.ConvertType(out[0], new(T)).(*T), nil
}

func formatEther(wei *big.Int) string {
	return new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether)).Text('f', 6)
}
