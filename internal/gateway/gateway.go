package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/information-sharing-networks/certgw/internal/certificate"
	"github.com/information-sharing-networks/certgw/internal/ledger"
	"github.com/information-sharing-networks/certgw/internal/logger"
)

// Ledger is the subset of the ledger client used by the gateway.
//
// *ledger.Client implements this interface. Implementations must be safe for concurrent use.
type Ledger interface {
	LogDecoder

	IssueCertificate(ctx context.Context, studentIdentifier string, certificateHash common.Hash, metadataURI string) (*types.Transaction, error)
	RevokeCertificate(ctx context.Context, certificateID *big.Int) (*types.Transaction, error)
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)

	CertificateExists(ctx context.Context, certificateID *big.Int) (bool, error)
	CertificateHashExists(ctx context.Context, certificateHash common.Hash) (bool, error)
	GetCertificate(ctx context.Context, certificateID *big.Int) (*ledger.CertificateRecord, error)
	GetCertificateByHash(ctx context.Context, certificateHash common.Hash) (*ledger.CertificateRecord, error)
	TotalCertificates(ctx context.Context) (*big.Int, error)

	ContractAddress() common.Address
	SignerAddress() common.Address
}

var _ Ledger = (*ledger.Client)(nil)

// Config bounds the two suspension points of a ledger transaction.
type Config struct {
	// SubmitTimeout limits the time taken to have a transaction accepted by the node
	SubmitTimeout time.Duration

	// ConfirmationTimeout limits the time spent waiting for the transaction to be mined
	ConfirmationTimeout time.Duration
}

// HealthReport describes the registry contract the gateway is connected to.
type HealthReport struct {
	ContractAddress   string
	CollegeAddress    string
	TotalCertificates string
}

// Gateway sequences validation output, ledger calls, confirmation and event decoding for the
// three certificate operations.
//
// The gateway keeps no state between requests and never retries a ledger call: a transaction
// that failed or timed out may still be pending, so resubmitting it is not safe.
type Gateway struct {
	ledger Ledger
	config Config
}

// New returns a Gateway using the shared ledger client.
func New(l Ledger, cfg Config) *Gateway {
	return &Gateway{ledger: l, config: cfg}
}

// Issue submits an issuance transaction, waits for it to be mined and decodes the CertificateIssued event.
func (g *Gateway) Issue(ctx context.Context, req certificate.IssuanceRequest) (*certificate.IssuanceOutcome, error) {
	reqLogger := logger.ContextRequestLogger(ctx)

	reqLogger.Info("issuing certificate",
		slog.String("student_identifier", req.StudentIdentifier),
		slog.String("certificate_hash", req.CertificateHash),
		slog.String("metadata_uri", req.MetadataURI),
	)

	tx, err := g.submit(ctx, func(ctx context.Context) (*types.Transaction, error) {
		return g.ledger.IssueCertificate(ctx, req.StudentIdentifier, common.HexToHash(req.CertificateHash), req.MetadataURI)
	})
	if err != nil {
		return nil, err
	}

	receipt, err := g.confirm(ctx, tx)
	if err != nil {
		return nil, err
	}

	outcome := &certificate.IssuanceOutcome{
		TransactionOutcome: transactionOutcome(receipt),
		Issuer:             g.ledger.SignerAddress().Hex(),
	}

	event, found := FindEvent(g.ledger, receipt.Logs, ledger.EventCertificateIssued, extractIssued)
	if found {
		outcome.Event = event
		reqLogger.Info("certificate issued", slog.String("certificate_id", event.CertificateID))
	} else {
		reqLogger.Warn("CertificateIssued event not found in receipt",
			slog.String("tx_hash", outcome.TxHash),
			slog.Int("log_count", len(receipt.Logs)),
		)
	}

	return outcome, nil
}

// Revoke submits a revocation transaction, waits for it to be mined and decodes the CertificateRevoked event.
func (g *Gateway) Revoke(ctx context.Context, req certificate.RevocationRequest) (*certificate.RevocationOutcome, error) {
	reqLogger := logger.ContextRequestLogger(ctx)

	reqLogger.Info("revoking certificate", slog.String("certificate_id", req.CertificateID.String()))

	tx, err := g.submit(ctx, func(ctx context.Context) (*types.Transaction, error) {
		return g.ledger.RevokeCertificate(ctx, req.CertificateID)
	})
	if err != nil {
		return nil, err
	}

	receipt, err := g.confirm(ctx, tx)
	if err != nil {
		return nil, err
	}

	outcome := &certificate.RevocationOutcome{TransactionOutcome: transactionOutcome(receipt)}

	event, found := FindEvent(g.ledger, receipt.Logs, ledger.EventCertificateRevoked, extractRevoked)
	if found {
		outcome.Event = event
	} else {
		reqLogger.Warn("CertificateRevoked event not found in receipt", slog.String("tx_hash", outcome.TxHash))
	}

	return outcome, nil
}

// Verify looks up a certificate by id, or by hash when no id is given.
//
// Existence and retrieval are separate read calls. A certificate the ledger does not know
// about is reported as a not found error.
func (g *Gateway) Verify(ctx context.Context, q certificate.VerificationQuery) (*certificate.Certificate, error) {
	reqLogger := logger.ContextRequestLogger(ctx)

	var (
		exists bool
		err    error
	)

	if q.ByID() {
		reqLogger.Info("verifying certificate", slog.String("certificate_id", q.CertificateID.String()))
		exists, err = g.ledger.CertificateExists(ctx, q.CertificateID)
	} else {
		reqLogger.Info("verifying certificate", slog.String("certificate_hash", q.CertificateHash))
		exists, err = g.ledger.CertificateHashExists(ctx, common.HexToHash(q.CertificateHash))
	}
	if err != nil {
		return nil, certificate.WrapLedgerError(err)
	}

	if !exists {
		return nil, certificate.NewNotFoundError("Certificate not found")
	}

	var record *ledger.CertificateRecord
	if q.ByID() {
		record, err = g.ledger.GetCertificate(ctx, q.CertificateID)
	} else {
		record, err = g.ledger.GetCertificateByHash(ctx, common.HexToHash(q.CertificateHash))
	}
	if err != nil {
		return nil, certificate.WrapLedgerError(err)
	}

	reqLogger.Debug("certificate retrieved", slog.Bool("revoked", record.Revoked))

	return formatRecord(record), nil
}

// Health reads the total number of certificates from the registry.
func (g *Gateway) Health(ctx context.Context) (*HealthReport, error) {
	total, err := g.ledger.TotalCertificates(ctx)
	if err != nil {
		return nil, certificate.WrapInfrastructureError(err, "ledger unavailable")
	}

	return &HealthReport{
		ContractAddress:   g.ledger.ContractAddress().Hex(),
		CollegeAddress:    g.ledger.SignerAddress().Hex(),
		TotalCertificates: total.String(),
	}, nil
}

// submit runs the submission step. It returns once the node has accepted the transaction.
func (g *Gateway) submit(ctx context.Context, send func(ctx context.Context) (*types.Transaction, error)) (*types.Transaction, error) {
	if g.config.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.SubmitTimeout)
		defer cancel()
	}

	tx, err := send(ctx)
	if err != nil {
		return nil, certificate.WrapLedgerError(err)
	}

	logger.ContextRequestLogger(ctx).Info("transaction sent, waiting for confirmation",
		slog.String("tx_hash", tx.Hash().Hex()),
		slog.Uint64("nonce", tx.Nonce()),
	)
	return tx, nil
}

// confirm waits for tx to be mined.
//
// Hitting the confirmation timeout is reported as an infrastructure error: the transaction
// was accepted and may still be mined later.
func (g *Gateway) confirm(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx := ctx
	if g.config.ConfirmationTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, g.config.ConfirmationTimeout)
		defer cancel()
	}

	receipt, err := g.ledger.WaitMined(waitCtx, tx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, certificate.WrapInfrastructureError(
				fmt.Errorf("transaction %s still pending: %w", tx.Hash().Hex(), err),
				"Timed out waiting for transaction confirmation",
			)
		}
		return nil, certificate.WrapLedgerError(err)
	}

	logger.ContextRequestLogger(ctx).Info("transaction confirmed",
		slog.String("tx_hash", receipt.TxHash.Hex()),
		slog.Uint64("block_number", blockNumber(receipt)),
	)
	return receipt, nil
}

func transactionOutcome(receipt *types.Receipt) certificate.TransactionOutcome {
	return certificate.TransactionOutcome{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: blockNumber(receipt),
		GasUsed:     strconv.FormatUint(receipt.GasUsed, 10),
	}
}

func blockNumber(receipt *types.Receipt) uint64 {
	if receipt.BlockNumber == nil {
		return 0
	}
	return receipt.BlockNumber.Uint64()
}

func formatRecord(record *ledger.CertificateRecord) *certificate.Certificate {
	return &certificate.Certificate{
		CertificateID:     certificate.BigString(record.CertificateId),
		StudentIdentifier: record.StudentIdentifier,
		CertificateHash:   common.Hash(record.CertificateHash).Hex(),
		MetadataURI:       record.MetadataURI,
		IssuedAt:          certificate.BigString(record.IssuedAt),
		IssuedAtDate:      certificate.FormatTimestamp(record.IssuedAt),
		Revoked:           record.Revoked,
	}
}
