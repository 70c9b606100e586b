//go:build integration

package integration

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/information-sharing-networks/certgw/internal/ledger"
)

var (
	registryAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	collegeAddress  = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

// memoryRegistry is an in-memory stand in for the registry contract and the node.
//
// Transactions are mined as soon as they are submitted. Contract rule violations are reported
// the way a node reports a revert during gas estimation.
type memoryRegistry struct {
	*ledger.EventDecoder
	abi abi.ABI

	mu       sync.Mutex
	nonce    uint64
	block    uint64
	records  []*ledger.CertificateRecord
	byHash   map[common.Hash]*big.Int
	receipts map[common.Hash]*types.Receipt

	// unavailable makes every call fail as if the node were down
	unavailable bool
	closed      bool
}

func newMemoryRegistry() (*memoryRegistry, error) {
	contractABI, err := ledger.LoadABI("")
	if err != nil {
		return nil, err
	}
	return &memoryRegistry{
		EventDecoder: ledger.NewEventDecoder(contractABI, registryAddress),
		abi:          contractABI,
		byHash:       make(map[common.Hash]*big.Int),
		receipts:     make(map[common.Hash]*types.Receipt),
	}, nil
}

func reverted(condition string) error {
	return fmt.Errorf("execution reverted: %s", condition)
}

func (r *memoryRegistry) setUnavailable(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unavailable = v
}

func (r *memoryRegistry) checkAvailable() error {
	if r.unavailable {
		return errors.New(`Post "http://localhost:8545": dial tcp 127.0.0.1:8545: connect: connection refused`)
	}
	return nil
}

func (r *memoryRegistry) IssueCertificate(ctx context.Context, studentIdentifier string, certificateHash common.Hash, metadataURI string) (*types.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAvailable(); err != nil {
		return nil, err
	}

	switch {
	case studentIdentifier == "":
		return nil, reverted("InvalidStudentIdentifier")
	case certificateHash == (common.Hash{}):
		return nil, reverted("InvalidCertificateHash")
	case metadataURI == "":
		return nil, reverted("InvalidMetadataURI")
	}
	if _, exists := r.byHash[certificateHash]; exists {
		return nil, reverted("CertificateHashAlreadyExists")
	}

	id := big.NewInt(int64(len(r.records) + 1))
	issuedAt := big.NewInt(time.Now().Unix())
	r.records = append(r.records, &ledger.CertificateRecord{
		CertificateId:     id,
		StudentIdentifier: studentIdentifier,
		CertificateHash:   certificateHash,
		MetadataURI:       metadataURI,
		IssuedAt:          issuedAt,
	})
	r.byHash[certificateHash] = id

	event := r.abi.Events[ledger.EventCertificateIssued]
	data, err := event.Inputs.NonIndexed().Pack(studentIdentifier, metadataURI, issuedAt)
	if err != nil {
		return nil, err
	}
	return r.mine(&types.Log{
		Address: registryAddress,
		Topics:  []common.Hash{event.ID, common.BigToHash(id), certificateHash},
		Data:    data,
	}, 187523), nil
}

func (r *memoryRegistry) RevokeCertificate(ctx context.Context, certificateID *big.Int) (*types.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAvailable(); err != nil {
		return nil, err
	}

	record, ok := r.lookup(certificateID)
	if !ok {
		return nil, reverted("CertificateDoesNotExist")
	}
	if record.Revoked {
		return nil, reverted("CertificateAlreadyRevoked")
	}
	record.Revoked = true

	event := r.abi.Events[ledger.EventCertificateRevoked]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(time.Now().Unix()))
	if err != nil {
		return nil, err
	}
	return r.mine(&types.Log{
		Address: registryAddress,
		Topics:  []common.Hash{event.ID, common.BigToHash(certificateID)},
		Data:    data,
	}, 31245), nil
}

// mine creates a transaction and its successful receipt. Callers hold r.mu.
func (r *memoryRegistry) mine(log *types.Log, gasUsed uint64) *types.Transaction {
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    r.nonce,
		To:       &registryAddress,
		Gas:      300000,
		GasPrice: big.NewInt(1),
	})
	r.nonce++
	r.block++

	log.TxHash = tx.Hash()
	r.receipts[tx.Hash()] = &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(r.block),
		GasUsed:     gasUsed,
		Logs:        []*types.Log{log},
	}
	return tx
}

func (r *memoryRegistry) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	receipt, ok := r.receipts[tx.Hash()]
	if !ok {
		return nil, fmt.Errorf("unknown transaction %s", tx.Hash().Hex())
	}
	return receipt, nil
}

// lookup returns the record for id. Callers hold r.mu.
func (r *memoryRegistry) lookup(id *big.Int) (*ledger.CertificateRecord, bool) {
	if id.Sign() <= 0 || !id.IsInt64() || id.Int64() > int64(len(r.records)) {
		return nil, false
	}
	return r.records[id.Int64()-1], true
}

func (r *memoryRegistry) CertificateExists(ctx context.Context, certificateID *big.Int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAvailable(); err != nil {
		return false, err
	}
	_, ok := r.lookup(certificateID)
	return ok, nil
}

func (r *memoryRegistry) CertificateHashExists(ctx context.Context, certificateHash common.Hash) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAvailable(); err != nil {
		return false, err
	}
	_, ok := r.byHash[certificateHash]
	return ok, nil
}

func (r *memoryRegistry) GetCertificate(ctx context.Context, certificateID *big.Int) (*ledger.CertificateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAvailable(); err != nil {
		return nil, err
	}
	record, ok := r.lookup(certificateID)
	if !ok {
		return nil, reverted("CertificateDoesNotExist")
	}
	copied := *record
	return &copied, nil
}

func (r *memoryRegistry) GetCertificateByHash(ctx context.Context, certificateHash common.Hash) (*ledger.CertificateRecord, error) {
	r.mu.Lock()
	id, ok := r.byHash[certificateHash]
	r.mu.Unlock()

	if !ok {
		return nil, reverted("CertificateDoesNotExist")
	}
	return r.GetCertificate(ctx, id)
}

func (r *memoryRegistry) TotalCertificates(ctx context.Context) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAvailable(); err != nil {
		return nil, err
	}
	return big.NewInt(int64(len(r.records))), nil
}

func (r *memoryRegistry) ContractAddress() common.Address { return registryAddress }
func (r *memoryRegistry) SignerAddress() common.Address   { return collegeAddress }

func (r *memoryRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}
