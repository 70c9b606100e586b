package gateway

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/information-sharing-networks/certgw/internal/certificate"
	"github.com/information-sharing-networks/certgw/internal/ledger"
)

// LogDecoder decodes a single receipt log against the registry interface.
type LogDecoder interface {
	DecodeLog(log *types.Log) (*ledger.DecodedEvent, error)
}

// FindEvent returns the first log in logs that decodes to the named event and whose fields
// can be extracted.
//
// Logs that fail to decode, belong to other events or other contracts are skipped.
// The second return value is false when no log matched; this is not an error.
func FindEvent[T any](decoder LogDecoder, logs []*types.Log, name string, extract func(fields map[string]any) (T, error)) (T, bool) {
	var zero T
	for _, log := range logs {
		decoded, err := decoder.DecodeLog(log)
		if err != nil || decoded.Name != name {
			continue
		}
		v, err := extract(decoded.Fields)
		if err != nil {
			continue
		}
		return v, true
	}
	return zero, false
}

// extractIssued converts decoded CertificateIssued fields.
func extractIssued(fields map[string]any) (*certificate.IssuedEvent, error) {
	id, err := bigField(fields, "certificateId")
	if err != nil {
		return nil, err
	}
	studentIdentifier, err := stringField(fields, "studentIdentifier")
	if err != nil {
		return nil, err
	}
	hash, err := hashField(fields, "certificateHash")
	if err != nil {
		return nil, err
	}
	metadataURI, err := stringField(fields, "metadataURI")
	if err != nil {
		return nil, err
	}
	issuedAt, err := bigField(fields, "issuedAt")
	if err != nil {
		return nil, err
	}

	return &certificate.IssuedEvent{
		CertificateID:     id.String(),
		StudentIdentifier: studentIdentifier,
		CertificateHash:   hash.Hex(),
		MetadataURI:       metadataURI,
		IssuedAt:          issuedAt.String(),
	}, nil
}

// extractRevoked converts decoded CertificateRevoked fields.
func extractRevoked(fields map[string]any) (*certificate.RevokedEvent, error) {
	id, err := bigField(fields, "certificateId")
	if err != nil {
		return nil, err
	}
	revokedAt, err := bigField(fields, "revokedAt")
	if err != nil {
		return nil, err
	}
	return &certificate.RevokedEvent{
		CertificateID: id.String(),
		RevokedAt:     revokedAt.String(),
	}, nil
}

func bigField(fields map[string]any, name string) (*big.Int, error) {
	v, ok := fields[name].(*big.Int)
	if !ok || v == nil {
		return nil, fmt.Errorf("event field %s: expected uint256, got %T", name, fields[name])
	}
	return v, nil
}

func stringField(fields map[string]any, name string) (string, error) {
	v, ok := fields[name].(string)
	if !ok {
		return "", fmt.Errorf("event field %s: expected string, got %T", name, fields[name])
	}
	return v, nil
}

func hashField(fields map[string]any, name string) (common.Hash, error) {
	switch v := fields[name].(type) {
	case [32]byte:
		return common.Hash(v), nil
	case common.Hash:
		return v, nil
	default:
		return common.Hash{}, fmt.Errorf("event field %s: expected bytes32, got %T", name, fields[name])
	}
}
