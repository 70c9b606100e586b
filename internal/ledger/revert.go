package ledger

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrTransactionReverted is returned when a mined transaction has a failed receipt status.
var ErrTransactionReverted = errors.New("transaction reverted")

// RevertError is a contract revert whose reason was recovered from the revert data.
//
// Name is the custom error name (e.g. CertificateHashAlreadyExists) when the revert data
// matches an error in the ABI. Reason is the string passed to a require/revert(string) otherwise.
type RevertError struct {
	Name   string
	Reason string
	err    error
}

func (e *RevertError) Error() string {
	if e.Name != "" {
		return "execution reverted: " + e.Name
	}
	return "execution reverted: " + e.Reason
}

func (e *RevertError) Unwrap() error { return e.err }

// decodeRevert makes the revert condition visible in the error message.
//
// Nodes return custom error reverts as opaque data on the JSON-RPC error. When the data
// matches an error selector in the ABI the error is replaced with a *RevertError naming it.
// Errors without revert data are returned unchanged.
func decodeRevert(contractABI abi.ABI, err error) error {
	if err == nil {
		return nil
	}

	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return err
	}

	data := revertData(dataErr.ErrorData())
	if len(data) < 4 {
		return err
	}

	for name, abiErr := range contractABI.Errors {
		if bytes.Equal(abiErr.ID[:4], data[:4]) {
			return &RevertError{Name: name, err: err}
		}
	}

	if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
		return &RevertError{Reason: reason, err: err}
	}

	return err
}

// revertData extracts the raw bytes from the error data attached to a JSON-RPC error.
// Geth returns a hex string; some nodes nest it in an object under "data".
func revertData(v any) []byte {
	switch d := v.(type) {
	case string:
		b, err := hexutil.Decode(d)
		if err != nil {
			return nil
		}
		return b
	case []byte:
		return d
	case map[string]any:
		return revertData(d["data"])
	default:
		return nil
	}
}

// wrapReverted reports a failed receipt, using the replayed revert reason if there is one.
func wrapReverted(txHash string, reason error) error {
	if reason == nil {
		return fmt.Errorf("%w: %s", ErrTransactionReverted, txHash)
	}
	return fmt.Errorf("%w: %s: %w", ErrTransactionReverted, txHash, reason)
}
