package ledger

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrNoTopics       = errors.New("log has no topics")
	ErrForeignLog     = errors.New("log was not emitted by the registry contract")
	ErrUnknownEventID = errors.New("log does not match a registry event")
)

// DecodedEvent is a receipt log decoded against the registry ABI.
//
// Fields holds indexed and non-indexed arguments keyed by their ABI names.
// uint256 values are *big.Int and bytes32 values are [32]byte.
type DecodedEvent struct {
	Name   string
	Fields map[string]any
	Log    *types.Log
}

// DecodeLog decodes a single receipt log emitted by the registry contract.
func (c *Client) DecodeLog(log *types.Log) (*DecodedEvent, error) {
	return decodeLog(c.abi, c.address, log)
}

// EventDecoder decodes registry logs without a node connection, e.g. receipts fetched elsewhere.
type EventDecoder struct {
	abi     abi.ABI
	address common.Address
}

func NewEventDecoder(contractABI abi.ABI, address common.Address) *EventDecoder {
	return &EventDecoder{abi: contractABI, address: address}
}

func (d *EventDecoder) DecodeLog(log *types.Log) (*DecodedEvent, error) {
	return decodeLog(d.abi, d.address, log)
}

func decodeLog(contractABI abi.ABI, address common.Address, log *types.Log) (*DecodedEvent, error) {
	if log == nil || len(log.Topics) == 0 {
		return nil, ErrNoTopics
	}
	if log.Address != address {
		return nil, fmt.Errorf("%w: %s", ErrForeignLog, log.Address.Hex())
	}

	event, err := contractABI.EventByID(log.Topics[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventID, log.Topics[0].Hex())
	}

	fields := make(map[string]any, len(event.Inputs))
	if err := contractABI.UnpackIntoMap(fields, event.Name, log.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack %s data: %w", event.Name, err)
	}

	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, log.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse %s topics: %w", event.Name, err)
	}

	return &DecodedEvent{Name: event.Name, Fields: fields, Log: log}, nil
}
