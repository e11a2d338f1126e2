package chain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/mtlprog/taskchain/internal/domain"
)

var (
	errRemovedLog   = fmt.Errorf("%w: log removed by reorg", domain.ErrMalformedEvent)
	errUnknownTopic = fmt.Errorf("%w: unknown event topic", domain.ErrMalformedEvent)
	errBadPayload   = fmt.Errorf("%w: bad payload", domain.ErrMalformedEvent)
)

// malformedReason maps a decode error to a metric label.
func malformedReason(err error) string {
	switch {
	case errors.Is(err, errRemovedLog):
		return "removed"
	case errors.Is(err, errUnknownTopic):
		return "unknown_topic"
	default:
		return "payload"
	}
}

// Decoder turns raw contract logs into normalized ChainEvents.
type Decoder struct {
	abi     abi.ABI
	address common.Address
}

// NewDecoder parses the contract ABI for the contract at address.
func NewDecoder(address common.Address) (*Decoder, error) {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}
	return &Decoder{abi: parsed, address: address}, nil
}

// Topics returns the signature topics of the four subscribed events.
func (dec *Decoder) Topics() []common.Hash {
	names := []string{EventTaskCreated, EventTaskClaimed, EventTaskCompleted, EventReceiptAnchored}
	topics := make([]common.Hash, 0, len(names))
	for _, name := range names {
		topics = append(topics, dec.abi.Events[name].ID)
	}
	return topics
}

// Query returns the log filter for the contract's task events.
func (dec *Decoder) Query() ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: []common.Address{dec.address},
		Topics:    [][]common.Hash{dec.Topics()},
	}
}

// Decode normalizes a contract log. Errors wrap domain.ErrMalformedEvent.
func (dec *Decoder) Decode(lg types.Log) (domain.ChainEvent, error) {
	if lg.Removed {
		return domain.ChainEvent{}, errRemovedLog
	}
	if len(lg.Topics) == 0 {
		return domain.ChainEvent{}, errUnknownTopic
	}

	ev, err := dec.abi.EventByID(lg.Topics[0])
	if err != nil {
		return domain.ChainEvent{}, fmt.Errorf("%w: %s", errUnknownTopic, lg.Topics[0].Hex())
	}

	fields := make(map[string]any)
	if err := abi.ParseTopicsIntoMap(fields, indexed(ev.Inputs), lg.Topics[1:]); err != nil {
		return domain.ChainEvent{}, fmt.Errorf("%w: %s topics: %v", errBadPayload, ev.Name, err)
	}
	if err := ev.Inputs.NonIndexed().UnpackIntoMap(fields, lg.Data); err != nil {
		return domain.ChainEvent{}, fmt.Errorf("%w: %s data: %v", errBadPayload, ev.Name, err)
	}

	taskID, err := uint64Field(fields, "taskId")
	if err != nil {
		return domain.ChainEvent{}, fmt.Errorf("%w: %s: %v", errBadPayload, ev.Name, err)
	}

	out := domain.ChainEvent{
		TaskID: taskID,
		TxHash: txHash(lg.TxHash),
	}

	switch ev.Name {
	case EventTaskCreated:
		out.Actor, err = addressField(fields, "creator")
		if err == nil {
			var d domain.CreatedDetails
			d.Category, err = stringField(fields, "category")
			if err == nil {
				d.Priority, err = uint8Field(fields, "priority")
			}
			out.Details = d
		}
	case EventTaskClaimed:
		out.Actor, err = addressField(fields, "executor")
		if err == nil {
			var d domain.ClaimedDetails
			var commitment uint8
			commitment, err = uint8Field(fields, "commitment")
			d.Commitment = domain.CommitmentLevel(commitment)
			if err == nil {
				d.Deadline, err = uint64Field(fields, "deadline")
			}
			out.Details = d
		}
	case EventTaskCompleted:
		out.Actor, err = addressField(fields, "executor")
		if err == nil {
			var d domain.CompletedDetails
			d.Creator, err = addressField(fields, "creator")
			out.Details = d
		}
	case EventReceiptAnchored:
		// The event carries no actor; the indexer attributes it to the executor.
		var d domain.ReceiptDetails
		var hash [32]byte
		hash, err = bytes32Field(fields, "receiptHash")
		d.ReceiptHash = common.Hash(hash).Hex()
		if err == nil {
			d.IPFSCid, err = stringField(fields, "ipfsCid")
		}
		out.Details = d
	default:
		return domain.ChainEvent{}, fmt.Errorf("%w: %s", errUnknownTopic, ev.Name)
	}
	if err != nil {
		return domain.ChainEvent{}, fmt.Errorf("%w: %s: %v", errBadPayload, ev.Name, err)
	}

	return out, nil
}

func indexed(args abi.Arguments) abi.Arguments {
	var out abi.Arguments
	for _, arg := range args {
		if arg.Indexed {
			out = append(out, arg)
		}
	}
	return out
}

func txHash(h common.Hash) string {
	if h == (common.Hash{}) {
		return domain.UnknownTxHash
	}
	return h.Hex()
}

func uint64Field(fields map[string]any, name string) (uint64, error) {
	v, ok := fields[name].(*big.Int)
	if !ok || v == nil {
		return 0, fmt.Errorf("field %s missing", name)
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("field %s out of range: %s", name, v)
	}
	return v.Uint64(), nil
}

func uint8Field(fields map[string]any, name string) (uint8, error) {
	v, ok := fields[name].(uint8)
	if !ok {
		return 0, fmt.Errorf("field %s missing", name)
	}
	return v, nil
}

func stringField(fields map[string]any, name string) (string, error) {
	v, ok := fields[name].(string)
	if !ok {
		return "", fmt.Errorf("field %s missing", name)
	}
	return v, nil
}

func addressField(fields map[string]any, name string) (string, error) {
	v, ok := fields[name].(common.Address)
	if !ok {
		return "", fmt.Errorf("field %s missing", name)
	}
	return v.Hex(), nil
}

func bytes32Field(fields map[string]any, name string) ([32]byte, error) {
	v, ok := fields[name].([32]byte)
	if !ok {
		return [32]byte{}, fmt.Errorf("field %s missing", name)
	}
	return v, nil
}
