package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventKind represents the kind of ledger task event.
type EventKind string

const (
	EventKindCreated         EventKind = "CREATED"
	EventKindClaimed         EventKind = "CLAIMED"
	EventKindCompleted       EventKind = "COMPLETED"
	EventKindExpired         EventKind = "EXPIRED"
	EventKindReceiptAnchored EventKind = "RECEIPT_ANCHORED"
)

// IsValid checks if the kind is one of the allowed values.
func (k EventKind) IsValid() bool {
	switch k {
	case EventKindCreated, EventKindClaimed, EventKindCompleted,
		EventKindExpired, EventKindReceiptAnchored:
		return true
	default:
		return false
	}
}

// UnknownTxHash is recorded when the ledger notification carries no transaction hash.
const UnknownTxHash = "unknown"

// UnknownActor stands in for an address the ledger never reported.
const UnknownActor = "unknown"

// CommitmentLevel is the claim-time commitment recorded by the ledger.
type CommitmentLevel uint8

const (
	CommitmentCasual CommitmentLevel = 0
	CommitmentStrong CommitmentLevel = 1
)

// Details is the kind-specific payload of a TaskEvent.
// Exactly one concrete type exists per EventKind.
type Details interface {
	Kind() EventKind
}

// CreatedDetails is the payload of a CREATED event.
type CreatedDetails struct {
	Category string `json:"category"`
	Priority uint8  `json:"priority"`
}

// ClaimedDetails is the payload of a CLAIMED event.
type ClaimedDetails struct {
	Commitment CommitmentLevel `json:"commitment"`
	Deadline   uint64          `json:"deadline"`
}

// CompletedDetails is the payload of a COMPLETED event.
// IPFSCid and ProofLink stay empty unless a proof was attached.
type CompletedDetails struct {
	Creator   string `json:"creator"`
	IPFSCid   string `json:"ipfsCid,omitempty"`
	ProofLink string `json:"link,omitempty"`
}

// ExpiredDetails is the payload of an EXPIRED event.
type ExpiredDetails struct{}

// ReceiptDetails is the payload of a RECEIPT_ANCHORED event.
type ReceiptDetails struct {
	ReceiptHash string `json:"receiptHash"`
	IPFSCid     string `json:"ipfsCid"`
}

func (CreatedDetails) Kind() EventKind   { return EventKindCreated }
func (ClaimedDetails) Kind() EventKind   { return EventKindClaimed }
func (CompletedDetails) Kind() EventKind { return EventKindCompleted }
func (ExpiredDetails) Kind() EventKind   { return EventKindExpired }
func (ReceiptDetails) Kind() EventKind   { return EventKindReceiptAnchored }

// HasProof reports whether a completion carries verifiable proof metadata.
func (d CompletedDetails) HasProof() bool {
	return d.IPFSCid != "" || d.ProofLink != ""
}

// DecodeDetails decodes a stored payload for the given kind.
func DecodeDetails(kind EventKind, raw []byte) (Details, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	var (
		details Details
		err     error
	)
	switch kind {
	case EventKindCreated:
		var d CreatedDetails
		err = json.Unmarshal(raw, &d)
		details = d
	case EventKindClaimed:
		var d ClaimedDetails
		err = json.Unmarshal(raw, &d)
		details = d
	case EventKindCompleted:
		var d CompletedDetails
		err = json.Unmarshal(raw, &d)
		details = d
	case EventKindExpired:
		details = ExpiredDetails{}
	case EventKindReceiptAnchored:
		var d ReceiptDetails
		err = json.Unmarshal(raw, &d)
		details = d
	default:
		return nil, fmt.Errorf("%w: unknown event kind %q", ErrMalformedEvent, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s details: %v", ErrMalformedEvent, kind, err)
	}
	return details, nil
}

// ChainEvent is a ledger notification normalized at the ledger boundary,
// before it has been assigned an id and an ingestion time.
type ChainEvent struct {
	TaskID  uint64
	Actor   string
	TxHash  string
	Details Details
}

// Kind returns the kind carried by the payload.
func (e ChainEvent) Kind() EventKind {
	if e.Details == nil {
		return ""
	}
	return e.Details.Kind()
}

// TaskEvent is an immutable entry of the activity log.
type TaskEvent struct {
	ID        string    `json:"id"`
	TaskID    uint64    `json:"taskId"`
	Kind      EventKind `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Details   Details   `json:"details"`
	TxHash    string    `json:"txHash"`
}

// IsBy reports whether the event was performed by actor (case-insensitive).
func (e *TaskEvent) IsBy(actor string) bool {
	return strings.EqualFold(e.Actor, actor)
}

// UnmarshalJSON decodes the details payload according to the event kind.
func (e *TaskEvent) UnmarshalJSON(data []byte) error {
	type plain TaskEvent
	var raw struct {
		plain
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = TaskEvent(raw.plain)
	if len(raw.Details) == 0 || string(raw.Details) == "null" {
		return nil
	}
	details, err := DecodeDetails(e.Kind, raw.Details)
	if err != nil {
		return err
	}
	e.Details = details
	return nil
}
