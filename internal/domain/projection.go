package domain

// ProjectionStatus is the ledger-derived status of a task.
type ProjectionStatus string

const (
	ProjectionOpen      ProjectionStatus = "OPEN"
	ProjectionClaimed   ProjectionStatus = "CLAIMED"
	ProjectionCompleted ProjectionStatus = "COMPLETED"
)

// Projection is the per-task state folded from the activity log.
type Projection struct {
	TaskID      uint64           `json:"taskId"`
	Creator     string           `json:"creator"`
	Executor    *string          `json:"executor"`
	Status      ProjectionStatus `json:"status"`
	ReceiptCID  string           `json:"receiptCid,omitempty"`
	ReceiptHash string           `json:"receiptHash,omitempty"`
	History     []TaskEvent      `json:"history"`
}

// NewProjection creates an OPEN projection for a task first seen through ev.
func NewProjection(ev TaskEvent) *Projection {
	creator := UnknownActor
	if ev.Kind == EventKindCreated {
		creator = ev.Actor
	}
	return &Projection{
		TaskID:  ev.TaskID,
		Creator: creator,
		Status:  ProjectionOpen,
		History: []TaskEvent{},
	}
}

// Fold applies ev to the projection.
// A CLAIMED event overwrites executor and status unconditionally, which is how
// a re-claim after ledger-side expiry shows up.
func (p *Projection) Fold(ev TaskEvent) {
	p.History = append(p.History, ev)

	switch ev.Kind {
	case EventKindCreated:
		if p.Creator == UnknownActor {
			p.Creator = ev.Actor
		}
	case EventKindClaimed:
		executor := ev.Actor
		p.Executor = &executor
		p.Status = ProjectionClaimed
	case EventKindCompleted:
		p.Status = ProjectionCompleted
	case EventKindReceiptAnchored:
		if d, ok := ev.Details.(ReceiptDetails); ok {
			p.ReceiptCID = d.IPFSCid
			p.ReceiptHash = d.ReceiptHash
		}
	}
}

// Clone returns a deep copy safe to hand to readers.
func (p *Projection) Clone() Projection {
	out := *p
	if p.Executor != nil {
		executor := *p.Executor
		out.Executor = &executor
	}
	out.History = make([]TaskEvent, len(p.History))
	copy(out.History, p.History)
	return out
}
