package models

// Operations carried by TransactionEvent
const (
	OperationCreated = "created"
	OperationUpdated = "updated"
	OperationDeleted = "deleted"
)

// TransactionEvent is published whenever a transaction record changes.
type TransactionEvent struct {
	EventID     string       `json:"event_id"`              // Unique identifier of the event
	Operation   string       `json:"operation"`             // created, updated or deleted
	Timestamp   int64        `json:"timestamp"`             // Unix time in seconds
	RecordID    string       `json:"record_id"`             // Id of the affected record
	Transaction *Transaction `json:"transaction,omitempty"` // Record state after the change, nil on delete
}
