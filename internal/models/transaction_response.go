package models

// TransactionResponse wraps a single transaction record
// swagger:model TransactionResponse
type TransactionResponse struct {
	// Transaction record
	Transaction *Transaction `json:"transaction"`
}

// TransactionListResponse represents a filtered list of transactions
// swagger:model TransactionListResponse
type TransactionListResponse struct {
	// Matching records ordered by creation time
	Transactions []*Transaction `json:"transactions"`

	// Number of matching records
	// example: 2
	Count int `json:"count"`
}

// TransactionCountResponse represents the number of matching transactions
// swagger:model TransactionCountResponse
type TransactionCountResponse struct {
	// Number of matching records
	// example: 42
	Count int `json:"count"`
}

// TransactionDeleteResponse represents a successful deletion
// swagger:model TransactionDeleteResponse
type TransactionDeleteResponse struct {
	// Success message
	// example: Transaction deleted successfully
	Message string `json:"message"`
}

// TransactionErrorResponse represents an error response for transaction endpoints
// swagger:model TransactionErrorResponse
type TransactionErrorResponse struct {
	// Error message
	// example: Transaction not found
	Error string `json:"error"`
}
