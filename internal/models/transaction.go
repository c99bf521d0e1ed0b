package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionClass is the class name under which transactions are stored.
const TransactionClass = "Transaction"

// Transaction is a record of one transactional event between two parties.
// Every attribute starts at its zero value unless an initializer overrides it.
type Transaction struct {
	BaseModel
	TransactionType int             `json:"transaction_type" db:"transaction_type"` // Classification code
	Amount          decimal.Decimal `json:"amount" db:"amount"`                     // Magnitude of the transaction
	DPC             int64           `json:"d_p_c" db:"d_p_c"`                       // Debit party code, opaque
	CPC             int64           `json:"c_p_c" db:"c_p_c"`                       // Credit party code, opaque
	UserID          int64           `json:"user_id" db:"user_id"`                   // Owning user
	Reviewed        int             `json:"reviewed" db:"reviewed"`                 // Review flag, 0 or 1
	EmployerID      int64           `json:"employer_id" db:"employer_id"`           // Employer context
}

// ClassName implements Entity.
func (t *Transaction) ClassName() string {
	return TransactionClass
}

// ToMap returns the dictionary form of the transaction.
func (t *Transaction) ToMap() map[string]any {
	m := t.baseMap(TransactionClass)
	m["transaction_type"] = t.TransactionType
	m["amount"] = t.Amount.String()
	m["d_p_c"] = t.DPC
	m["c_p_c"] = t.CPC
	m["user_id"] = t.UserID
	m["reviewed"] = t.Reviewed
	m["employer_id"] = t.EmployerID
	return m
}

// Clone returns a copy that shares no state with t.
func (t *Transaction) Clone() *Transaction {
	c := *t
	return &c
}

func (t *Transaction) String() string {
	return fmt.Sprintf("[%s] (%s) %v", TransactionClass, t.ID, t.ToMap())
}

// TransactionFilter narrows List and Count. Nil fields match everything.
type TransactionFilter struct {
	UserID     *int64
	EmployerID *int64
	Reviewed   *int
}

// Match reports whether t passes the filter.
func (f TransactionFilter) Match(t *Transaction) bool {
	if f.UserID != nil && t.UserID != *f.UserID {
		return false
	}
	if f.EmployerID != nil && t.EmployerID != *f.EmployerID {
		return false
	}
	if f.Reviewed != nil && t.Reviewed != *f.Reviewed {
		return false
	}
	return true
}
