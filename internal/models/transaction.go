package models

import "time"

// Transaction is one append-only wallet ledger entry. Never mutated after
// creation; a user's balance is always recomputable as the sum of amounts.
type Transaction struct {
	ID          int       `json:"id" db:"id"`
	UserID      int       `json:"userId" db:"user_id"`
	Amount      int       `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
}
