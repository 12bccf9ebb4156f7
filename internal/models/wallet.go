package models

import "time"

const (
	TransactionTopUp      = "top_up"
	TransactionEscrowHold = "escrow_hold"
	TransactionRelease    = "release"
	TransactionWithdrawal = "withdrawal"
	TransactionRefund     = "refund"
)

type Wallet struct {
	UserID        int     `json:"user_id"`
	Balance       float64 `json:"balance"`
	EscrowBalance float64 `json:"escrow_balance"`
	Currency      string  `json:"currency"`
}

type Transaction struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	OrderID   int       `json:"order_id,omitempty"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type WithdrawalRequest struct {
	Amount      float64 `json:"amount"`
	BankAccount string  `json:"bank_account"`
}
