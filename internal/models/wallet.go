package models

import "time"

const (
	WalletOwnerMentor   = "mentor"
	WalletOwnerUser     = "user"
	WalletOwnerPlatform = "platform"
)

const (
	TxnDirectionCredit  = "credit"
	TxnDirectionDebit   = "debit"
	TxnDirectionRelease = "release"
)

type Wallet struct {
	ID             int64     `json:"id"`
	OwnerType      string    `json:"owner_type"`
	OwnerID        int64     `json:"owner_id"`
	PendingBalance float64   `json:"pending_balance"`
	Balance        float64   `json:"balance"`
	CreatedAt      time.Time `json:"created_at"`
}

type WalletTransaction struct {
	ID          int64     `json:"id"`
	WalletID    int64     `json:"wallet_id"`
	OwnerType   string    `json:"owner_type"`
	OwnerID     int64     `json:"owner_id"`
	Amount      float64   `json:"amount"`
	Direction   string    `json:"direction"`
	Reference   string    `json:"reference"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
