package model

import "time"

// WalletEntryType is the direction of a wallet movement
type WalletEntryType string

const (
	WalletCredit WalletEntryType = "credit"
	WalletDebit  WalletEntryType = "debit"
)

// WalletEntry is one movement on a vendor's wallet
type WalletEntry struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(64)"`
	UserID      string          `json:"userId" gorm:"type:varchar(64);index;not null"`
	Type        WalletEntryType `json:"type" gorm:"type:varchar(10)"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description" gorm:"type:text"`
	OrderID     string          `json:"orderId,omitempty" gorm:"type:varchar(64)"`
	CreatedAt   time.Time       `json:"createdAt"`
}
