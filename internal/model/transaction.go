package model

import (
	"math"
	"time"
)

// TransactionStatus is the settlement state of a payment to a supplier
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is a supplier settlement for an order
type Transaction struct {
	ID            string            `json:"id" gorm:"primaryKey;type:varchar(64)"`
	OrderID       string            `json:"orderId" gorm:"type:varchar(64);index"`
	SupplierID    string            `json:"supplierId" gorm:"type:varchar(64);index"`
	VendorID      string            `json:"vendorId" gorm:"type:varchar(64);index"`
	Amount        float64           `json:"amount"`
	Commission    float64           `json:"commission"`
	NetAmount     float64           `json:"netAmount"`
	Status        TransactionStatus `json:"status" gorm:"type:varchar(20)"`
	PaymentMethod string            `json:"paymentMethod" gorm:"type:varchar(20)"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// NewSettlement builds the completed transaction for a delivered order,
// keeping the platform commission out of the supplier's net amount.
func NewSettlement(o Order, commissionRate float64, now time.Time) Transaction {
	commission := RoundPaise(o.Total * commissionRate)
	return Transaction{
		ID:            NewID("txn"),
		OrderID:       o.ID,
		SupplierID:    o.SupplierID,
		VendorID:      o.VendorID,
		Amount:        o.Total,
		Commission:    commission,
		NetAmount:     RoundPaise(o.Total - commission),
		Status:        TransactionCompleted,
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     now,
	}
}

// RoundPaise rounds a rupee amount to two decimals
func RoundPaise(v float64) float64 {
	return math.Round(v*100) / 100
}
