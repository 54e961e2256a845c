package model

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidTransition is returned when a status change is not in the transition table
var ErrInvalidTransition = errors.New("invalid status transition")

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderAccepted       OrderStatus = "accepted"
	OrderPreparing      OrderStatus = "preparing"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:        {OrderAccepted, OrderCancelled},
	OrderAccepted:       {OrderPreparing},
	OrderPreparing:      {OrderOutForDelivery},
	OrderOutForDelivery: {OrderDelivered},
}

// Valid reports whether s is one of the six order states
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderAccepted, OrderPreparing, OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DeliveryOption selects the delivery fee tier
type DeliveryOption string

const (
	DeliveryStandard DeliveryOption = "standard"
	DeliveryExpress  DeliveryOption = "express"
)

// PaymentMethod is how the vendor pays for an order
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentUPI    PaymentMethod = "upi"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

// Valid reports whether m is an accepted payment method
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentUPI, PaymentCard, PaymentWallet:
		return true
	}
	return false
}

// OrderItem is a line on an order, priced at the time it was placed
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
}

// Order is a vendor's purchase from a single supplier
type Order struct {
	ID                  string         `json:"id" gorm:"primaryKey;type:varchar(64)"`
	VendorID            string         `json:"vendorId" gorm:"type:varchar(64);index;not null"`
	SupplierID          string         `json:"supplierId" gorm:"type:varchar(64);index;not null"`
	Items               []OrderItem    `json:"items" gorm:"serializer:json;type:jsonb"`
	Subtotal            float64        `json:"subtotal"`
	DeliveryFee         float64        `json:"deliveryFee"`
	PlatformFee         float64        `json:"platformFee"`
	Total               float64        `json:"total"`
	Status              OrderStatus    `json:"status" gorm:"type:varchar(20);index;not null"`
	DeliveryOption      DeliveryOption `json:"deliveryOption,omitempty" gorm:"type:varchar(20)"`
	DeliveryAddress     string         `json:"deliveryAddress" gorm:"type:text"`
	PaymentMethod       PaymentMethod  `json:"paymentMethod" gorm:"type:varchar(20)"`
	SpecialInstructions string         `json:"specialInstructions,omitempty" gorm:"type:text"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// Fees are what checkout charges on top of the goods
type Fees struct {
	PlatformRate float64
	Standard     float64
	Express      float64
}

// Price fills in subtotal, fees and total from the order's items. The
// platform fee is rounded to a whole rupee.
func (o *Order) Price(f Fees) {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	o.Subtotal = subtotal
	o.DeliveryFee = f.Standard
	if o.DeliveryOption == DeliveryExpress {
		o.DeliveryFee = f.Express
	}
	o.PlatformFee = math.Round(subtotal * f.PlatformRate)
	o.Total = o.Subtotal + o.DeliveryFee + o.PlatformFee
}

// TransitionTo moves the order to a new status if the table allows it
func (o *Order) TransitionTo(to OrderStatus, now time.Time) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: order %s cannot go from %s to %s", ErrInvalidTransition, o.ID, o.Status, to)
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

// Involves reports whether the user is the order's vendor or supplier
func (o Order) Involves(userID string) bool {
	return o.VendorID == userID || o.SupplierID == userID
}
