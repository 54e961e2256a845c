package model

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_Table(t *testing.T) {
	allowed := map[[2]OrderStatus]bool{
		{OrderPending, OrderAccepted}:         true,
		{OrderPending, OrderCancelled}:        true,
		{OrderAccepted, OrderPreparing}:       true,
		{OrderPreparing, OrderOutForDelivery}: true,
		{OrderOutForDelivery, OrderDelivered}: true,
	}
	all := []OrderStatus{OrderPending, OrderAccepted, OrderPreparing, OrderOutForDelivery, OrderDelivered, OrderCancelled}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]OrderStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	assert.False(t, OrderPending.Terminal())
}

func TestOrder_TransitionTo(t *testing.T) {
	o := Order{ID: "order_1", Status: OrderPending}
	now := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

	require.NoError(t, o.TransitionTo(OrderAccepted, now))
	assert.Equal(t, OrderAccepted, o.Status)
	assert.Equal(t, now, o.UpdatedAt)

	err := o.TransitionTo(OrderDelivered, now)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, OrderAccepted, o.Status)
}

func TestOrder_Price(t *testing.T) {
	fees := Fees{PlatformRate: 0.02, Standard: 20, Express: 50}
	o := Order{Items: []OrderItem{
		{Quantity: 5, Price: 40},
		{Quantity: 3, Price: 30},
		{Quantity: 2, Price: 60},
	}}

	o.Price(fees)
	assert.Equal(t, 410.0, o.Subtotal)
	assert.Equal(t, 20.0, o.DeliveryFee)
	assert.Equal(t, 8.0, o.PlatformFee)
	assert.Equal(t, 438.0, o.Total)

	o.DeliveryOption = DeliveryExpress
	o.Price(fees)
	assert.Equal(t, 50.0, o.DeliveryFee)
	assert.Equal(t, 468.0, o.Total)
}

func TestNewSettlement(t *testing.T) {
	o := Order{ID: "order_demo_1", VendorID: "v", SupplierID: "s", Total: 410, PaymentMethod: PaymentUPI}

	txn := NewSettlement(o, 0.05, time.Now())
	assert.Equal(t, 410.0, txn.Amount)
	assert.Equal(t, 20.5, txn.Commission)
	assert.Equal(t, 389.5, txn.NetAmount)
	assert.Equal(t, TransactionCompleted, txn.Status)
	assert.Equal(t, "s", txn.SupplierID)
}

func TestReportTransitions(t *testing.T) {
	r := FSSAIReport{ID: "r", Status: ReportSubmitted}

	assert.Error(t, r.TransitionTo(ReportResolved))
	require.NoError(t, r.TransitionTo(ReportUnderReview))
	require.NoError(t, r.TransitionTo(ReportResolved))
	assert.Error(t, r.TransitionTo(ReportRejected))

	assert.True(t, CanTransitionReport(ReportSubmitted, ReportRejected))
}

func TestNewReportNumber(t *testing.T) {
	n := NewReportNumber(time.UnixMilli(1705312345678))
	assert.Equal(t, "FSSAI-12345678", n)

	assert.Regexp(t, regexp.MustCompile(`^FSSAI-\d{8}$`), NewReportNumber(time.Now()))
	assert.Equal(t, "FSSAI-00000042", NewReportNumber(time.UnixMilli(42)))
}

func TestNewID(t *testing.T) {
	id := NewID("order")
	assert.Regexp(t, `^order_\d+_[0-9a-f]{9}$`, id)
	assert.NotEqual(t, id, NewID("order"))
}

func TestEnums(t *testing.T) {
	assert.True(t, RoleVendor.Valid())
	assert.False(t, Role("driver").Valid())
	assert.True(t, SeverityCritical.Valid())
	assert.False(t, Severity("extreme").Valid())
	assert.True(t, VendorType("").Valid())
	assert.False(t, VendorType("spaceship").Valid())
	assert.True(t, PaymentWallet.Valid())
	assert.False(t, PaymentMethod("barter").Valid())
}

func TestUser_Position(t *testing.T) {
	lat, lng := 28.6139, 77.209
	u := User{Latitude: &lat}
	_, ok := u.Position()
	assert.False(t, ok)

	u.Longitude = &lng
	p, ok := u.Position()
	assert.True(t, ok)
	assert.Equal(t, lat, p.Latitude)

	assert.Equal(t, "Central Food Corner, Delhi", User{Name: "Rajesh", BusinessName: "Central Food Corner"}.DefaultDeliveryAddress())
	assert.Equal(t, "Rajesh, Khan Market", User{Name: "Rajesh", Location: "Khan Market"}.DefaultDeliveryAddress())
}
