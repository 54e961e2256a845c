package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Meenakshi-1306/Tutedude/internal/messaging"
	"github.com/Meenakshi-1306/Tutedude/internal/middleware"
	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/internal/store"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"
	"github.com/Meenakshi-1306/Tutedude/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderItemRequest is one line of a new order
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the body of POST /api/orders
type PlaceOrderRequest struct {
	SupplierID          string               `json:"supplierId"`
	Items               []OrderItemRequest   `json:"items"`
	DeliveryOption      model.DeliveryOption `json:"deliveryOption"`
	DeliveryAddress     string               `json:"deliveryAddress"`
	PaymentMethod       model.PaymentMethod  `json:"paymentMethod"`
	SpecialInstructions string               `json:"specialInstructions"`
}

// StatusUpdateRequest is the body of the status update endpoints
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *Handler) fees() model.Fees {
	return model.Fees{
		PlatformRate: h.market.PlatformFeeRate,
		Standard:     h.market.DeliveryFeeStandard,
		Express:      h.market.DeliveryFeeExpress,
	}
}

// PlaceOrder checks a vendor's basket against the supplier's catalogue,
// prices it and stores the order as pending.
func (h *Handler) PlaceOrder(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()
	prometheus.RecordOrderOperation("create")

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid order request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}

	if req.SupplierID == "" || len(req.Items) == 0 {
		return fail(c, http.StatusBadRequest, "Supplier and at least one item are required")
	}
	if req.DeliveryOption == "" {
		req.DeliveryOption = model.DeliveryStandard
	}
	if req.DeliveryOption != model.DeliveryStandard && req.DeliveryOption != model.DeliveryExpress {
		return fail(c, http.StatusBadRequest, "Invalid delivery option")
	}
	if !req.PaymentMethod.Valid() {
		return fail(c, http.StatusBadRequest, "Invalid payment method")
	}

	vendor, err := h.store.GetUser(ctx, middleware.UserIDOf(c))
	if err != nil {
		return storeError(c, "User", err)
	}
	supplier, err := h.store.GetUser(ctx, req.SupplierID)
	if err != nil || supplier.Role != model.RoleSupplier {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return internalError(c, "Failed to load supplier", err)
		}
		return fail(c, http.StatusBadRequest, "Supplier not found")
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := h.store.GetProduct(ctx, line.ProductID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return internalError(c, "Failed to load product", err)
		}
		if err != nil || product.SupplierID != supplier.ID {
			return fail(c, http.StatusBadRequest, fmt.Sprintf("Product %s is not sold by this supplier", line.ProductID))
		}
		if !product.InStock {
			return fail(c, http.StatusBadRequest, product.Name+" is out of stock")
		}
		minimum := product.MinQuantity
		if minimum < 1 {
			minimum = 1
		}
		if line.Quantity < minimum {
			return fail(c, http.StatusBadRequest, fmt.Sprintf("Minimum order quantity for %s is %d %s", product.Name, minimum, product.Unit))
		}
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
			Name:      product.Name,
			Unit:      product.Unit,
		})
	}

	now := h.now()
	order := model.Order{
		ID:                  model.NewID("order"),
		VendorID:            vendor.ID,
		SupplierID:          supplier.ID,
		Items:               items,
		Status:              model.OrderPending,
		DeliveryOption:      req.DeliveryOption,
		DeliveryAddress:     strings.TrimSpace(req.DeliveryAddress),
		PaymentMethod:       req.PaymentMethod,
		SpecialInstructions: req.SpecialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if order.DeliveryAddress == "" {
		order.DeliveryAddress = vendor.DefaultDeliveryAddress()
	}
	order.Price(h.fees())

	if order.PaymentMethod == model.PaymentWallet && vendor.WalletBalance < order.Total {
		log.Warn("Insufficient wallet balance",
			zap.Float64("balance", vendor.WalletBalance),
			zap.Float64("total", order.Total))
		return fail(c, http.StatusBadRequest, "Insufficient wallet balance")
	}

	if err := h.store.CreateOrder(ctx, &order); err != nil {
		return internalError(c, "Failed to create order", err)
	}

	if order.PaymentMethod == model.PaymentWallet {
		if _, err := h.moveWallet(ctx, vendor, model.WalletDebit, order.Total, "Payment for order "+order.ID, order.ID); err != nil {
			return internalError(c, "Failed to charge wallet", err)
		}
	}

	log.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("supplier_id", order.SupplierID),
		zap.Float64("total", order.Total))

	h.publish(ctx, log, h.topics.OrderTopic, order.ID, messaging.OrderPlaced{
		OrderID:       order.ID,
		VendorID:      order.VendorID,
		SupplierID:    order.SupplierID,
		Items:         order.Items,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		PlacedAt:      order.CreatedAt,
	})

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "order": order})
}

// ListOrders returns the caller's orders, as buyer or seller by role
func (h *Handler) ListOrders(c echo.Context) error {
	status := model.OrderStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return fail(c, http.StatusBadRequest, "Invalid order status")
	}

	filter := store.OrderFilter{Status: status}
	if middleware.RoleOf(c) == model.RoleSupplier {
		filter.SupplierID = middleware.UserIDOf(c)
	} else {
		filter.VendorID = middleware.UserIDOf(c)
	}

	orders, err := h.store.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return internalError(c, "Failed to list orders", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

// GetOrder returns one order to either of its parties
func (h *Handler) GetOrder(c echo.Context) error {
	order, err := h.store.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(c, "Order", err)
	}
	if !order.Involves(middleware.UserIDOf(c)) {
		return fail(c, http.StatusNotFound, "Order not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": order})
}

// UpdateOrderStatus moves an order along its lifecycle. Suppliers drive it
// forward and may reject a pending order; vendors may only cancel. Delivery
// settles the order with the supplier and cancelling a wallet-paid order
// refunds the vendor.
func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()
	prometheus.RecordOrderOperation("update_status")

	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid status update", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}
	to := model.OrderStatus(req.Status)
	if !to.Valid() {
		return fail(c, http.StatusBadRequest, "Invalid order status")
	}

	userID := middleware.UserIDOf(c)
	order, err := h.store.GetOrder(ctx, c.Param("id"))
	if err != nil {
		return storeError(c, "Order", err)
	}
	if !order.Involves(userID) {
		return fail(c, http.StatusNotFound, "Order not found")
	}
	if middleware.RoleOf(c) == model.RoleVendor && to != model.OrderCancelled {
		return fail(c, http.StatusForbidden, "Vendors can only cancel orders")
	}

	from := order.Status
	now := h.now()
	if err := order.TransitionTo(to, now); err != nil {
		prometheus.RecordOrderTransition(string(to), false)
		log.Warn("Rejected order transition",
			zap.String("order_id", order.ID),
			zap.String("from", string(from)),
			zap.String("to", string(to)))
		return fail(c, http.StatusConflict, fmt.Sprintf("Order cannot move from %s to %s", from, to))
	}

	if err := h.store.UpdateOrder(ctx, order); err != nil {
		return storeError(c, "Order", err)
	}
	prometheus.RecordOrderTransition(string(to), true)

	response := echo.Map{"success": true, "order": order}

	switch to {
	case model.OrderDelivered:
		txn := model.NewSettlement(*order, h.market.CommissionRate, now)
		if err := h.store.CreateTransaction(ctx, &txn); err != nil {
			return internalError(c, "Failed to record settlement", err)
		}
		response["transaction"] = txn
	case model.OrderCancelled:
		if order.PaymentMethod == model.PaymentWallet {
			vendor, err := h.store.GetUser(ctx, order.VendorID)
			if err != nil {
				return storeError(c, "Vendor", err)
			}
			if _, err := h.moveWallet(ctx, vendor, model.WalletCredit, order.Total, "Refund for order "+order.ID, order.ID); err != nil {
				return internalError(c, "Failed to refund wallet", err)
			}
		}
	}

	log.Info("Order status updated",
		zap.String("order_id", order.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	h.publish(ctx, log, h.topics.OrderTopic, order.ID, messaging.OrderStatusChanged{
		OrderID:   order.ID,
		From:      from,
		To:        to,
		ChangedBy: userID,
		ChangedAt: now,
	})

	return c.JSON(http.StatusOK, response)
}
