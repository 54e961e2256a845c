package handler

import (
	"net/http"

	"github.com/Meenakshi-1306/Tutedude/internal/middleware"
	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/internal/store"

	"github.com/labstack/echo/v4"
)

// Dashboard summarises the caller's activity
func (h *Handler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserIDOf(c)

	if middleware.RoleOf(c) == model.RoleSupplier {
		orders, err := h.store.ListOrders(ctx, store.OrderFilter{SupplierID: userID})
		if err != nil {
			return internalError(c, "Failed to list orders", err)
		}
		txns, err := h.store.ListTransactions(ctx, store.TransactionFilter{SupplierID: userID})
		if err != nil {
			return internalError(c, "Failed to list transactions", err)
		}
		products, err := h.store.ListProducts(ctx, store.ProductFilter{SupplierID: userID})
		if err != nil {
			return internalError(c, "Failed to list products", err)
		}

		var revenue float64
		for _, t := range txns {
			if t.Status == model.TransactionCompleted {
				revenue += t.NetAmount
			}
		}
		var pending, completed, inStock int
		for _, o := range orders {
			switch o.Status {
			case model.OrderPending:
				pending++
			case model.OrderDelivered:
				completed++
			}
		}
		for _, p := range products {
			if p.InStock {
				inStock++
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"role":    model.RoleSupplier,
			"stats": echo.Map{
				"revenue":         model.RoundPaise(revenue),
				"totalOrders":     len(orders),
				"pendingOrders":   pending,
				"completedOrders": completed,
				"productsInStock": inStock,
				"totalProducts":   len(products),
			},
		})
	}

	user, err := h.store.GetUser(ctx, userID)
	if err != nil {
		return storeError(c, "User", err)
	}
	orders, err := h.store.ListOrders(ctx, store.OrderFilter{VendorID: userID})
	if err != nil {
		return internalError(c, "Failed to list orders", err)
	}

	byStatus := make(map[model.OrderStatus]int)
	var spent float64
	for _, o := range orders {
		byStatus[o.Status]++
		if o.Status != model.OrderCancelled {
			spent += o.Total
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"role":    model.RoleVendor,
		"stats": echo.Map{
			"totalOrders":    len(orders),
			"ordersByStatus": byStatus,
			"totalSpent":     model.RoundPaise(spent),
			"walletBalance":  user.WalletBalance,
		},
	})
}
