package handler

import (
	"net/http"

	"github.com/Meenakshi-1306/Tutedude/internal/middleware"
	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/internal/store"

	"github.com/labstack/echo/v4"
)

// ListTransactions returns the calling supplier's settlements with totals
func (h *Handler) ListTransactions(c echo.Context) error {
	txns, err := h.store.ListTransactions(c.Request().Context(), store.TransactionFilter{SupplierID: middleware.UserIDOf(c)})
	if err != nil {
		return internalError(c, "Failed to list transactions", err)
	}

	var amount, commission, net float64
	for _, t := range txns {
		if t.Status != model.TransactionCompleted {
			continue
		}
		amount += t.Amount
		commission += t.Commission
		net += t.NetAmount
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"transactions": txns,
		"summary": echo.Map{
			"totalAmount":     model.RoundPaise(amount),
			"totalCommission": model.RoundPaise(commission),
			"totalNet":        model.RoundPaise(net),
		},
	})
}
