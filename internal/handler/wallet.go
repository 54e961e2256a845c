package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Meenakshi-1306/Tutedude/internal/middleware"
	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TopUpRequest is the body of POST /api/wallet/topup
type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

// GetWallet returns the calling vendor's balance and movements
func (h *Handler) GetWallet(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserIDOf(c)

	user, err := h.store.GetUser(ctx, userID)
	if err != nil {
		return storeError(c, "User", err)
	}
	entries, err := h.store.ListWalletEntries(ctx, userID)
	if err != nil {
		return internalError(c, "Failed to list wallet entries", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"balance": user.WalletBalance,
		"entries": entries,
	})
}

// TopUp credits the calling vendor's wallet
func (h *Handler) TopUp(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var req TopUpRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid top-up request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}
	if req.Amount <= 0 {
		return fail(c, http.StatusBadRequest, "Amount must be greater than zero")
	}

	user, err := h.store.GetUser(ctx, middleware.UserIDOf(c))
	if err != nil {
		return storeError(c, "User", err)
	}

	entry, err := h.moveWallet(ctx, user, model.WalletCredit, req.Amount, "Wallet top-up", "")
	if err != nil {
		return internalError(c, "Failed to top up wallet", err)
	}

	log.Info("Wallet topped up", zap.Float64("amount", entry.Amount), zap.Float64("balance", user.WalletBalance))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"balance": user.WalletBalance,
		"entry":   entry,
	})
}

// moveWallet applies a credit or debit to the user's balance and records the
// movement. The caller checks the balance before a debit.
func (h *Handler) moveWallet(ctx context.Context, user *model.User, typ model.WalletEntryType, amount float64, description, orderID string) (*model.WalletEntry, error) {

	amount = model.RoundPaise(amount)
	if typ == model.WalletDebit {
		user.WalletBalance = model.RoundPaise(user.WalletBalance - amount)
	} else {
		user.WalletBalance = model.RoundPaise(user.WalletBalance + amount)
	}
	if err := h.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	entry := model.WalletEntry{
		ID:          model.NewID("wallet"),
		UserID:      user.ID,
		Type:        typ,
		Amount:      amount,
		Description: description,
		OrderID:     orderID,
		CreatedAt:   h.now(),
	}
	if err := h.store.CreateWalletEntry(ctx, &entry); err != nil {
		return nil, fmt.Errorf("failed to record wallet entry: %w", err)
	}
	return &entry, nil
}
