package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Supplier(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.call(t, env.h.Dashboard, asSupplier("supplier_demo_1", request{path: "/api/dashboard"}))
	require.Equal(t, http.StatusOK, rec.Code)

	stats := body["stats"].(map[string]any)
	assert.Equal(t, 389.5, stats["revenue"])
	assert.Equal(t, 3.0, stats["totalOrders"])
	assert.Equal(t, 1.0, stats["pendingOrders"])
	assert.Equal(t, 1.0, stats["completedOrders"])
	assert.Equal(t, 4.0, stats["productsInStock"])
}

func TestDashboard_Vendor(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.call(t, env.h.Dashboard, asVendor("vendor_demo_1", request{path: "/api/dashboard"}))
	stats := body["stats"].(map[string]any)
	assert.Equal(t, 3.0, stats["totalOrders"])
	assert.Equal(t, 1965.0, stats["totalSpent"])
	assert.Equal(t, map[string]any{"delivered": 1.0, "out_for_delivery": 1.0, "pending": 1.0}, stats["ordersByStatus"])
	assert.Equal(t, 0.0, stats["walletBalance"])
}

func TestListTransactions(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.call(t, env.h.ListTransactions, asSupplier("supplier_demo_1", request{path: "/api/transactions"}))
	require.Len(t, body["transactions"], 1)
	summary := body["summary"].(map[string]any)
	assert.Equal(t, 410.0, summary["totalAmount"])
	assert.Equal(t, 20.5, summary["totalCommission"])
	assert.Equal(t, 389.5, summary["totalNet"])

	_, body = env.call(t, env.h.ListTransactions, asSupplier("supplier_demo_5", request{path: "/api/transactions"}))
	assert.Equal(t, []any{}, body["transactions"])
}
