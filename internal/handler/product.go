package handler

import (
	"net/http"
	"strings"

	"github.com/Meenakshi-1306/Tutedude/internal/middleware"
	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/internal/store"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductRequest is the body of product create and update calls
type ProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category"`
	InStock     *bool   `json:"inStock"`
	Icon        string  `json:"icon"`
	Color       string  `json:"color"`
	Description string  `json:"description"`
	MinQuantity int     `json:"minQuantity"`
}

func (r *ProductRequest) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.Name == "":
		return "Product name is required"
	case r.Price <= 0:
		return "Price must be greater than zero"
	case strings.TrimSpace(r.Unit) == "":
		return "Unit is required"
	case r.MinQuantity < 0:
		return "Minimum quantity cannot be negative"
	}
	return ""
}

func (r *ProductRequest) apply(p *model.Product) {
	p.Name = r.Name
	p.Price = r.Price
	p.Unit = strings.TrimSpace(r.Unit)
	p.Category = r.Category
	p.Icon = r.Icon
	p.Color = r.Color
	p.Description = r.Description
	p.MinQuantity = r.MinQuantity
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
}

// ListSupplierProducts returns a supplier's catalogue
func (h *Handler) ListSupplierProducts(c echo.Context) error {
	ctx := c.Request().Context()
	supplierID := c.Param("id")

	supplier, err := h.store.GetUser(ctx, supplierID)
	if err != nil {
		return storeError(c, "Supplier", err)
	}
	if supplier.Role != model.RoleSupplier {
		return fail(c, http.StatusNotFound, "Supplier not found")
	}

	products, err := h.store.ListProducts(ctx, store.ProductFilter{SupplierID: supplierID})
	if err != nil {
		return internalError(c, "Failed to list products", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "supplier": supplier, "products": products})
}

// ListMyProducts returns the calling supplier's catalogue
func (h *Handler) ListMyProducts(c echo.Context) error {
	products, err := h.store.ListProducts(c.Request().Context(), store.ProductFilter{SupplierID: middleware.UserIDOf(c)})
	if err != nil {
		return internalError(c, "Failed to list products", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": products})
}

// CreateProduct adds a product to the calling supplier's catalogue. New
// products are in stock unless stated otherwise.
func (h *Handler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid product data", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	product := model.Product{
		ID:         model.NewID("product"),
		SupplierID: middleware.UserIDOf(c),
		InStock:    true,
	}
	req.apply(&product)

	if err := h.store.CreateProduct(c.Request().Context(), &product); err != nil {
		return internalError(c, "Failed to create product", err)
	}

	log.Info("Product created", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "product": product})
}

// UpdateProduct replaces the editable fields of one of the caller's products
func (h *Handler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid product data", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	product, err := h.ownProduct(c)
	if err != nil || product == nil {
		return err
	}
	req.apply(product)

	if err := h.store.UpdateProduct(ctx, product); err != nil {
		return storeError(c, "Product", err)
	}

	log.Info("Product updated", zap.String("product_id", product.ID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product})
}

// DeleteProduct removes one of the caller's products
func (h *Handler) DeleteProduct(c echo.Context) error {
	product, err := h.ownProduct(c)
	if err != nil || product == nil {
		return err
	}

	if err := h.store.DeleteProduct(c.Request().Context(), product.ID); err != nil {
		return storeError(c, "Product", err)
	}

	logger.FromContext(c).Info("Product deleted", zap.String("product_id", product.ID))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Product deleted"})
}

// ownProduct loads the :id product and checks the caller owns it. When it
// returns a nil product the response has already been written.
func (h *Handler) ownProduct(c echo.Context) (*model.Product, error) {
	product, err := h.store.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, storeError(c, "Product", err)
	}
	if product.SupplierID != middleware.UserIDOf(c) {
		logger.FromContext(c).Warn("Product belongs to another supplier", zap.String("product_id", product.ID))
		return nil, fail(c, http.StatusForbidden, "You can only manage your own products")
	}
	return product, nil
}
