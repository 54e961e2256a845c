package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Meenakshi-1306/Tutedude/internal/geo"
	"github.com/Meenakshi-1306/Tutedude/internal/middleware"
	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/internal/store"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"
	"github.com/Meenakshi-1306/Tutedude/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProfileUpdate is the body of PATCH /api/me. Omitted fields are left alone.
type ProfileUpdate struct {
	Name         *string           `json:"name"`
	Phone        *string           `json:"phone"`
	BusinessName *string           `json:"businessName"`
	Location     *string           `json:"location"`
	Latitude     *float64          `json:"latitude"`
	Longitude    *float64          `json:"longitude"`
	VendorType   *model.VendorType `json:"vendorType"`
}

// UserWithDistance is a directory entry annotated with its distance from
// the search reference, when both positions are known.
type UserWithDistance struct {
	model.User
	DistanceKm *float64 `json:"distanceKm,omitempty"`
}

// GetMe returns the caller's profile
func (h *Handler) GetMe(c echo.Context) error {
	user, err := h.store.GetUser(c.Request().Context(), middleware.UserIDOf(c))
	if err != nil {
		return storeError(c, "User", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// UpdateMe edits the caller's profile, including the coordinates used by
// supplier search.
func (h *Handler) UpdateMe(c echo.Context) error {
	log := logger.FromContext(c)

	var req ProfileUpdate
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid profile update", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}
	if msg := validateCoordinates(req.Latitude, req.Longitude); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	if req.VendorType != nil && !req.VendorType.Valid() {
		return fail(c, http.StatusBadRequest, "Invalid vendor type")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return fail(c, http.StatusBadRequest, "Name cannot be empty")
	}

	ctx := c.Request().Context()
	user, err := h.store.GetUser(ctx, middleware.UserIDOf(c))
	if err != nil {
		return storeError(c, "User", err)
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.BusinessName != nil {
		user.BusinessName = *req.BusinessName
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Latitude != nil {
		user.Latitude, user.Longitude = req.Latitude, req.Longitude
	}
	if req.VendorType != nil && user.Role == model.RoleVendor {
		user.VendorType = *req.VendorType
	}

	if err := h.store.UpdateUser(ctx, user); err != nil {
		return storeError(c, "User", err)
	}

	log.Info("Profile updated")
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

// ListSuppliers returns suppliers within the search radius of the query
// coordinates, or of the caller's own position when none are given.
// Suppliers with no known position are always listed.
func (h *Handler) ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	radius := h.market.DefaultRadiusKm
	if raw := c.QueryParam("radius"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r <= 0 {
			return fail(c, http.StatusBadRequest, "radius must be a positive number of kilometres")
		}
		radius = r
	}

	ref, err := queryPoint(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if ref == nil {
		caller, err := h.store.GetUser(ctx, middleware.UserIDOf(c))
		if err != nil {
			return storeError(c, "User", err)
		}
		if p, ok := caller.Position(); ok {
			ref = &p
		}
	}

	suppliers, err := h.store.ListUsers(ctx, store.UserFilter{Role: model.RoleSupplier})
	if err != nil {
		return internalError(c, "Failed to list suppliers", err)
	}

	nearby := geo.WithinRadius(ref, suppliers, radius)
	prometheus.SupplierSearchResults.Observe(float64(len(nearby)))

	results := make([]UserWithDistance, 0, len(nearby))
	for _, s := range nearby {
		entry := UserWithDistance{User: s}
		if d, ok := geo.DistanceFrom(ref, s); ok {
			rounded := geo.RoundKm(d)
			entry.DistanceKm = &rounded
		}
		results = append(results, entry)
	}

	log.Debug("Supplier search",
		zap.Bool("has_reference", ref != nil),
		zap.Float64("radius_km", radius),
		zap.Int("results", len(results)))

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"suppliers": results,
		"reference": ref,
		"radiusKm":  radius,
	})
}

// queryPoint reads lat/lng query parameters. Both must be present for a
// reference point; a lone coordinate is ignored.
func queryPoint(c echo.Context) (*geo.Point, error) {
	rawLat, rawLng := c.QueryParam("lat"), c.QueryParam("lng")
	if rawLat == "" || rawLng == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, errInvalidQuery("lat")
	}
	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return nil, errInvalidQuery("lng")
	}
	return &geo.Point{Latitude: lat, Longitude: lng}, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string {
	return string(e) + " must be a number"
}

// ListVendors returns vendors, optionally narrowed to one vendor type
func (h *Handler) ListVendors(c echo.Context) error {
	vendorType := model.VendorType(c.QueryParam("type"))
	if vendorType == "all" {
		vendorType = ""
	}
	if !vendorType.Valid() {
		return fail(c, http.StatusBadRequest, "Invalid vendor type")
	}

	vendors, err := h.store.ListUsers(c.Request().Context(), store.UserFilter{Role: model.RoleVendor, VendorType: vendorType})
	if err != nil {
		return internalError(c, "Failed to list vendors", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "vendors": vendors})
}
