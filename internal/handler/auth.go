package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/internal/store"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"
	"github.com/Meenakshi-1306/Tutedude/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// demo accounts carry no password hash and accept any password this long
const demoPasswordMinLength = 3

const minPasswordLength = 6

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Password     string           `json:"password"`
	Role         model.Role       `json:"role"`
	Phone        string           `json:"phone"`
	BusinessName string           `json:"businessName"`
	Location     string           `json:"location"`
	Latitude     *float64         `json:"latitude"`
	Longitude    *float64         `json:"longitude"`
	VendorType   model.VendorType `json:"vendorType"`
}

func userSummary(u *model.User) echo.Map {
	return echo.Map{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	}
}

// Login checks credentials and issues a token
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("missing_fields")
		return fail(c, http.StatusBadRequest, "Email and password are required")
	}

	user, err := h.store.GetUserByEmail(c.Request().Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return internalError(c, "Failed to look up user", err)
	}

	if !passwordMatches(user, req.Password) {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		prometheus.RecordAuthError("token_generation")
		return internalError(c, "Failed to generate token", err)
	}

	prometheus.AuthSuccessCounter.Inc()
	log.Info("User logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    userSummary(user),
		"token":   token,
	})
}

func passwordMatches(u *model.User, password string) bool {
	if u.PasswordHash == "" {
		return len(password) >= demoPasswordMinLength
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Register creates a vendor or supplier account
func (h *Handler) Register(c echo.Context) error {
	log := logger.FromContext(c)

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		return fail(c, http.StatusBadRequest, "Invalid request data")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return fail(c, http.StatusBadRequest, "All fields are required")
	}
	if len(req.Password) < minPasswordLength {
		return fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
	}
	if !req.Role.Valid() {
		return fail(c, http.StatusBadRequest, "Invalid role")
	}
	if !req.VendorType.Valid() {
		return fail(c, http.StatusBadRequest, "Invalid vendor type")
	}
	if msg := validateCoordinates(req.Latitude, req.Longitude); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return internalError(c, "Failed to hash password", err)
	}

	user := model.User{
		ID:           model.NewID("user"),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashed),
		Role:         req.Role,
		BusinessName: req.BusinessName,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		IsActive:     true,
		CreatedAt:    h.now(),
	}
	if req.Role == model.RoleVendor {
		user.VendorType = req.VendorType
	}

	if err := h.store.CreateUser(c.Request().Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			log.Warn("Email already registered", zap.String("email", req.Email))
			return fail(c, http.StatusConflict, "User already exists with this email. Please login instead.")
		}
		return internalError(c, "Failed to create user", err)
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return internalError(c, "Failed to generate token", err)
	}

	prometheus.AuthSuccessCounter.Inc()
	log.Info("User registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"user":    user,
		"token":   token,
	})
}

// validateCoordinates requires both coordinates or neither, each within range
func validateCoordinates(lat, lng *float64) string {
	if (lat == nil) != (lng == nil) {
		return "Latitude and longitude must be provided together"
	}
	if lat != nil && (*lat < -90 || *lat > 90 || *lng < -180 || *lng > 180) {
		return "Coordinates are out of range"
	}
	return ""
}
