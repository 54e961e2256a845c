package model

import (
	"time"

	"github.com/Meenakshi-1306/Tutedude/internal/geo"
)

// Role is the side of the marketplace a user belongs to
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleSupplier Role = "supplier"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleVendor || r == RoleSupplier
}

// VendorType classifies buyer businesses
type VendorType string

const (
	VendorStreet     VendorType = "street_vendor"
	VendorRestaurant VendorType = "restaurant"
	VendorCafe       VendorType = "cafe"
	VendorFoodTruck  VendorType = "food_truck"
	VendorCatering   VendorType = "catering"
	VendorGrocery    VendorType = "grocery_store"
	VendorBakery     VendorType = "bakery"
)

// Valid reports whether t is a known vendor type. The empty type is allowed.
func (t VendorType) Valid() bool {
	switch t {
	case "", VendorStreet, VendorRestaurant, VendorCafe, VendorFoodTruck, VendorCatering, VendorGrocery, VendorBakery:
		return true
	}
	return false
}

// User is a vendor or supplier account
type User struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Name          string     `json:"name" gorm:"type:varchar(100);not null"`
	Email         string     `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Phone         string     `json:"phone" gorm:"type:varchar(20)"`
	PasswordHash  string     `json:"-" gorm:"type:varchar(255)"` // empty for seeded demo accounts
	Role          Role       `json:"role" gorm:"type:varchar(20);index;not null"`
	BusinessName  string     `json:"businessName,omitempty" gorm:"type:varchar(100)"`
	Location      string     `json:"location,omitempty" gorm:"type:text"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	VendorType    VendorType `json:"vendorType,omitempty" gorm:"type:varchar(30);index"`
	WalletBalance float64    `json:"walletBalance"`
	IsActive      bool       `json:"isActive" gorm:"default:true"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Position implements geo.Locatable. A user missing either coordinate has
// no known position.
func (u User) Position() (geo.Point, bool) {
	if u.Latitude == nil || u.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *u.Latitude, Longitude: *u.Longitude}, true
}

// DisplayName prefers the business name
func (u User) DisplayName() string {
	if u.BusinessName != "" {
		return u.BusinessName
	}
	return u.Name
}

// DefaultDeliveryAddress is what checkout pre-fills for a vendor
func (u User) DefaultDeliveryAddress() string {
	where := u.Location
	if where == "" {
		where = "Delhi"
	}
	return u.DisplayName() + ", " + where
}
