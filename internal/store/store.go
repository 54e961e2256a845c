// Package store holds the marketplace records: users, products, orders,
// transactions, FSSAI reports and wallet entries.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Meenakshi-1306/Tutedude/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when registering an email already in use
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserFilter narrows ListUsers. Zero values match everything.
type UserFilter struct {
	Role       model.Role
	VendorType model.VendorType
}

// ProductFilter narrows ListProducts
type ProductFilter struct {
	SupplierID string
}

// OrderFilter narrows ListOrders
type OrderFilter struct {
	VendorID   string
	SupplierID string
	Status     model.OrderStatus
}

// TransactionFilter narrows ListTransactions
type TransactionFilter struct {
	SupplierID string
	VendorID   string
}

// ReportFilter narrows ListReports
type ReportFilter struct {
	VendorID   string
	SupplierID string
}

// Store is the record store handed to handlers. Updates replace the whole
// record; concurrent writers to the same record resolve as last write wins.
// List results keep insertion order.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, u *model.User) error
	ListUsers(ctx context.Context, f UserFilter) ([]model.User, error)

	CreateProduct(ctx context.Context, p *model.Product) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, f ProductFilter) ([]model.Product, error)

	CreateOrder(ctx context.Context, o *model.Order) error
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	UpdateOrder(ctx context.Context, o *model.Order) error
	ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, error)

	CreateTransaction(ctx context.Context, t *model.Transaction) error
	ListTransactions(ctx context.Context, f TransactionFilter) ([]model.Transaction, error)

	CreateReport(ctx context.Context, r *model.FSSAIReport) error
	GetReport(ctx context.Context, id string) (*model.FSSAIReport, error)
	UpdateReport(ctx context.Context, r *model.FSSAIReport) error
	ListReports(ctx context.Context, f ReportFilter) ([]model.FSSAIReport, error)

	CreateWalletEntry(ctx context.Context, e *model.WalletEntry) error
	ListWalletEntries(ctx context.Context, userID string) ([]model.WalletEntry, error)
}

// Snapshot is the complete serialized state of a store
type Snapshot struct {
	Users         []model.User        `json:"users"`
	Products      []model.Product     `json:"products"`
	Orders        []model.Order       `json:"orders"`
	Transactions  []model.Transaction `json:"transactions"`
	FSSAIReports  []model.FSSAIReport `json:"fssaiReports"`
	WalletEntries []model.WalletEntry `json:"walletEntries"`
}

// userRecord is a user as written to a snapshot. The password hash is hidden
// from API responses but must survive a restart.
type userRecord struct {
	model.User
	PasswordHash string `json:"passwordHash,omitempty"`
}

// MarshalJSON writes users together with their password hashes
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	doc := struct {
		plain
		Users []userRecord `json:"users"`
	}{plain: plain(s), Users: make([]userRecord, 0, len(s.Users))}

	for _, u := range s.Users {
		doc.Users = append(doc.Users, userRecord{User: u, PasswordHash: u.PasswordHash})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores users together with their password hashes
func (s *Snapshot) UnmarshalJSON(raw []byte) error {
	type plain Snapshot
	var doc struct {
		plain
		Users []userRecord `json:"users"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	*s = Snapshot(doc.plain)
	s.Users = make([]model.User, 0, len(doc.Users))
	for _, r := range doc.Users {
		u := r.User
		u.PasswordHash = r.PasswordHash
		s.Users = append(s.Users, u)
	}
	return nil
}

// Snapshotter persists snapshots outside the process. Load reports found=false
// when nothing has been saved yet.
type Snapshotter interface {
	Load(ctx context.Context) (snap Snapshot, found bool, err error)
	Save(ctx context.Context, snap Snapshot) error
}

func (f UserFilter) match(u *model.User) bool {
	return (f.Role == "" || u.Role == f.Role) &&
		(f.VendorType == "" || u.VendorType == f.VendorType)
}

func (f ProductFilter) match(p *model.Product) bool {
	return f.SupplierID == "" || p.SupplierID == f.SupplierID
}

func (f OrderFilter) match(o *model.Order) bool {
	return (f.VendorID == "" || o.VendorID == f.VendorID) &&
		(f.SupplierID == "" || o.SupplierID == f.SupplierID) &&
		(f.Status == "" || o.Status == f.Status)
}

func (f TransactionFilter) match(t *model.Transaction) bool {
	return (f.SupplierID == "" || t.SupplierID == f.SupplierID) &&
		(f.VendorID == "" || t.VendorID == f.VendorID)
}

func (f ReportFilter) match(r *model.FSSAIReport) bool {
	return (f.VendorID == "" || r.VendorID == f.VendorID) &&
		(f.SupplierID == "" || r.SupplierID == f.SupplierID)
}
