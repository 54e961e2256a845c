package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/pkg/database"
	"github.com/Meenakshi-1306/Tutedude/prometheus"

	"gorm.io/gorm"
)

// GormStore keeps records in PostgreSQL
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore migrates the schema and returns a store on db
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := database.MigrateModels(db,
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.Transaction{},
		&model.FSSAIReport{},
		&model.WalletEntry{},
	); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func notFound(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return fmt.Errorf("failed to load %s %s: %w", kind, id, err)
}

// save replaces a whole record, failing when it does not exist
func (s *GormStore) save(ctx context.Context, kind, id string, v interface{}) error {
	defer prometheus.TrackStoreOperation("update")(time.Now())

	result := s.db.WithContext(ctx).Select("*").Where("id = ?", id).Updates(v)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s %s: %w", kind, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

func (s *GormStore) create(ctx context.Context, kind string, v interface{}) error {
	defer prometheus.TrackStoreOperation("insert")(time.Now())

	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", kind, err)
	}
	return nil
}

func (s *GormStore) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Order("created_at asc, id asc")
}

// Users

func (s *GormStore) CreateUser(ctx context.Context, u *model.User) error {
	if _, err := s.GetUserByEmail(ctx, u.Email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if u.ID == "" {
		u.ID = model.NewID("user")
	}
	return s.create(ctx, "user", u)
}

func (s *GormStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &u, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	var u model.User
	if err := s.db.WithContext(ctx).First(&u, "LOWER(email) = ?", strings.ToLower(email)).Error; err != nil {
		return nil, notFound(err, "user", email)
	}
	return &u, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, u *model.User) error {
	return s.save(ctx, "user", u.ID, u)
}

func (s *GormStore) ListUsers(ctx context.Context, f UserFilter) ([]model.User, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	q := s.query(ctx)
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.VendorType != "" {
		q = q.Where("vendor_type = ?", f.VendorType)
	}

	users := make([]model.User, 0)
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Products

func (s *GormStore) CreateProduct(ctx context.Context, p *model.Product) error {
	if p.ID == "" {
		p.ID = model.NewID("product")
	}
	return s.create(ctx, "product", p)
}

func (s *GormStore) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	var p model.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "product", id)
	}
	return &p, nil
}

func (s *GormStore) UpdateProduct(ctx context.Context, p *model.Product) error {
	return s.save(ctx, "product", p.ID, p)
}

func (s *GormStore) DeleteProduct(ctx context.Context, id string) error {
	defer prometheus.TrackStoreOperation("delete")(time.Now())

	result := s.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}

// products carry no timestamp, so they list in id order
func (s *GormStore) ListProducts(ctx context.Context, f ProductFilter) ([]model.Product, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	q := s.db.WithContext(ctx).Order("id asc")
	if f.SupplierID != "" {
		q = q.Where("supplier_id = ?", f.SupplierID)
	}

	products := make([]model.Product, 0)
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Orders

func (s *GormStore) CreateOrder(ctx context.Context, o *model.Order) error {
	if o.ID == "" {
		o.ID = model.NewID("order")
	}
	return s.create(ctx, "order", o)
}

func (s *GormStore) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	var o model.Order
	if err := s.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "order", id)
	}
	return &o, nil
}

func (s *GormStore) UpdateOrder(ctx context.Context, o *model.Order) error {
	return s.save(ctx, "order", o.ID, o)
}

func (s *GormStore) ListOrders(ctx context.Context, f OrderFilter) ([]model.Order, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	q := s.query(ctx)
	if f.VendorID != "" {
		q = q.Where("vendor_id = ?", f.VendorID)
	}
	if f.SupplierID != "" {
		q = q.Where("supplier_id = ?", f.SupplierID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	orders := make([]model.Order, 0)
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Transactions

func (s *GormStore) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	if t.ID == "" {
		t.ID = model.NewID("txn")
	}
	return s.create(ctx, "transaction", t)
}

func (s *GormStore) ListTransactions(ctx context.Context, f TransactionFilter) ([]model.Transaction, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	q := s.query(ctx)
	if f.SupplierID != "" {
		q = q.Where("supplier_id = ?", f.SupplierID)
	}
	if f.VendorID != "" {
		q = q.Where("vendor_id = ?", f.VendorID)
	}

	txns := make([]model.Transaction, 0)
	if err := q.Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// FSSAI reports

func (s *GormStore) CreateReport(ctx context.Context, r *model.FSSAIReport) error {
	if r.ID == "" {
		r.ID = model.NewID("fssai")
	}
	return s.create(ctx, "report", r)
}

func (s *GormStore) GetReport(ctx context.Context, id string) (*model.FSSAIReport, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	var r model.FSSAIReport
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "report", id)
	}
	return &r, nil
}

func (s *GormStore) UpdateReport(ctx context.Context, r *model.FSSAIReport) error {
	return s.save(ctx, "report", r.ID, r)
}

func (s *GormStore) ListReports(ctx context.Context, f ReportFilter) ([]model.FSSAIReport, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	q := s.query(ctx)
	if f.VendorID != "" {
		q = q.Where("vendor_id = ?", f.VendorID)
	}
	if f.SupplierID != "" {
		q = q.Where("supplier_id = ?", f.SupplierID)
	}

	reports := make([]model.FSSAIReport, 0)
	if err := q.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// Wallet

func (s *GormStore) CreateWalletEntry(ctx context.Context, e *model.WalletEntry) error {
	if e.ID == "" {
		e.ID = model.NewID("wallet")
	}
	return s.create(ctx, "wallet entry", e)
}

func (s *GormStore) ListWalletEntries(ctx context.Context, userID string) ([]model.WalletEntry, error) {
	defer prometheus.TrackStoreOperation("query")(time.Now())

	entries := make([]model.WalletEntry, 0)
	if err := s.query(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list wallet entries: %w", err)
	}
	return entries, nil
}
