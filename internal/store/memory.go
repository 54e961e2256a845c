package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Meenakshi-1306/Tutedude/internal/model"
	"github.com/Meenakshi-1306/Tutedude/pkg/logger"
	"github.com/Meenakshi-1306/Tutedude/prometheus"

	"go.uber.org/zap"
)

// table is an insertion-ordered collection keyed by string id
type table[T any] struct {
	rows  []T
	id    func(*T) string
	clone func(T) T
}

func (t *table[T]) index(id string) int {
	for i := range t.rows {
		if t.id(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

func (t *table[T]) get(id string) (T, bool) {
	var zero T
	i := t.index(id)
	if i < 0 {
		return zero, false
	}
	return t.clone(t.rows[i]), true
}

func (t *table[T]) replace(v T) bool {
	i := t.index(t.id(&v))
	if i < 0 {
		return false
	}
	t.rows[i] = t.clone(v)
	return true
}

func (t *table[T]) remove(id string) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

func (t *table[T]) filter(match func(*T) bool) []T {
	out := make([]T, 0)
	for i := range t.rows {
		if match(&t.rows[i]) {
			out = append(out, t.clone(t.rows[i]))
		}
	}
	return out
}

func (t *table[T]) all() []T {
	return t.filter(func(*T) bool { return true })
}

func (t *table[T]) load(rows []T) {
	t.rows = make([]T, 0, len(rows))
	for _, r := range rows {
		t.rows = append(t.rows, t.clone(r))
	}
}

// MemoryStore keeps every record in process memory. With a Snapshotter
// attached, the full state is saved after each mutation.
type MemoryStore struct {
	mu sync.RWMutex

	users        table[model.User]
	products     table[model.Product]
	orders       table[model.Order]
	transactions table[model.Transaction]
	reports      table[model.FSSAIReport]
	wallet       table[model.WalletEntry]

	snapshotter Snapshotter
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty, unpersisted store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        table[model.User]{id: func(u *model.User) string { return u.ID }, clone: cloneUser},
		products:     table[model.Product]{id: func(p *model.Product) string { return p.ID }, clone: identity[model.Product]},
		orders:       table[model.Order]{id: func(o *model.Order) string { return o.ID }, clone: cloneOrder},
		transactions: table[model.Transaction]{id: func(t *model.Transaction) string { return t.ID }, clone: identity[model.Transaction]},
		reports:      table[model.FSSAIReport]{id: func(r *model.FSSAIReport) string { return r.ID }, clone: identity[model.FSSAIReport]},
		wallet:       table[model.WalletEntry]{id: func(e *model.WalletEntry) string { return e.ID }, clone: identity[model.WalletEntry]},
	}
}

// OpenMemoryStore rehydrates a store from the snapshotter and keeps it
// attached so later mutations are saved back.
func OpenMemoryStore(ctx context.Context, s Snapshotter) (*MemoryStore, error) {
	m := NewMemoryStore()
	snap, found, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load store snapshot: %w", err)
	}
	if found {
		m.Restore(snap)
	}
	m.snapshotter = s
	return m, nil
}

// Restore replaces the store contents with a snapshot
func (m *MemoryStore) Restore(snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users.load(snap.Users)
	m.products.load(snap.Products)
	m.orders.load(snap.Orders)
	m.transactions.load(snap.Transactions)
	m.reports.load(snap.FSSAIReports)
	m.wallet.load(snap.WalletEntries)
}

// Snapshot returns a copy of the full store state
func (m *MemoryStore) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *MemoryStore) snapshotLocked() Snapshot {
	return Snapshot{
		Users:         m.users.all(),
		Products:      m.products.all(),
		Orders:        m.orders.all(),
		Transactions:  m.transactions.all(),
		FSSAIReports:  m.reports.all(),
		WalletEntries: m.wallet.all(),
	}
}

// persistLocked saves the state after a mutation. The mutation has already
// happened, so a failed save is logged rather than returned.
func (m *MemoryStore) persistLocked(ctx context.Context) {
	if m.snapshotter == nil {
		return
	}
	defer prometheus.TrackStoreOperation("snapshot_save")(time.Now())
	// the mutation stands even if the request goes away before the save
	if err := m.snapshotter.Save(context.WithoutCancel(ctx), m.snapshotLocked()); err != nil {
		logger.FromGoContext(ctx).Error("Failed to persist store snapshot", zap.Error(err))
	}
}

// Users

func (m *MemoryStore) CreateUser(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.users.filter(func(x *model.User) bool { return strings.EqualFold(x.Email, u.Email) })) > 0 {
		return ErrDuplicateEmail
	}
	if u.ID == "" {
		u.ID = model.NewID("user")
	}
	m.users.rows = append(m.users.rows, cloneUser(*u))
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users.get(id)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &u, nil
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := m.users.filter(func(x *model.User) bool { return strings.EqualFold(x.Email, email) })
	if len(found) == 0 {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return &found[0], nil
}

func (m *MemoryStore) UpdateUser(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.users.replace(*u) {
		return fmt.Errorf("user %s: %w", u.ID, ErrNotFound)
	}
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) ListUsers(_ context.Context, f UserFilter) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users.filter(f.match), nil
}

// Products

func (m *MemoryStore) CreateProduct(ctx context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.ID == "" {
		p.ID = model.NewID("product")
	}
	m.products.rows = append(m.products.rows, *p)
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) GetProduct(_ context.Context, id string) (*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products.get(id)
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (m *MemoryStore) UpdateProduct(ctx context.Context, p *model.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.products.replace(*p) {
		return fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.products.remove(id) {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) ListProducts(_ context.Context, f ProductFilter) ([]model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.products.filter(f.match), nil
}

// Orders

func (m *MemoryStore) CreateOrder(ctx context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if o.ID == "" {
		o.ID = model.NewID("order")
	}
	m.orders.rows = append(m.orders.rows, cloneOrder(*o))
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) GetOrder(_ context.Context, id string) (*model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.orders.get(id)
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return &o, nil
}

func (m *MemoryStore) UpdateOrder(ctx context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.orders.replace(*o) {
		return fmt.Errorf("order %s: %w", o.ID, ErrNotFound)
	}
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) ListOrders(_ context.Context, f OrderFilter) ([]model.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orders.filter(f.match), nil
}

// Transactions

func (m *MemoryStore) CreateTransaction(ctx context.Context, t *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.ID == "" {
		t.ID = model.NewID("txn")
	}
	m.transactions.rows = append(m.transactions.rows, *t)
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) ListTransactions(_ context.Context, f TransactionFilter) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transactions.filter(f.match), nil
}

// FSSAI reports

func (m *MemoryStore) CreateReport(ctx context.Context, r *model.FSSAIReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.ID == "" {
		r.ID = model.NewID("fssai")
	}
	m.reports.rows = append(m.reports.rows, *r)
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) GetReport(_ context.Context, id string) (*model.FSSAIReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports.get(id)
	if !ok {
		return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	return &r, nil
}

func (m *MemoryStore) UpdateReport(ctx context.Context, r *model.FSSAIReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.reports.replace(*r) {
		return fmt.Errorf("report %s: %w", r.ID, ErrNotFound)
	}
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) ListReports(_ context.Context, f ReportFilter) ([]model.FSSAIReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reports.filter(f.match), nil
}

// Wallet

func (m *MemoryStore) CreateWalletEntry(ctx context.Context, e *model.WalletEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.ID == "" {
		e.ID = model.NewID("wallet")
	}
	m.wallet.rows = append(m.wallet.rows, *e)
	m.persistLocked(ctx)
	return nil
}

func (m *MemoryStore) ListWalletEntries(_ context.Context, userID string) ([]model.WalletEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wallet.filter(func(e *model.WalletEntry) bool { return e.UserID == userID }), nil
}

func identity[T any](v T) T { return v }

func cloneUser(u model.User) model.User {
	if u.Latitude != nil {
		lat := *u.Latitude
		u.Latitude = &lat
	}
	if u.Longitude != nil {
		lng := *u.Longitude
		u.Longitude = &lng
	}
	return u
}

func cloneOrder(o model.Order) model.Order {
	if o.Items != nil {
		o.Items = append([]model.OrderItem(nil), o.Items...)
	}
	return o
}
