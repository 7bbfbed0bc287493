package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dealerdesk/dealerdesk/internal/domain"
	"github.com/dealerdesk/dealerdesk/internal/domain/dealership"
	"github.com/dealerdesk/dealerdesk/internal/domain/sale"
	"github.com/dealerdesk/dealerdesk/internal/domain/user"
	"github.com/dealerdesk/dealerdesk/internal/domain/vehicle"
	"github.com/dealerdesk/dealerdesk/internal/port/cache"
	"github.com/dealerdesk/dealerdesk/internal/port/database"
	"github.com/dealerdesk/dealerdesk/internal/query"
)

// mockStore is an in-memory database.Store. It enforces the same uniqueness
// rules as the real schema, including the one-SOLD-record-per-vehicle index.
type mockStore struct {
	mu          sync.Mutex
	dealerships []dealership.Dealership
	vehicles    []vehicle.Vehicle
	sales       []sale.Record
	users       []user.User

	nextVehicleID int64
	nextSaleID    int64
	nextUserID    int64

	listVehicleCalls   int
	updateVehicleCalls int
	updateSaleCalls    int
}

var _ database.Store = (*mockStore)(nil)

func newMockStore() *mockStore { return &mockStore{} }

func (m *mockStore) CreateDealership(_ context.Context, d *dealership.Dealership) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	m.dealerships = append(m.dealerships, *d)
	return nil
}

func (m *mockStore) GetDealership(_ context.Context, id string) (*dealership.Dealership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.dealerships {
		if m.dealerships[i].ID == id {
			d := m.dealerships[i]
			return &d, nil
		}
	}
	return nil, fmt.Errorf("get dealership %s: %w", id, domain.ErrNotFound)
}

func (m *mockStore) ListDealerships(_ context.Context) ([]dealership.Dealership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dealership.Dealership(nil), m.dealerships...), nil
}

func (m *mockStore) ListVehicles(_ context.Context, plan query.Plan) ([]vehicle.Vehicle, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listVehicleCalls++

	var matched []vehicle.Vehicle
	for _, v := range m.vehicles {
		if v.DealershipID != plan.Tenant {
			continue
		}
		if v.Deleted() && !plan.IncludeDeleted {
			continue
		}
		matched = append(matched, v)
	}
	return pageOf(matched, plan), len(matched), nil
}

func (m *mockStore) GetVehicle(_ context.Context, tenant string, id int64, includeDeleted bool) (*vehicle.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.vehicles {
		v := m.vehicles[i]
		if v.ID == id && v.DealershipID == tenant && (includeDeleted || !v.Deleted()) {
			return &v, nil
		}
	}
	return nil, fmt.Errorf("get vehicle %d: %w", id, domain.ErrNotFound)
}

func (m *mockStore) FindVehicleByVIN(_ context.Context, tenant, vin string) (*vehicle.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.vehicles {
		v := m.vehicles[i]
		if v.DealershipID == tenant && v.VIN == vin {
			return &v, nil
		}
	}
	return nil, fmt.Errorf("find vehicle by vin %s: %w", vin, domain.ErrNotFound)
}

func (m *mockStore) CreateVehicle(_ context.Context, v *vehicle.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.vehicles {
		if existing.DealershipID == v.DealershipID && existing.VIN == v.VIN {
			return fmt.Errorf("create vehicle %s: %w", v.VIN, domain.ErrConflict)
		}
	}
	m.nextVehicleID++
	v.ID = m.nextVehicleID
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	m.vehicles = append(m.vehicles, *v)
	return nil
}

func (m *mockStore) UpdateVehicle(_ context.Context, v *vehicle.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateVehicleCalls++
	for i := range m.vehicles {
		if m.vehicles[i].ID == v.ID && m.vehicles[i].DealershipID == v.DealershipID && !m.vehicles[i].Deleted() {
			v.UpdatedAt = time.Now()
			m.vehicles[i] = *v
			return nil
		}
	}
	return fmt.Errorf("update vehicle %d: %w", v.ID, domain.ErrNotFound)
}

func (m *mockStore) SoftDeleteVehicle(_ context.Context, tenant string, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.vehicles {
		if m.vehicles[i].ID == id && m.vehicles[i].DealershipID == tenant && !m.vehicles[i].Deleted() {
			now := time.Now()
			m.vehicles[i].DeletedAt = &now
			return nil
		}
	}
	return fmt.Errorf("delete vehicle %d: %w", id, domain.ErrNotFound)
}

func (m *mockStore) ListSaleRecords(_ context.Context, plan query.Plan) ([]sale.Record, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vehicleID, scoped := eqInt64(plan.Where, "vehicle_id")
	var matched []sale.Record
	for _, rec := range m.sales {
		if rec.DealershipID != plan.Tenant {
			continue
		}
		if scoped && rec.VehicleID != vehicleID {
			continue
		}
		matched = append(matched, rec)
	}
	return pageOf(matched, plan), len(matched), nil
}

func (m *mockStore) GetSaleRecord(_ context.Context, tenant string, id int64) (*sale.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sales {
		if m.sales[i].ID == id && m.sales[i].DealershipID == tenant {
			rec := m.sales[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("get sale record %d: %w", id, domain.ErrNotFound)
}

func (m *mockStore) CreateSaleRecord(_ context.Context, rec *sale.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.Status == sale.StatusSold && m.soldExistsLocked(rec.DealershipID, rec.VehicleID, 0) {
		return fmt.Errorf("create sale record for vehicle %d: %w", rec.VehicleID, domain.ErrConflict)
	}
	m.nextSaleID++
	rec.ID = m.nextSaleID
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	m.sales = append(m.sales, *rec)
	return nil
}

func (m *mockStore) UpdateSaleRecord(_ context.Context, rec *sale.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateSaleCalls++
	if rec.Status == sale.StatusSold && m.soldExistsLocked(rec.DealershipID, rec.VehicleID, rec.ID) {
		return fmt.Errorf("update sale record %d: %w", rec.ID, domain.ErrConflict)
	}
	for i := range m.sales {
		if m.sales[i].ID == rec.ID && m.sales[i].DealershipID == rec.DealershipID {
			rec.UpdatedAt = time.Now()
			m.sales[i] = *rec
			return nil
		}
	}
	return fmt.Errorf("update sale record %d: %w", rec.ID, domain.ErrNotFound)
}

func (m *mockStore) SoldRecordExists(_ context.Context, tenant string, vehicleID, excludeRecordID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.soldExistsLocked(tenant, vehicleID, excludeRecordID), nil
}

func (m *mockStore) soldExistsLocked(tenant string, vehicleID, excludeRecordID int64) bool {
	for _, rec := range m.sales {
		if rec.DealershipID == tenant && rec.VehicleID == vehicleID &&
			rec.Status == sale.StatusSold && rec.ID != excludeRecordID {
			return true
		}
	}
	return false
}

func (m *mockStore) ListUsers(_ context.Context, tenant string) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []user.User
	for _, u := range m.users {
		if u.DealershipID == tenant {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *mockStore) GetUser(_ context.Context, tenant string, id int64) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id && m.users[i].DealershipID == tenant {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user %d: %w", id, domain.ErrNotFound)
}

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.DealershipID == u.DealershipID && existing.Email == u.Email {
			return fmt.Errorf("create user %s: %w", u.Email, domain.ErrConflict)
		}
	}
	m.nextUserID++
	u.ID = m.nextUserID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users = append(m.users, *u)
	return nil
}

// pageOf applies the plan's offset and limit to rows.
func pageOf[T any](rows []T, plan query.Plan) []T {
	start := plan.Offset
	if start > len(rows) {
		start = len(rows)
	}
	end := start + plan.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// eqInt64 finds an int64 equality predicate on column within a conjunction.
func eqInt64(p query.Predicate, column string) (int64, bool) {
	and, ok := p.(query.And)
	if !ok {
		return 0, false
	}
	for _, member := range and {
		f, ok := member.(query.FieldOp)
		if ok && f.Column == column && f.Op == query.OpEq {
			v, ok := f.Value.(int64)
			return v, ok
		}
	}
	return 0, false
}

// memCache is an in-memory cache.Cache with key enumeration, shared by the
// list cache and the invalidator in tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

var (
	_ cache.Cache      = (*memCache)(nil)
	_ cache.Enumerator = (*memCache)(nil)
)

func newMemCache() *memCache { return &memCache{entries: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memCache) Keys(_ context.Context, pattern string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
