package listcache

import (
	"fmt"

	"github.com/dealerdesk/dealerdesk/internal/query"
)

// Entity names the cached list-query namespaces.
const (
	EntityVehicles    = "vehicles"
	EntitySaleRecords = "sales"
)

// Key builds the canonical cache key for a tenant's list query. Every
// recognized parameter is serialized in a fixed order and always present,
// so identical requests collide and distinct requests never do (a free-text
// filter containing separators cannot shift later fields because the field
// order is fixed and the flag field is last).
func Key(entity, tenant string, p query.Params) string {
	page := p.Page
	if page == 0 {
		page = 1
	}
	limit := p.Limit
	if limit == 0 {
		limit = query.DefaultLimit
	}
	return fmt.Sprintf("%spage=%d,limit=%d,sort=%s,filter=%s,deleted=%t",
		TenantPrefix(entity, tenant), page, limit, p.Sort, p.Filter, p.IncludeDeleted)
}

// ScopedKey builds the canonical cache key for a list query narrowed to a
// parent entity, e.g. one vehicle's sale records. The scope participates in
// the key but not in the tenant prefix, so a tenant purge still covers it.
func ScopedKey(entity, tenant, scope string, p query.Params) string {
	return Key(entity, tenant, p) + ",scope=" + scope
}

// TenantPrefix is the shared prefix of every list key belonging to a
// tenant's entity namespace. The invalidator purges by this prefix.
func TenantPrefix(entity, tenant string) string {
	return fmt.Sprintf("list:%s:%s:", entity, tenant)
}

// TenantPattern is the glob pattern matching all of a tenant's list keys
// for one entity, as understood by cache.Enumerator backends.
func TenantPattern(entity, tenant string) string {
	return TenantPrefix(entity, tenant) + "*"
}
