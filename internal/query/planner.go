// Package query turns untrusted list-query parameters into a validated,
// tenant-scoped query plan. It is pure: no I/O, deterministic output.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dealerdesk/dealerdesk/internal/domain"
)

// Direction is a sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

const (
	// DefaultLimit is the page size applied when the caller sends none.
	DefaultLimit = 10

	defaultSortColumn = "created_at"
)

// Params are the recognized list-query options, as parsed by the HTTP
// layer. The HTTP layer rejects page/limit below 1 before the planner runs;
// the planner only substitutes defaults for zero values.
type Params struct {
	Page           int
	Limit          int
	Sort           string // "field:ASC|DESC"
	Filter         string // free-text substring search
	IncludeDeleted bool
}

// Config whitelists, per entity type, which API fields may be sorted on and
// which columns free-text search spans. Map values are column names; only
// those values ever reach the store adapter, which is what makes dynamic
// sorting injection-safe.
type Config struct {
	Sortable   map[string]string
	Searchable map[string]string
}

// Sort is a validated ordering.
type Sort struct {
	Column    string
	Direction Direction
}

// Plan is the validated, tenant-scoped output of the planner.
type Plan struct {
	Tenant         string
	Where          Predicate
	Sort           Sort
	Limit          int
	Offset         int
	IncludeDeleted bool
}

// Build validates p against cfg and produces a plan scoped to tenant. Any
// base predicates (caller-supplied narrowing, e.g. "only this vehicle's
// sale records") are ANDed in after the tenant scope.
func Build(tenant string, p Params, cfg Config, base ...Predicate) (Plan, error) {
	page := p.Page
	if page == 0 {
		page = 1
	}
	limit := p.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	srt, err := parseSort(p.Sort, cfg.Sortable)
	if err != nil {
		return Plan{}, err
	}

	where := And{Eq("dealership_id", tenant)}
	where = append(where, base...)

	if p.Filter != "" && len(cfg.Searchable) > 0 {
		search := make(Or, 0, len(cfg.Searchable))
		for _, col := range searchColumns(cfg.Searchable) {
			search = append(search, Contains(col, p.Filter))
		}
		where = append(where, search)
	}

	return Plan{
		Tenant:         tenant,
		Where:          where,
		Sort:           srt,
		Limit:          limit,
		Offset:         (page - 1) * limit,
		IncludeDeleted: p.IncludeDeleted,
	}, nil
}

// parseSort validates a "field:direction" expression against the sortable
// whitelist. An empty expression yields the default (created_at, DESC).
func parseSort(expr string, sortable map[string]string) (Sort, error) {
	if expr == "" {
		return Sort{Column: defaultSortColumn, Direction: DESC}, nil
	}

	field, dir, ok := strings.Cut(expr, ":")
	if !ok || field == "" || dir == "" {
		return Sort{}, fmt.Errorf("%w: sort must be \"field:direction\"", domain.ErrInvalidQuery)
	}

	column, allowed := sortable[field]
	if !allowed {
		return Sort{}, fmt.Errorf("%w: sorting by field %q is not allowed", domain.ErrInvalidQuery, field)
	}

	switch strings.ToUpper(dir) {
	case string(ASC):
		return Sort{Column: column, Direction: ASC}, nil
	case string(DESC):
		return Sort{Column: column, Direction: DESC}, nil
	default:
		return Sort{}, fmt.Errorf("%w: sort direction must be ASC or DESC", domain.ErrInvalidQuery)
	}
}

// searchColumns returns the searchable columns in deterministic order so
// that identical queries always produce identical plans.
func searchColumns(searchable map[string]string) []string {
	cols := make([]string, 0, len(searchable))
	for _, col := range searchable {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}
