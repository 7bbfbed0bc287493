package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dealerdesk/dealerdesk/internal/domain"
)

var testCfg = Config{
	Sortable: map[string]string{
		"year":      "year",
		"make":      "make",
		"model":     "model",
		"price":     "price",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	Searchable: map[string]string{
		"vin":   "vin",
		"make":  "make",
		"model": "model",
	},
}

func TestBuild_PaginationOffset(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 10, 0},
		{"first page", 1, 10, 10, 0},
		{"page 3 limit 20", 3, 20, 20, 40},
		{"page 2 default limit", 2, 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Build("d-1", Params{Page: tt.page, Limit: tt.limit}, testCfg)
			if err != nil {
				t.Fatal(err)
			}
			if plan.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", plan.Limit, tt.wantLimit)
			}
			if plan.Offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", plan.Offset, tt.wantOffset)
			}
		})
	}
}

func TestBuild_DefaultSort(t *testing.T) {
	plan, err := Build("d-1", Params{}, testCfg)
	if err != nil {
		t.Fatal(err)
	}
	want := Sort{Column: "created_at", Direction: DESC}
	if plan.Sort != want {
		t.Errorf("sort = %+v, want %+v", plan.Sort, want)
	}
}

func TestBuild_Sort(t *testing.T) {
	tests := []struct {
		name    string
		sort    string
		want    Sort
		wantErr bool
	}{
		{"lowercase asc", "price:asc", Sort{Column: "price", Direction: ASC}, false},
		{"uppercase desc", "year:DESC", Sort{Column: "year", Direction: DESC}, false},
		{"mapped column", "createdAt:ASC", Sort{Column: "created_at", Direction: ASC}, false},
		{"bad direction", "price:up", Sort{}, true},
		{"unsortable field", "vin:asc", Sort{}, true},
		{"missing direction", "price", Sort{}, true},
		{"empty field", ":asc", Sort{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Build("d-1", Params{Sort: tt.sort}, testCfg)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidQuery) {
					t.Fatalf("err = %v, want ErrInvalidQuery", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if plan.Sort != tt.want {
				t.Errorf("sort = %+v, want %+v", plan.Sort, tt.want)
			}
		})
	}
}

func TestBuild_TenantScopeAlwaysFirst(t *testing.T) {
	plan, err := Build("d-42", Params{}, testCfg, Eq("vehicle_id", int64(7)))
	if err != nil {
		t.Fatal(err)
	}
	and, ok := plan.Where.(And)
	if !ok || len(and) != 2 {
		t.Fatalf("where = %#v, want And of 2", plan.Where)
	}
	if got := and[0]; got != Eq("dealership_id", "d-42") {
		t.Errorf("first predicate = %#v, want tenant scope", got)
	}
	if got := and[1]; got != Eq("vehicle_id", int64(7)) {
		t.Errorf("second predicate = %#v, want caller narrowing", got)
	}
}

func TestBuild_Filter(t *testing.T) {
	plan, err := Build("d-1", Params{Filter: "honda"}, testCfg)
	if err != nil {
		t.Fatal(err)
	}
	and := plan.Where.(And)
	if len(and) != 2 {
		t.Fatalf("where has %d members, want tenant scope + search", len(and))
	}
	// Columns in deterministic (sorted) order so identical requests build
	// identical plans and therefore identical cache keys.
	want := Or{Contains("make", "honda"), Contains("model", "honda"), Contains("vin", "honda")}
	if !reflect.DeepEqual(and[1], want) {
		t.Errorf("search predicate = %#v, want %#v", and[1], want)
	}
}

func TestBuild_FilterIgnoredWithoutSearchFields(t *testing.T) {
	cfg := Config{Sortable: testCfg.Sortable}
	plan, err := Build("d-1", Params{Filter: "honda"}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	and := plan.Where.(And)
	if len(and) != 1 {
		t.Errorf("where has %d members, want tenant scope only", len(and))
	}
}

func TestBuild_IncludeDeleted(t *testing.T) {
	plan, err := Build("d-1", Params{}, testCfg)
	if err != nil {
		t.Fatal(err)
	}
	if plan.IncludeDeleted {
		t.Error("tombstoned rows included by default")
	}

	plan, err = Build("d-1", Params{IncludeDeleted: true}, testCfg)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.IncludeDeleted {
		t.Error("IncludeDeleted not carried into the plan")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	p := Params{Page: 2, Limit: 5, Sort: "price:asc", Filter: "civic"}
	a, err := Build("d-1", p, testCfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build("d-1", p, testCfg)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different plans")
	}
}
