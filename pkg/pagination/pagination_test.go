package pagination_test

import (
	"math"
	"net/url"
	"slices"
	"testing"

	"github.com/JaimeStill/pledge/pkg/pagination"
	"github.com/JaimeStill/pledge/pkg/query"
)

var cfg = pagination.Config{
	DefaultPageSize: 20,
	MaxPageSize:     100,
}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		request      pagination.PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"valid values unchanged", pagination.PageRequest{Page: 2, PageSize: 25}, 2, 25},
		{"zero page becomes 1", pagination.PageRequest{Page: 0, PageSize: 25}, 1, 25},
		{"negative page becomes 1", pagination.PageRequest{Page: -1, PageSize: 25}, 1, 25},
		{"zero page size gets default", pagination.PageRequest{Page: 1, PageSize: 0}, 1, 20},
		{"negative page size gets default", pagination.PageRequest{Page: 1, PageSize: -10}, 1, 20},
		{"page size exceeding max gets capped", pagination.PageRequest{Page: 1, PageSize: 200}, 1, 100},
		{"huge page gets capped", pagination.PageRequest{Page: math.MaxInt, PageSize: 100}, math.MaxInt32 / 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.Normalize(cfg)

			if tt.request.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", tt.request.Page, tt.wantPage)
			}
			if tt.request.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", tt.request.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{
		"page":      {"3"},
		"page_size": {"500"},
		"search":    {"ada"},
		"sort":      {"-created_at,name"},
	}

	req := pagination.PageRequestFromQuery(values, cfg)

	if req.Page != 3 {
		t.Errorf("Page = %d, want 3", req.Page)
	}
	if req.PageSize != 100 {
		t.Errorf("PageSize = %d, want capped 100", req.PageSize)
	}
	if req.Search == nil || *req.Search != "ada" {
		t.Errorf("Search = %v, want ada", req.Search)
	}

	wantSort := []query.SortField{{Field: "created_at", Descending: true}, {Field: "name"}}
	if !slices.Equal(req.Sort, wantSort) {
		t.Errorf("Sort = %v, want %v", req.Sort, wantSort)
	}
}

func TestPageRequestFromQuery_HugePage(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{"page": {"9223372036854775807"}}, cfg)

	if offset := (req.Page - 1) * req.PageSize; offset < 0 || offset > math.MaxInt32 {
		t.Errorf("offset = %d for page %d size %d", offset, req.Page, req.PageSize)
	}
}

func TestPageRequestFromQuery_Empty(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, cfg)

	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("got page %d size %d, want 1 and 20", req.Page, req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", *req.Search)
	}
	if req.Sort != nil {
		t.Errorf("Sort = %v, want nil", req.Sort)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		pageSize  int
		wantPages int
	}{
		{"empty", 0, 20, 1},
		{"exact", 40, 20, 2},
		{"remainder", 41, 20, 3},
		{"single", 5, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pagination.NewPageResult[string](nil, tt.total, 1, tt.pageSize)

			if r.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", r.TotalPages, tt.wantPages)
			}
			if r.Data == nil {
				t.Error("Data is nil, want empty slice")
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	env := &pagination.ConfigEnv{
		DefaultPageSize: "TEST_PAGINATION_DEFAULT",
		MaxPageSize:     "TEST_PAGINATION_MAX",
	}

	t.Run("defaults", func(t *testing.T) {
		var c pagination.Config
		if err := c.Finalize(env); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.DefaultPageSize != 20 || c.MaxPageSize != 100 {
			t.Errorf("got %+v, want defaults 20/100", c)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PAGINATION_DEFAULT", "10")
		t.Setenv("TEST_PAGINATION_MAX", "50")

		var c pagination.Config
		if err := c.Finalize(env); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.DefaultPageSize != 10 || c.MaxPageSize != 50 {
			t.Errorf("got %+v, want 10/50", c)
		}
	})

	t.Run("default above max", func(t *testing.T) {
		c := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
		if err := c.Finalize(nil); err == nil {
			t.Error("Finalize() succeeded, want error")
		}
	})
}
