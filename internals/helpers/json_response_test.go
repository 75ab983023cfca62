package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestResolvePaging(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults", "", 1, 10, 0},
		{"página explícita", "page=3", 3, 10, 20},
		{"per_page explícito", "page=2&per_page=25", 2, 25, 25},
		{"alias limit", "limit=15", 1, 15, 0},
		{"per_page gana sobre limit", "per_page=30&limit=5", 1, 30, 0},
		{"tope máximo", "per_page=500", 1, 100, 0},
		{"página inválida cae a 1", "page=-2", 1, 10, 0},
		{"per_page inválido cae al default", "per_page=abc", 1, 10, 0},
	}

	var got Paging
	app := fiber.New()
	app.Get("/t", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 10, 100)
		return c.SendStatus(fiber.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/t?"+tt.query, nil)
			if _, err := app.Test(req); err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if got.Page != tt.wantPage || got.PerPage != tt.wantPerPage || got.Offset != tt.wantOffset {
				t.Errorf("got %+v, esperaba page=%d per_page=%d offset=%d",
					got, tt.wantPage, tt.wantPerPage, tt.wantOffset)
			}
		})
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		perPage    int
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{"vacío", 0, 1, 10, 1, false, false},
		{"una página justa", 10, 1, 10, 1, false, false},
		{"redondeo hacia arriba", 11, 1, 10, 2, true, false},
		{"página intermedia", 45, 3, 10, 5, true, true},
		{"última página", 45, 5, 10, 5, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPaginationFromPage(tt.total, tt.page, tt.perPage)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, esperaba %d", p.TotalPages, tt.wantPages)
			}
			if p.HasNext != tt.wantNext || p.HasPrev != tt.wantPrev {
				t.Errorf("HasNext=%v HasPrev=%v, esperaba %v/%v",
					p.HasNext, p.HasPrev, tt.wantNext, tt.wantPrev)
			}
		})
	}
}
