package shared

import "testing"

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 45)
	if p.Page != 1 || p.PerPage != 20 {
		t.Fatalf("defaults = page %d per_page %d, want 1/20", p.Page, p.PerPage)
	}
	if p.TotalPages != 3 {
		t.Fatalf("total_pages = %d, want 3", p.TotalPages)
	}
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(1, 10, 0)
	if p.TotalPages != 0 {
		t.Fatalf("total_pages = %d, want 0", p.TotalPages)
	}
}
