package page

import (
	"reflect"
	"strconv"
	"testing"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		page      int
		size      int
		wantPage  int
		wantPages int
		wantItems []int
	}{
		{"first page", 12, 1, 5, 1, 3, []int{1, 2, 3, 4, 5}},
		{"middle page", 12, 2, 5, 2, 3, []int{6, 7, 8, 9, 10}},
		{"last partial page", 12, 3, 5, 3, 3, []int{11, 12}},
		{"beyond last clamps", 12, 10, 5, 3, 3, []int{11, 12}},
		{"zero clamps to first", 12, 0, 5, 1, 3, []int{1, 2, 3, 4, 5}},
		{"negative clamps to first", 12, -3, 5, 1, 3, []int{1, 2, 3, 4, 5}},
		{"exact multiple", 10, 2, 5, 2, 2, []int{6, 7, 8, 9, 10}},
		{"empty list", 0, 4, 5, 1, 1, []int{}},
		{"default size", 7, 2, 0, 2, 2, []int{6, 7}},
		{"size one", 3, 3, 1, 3, 3, []int{3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Paginate(seq(tc.n), tc.page, tc.size)
			if p.Page != tc.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tc.wantPage)
			}
			if p.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.TotalItems != tc.n {
				t.Errorf("TotalItems = %d, want %d", p.TotalItems, tc.n)
			}
			if p.RequestedPage != tc.page {
				t.Errorf("RequestedPage = %d, want %d", p.RequestedPage, tc.page)
			}
			if !reflect.DeepEqual(p.Items, tc.wantItems) {
				t.Errorf("Items = %v, want %v", p.Items, tc.wantItems)
			}
		})
	}
}

func TestPaginate_PageAlwaysInRange(t *testing.T) {
	for n := 0; n <= 13; n++ {
		items := seq(n)
		for size := -1; size <= 6; size++ {
			for pg := -2; pg <= 16; pg++ {
				p := Paginate(items, pg, size)
				if p.Page < 1 || p.Page > p.TotalPages {
					t.Fatalf("n=%d size=%d page=%d: got page %d of %d", n, size, pg, p.Page, p.TotalPages)
				}
				if len(p.Items) > p.PageSize {
					t.Fatalf("n=%d size=%d page=%d: %d items exceed page size %d", n, size, pg, len(p.Items), p.PageSize)
				}
			}
		}
	}
}

func TestPaginate_Stable(t *testing.T) {
	items := seq(9)
	a := Paginate(items, 2, 4)
	b := Paginate(items, 2, 4)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("pagination not stable: %+v vs %+v", a, b)
	}
	a.Items[0] = 100
	if items[4] == 100 {
		t.Error("page items must not alias the input")
	}
}

func TestPage_Navigation(t *testing.T) {
	p := Paginate(seq(12), 10, 5)
	if !p.Clamped() {
		t.Error("Clamped() = false for page 10 of 3")
	}
	if p.HasNext() || !p.HasPrev() {
		t.Errorf("HasNext=%v HasPrev=%v on last page", p.HasNext(), p.HasPrev())
	}
	first := Paginate(seq(12), 1, 5)
	if first.Clamped() || !first.HasNext() || first.HasPrev() {
		t.Error("unexpected navigation on first page")
	}
}

func TestMap(t *testing.T) {
	p := Map(Paginate(seq(6), 2, 5), strconv.Itoa)
	if !reflect.DeepEqual(p.Items, []string{"6"}) {
		t.Errorf("Items = %v", p.Items)
	}
	if p.Page != 2 || p.TotalPages != 2 || p.TotalItems != 6 {
		t.Errorf("bounds not kept: %+v", p)
	}
}

func TestTotalPages(t *testing.T) {
	if got := TotalPages(0, 5); got != 1 {
		t.Errorf("TotalPages(0,5) = %d", got)
	}
	if got := TotalPages(11, 5); got != 3 {
		t.Errorf("TotalPages(11,5) = %d", got)
	}
	if got := TotalPages(11, 0); got != 3 {
		t.Errorf("TotalPages(11,0) = %d", got)
	}
}
