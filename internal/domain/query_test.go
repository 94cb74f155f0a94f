package domain

import (
	"reflect"
	"testing"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"two expressions with spaces", "a:asc, b:desc", []string{"a:asc", "b:desc"}},
		{"empty segments dropped", " , a:asc,, ", []string{"a:asc"}},
		{"single expression", "price:asc", []string{"price:asc"}},
		{"empty string", "", nil},
		{"only commas", ",,,", nil},
		{"commas inside expressions still split", "_geoPoint(48.8, 2.3):asc", []string{"_geoPoint(48.8", "2.3):asc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSort(tt.expr)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSort(%q) = %#v, want %#v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestSearchQuery_Request(t *testing.T) {
	q := SearchQuery{
		Query:  "shoes",
		Offset: 40,
		Limit:  20,
		Filter: "  brand = nike ",
		Sort:   "price:asc, rating:desc",
	}

	req := q.Request()
	if req.Query != "shoes" || req.Offset != 40 || req.Limit != 20 {
		t.Errorf("unexpected pagination/query: %+v", req)
	}
	if req.Filter != "brand = nike" {
		t.Errorf("filter = %q, want %q", req.Filter, "brand = nike")
	}
	if !reflect.DeepEqual(req.Sort, []string{"price:asc", "rating:desc"}) {
		t.Errorf("sort = %#v", req.Sort)
	}
}

func TestSearchQuery_Paging(t *testing.T) {
	q := DefaultSearchQuery()
	if q.Limit != DefaultSearchLimit || q.Offset != 0 {
		t.Fatalf("unexpected default query: %+v", q)
	}

	q = q.NextPage().NextPage()
	if q.Offset != 2*DefaultSearchLimit {
		t.Errorf("offset after two pages = %d, want %d", q.Offset, 2*DefaultSearchLimit)
	}

	q = q.PrevPage().PrevPage().PrevPage()
	if q.Offset != 0 {
		t.Errorf("offset should clamp at 0, got %d", q.Offset)
	}
}
