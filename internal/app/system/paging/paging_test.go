package paging

import (
	"net/http/httptest"
	"testing"
)

func TestLimitPlusOne(t *testing.T) {
	want := int64(PageSize + 1)
	got := LimitPlusOne()
	if got != want {
		t.Errorf("LimitPlusOne() = %d, want %d", got, want)
	}
}

func TestParseStart(t *testing.T) {
	tests := map[string]int{
		"/audit":           1,
		"/audit?start=51":  51,
		"/audit?start=0":   1,
		"/audit?start=-4":  1,
		"/audit?start=abc": 1,
	}
	for target, want := range tests {
		if got := ParseStart(httptest.NewRequest("GET", target, nil)); got != want {
			t.Errorf("ParseStart(%q) = %d, want %d", target, got, want)
		}
	}
}

func TestTrimPage(t *testing.T) {
	rows := make([]int, PageSize+1)
	if !TrimPage(&rows) || len(rows) != PageSize {
		t.Errorf("full page: hasNext should be true and len %d, got len %d", PageSize, len(rows))
	}
	short := []int{1, 2, 3}
	if TrimPage(&short) || len(short) != 3 {
		t.Error("short page should be untouched")
	}
}

func TestSlice(t *testing.T) {
	rows := make([]int, PageSize*2+5)
	for i := range rows {
		rows[i] = i + 1
	}

	page, next := Slice(rows, 1)
	if len(page) != PageSize || !next || page[0] != 1 {
		t.Errorf("first page: len=%d next=%v first=%d", len(page), next, page[0])
	}
	page, next = Slice(rows, PageSize*2+1)
	if len(page) != 5 || next {
		t.Errorf("last page: len=%d next=%v", len(page), next)
	}
	page, next = Slice(rows, 1000)
	if page != nil || next {
		t.Error("past the end should be empty")
	}
}

func TestComputeRange(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		shown   int
		hasNext bool
		want    Range
	}{
		{"empty", 1, 0, false, Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1}},
		{"first page", 1, PageSize, true, Range{Start: 1, End: PageSize, PrevStart: 1, NextStart: PageSize + 1, HasNext: true}},
		{"second page", PageSize + 1, 10, false, Range{Start: PageSize + 1, End: PageSize + 10, PrevStart: 1, NextStart: PageSize + 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRange(tt.start, tt.shown, tt.hasNext); got != tt.want {
				t.Errorf("ComputeRange() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
