package pagination

import (
	"net/url"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		opts  []Option
		want  Params
	}{
		{"defaults", 0, 0, nil, Params{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{"explicit", 3, 10, nil, Params{Page: 3, Limit: 10, Offset: 20}},
		{"negative", -2, -5, nil, Params{Page: 1, Limit: DefaultLimit, Offset: 0}},
		{"capped", 2, 500, nil, Params{Page: 2, Limit: MaxLimit, Offset: MaxLimit}},
		{"custom default", 0, 0, []Option{WithDefaultLimit(5)}, Params{Page: 1, Limit: 5}},
		{"custom max", 1, 80, []Option{WithMaxLimit(50)}, Params{Page: 1, Limit: 50}},
		{"default above max", 0, 0, []Option{WithDefaultLimit(70), WithMaxLimit(50)}, Params{Page: 1, Limit: 50}},
		{"ignored options", 0, 0, []Option{WithDefaultLimit(0), WithMaxLimit(-1)}, Params{Page: 1, Limit: DefaultLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.page, tt.limit, tt.opts...); got != tt.want {
				t.Fatalf("New(%d, %d) = %+v, want %+v", tt.page, tt.limit, got, tt.want)
			}
		})
	}
}

func TestLimit(t *testing.T) {
	if got := Limit(0); got != DefaultLimit {
		t.Fatalf("Limit(0) = %d", got)
	}
	if got := Limit(1000); got != MaxLimit {
		t.Fatalf("Limit(1000) = %d", got)
	}
	if got := Limit(7, WithMaxLimit(5)); got != 5 {
		t.Fatalf("Limit(7) with max 5 = %d", got)
	}
}

func TestFromQuery(t *testing.T) {
	q := url.Values{"page": {"2"}, "limit": {"15"}}
	if got := FromQuery(q); got != (Params{Page: 2, Limit: 15, Offset: 15}) {
		t.Fatalf("unexpected params: %+v", got)
	}
	q = url.Values{"page": {"two"}, "limit": {"lots"}}
	if got := FromQuery(q); got != (Params{Page: 1, Limit: DefaultLimit}) {
		t.Fatalf("unexpected params: %+v", got)
	}
}

func TestHasNext(t *testing.T) {
	if !HasNext(0, 10, 11) {
		t.Fatal("expected another page")
	}
	if HasNext(10, 10, 20) {
		t.Fatal("expected the last page")
	}
}
