package repository

import (
	"strings"
	"testing"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/review/domain"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sort domain.SortOrder
		want string
	}{
		{domain.SortNewest, "r.created_at DESC, r.id"},
		{domain.SortHighest, "r.rating DESC, r.created_at DESC, r.id"},
		{domain.SortLowest, "r.rating ASC, r.created_at DESC, r.id"},
		{domain.SortOrder("'; DROP TABLE reviews; --"), "r.created_at DESC, r.id"},
	}
	for _, tt := range tests {
		if got := orderClause(tt.sort); got != tt.want {
			t.Errorf("orderClause(%q) = %q, want %q", tt.sort, got, tt.want)
		}
	}
}

type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		}
	}
	return nil
}

func TestScanReview(t *testing.T) {
	row := fakeRow{values: []any{"rev-1", "user-1", 4, "Solid movie overall", nil, nil, "alice", "Alice"}}

	var review domain.Review
	if err := scanReview(row, &review); err != nil {
		t.Fatalf("scanReview: %v", err)
	}
	if review.ID != "rev-1" || review.UserID != "user-1" || review.Rating != 4 {
		t.Errorf("unexpected review %+v", review)
	}
	if !strings.HasPrefix(review.Comment, "Solid") || review.Username != "alice" || review.FullName != "Alice" {
		t.Errorf("unexpected display fields %+v", review)
	}
}
