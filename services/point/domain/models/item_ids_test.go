package models

import (
	"errors"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func TestParseItemIDs(t *testing.T) {
	tests := []struct {
		in      string
		want    []int64
		wantErr error
	}{
		{"1,2,2", []int64{1, 2}, nil},
		{"3", []int64{3}, nil},
		{" 2 , 1 ,", []int64{2, 1}, nil},
		{"5,,5,4", []int64{5, 4}, nil},
		{"", nil, ErrNoItemIDs},
		{" , ,", nil, ErrNoItemIDs},
		{"1,abc", nil, ErrMalformedItemIDs},
		{"0", nil, ErrMalformedItemIDs},
		{"-3", nil, ErrMalformedItemIDs},
		{"1.5", nil, ErrMalformedItemIDs},
		{"99999999999999999999", nil, ErrMalformedItemIDs},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseItemIDs(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseItemIDs(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("ParseItemIDs(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseItemIDs_DistinctFirstSeen(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ids := rapid.SliceOfN(rapid.Int64Range(1, 50), 1, 20).Draw(t, "ids")

		got, err := ParseItemIDs(JoinItemIDs(ids))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var want []int64
		for _, id := range ids {
			if !slices.Contains(want, id) {
				want = append(want, id)
			}
		}
		if !slices.Equal(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})
}
