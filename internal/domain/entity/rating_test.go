package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingAggregate_Average(t *testing.T) {
	tests := []struct {
		name string
		agg  RatingAggregate
		want float64
	}{
		{name: "empty", agg: RatingAggregate{}, want: 0},
		{name: "single", agg: RatingAggregate{Count: 1, Sum: 5}, want: 5},
		{name: "4,5,3", agg: RatingAggregate{Count: 3, Sum: 12}, want: 4},
		{name: "4,5", agg: RatingAggregate{Count: 2, Sum: 9}, want: 4.5},
		{name: "thirds round down", agg: RatingAggregate{Count: 3, Sum: 13}, want: 4.33},
		{name: "two thirds round up", agg: RatingAggregate{Count: 3, Sum: 14}, want: 4.67},
		{name: "midpoint rounds up", agg: RatingAggregate{Count: 8, Sum: 33}, want: 4.13},
		{name: "midpoint low", agg: RatingAggregate{Count: 8, Sum: 9}, want: 1.13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.agg.Average())
		})
	}
}

func TestWeightedAverage(t *testing.T) {
	stores := []*Store{
		{AvgRating: 4.5, RatingsCount: 2},
		{AvgRating: 3, RatingsCount: 1},
		{AvgRating: 0, RatingsCount: 0},
	}

	assert.Equal(t, 4.0, WeightedAverage(stores))
	assert.Equal(t, 0.0, WeightedAverage(nil))
	assert.Equal(t, 0.0, WeightedAverage([]*Store{{}}))
}

func TestIsValidRatingValue(t *testing.T) {
	for _, v := range []int{1, 2, 3, 4, 5} {
		assert.True(t, IsValidRatingValue(v), v)
	}
	for _, v := range []int{-1, 0, 6, 10} {
		assert.False(t, IsValidRatingValue(v), v)
	}
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(PageRequest{Page: 2, Limit: 10}, 21)
	assert.Equal(t, PageInfo{CurrentPage: 2, TotalPages: 3, TotalItems: 21, ItemsPerPage: 10}, info)

	assert.Equal(t, 0, NewPageInfo(PageRequest{Page: 1, Limit: 10}, 0).TotalPages)
	assert.Equal(t, 1, NewPageInfo(PageRequest{Page: 1, Limit: 10}, 10).TotalPages)
	assert.Equal(t, 10, PageRequest{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 10}.Offset())
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("store_owner")
	assert.True(t, ok)
	assert.Equal(t, RoleStoreOwner, role)

	_, ok = ParseRole("merchant")
	assert.False(t, ok)
}
