package entity

import "time"

const (
	// MinRating is the lowest accepted star value.
	MinRating = 1
	// MaxRating is the highest accepted star value.
	MaxRating = 5
)

// Rating is one user's score for one store. At most one exists per (UserID, StoreID).
type Rating struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userId"`
	StoreID   int64         `json:"storeId"`
	Rating    int           `json:"rating"`
	User      *UserSummary  `json:"user,omitempty"`
	Store     *StoreSummary `json:"store,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// IsValidRatingValue reports whether v is an accepted star value.
func IsValidRatingValue(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// RatingAggregate is the count and sum of a set of ratings.
type RatingAggregate struct {
	Count int64
	Sum   int64
}

// Average returns Sum/Count rounded half-up to two decimals, or 0 for an empty set.
// Rounding is done on integers so midpoints such as 4.125 round up exactly.
func (a RatingAggregate) Average() float64 {
	return RoundedRatio(a.Sum, a.Count)
}

// RoundedRatio returns num/den rounded half-up to two decimals, 0 when den <= 0.
// num must be non-negative.
func RoundedRatio(num, den int64) float64 {
	if den <= 0 {
		return 0
	}

	cents := (num*200 + den) / (2 * den)

	return float64(cents) / 100
}

// WeightedAverage combines per-store averages weighted by their counts.
// Stored averages are already rounded, so the result is recomputed from cents.
func WeightedAverage(stores []*Store) float64 {
	var weighted, total int64
	for _, s := range stores {
		if s == nil || s.RatingsCount == 0 {
			continue
		}
		weighted += toCents(s.AvgRating) * s.RatingsCount
		total += s.RatingsCount
	}

	return RoundedRatio(weighted, total*100)
}

func toCents(v float64) int64 {
	return int64(v*100 + 0.5)
}
