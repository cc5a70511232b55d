package entity

import "time"

// Store is a rateable business owned by a user. AvgRating and RatingsCount
// are derived from the store's ratings and only written by the aggregation path.
type Store struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Address      string       `json:"address"`
	OwnerID      int64        `json:"ownerId"`
	Owner        *UserSummary `json:"owner,omitempty"`
	AvgRating    float64      `json:"avgRating"`
	RatingsCount int64        `json:"ratingsCount"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// StoreSummary is the public subset of a store embedded in ratings.
type StoreSummary struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Summary returns the embeddable view of the store.
func (s *Store) Summary() *StoreSummary {
	if s == nil {
		return nil
	}

	return &StoreSummary{ID: s.ID, Name: s.Name, Address: s.Address}
}

// StoreDetail is a store with its most recent ratings.
type StoreDetail struct {
	*Store
	RecentRatings []*Rating `json:"recentRatings"`
}

// StoreWithUserRating is a store as seen by a rating user.
type StoreWithUserRating struct {
	*Store
	UserRating *int `json:"userRating"`
}
