package entity

// AdminDashboard holds point-in-time platform counts.
type AdminDashboard struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// OwnerStats summarizes the stores of one owner.
type OwnerStats struct {
	TotalStores      int     `json:"totalStores"`
	TotalRatings     int64   `json:"totalRatings"`
	OverallAvgRating float64 `json:"overallAvgRating"`
}

// OwnerDashboard is what a store owner sees on login.
type OwnerDashboard struct {
	Stores        []*Store   `json:"stores"`
	Stats         OwnerStats `json:"stats"`
	RecentRatings []*Rating  `json:"recentRatings"`
}

// OwnedStoreRatings is one owned store with all of its ratings.
type OwnedStoreRatings struct {
	Store   *Store    `json:"store"`
	Ratings []*Rating `json:"ratings"`
}
