package model

import "time"

// StoreModel mirrors the 'stores' table. AvgRating and RatingsCount are
// maintained by the rating aggregation path only.
type StoreModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"type:varchar(60);not null"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Address      string  `gorm:"type:varchar(400);not null"`
	OwnerID      int64   `gorm:"not null;index"`
	AvgRating    float64 `gorm:"type:numeric(3,2);not null;default:0"`
	RatingsCount int64   `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner   *UserModel     `gorm:"foreignKey:OwnerID"`
	Ratings []*RatingModel `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}
