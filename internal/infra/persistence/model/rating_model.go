package model

import "time"

// RatingModel mirrors the 'ratings' table. (UserID, StoreID) is unique.
type RatingModel struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"not null;uniqueIndex:ratings_user_store_key,priority:1"`
	StoreID   int64 `gorm:"not null;uniqueIndex:ratings_user_store_key,priority:2;index"`
	Rating    int   `gorm:"not null;check:rating_range,rating >= 1 AND rating <= 5"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User  *UserModel  `gorm:"foreignKey:UserID"`
	Store *StoreModel `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
