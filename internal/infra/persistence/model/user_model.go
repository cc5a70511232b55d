// Package model holds the GORM persistence models. They are exported so the
// GORM Gen tool can build typed queries from them.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(60);not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	Address      string `gorm:"type:varchar(400);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:USER"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Stores  []*StoreModel  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Ratings []*RatingModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
