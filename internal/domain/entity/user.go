// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account in the system. PasswordHash never leaves the service.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the public subset of a user embedded in other resources.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary returns the embeddable view of the user.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}

	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserDetail is a user together with the stores they own.
type UserDetail struct {
	*User
	Stores []*Store `json:"stores"`
}
