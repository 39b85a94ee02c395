package models

import "time"

// User is the account row. PasswordHash never leaves the repository layer.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Bio       string    `json:"bio"`
	Interests []string  `json:"interests"`
	Location  string    `json:"location"`
	Phone     string    `json:"phone"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUpdate supports PATCH-style updates via key presence.
type ProfileUpdate struct {
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	Bio       *string   `json:"bio"`
	Interests *[]string `json:"interests"`
	Location  *string   `json:"location"`
	Phone     *string   `json:"phone"`
}
