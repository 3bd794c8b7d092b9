package domain

import "time"

// User is the owning identity for journal records. The journal core only ever
// references users by ID; credential handling lives with the auth service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"` // unique
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
