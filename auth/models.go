// Package auth handles authentication: user registration, login, token
// generation (JWT), token validation, and the bearer middleware that scopes
// every request to the authenticated user.
// This file defines the User model.
package auth

import "time"

// User represents a registered user. The hashed password is tagged `json:"-"`
// so it can never leak into an API response; the plaintext password is never
// stored at all.
type User struct {
	ID             int       `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
