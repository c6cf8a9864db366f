// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account record owned by the users repository.
// PasswordHash is never rendered to clients.
type User struct {
	ID           int64     `db:"id"`
	UserName     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}
