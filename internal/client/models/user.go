// Package models defines client-side data models used by the ReState CLI.
package models

// User is the signed-in account as shown to the UI. It is rebuilt on every
// current-user check and never persisted.
type User struct {
	ID     string `json:"$id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"` // initials-avatar image URL
}
