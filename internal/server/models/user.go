package models

import "time"

// User is a registered storefront account. Password is stored as given.
type User struct {
	ID        string
	Email     string
	Password  string
	FirstName string
	LastName  string
	CreatedAt time.Time
}
