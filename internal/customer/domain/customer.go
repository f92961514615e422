package domain

import "time"

// Customer is the directory entry the sale selector binds against.
type Customer struct {
	ID        string
	Label     string
	CreatedAt time.Time
}
