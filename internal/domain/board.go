package domain

import "time"

// Board groups cards. Ownership and sharing live outside this service.
type Board struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
