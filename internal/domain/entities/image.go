package entities

import "time"

// Image is an uploaded image reference stored for listings.
type Image struct {
	ID        string    `json:"id" db:"id"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
