package entities

import "time"

// Facility represents a healthcare institution listing (hospital,
// clinic, diagnostic lab, etc.).
type Facility struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	FacilityType string    `json:"facility_type" db:"facility_type"`
	Location     string    `json:"location" db:"location"`
	Description  string    `json:"description" db:"description"`
	Contact      Contact   `json:"contact" db:"-"`
	Services     []string  `json:"services" db:"-"`
	Amenities    []string  `json:"amenities" db:"-"`
	Rating       float64   `json:"rating" db:"rating"`
	ReviewCount  int       `json:"review_count" db:"review_count"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	SubmittedBy  string    `json:"submitted_by" db:"submitted_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
