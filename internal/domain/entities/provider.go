package entities

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"
)

// Provider represents a healthcare practitioner listing.
type Provider struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Specialty      string    `json:"specialty" db:"specialty"`
	Location       string    `json:"location" db:"location"`
	Bio            string    `json:"bio" db:"bio"`
	Contact        Contact   `json:"contact" db:"-"`
	Languages      []string  `json:"languages" db:"-"`
	Qualifications []string  `json:"qualifications" db:"-"`
	Insurances     []string  `json:"insurances" db:"-"`
	Rating         float64   `json:"rating" db:"rating"`
	ReviewCount    int       `json:"review_count" db:"review_count"`
	ImageURL       string    `json:"image_url" db:"image_url"`
	SubmittedBy    string    `json:"submitted_by" db:"submitted_by"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Contact is the contact block shared by providers and facilities.
type Contact struct {
	Phone   string `json:"phone" db:"phone"`
	Email   string `json:"email" db:"email"`
	Address string `json:"address" db:"address"`
}

// PlaceholderImageURL builds the generated listing image used when no
// image was uploaded: the first two characters of the name rendered as
// initials.
func PlaceholderImageURL(name string) string {
	initials := ""
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			initials += string(unicode.ToUpper(r))
		}
		if len([]rune(initials)) == 2 {
			break
		}
	}
	if initials == "" {
		initials = "KH"
	}
	return fmt.Sprintf("https://placehold.co/400x300?text=%s", url.QueryEscape(initials))
}
