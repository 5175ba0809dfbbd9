package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_ReviewRequiresExactlyOneTarget(t *testing.T) {
	tests := []struct {
		name       string
		providerID string
		facilityID string
		wantIssue  bool
	}{
		{"provider only", "prov-1", "", false},
		{"facility only", "", "fac-1", false},
		{"both targets", "prov-1", "fac-1", true},
		{"no target", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := ReviewInput{
				ProviderID: tt.providerID,
				FacilityID: tt.facilityID,
				Rating:     4,
				Comment:    "a perfectly adequate comment",
			}

			issues := Validate(input)
			if tt.wantIssue {
				assert.Contains(t, issues, "target: exactly one of provider_id or facility_id is required")
			} else {
				assert.Empty(t, issues)
			}
		})
	}
}

func TestValidate_ReviewFieldConstraints(t *testing.T) {
	six := 6
	input := ReviewInput{
		ProviderID:    "prov-1",
		Rating:        0,
		Comment:       "short",
		BedsideManner: &six,
	}

	issues := Validate(input)
	assert.Contains(t, issues, "rating: is required")
	assert.Contains(t, issues, "comment: must be at least 10 characters")
	assert.Contains(t, issues, "bedside_manner: must be 5 or less")
}

func TestValidate_IssuesUseJSONFieldNames(t *testing.T) {
	issues := Validate(FacilityInput{})

	assert.Contains(t, issues, "name: is required")
	assert.Contains(t, issues, "facility_type: is required")
	assert.NotContains(t, issues, "FacilityType: is required")
}

func TestValidate_OptionalEmailAndURL(t *testing.T) {
	input := ProviderInput{
		Name:      "Dr. Amina Bello",
		Specialty: "Cardiology",
		Location:  "Lagos",
	}
	assert.Empty(t, Validate(input))

	input.Email = "not-an-email"
	input.ImageURL = "not a url"
	issues := Validate(input)
	assert.Contains(t, issues, "email: must be a valid email address")
	assert.Contains(t, issues, "image_url: must be a valid URL")
}

func TestNormalizeList(t *testing.T) {
	assert.Equal(t, []string{"English", "Hausa"}, NormalizeList([]string{" English ", "", "Hausa"}))
	assert.Equal(t, []string{}, NormalizeList(nil))
}
