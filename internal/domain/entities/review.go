package entities

import "time"

// ReviewStatus tracks where a review sits in the moderation workflow.
type ReviewStatus string

const (
	ReviewStatusPublished ReviewStatus = "published"
	ReviewStatusReported  ReviewStatus = "reported"
)

// TargetType identifies which kind of listing a review is attached to.
type TargetType string

const (
	TargetTypeProvider TargetType = "provider"
	TargetTypeFacility TargetType = "facility"
)

// Review is a user-submitted rating and comment against exactly one
// provider or facility.
type Review struct {
	ID         string          `json:"id" db:"id"`
	UserID     string          `json:"user_id" db:"user_id"`
	AuthorName string          `json:"author_name" db:"author_name"`
	ProviderID string          `json:"provider_id,omitempty" db:"provider_id"`
	FacilityID string          `json:"facility_id,omitempty" db:"facility_id"`
	Rating     int             `json:"rating" db:"rating"` // 1-5
	Comment    string          `json:"comment" db:"comment"`
	Status     ReviewStatus    `json:"status" db:"status"`
	Criteria   CriteriaRatings `json:"criteria" db:"-"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// CriteriaRatings holds optional per-criterion sub-ratings. Bedside
// manner, medical adherence and specialty care apply to providers only;
// facility quality applies to facilities only; wait time applies to both.
type CriteriaRatings struct {
	BedsideManner    *int `json:"bedside_manner,omitempty" db:"bedside_manner"`
	MedicalAdherence *int `json:"medical_adherence,omitempty" db:"medical_adherence"`
	SpecialtyCare    *int `json:"specialty_care,omitempty" db:"specialty_care"`
	FacilityQuality  *int `json:"facility_quality,omitempty" db:"facility_quality"`
	WaitTime         *int `json:"wait_time,omitempty" db:"wait_time"`
}

// TargetType returns the kind of listing this review references.
func (r *Review) TargetType() TargetType {
	if r.FacilityID != "" {
		return TargetTypeFacility
	}
	return TargetTypeProvider
}

// TargetID returns the id of the listing this review references.
func (r *Review) TargetID() string {
	if r.FacilityID != "" {
		return r.FacilityID
	}
	return r.ProviderID
}

// NormalizeCriteria clears sub-ratings that do not apply to the review's
// target type. A facility review never carries bedside-manner fields.
func (r *Review) NormalizeCriteria() {
	switch r.TargetType() {
	case TargetTypeFacility:
		r.Criteria.BedsideManner = nil
		r.Criteria.MedicalAdherence = nil
		r.Criteria.SpecialtyCare = nil
	case TargetTypeProvider:
		r.Criteria.FacilityQuality = nil
	}
}
