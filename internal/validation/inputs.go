package validation

// ProviderInput is a provider listing submission before persistence.
type ProviderInput struct {
	Name           string   `json:"name" validate:"required,min=3"`
	Specialty      string   `json:"specialty" validate:"required"`
	Location       string   `json:"location" validate:"required"`
	Bio            string   `json:"bio"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Address        string   `json:"address"`
	Languages      []string `json:"languages"`
	Qualifications []string `json:"qualifications"`
	Insurances     []string `json:"insurances"`
	ImageURL       string   `json:"image_url" validate:"omitempty,url"`
}

// FacilityInput is a facility listing submission. The contact address is
// required for facilities, unlike providers.
type FacilityInput struct {
	Name         string   `json:"name" validate:"required,min=3"`
	FacilityType string   `json:"facility_type" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Description  string   `json:"description"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Address      string   `json:"address" validate:"required,min=5"`
	Services     []string `json:"services"`
	Amenities    []string `json:"amenities"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
}

// ReviewInput is a review submission against exactly one listing.
type ReviewInput struct {
	ProviderID       string `json:"provider_id"`
	FacilityID       string `json:"facility_id"`
	Rating           int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment          string `json:"comment" validate:"required,min=10"`
	BedsideManner    *int   `json:"bedside_manner" validate:"omitempty,gte=1,lte=5"`
	MedicalAdherence *int   `json:"medical_adherence" validate:"omitempty,gte=1,lte=5"`
	SpecialtyCare    *int   `json:"specialty_care" validate:"omitempty,gte=1,lte=5"`
	FacilityQuality  *int   `json:"facility_quality" validate:"omitempty,gte=1,lte=5"`
	WaitTime         *int   `json:"wait_time" validate:"omitempty,gte=1,lte=5"`
}

// ReportInput flags a review for moderation.
type ReportInput struct {
	Reason string `json:"reason" validate:"required,min=10,max=500"`
}

// ContactInput is a public contact-form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=5"`
	Body    string `json:"body" validate:"required,min=10"`
}

// SignupInput creates a new user account.
type SignupInput struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

// LoginInput identifies an existing user by credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ImageInput saves an uploaded image reference.
type ImageInput struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}
