package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/knowhealth/backend/internal/adapters/database"
	"github.com/knowhealth/backend/internal/adapters/search"
	"github.com/knowhealth/backend/internal/application/services"
	"github.com/knowhealth/backend/internal/auth"
	"github.com/knowhealth/backend/internal/domain/entities"
	"github.com/knowhealth/backend/internal/infrastructure/clients/postgres"
	"github.com/knowhealth/backend/internal/infrastructure/clients/typesense"
	"github.com/knowhealth/backend/internal/infrastructure/observability"
	"github.com/knowhealth/backend/pkg/config"
)

func main() {
	observability.InitLogger("knowhealth-seed", os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if pgClient == nil {
		log.Fatal().Msg("no database configured, nothing to seed")
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err != nil {
		log.Warn().Err(err).Msg("typesense unavailable, seeding database only")
	} else {
		if err := tsClient.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init search schema")
		}
		searchRepo = search.NewTypesenseAdapter(tsClient)
	}

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				reports,
				reviews,
				messages,
				images,
				providers,
				facilities,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	userRepo := database.NewUserAdapter(pgClient)
	providerRepo := database.NewProviderAdapter(pgClient)
	facilityRepo := database.NewFacilityAdapter(pgClient)
	reviewRepo := database.NewReviewAdapter(pgClient)

	reviewService := services.NewReviewService(reviewRepo, providerRepo, facilityRepo)

	now := time.Now().UTC()

	// 1. Users: one operator, one member
	operatorHash, err := auth.HashPassword("operator-dev-password")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}
	memberHash, err := auth.HashPassword("member-dev-password")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	operator := &entities.User{
		ID:           uuid.New().String(),
		Name:         "Directory Operator",
		Email:        "operator@knowhealth.dev",
		PasswordHash: operatorHash,
		AvatarURL:    entities.PlaceholderImageURL("Directory Operator"),
		Role:         entities.RoleOperator,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	member := &entities.User{
		ID:           uuid.New().String(),
		Name:         "Ada Obi",
		Email:        "ada@example.com",
		PasswordHash: memberHash,
		AvatarURL:    entities.PlaceholderImageURL("Ada Obi"),
		Role:         entities.RoleMember,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, u := range []*entities.User{operator, member} {
		if err := userRepo.Create(ctx, u); err != nil {
			log.Warn().Err(err).Str("email", u.Email).Msg("failed to create user")
		}
	}

	// 2. Providers
	providers := []*entities.Provider{
		{
			ID:        uuid.New().String(),
			Name:      "Dr. Amina Bello",
			Specialty: "Cardiology",
			Location:  "Ikeja, Lagos",
			Bio:       "Consultant cardiologist with 15 years of experience in interventional cardiology.",
			Contact: entities.Contact{
				Phone:   "+234 801 234 5678",
				Email:   "a.bello@example.com",
				Address: "12 Allen Avenue, Ikeja",
			},
			Languages:      []string{"English", "Hausa"},
			Qualifications: []string{"MBBS", "FWACP"},
			Insurances:     []string{"Reliance HMO", "AXA Mansard Health"},
			SubmittedBy:    member.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:        uuid.New().String(),
			Name:      "Dr. Chidi Okafor",
			Specialty: "Pediatrics",
			Location:  "Victoria Island, Lagos",
			Bio:       "Pediatrician focused on neonatal care and childhood immunization.",
			Contact: entities.Contact{
				Phone:   "+234 802 345 6789",
				Email:   "c.okafor@example.com",
				Address: "4 Adeola Odeku Street, Victoria Island",
			},
			Languages:      []string{"English", "Igbo"},
			Qualifications: []string{"MBBS", "MRCPCH"},
			Insurances:     []string{"Hygeia HMO", "NHIS"},
			SubmittedBy:    member.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}

	for _, p := range providers {
		p.ImageURL = entities.PlaceholderImageURL(p.Name)
		if err := providerRepo.Create(ctx, p); err != nil {
			log.Warn().Err(err).Str("name", p.Name).Msg("failed to create provider")
			continue
		}
		if searchRepo != nil {
			if err := searchRepo.IndexProvider(ctx, p); err != nil {
				log.Warn().Err(err).Str("name", p.Name).Msg("failed to index provider")
			}
		}
	}

	// 3. Facilities
	facilities := []*entities.Facility{
		{
			ID:           uuid.New().String(),
			Name:         "Lagos State University Teaching Hospital",
			FacilityType: "Teaching Hospital",
			Location:     "Ikeja, Lagos",
			Description:  "Tertiary referral hospital offering the full range of specialist services.",
			Contact: entities.Contact{
				Phone:   "+234 803 456 7890",
				Email:   "info@lasuth.example.com",
				Address: "1-5 Oba Akinjobi Way, Ikeja",
			},
			Services:    []string{"Emergency Care", "Surgery", "Radiology", "Maternity"},
			Amenities:   []string{"Pharmacy", "Parking", "Laboratory"},
			SubmittedBy: member.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:           uuid.New().String(),
			Name:         "MeCure Diagnostics Centre",
			FacilityType: "Diagnostic Lab",
			Location:     "Oshodi, Lagos",
			Description:  "Imaging and pathology laboratory with same-day results for most tests.",
			Contact: entities.Contact{
				Phone:   "+234 804 567 8901",
				Email:   "care@mecure.example.com",
				Address: "KM 20 Apapa-Oshodi Expressway",
			},
			Services:    []string{"MRI", "CT Scan", "Blood Tests"},
			Amenities:   []string{"Wheelchair Access", "Parking"},
			SubmittedBy: member.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	for _, f := range facilities {
		f.ImageURL = entities.PlaceholderImageURL(f.Name)
		if err := facilityRepo.Create(ctx, f); err != nil {
			log.Warn().Err(err).Str("name", f.Name).Msg("failed to create facility")
			continue
		}
		if searchRepo != nil {
			if err := searchRepo.IndexFacility(ctx, f); err != nil {
				log.Warn().Err(err).Str("name", f.Name).Msg("failed to index facility")
			}
		}
	}

	// 4. Reviews through the service so listing aggregates are refreshed
	four := 4
	five := 5
	reviews := []*entities.Review{
		{
			UserID:     member.ID,
			AuthorName: member.Name,
			ProviderID: providers[0].ID,
			Rating:     5,
			Comment:    "Very thorough consultation, took time to explain every result.",
			Criteria:   entities.CriteriaRatings{BedsideManner: &five, WaitTime: &four},
		},
		{
			UserID:     member.ID,
			AuthorName: member.Name,
			FacilityID: facilities[0].ID,
			Rating:     4,
			Comment:    "Long queue at records but the specialist clinics run well once you are in.",
			Criteria:   entities.CriteriaRatings{FacilityQuality: &four},
		},
	}

	for _, r := range reviews {
		if err := reviewService.Create(ctx, r); err != nil {
			log.Warn().Err(err).Msg("failed to create review")
		}
	}

	log.Info().
		Int("users", 2).
		Int("providers", len(providers)).
		Int("facilities", len(facilities)).
		Int("reviews", len(reviews)).
		Msg("seed complete")
}
