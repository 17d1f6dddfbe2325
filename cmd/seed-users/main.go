package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/evalpoint/evalpoint-backend/internal/config"
	"github.com/evalpoint/evalpoint-backend/internal/database"
	"github.com/evalpoint/evalpoint-backend/internal/logger"
	"github.com/evalpoint/evalpoint-backend/internal/model"
	"github.com/evalpoint/evalpoint-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// seedAccount is one development account to provision.
type seedAccount struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      model.Role
	grade     model.Grade
	consent   bool
}

// Development accounts, one per role. Passwords are hashed at bcrypt.MinCost
// to keep seeding fast; the cost lives inside each digest so login
// verification works the same as for production-cost accounts.
var seedAccounts = []seedAccount{
	{email: "admin@evalpoint.dev", password: "Admin123!", firstName: "Admin", lastName: "User", role: model.RoleAdmin},
	{email: "teacher@evalpoint.dev", password: "Teacher123!", firstName: "Jane", lastName: "Teacher", role: model.RoleTeacher},
	{email: "student@evalpoint.dev", password: "Student123!", firstName: "John", lastName: "Student", role: model.RoleStudent, grade: model.Grade5, consent: true},
	{email: "parent@evalpoint.dev", password: "Parent123!", firstName: "Mary", lastName: "Parent", role: model.RoleParent},
}

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to MongoDB ────────────────────────────────────────────
	client, err := database.NewMongoClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)

	userRepo := repository.NewUserRepository(client.Database(cfg.MongoDB))
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to provision user indexes")
	}

	// ─── Seed ──────────────────────────────────────────────────────────
	created := 0
	for _, acc := range seedAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.MinCost)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash seed password")
		}

		user := &model.User{
			Email:                    acc.email,
			Password:                 string(hash),
			FirstName:                acc.firstName,
			LastName:                 acc.lastName,
			Role:                     acc.role,
			IsActive:                 true,
			EmailVerified:            true,
			Grade:                    acc.grade,
			ParentalConsent:          acc.consent,
			AccessibilityPreferences: model.DefaultAccessibilityPreferences(),
		}

		if err := userRepo.Insert(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				fmt.Printf("Skipped %s (already exists)\n", acc.email)
				continue
			}
			log.Fatal().Err(err).Str("email", acc.email).Msg("Failed to insert seed user")
		}

		fmt.Printf("Created %s (%s)\n", acc.email, acc.role)
		created++
	}

	fmt.Printf("\nDone. %d of %d seed users created.\n", created, len(seedAccounts))
}
