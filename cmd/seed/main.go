// Package main seeds the database with demo accounts, profiles, projects,
// and investments for local development. Idempotent: existing emails are
// skipped, so it is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/config"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/domain"
	"github.com/Prayag-18/TAPP-Hack-Hatch/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// seedPassword is shared by every demo account.
const seedPassword = "password123"

type seedCreator struct {
	email       string
	displayName string
	genre       string
	region      string
}

type seedProject struct {
	creatorEmail string
	title        string
	description  string
	goal         int64
	minInvest    int64
	roi          float64
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.MustLoad()

	db, err := sqlx.Connect("postgres", cfg.DB.DSN)
	if err != nil {
		logger.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	creatorRepo := repository.NewCreatorRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 12)
	if err != nil {
		logger.Error("hash failed", "err", err)
		os.Exit(1)
	}

	// ── Creators + profiles ──────────────────────────────────────────────────
	creators := []seedCreator{
		{"asha@example.com", "Asha Plays", "gaming", "IN"},
		{"leo@example.com", "Leo Cooks", "cooking", "US"},
		{"mira@example.com", "Mira Motors", "automotive", "DE"},
	}

	userIDs := make(map[string]uuid.UUID, len(creators)+4)
	for _, sc := range creators {
		id, created := ensureUser(ctx, logger, userRepo, sc.email, string(hash), domain.RoleCreator)
		userIDs[sc.email] = id
		if !created {
			continue
		}
		now := time.Now().UTC()
		profile := &domain.CreatorProfile{
			ID:           uuid.New(),
			UserID:       id,
			DisplayName:  sc.displayName,
			Bio:          "Demo creator seeded for local development.",
			PrimaryGenre: sc.genre,
			Region:       sc.region,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := creatorRepo.CreateCreator(ctx, profile); err != nil && !errors.Is(err, domain.ErrProfileExists) {
			logger.Error("seed creator profile", "email", sc.email, "err", err)
			os.Exit(1)
		}
	}

	// ── Fans and a brand ─────────────────────────────────────────────────────
	fanEmails := []string{"fan1@example.com", "fan2@example.com", "fan3@example.com"}
	for _, email := range fanEmails {
		id, _ := ensureUser(ctx, logger, userRepo, email, string(hash), domain.RoleFan)
		userIDs[email] = id
	}

	brandID, brandCreated := ensureUser(ctx, logger, userRepo, "acme@example.com", string(hash), domain.RoleBrand)
	if brandCreated {
		now := time.Now().UTC()
		brand := &domain.BrandProfile{
			ID:         uuid.New(),
			UserID:     brandID,
			BrandName:  "Acme Beverages",
			Industry:   "fmcg",
			Region:     "IN",
			BudgetBand: "10k-50k",
		}
		brand.CreatedAt, brand.UpdatedAt = now, now
		if err := creatorRepo.CreateBrand(ctx, brand); err != nil && !errors.Is(err, domain.ErrProfileExists) {
			logger.Error("seed brand profile", "err", err)
			os.Exit(1)
		}
	}

	// ── Projects + investments ───────────────────────────────────────────────
	// Only seeded on first run (skipped when the creator account already
	// existed) to keep reruns from duplicating ledger rows.
	projects := []seedProject{
		{"asha@example.com", "Esports Documentary", "A three-part series on the rise of mobile esports.", 50_000, 100, 12.5},
		{"leo@example.com", "Street Food World Tour", "Twelve episodes, twelve cities, one cuisine each.", 80_000, 250, 9.0},
		{"mira@example.com", "EV Conversion Series", "Converting a classic coupe to electric on camera.", 120_000, 500, 15.0},
	}

	for _, sp := range projects {
		creatorID, ok := userIDs[sp.creatorEmail]
		if !ok {
			continue
		}
		existing, err := projectRepo.GetByCreator(ctx, creatorID)
		if err != nil || len(existing) > 0 {
			continue
		}

		project := &domain.Project{
			ID:            uuid.New(),
			CreatorID:     creatorID,
			Title:         sp.title,
			Description:   sp.description,
			GoalAmount:    decimal.NewFromInt(sp.goal),
			MinInvestment: decimal.NewFromInt(sp.minInvest),
			ProjectedROI:  decimal.NewFromFloat(sp.roi),
			Status:        domain.ProjectStatusLive,
			CreatedAt:     time.Now().UTC(),
		}
		if err := projectRepo.Create(ctx, project); err != nil {
			logger.Error("seed project", "title", sp.title, "err", err)
			os.Exit(1)
		}

		// Each fan invests a different slice so funding figures look real.
		amounts := []int64{500, 1_250, 3_000}
		for i, email := range fanEmails {
			inv := &domain.Investment{
				ID:         uuid.New(),
				ProjectID:  project.ID,
				InvestorID: userIDs[email],
				Amount:     decimal.NewFromInt(amounts[i]),
				Status:     domain.InvestmentStatusSuccess,
				CreatedAt:  time.Now().UTC(),
			}
			if err := investmentRepo.Create(ctx, inv); err != nil {
				logger.Error("seed investment", "project", sp.title, "err", err)
				os.Exit(1)
			}
		}
		logger.Info("seeded project", "title", sp.title, "investments", len(fanEmails))
	}

	logger.Info("seed complete", "users", len(userIDs)+1)
}

// ensureUser creates the account if the email is free. Returns the user's ID
// and whether a new row was written.
func ensureUser(
	ctx context.Context,
	logger *slog.Logger,
	userRepo *repository.UserRepository,
	email, passwordHash string,
	role domain.UserRole,
) (uuid.UUID, bool) {
	if existing, err := userRepo.GetByEmail(ctx, email); err == nil {
		return existing.ID, false
	}

	u := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := userRepo.Create(ctx, u); err != nil {
		logger.Error("seed user", "email", email, "err", err)
		os.Exit(1)
	}
	return u.ID, true
}
