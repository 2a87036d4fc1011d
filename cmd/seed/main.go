// Command seed bootstraps the database with an admin account and, optionally,
// demo listings. Admin accounts cannot self-register through the API, so the
// first one has to come from here.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carlisting/internal/config"
	"carlisting/internal/db"
	"carlisting/internal/model"
	"carlisting/internal/repository"
)

func main() {
	demo := flag.Bool("demo", false, "also insert demo dealer and listings")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Car{},
		&model.ServiceRecord{},
		&model.UserFavorite{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)

	adminEmail := getEnv("ADMIN_EMAIL", "admin@carlisting.local")
	adminUsername := getEnv("ADMIN_USERNAME", "admin")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set")
	}

	admin, err := seedUser(ctx, userRepo, adminUsername, adminEmail, adminPassword, model.RoleAdmin)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("admin account ready: %s (%s)", admin.Username, admin.Email)

	if !*demo {
		return
	}

	dealer, err := seedUser(ctx, userRepo, "demo-dealer", "dealer@carlisting.local", adminPassword, model.RoleDealer)
	if err != nil {
		log.Fatalf("seed dealer: %v", err)
	}

	demoCars := []model.Car{
		{
			Price:    decimal.NewFromInt(18500),
			Brand:    "Toyota",
			Model:    "Corolla",
			Year:     2019,
			SellerID: dealer.ID,
			Status:   model.CarStatusActive,
		},
		{
			Price:    decimal.NewFromInt(31000),
			Brand:    "BMW",
			Model:    "320i",
			Year:     2021,
			SellerID: dealer.ID,
			Status:   model.CarStatusActive,
		},
	}
	for i := range demoCars {
		if err := carRepo.Create(ctx, &demoCars[i]); err != nil {
			log.Fatalf("seed car %s %s: %v", demoCars[i].Brand, demoCars[i].Model, err)
		}
	}
	log.Printf("seeded %d demo listings for %s", len(demoCars), dealer.Username)
}

// seedUser creates the user unless an account with the email already exists.
func seedUser(ctx context.Context, repo repository.UserRepository, username, email, password string, role model.Role) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
