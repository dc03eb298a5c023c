package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookameal/internal/config"
	"bookameal/internal/db"
	"bookameal/internal/model"
	"bookameal/internal/repository"
)

// sampleMeals is the starter catalog. Seeding is idempotent: existing meals
// are updated in place, orders are never touched.
var sampleMeals = []model.Meal{
	{Name: "ugali", Price: 20, InMenu: false},
	{Name: "chapo", Price: 20, InMenu: true},
	{Name: "rice and beans", Price: 450, InMenu: true},
	{Name: "pilau", Price: 250, InMenu: false},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Meal{}, &model.Order{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	mealRepo := repository.NewMealRepository(gormDB)

	if err := seedAdmin(ctx, userRepo, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created, updated, err := seedMeals(ctx, mealRepo, sampleMeals)
	if err != nil {
		log.Fatalf("Failed to seed meals: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New meals created: %d", created)
	log.Printf("  - Existing meals updated: %d", updated)
}

// seedAdmin ensures the default admin account exists. An existing account
// with the configured email is left untouched, password included.
func seedAdmin(ctx context.Context, repo repository.UserRepository, email, password string) error {
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing != nil {
		log.Printf("Admin account %s already exists, skipping", email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username: "admin",
		Email:    email,
		Password: string(hashed),
		Admin:    true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin account %s created", email)
	return nil
}

// seedMeals creates or updates the starter catalog by meal name.
func seedMeals(ctx context.Context, repo repository.MealRepository, meals []model.Meal) (created int, updated int, err error) {
	for _, meal := range meals {
		existing, err := repo.FindByName(ctx, meal.Name)
		if err != nil && err != gorm.ErrRecordNotFound {
			return created, updated, err
		}

		if existing != nil {
			existing.Price = meal.Price
			existing.InMenu = meal.InMenu
			if err := repo.Update(ctx, existing); err != nil {
				return created, updated, err
			}
			updated++
		} else {
			m := meal
			if err := repo.Create(ctx, &m); err != nil {
				return created, updated, err
			}
			created++
		}
	}
	return created, updated, nil
}
