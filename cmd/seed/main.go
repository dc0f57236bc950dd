package main

import (
	"context"
	"log"

	"go-stock-management/internal/model"
	"go-stock-management/internal/repository"
	"go-stock-management/pkg/database"

	"github.com/joho/godotenv"
)

// Seeds one user per role for local development.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB()
	db.AutoMigrate(&model.User{})

	ctx := context.Background()
	userRepo := repository.NewUserRepo(db)

	seeds := []struct {
		email    string
		name     string
		role     model.UserRole
		password string
	}{
		{"admin@example.com", "Administrator", model.RoleAdmin, "admin123"},
		{"manager@example.com", "Store Manager", model.RoleManager, "manager123"},
		{"staff@example.com", "Store Staff", model.RoleStaff, "staff123"},
	}

	for _, s := range seeds {
		if _, err := userRepo.FindByEmail(ctx, s.email); err == nil {
			log.Printf("User %s already exists, skipping", s.email)
			continue
		}

		user := &model.User{
			Email:    s.email,
			Name:     s.name,
			Role:     s.role,
			IsActive: true,
		}
		user.CreatedBy = "system"
		user.UpdatedBy = "system"
		if err := user.SetPassword(s.password); err != nil {
			log.Fatalf("Failed to hash password for %s: %v", s.email, err)
		}

		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", s.email, err)
		}
		log.Printf("Created %s user: %s", s.role, s.email)
	}

	log.Println("Seeding complete")
}
