package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vinylshop/internal/auth"
	"vinylshop/pkg/database"
)

// Bootstraps the first admin account, or promotes an existing user.
func main() {
	email := envOr("ADMIN_EMAIL", "admin@vinylshop.local")
	password := envOr("ADMIN_PASSWORD", "admin123")
	firstName := envOr("ADMIN_FIRST_NAME", "Admin")
	lastName := envOr("ADMIN_LAST_NAME", "Vinylshop")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := auth.NewRepo(db)

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("lookup failed: %v", err)
	}
	if existing != nil {
		if existing.Role == auth.RoleAdmin {
			log.Printf("✅ admin already exists: %s", email)
			return
		}
		if err := repo.PromoteToAdmin(ctx, email); err != nil {
			log.Fatalf("promote failed: %v", err)
		}
		log.Printf("✅ promoted %s to admin", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash failed: %v", err)
	}

	u := auth.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         auth.RoleAdmin,
		IsActive:     true,
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Fatalf("create admin failed: %v", err)
	}

	log.Printf("✅ admin created: %s", email)
	log.Printf("⚠️  change the default password before going live")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
