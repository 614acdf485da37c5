// Command adduser creates a user account directly in the database.
// There is no self-service registration; operators run this once per user.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"peakbridge/internal/config"
	"peakbridge/internal/domain"
	"peakbridge/internal/repository/postgres"
)

func main() {
	email := flag.String("email", "", "email address for the new user")
	password := flag.String("password", "", "initial password")
	name := flag.String("name", "", "full name")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("both -email and -password are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	if err := run(*email, *password, *name); err != nil {
		log.Fatal(err)
	}
}

func run(email, password, name string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		FullName:     name,
		IsActive:     true,
	}

	userRepo := postgres.NewUserRepo(db)
	if err := userRepo.Create(context.Background(), user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("created user %s (%s)\n", user.Email, user.ID)
	return nil
}
