// Seeds accounts from a YAML file so the first admin exists before the
// admin-only register endpoint can be used.
// cmd/seed-users/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"paper-review-api/config"
	"paper-review-api/services"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Users []services.RegisterInput `yaml:"users"`
}

func loadSeedFile(path string) (*seedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &seed, nil
}

func main() {
	path := flag.String("file", "seed-users.yaml", "YAML file listing users to create")
	flag.Parse()

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.Load()

	seed, err := loadSeedFile(*path)
	if err != nil {
		log.Fatal(err)
	}

	// Initialize database
	if err := config.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	svc := services.NewUserService(config.DB)
	ctx := context.Background()
	for _, in := range seed.Users {
		user, err := svc.Register(ctx, in)
		switch {
		case err == nil:
			log.Printf("Created %s account for %s\n", user.Role, user.Email)
		case services.IsKind(err, services.KindConflict):
			log.Printf("User %s already exists, skipping\n", in.Email)
		default:
			log.Printf("Failed to create user %s: %v\n", in.Email, err)
		}
	}

	log.Println("User seeding completed!")
}
