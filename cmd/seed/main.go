// seed registers a demo user and a handful of job applications in the
// configured database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/job-tracker/internal/auth"
	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/ErlanBelekov/job-tracker/internal/infrastructure"
	"github.com/ErlanBelekov/job-tracker/internal/usecase"
	"github.com/ErlanBelekov/job-tracker/internal/validate"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

const (
	seedName     = "Seed User"
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

var jobs = []usecase.CreateJobInput{
	{Company: "Acme", Position: "Backend Engineer"},
	{Company: "Globex", Position: "Platform Engineer", Status: domain.StatusInterview},
	{Company: "Initech", Position: "Go Developer", Status: domain.StatusDeclined},
	{Company: "Umbrella", Position: "SRE"},
	{Company: "Hooli", Position: "Staff Engineer", Status: domain.StatusInterview},
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if len(secret) < 32 {
		log.Fatal("JWT_SECRET must be at least 32 characters")
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}))

	store, err := infrastructure.Open(ctx, dbURL, logger)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	v := validate.New()
	tokens := auth.NewIssuer([]byte(secret), auth.DefaultLifetime)
	authUsecase := usecase.NewAuthUsecase(store.Users, auth.NewHasher(auth.DefaultCost), tokens, v, logger)
	jobUsecase := usecase.NewJobUsecase(store.Jobs, v)

	// Register, or log in if a previous run already did.
	result, err := authUsecase.Register(ctx, usecase.RegisterInput{Name: seedName, Email: seedEmail, Password: seedPassword})
	if errors.Is(err, domain.ErrEmailTaken) {
		result, err = authUsecase.Login(ctx, usecase.LoginInput{Email: seedEmail, Password: seedPassword})
	}
	if err != nil {
		_ = store.Close()
		log.Fatalf("seed user: %v", err)
	}

	var created []*domain.Job
	for _, in := range jobs {
		in.OwnerID = result.User.ID
		job, err := jobUsecase.Create(ctx, in)
		if err != nil {
			_ = store.Close()
			log.Fatalf("create job %s/%s: %v", in.Company, in.Position, err)
		}
		created = append(created, job)
	}

	_ = store.Close()

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Backend:      %s\n", store.Backend)
	fmt.Printf("  User:         %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:      %s\n", result.User.ID)
	fmt.Printf("  Jobs created: %d\n", len(created))
	fmt.Println()
	for _, j := range created {
		fmt.Printf("    %s  %-10s %s @ %s\n", j.ID, j.Status, j.Position, j.Company)
	}
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Printf("  export JWT=%s\n", result.Token)
	fmt.Println()
	fmt.Println("  curl -s http://localhost:8080/api/jobs -H \"Authorization: Bearer $JWT\"")
	fmt.Println("  curl -s 'http://localhost:8080/api/jobs?status=interview' -H \"Authorization: Bearer $JWT\"")
	fmt.Println("  curl -s -X PATCH http://localhost:8080/api/jobs/JOB_ID \\")
	fmt.Println("    -H \"Authorization: Bearer $JWT\" -H 'Content-Type: application/json' \\")
	fmt.Println("    -d '{\"status\":\"interview\"}'")
}
