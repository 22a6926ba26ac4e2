package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"

	"github.com/clinicdesk/clinic-api/internal/config"
	"github.com/clinicdesk/clinic-api/internal/repository/postgres"
	authService "github.com/clinicdesk/clinic-api/internal/service/auth"
	apperrors "github.com/clinicdesk/clinic-api/pkg/errors"
	"github.com/clinicdesk/clinic-api/pkg/security"
)

// createuser provisions a staff account interactively.
func main() {
	_ = godotenv.Load()

	var dbCfg config.DatabaseConfig
	if err := envconfig.Process("clinic", &dbCfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read database configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.NewDB(dbCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("--- Create New Staff User ---")

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read username: %v\n", err)
		os.Exit(1)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Username cannot be empty.")
		os.Exit(1)
	}

	password, err := readPassword("Enter password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		os.Exit(1)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		os.Exit(1)
	}
	if password != confirm {
		fmt.Println("Passwords do not match.")
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	hasher := security.NewBcryptHasher(12)
	svc := authService.NewService(userRepo, nil, hasher, nil, nil)

	if _, err := svc.CreateUser(context.Background(), username, password); err != nil {
		if apperrors.ReasonOf(err) == apperrors.ReasonDuplicateUsername {
			fmt.Printf("Error: Username %q already exists.\n", username)
		} else {
			fmt.Fprintf(os.Stderr, "An error occurred: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("User %q created successfully!\n", username)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
