package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/jafarshop/myorders/internal/config"
	"github.com/jafarshop/myorders/internal/domain"
	"github.com/jafarshop/myorders/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/create-office/main.go <office-code> <name> [address] [phone]")
		fmt.Println("Example: go run cmd/create-office/main.go 7 \"Kyiv Central\" \"Khreshchatyk 1\" \"+380441234567\"")
		os.Exit(1)
	}

	code, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil || code <= 0 {
		fmt.Fprintf(os.Stderr, "Office code must be a positive number, got %q\n", os.Args[1])
		os.Exit(1)
	}

	office := &domain.Office{
		Code:     code,
		Name:     os.Args[2],
		IsActive: true,
	}
	if len(os.Args) > 3 {
		office.Address = os.Args[3]
	}
	if len(os.Args) > 4 {
		office.Phone = os.Args[4]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	if existing, err := repos.Office.GetByCode(ctx, code); err == nil {
		fmt.Fprintf(os.Stderr, "Office %d already exists: %s (%s)\n", code, existing.Name, existing.ID)
		os.Exit(1)
	}

	if err := repos.Office.Create(ctx, office); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create office: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Office created successfully!\n\n")
	fmt.Printf("Office ID: %s\n", office.ID.String())
	fmt.Printf("Office Code: %d\n", office.Code)
	fmt.Printf("Office Name: %s\n", office.Name)
	fmt.Printf("\nOrder list office facets with code %d now show this name.\n", office.Code)
}
