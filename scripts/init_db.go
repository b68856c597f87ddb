//go:build ignore

package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"submission-routing-engine/internal/services/database"
	"submission-routing-engine/internal/services/underwriters"
)

func main() {
	fmt.Println("=== Database Initialization Script ===")
	fmt.Println()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  Warning: Could not load .env file: %v\n", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Println("❌ DATABASE_URL environment variable not set")
		os.Exit(1)
	}

	parsed, err := url.Parse(databaseURL)
	if err != nil {
		fmt.Printf("❌ Invalid DATABASE_URL: %v\n", err)
		os.Exit(1)
	}
	dbName := strings.TrimPrefix(parsed.Path, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Connect to the default 'postgres' database to create ours
	admin := *parsed
	admin.Path = "/postgres"
	fmt.Println("📡 Connecting to PostgreSQL server...")

	adminConn, err := pgx.Connect(ctx, admin.String())
	if err != nil {
		fmt.Printf("❌ Failed to connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}

	var exists bool
	err = adminConn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		fmt.Printf("❌ Failed to check database existence: %v\n", err)
		adminConn.Close(ctx)
		os.Exit(1)
	}

	if !exists {
		fmt.Printf("📦 Creating '%s' database...\n", dbName)
		if _, err := adminConn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{dbName}.Sanitize()); err != nil {
			fmt.Printf("❌ Failed to create database: %v\n", err)
			adminConn.Close(ctx)
			os.Exit(1)
		}
		fmt.Printf("✅ Database '%s' created!\n", dbName)
	} else {
		fmt.Printf("✅ Database '%s' already exists\n", dbName)
	}
	adminConn.Close(ctx)

	fmt.Printf("📡 Connecting to %s database...\n", dbName)
	db, err := database.NewFromURL(databaseURL)
	if err != nil {
		fmt.Printf("❌ Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database successfully!")
	fmt.Println()

	fmt.Println("🚀 Applying schema...")
	if err := db.Migrate(ctx); err != nil {
		fmt.Printf("❌ Failed to apply schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Schema applied successfully!")
	fmt.Println()

	fmt.Println("🌱 Seeding underwriters...")
	repo := database.NewUnderwriterRepository(db)
	count, err := repo.BulkUpsert(ctx, underwriters.Seed())
	if err != nil {
		fmt.Printf("❌ Failed to seed underwriters: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("   📦 Underwriters upserted: %d\n", count)

	list, err := repo.ListUnderwriters(ctx)
	if err != nil {
		fmt.Printf("⚠️  Warning: Could not list underwriters: %v\n", err)
	} else {
		fmt.Println()
		fmt.Println("   📋 Active Underwriters:")
		fmt.Println("   ─────────────────────────────────────────────────────────")
		for _, u := range list {
			fmt.Printf("   %d. %s (%s)\n", u.ID, u.Name, u.Carrier)
			fmt.Printf("      Turnaround: %.1fd | Acceptance: %.0f%% | Workload: %s\n",
				u.AvgTurnaroundDays, u.AcceptanceRate*100, u.CurrentWorkload)
		}
		fmt.Println("   ─────────────────────────────────────────────────────────")
	}

	fmt.Println()
	fmt.Println("🎉 Database initialization completed successfully!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Start the API: go run ./cmd/server")
	fmt.Println("  2. Route a submission: go run ./cmd/brokerctl --db route --extraction extraction.json")
}
