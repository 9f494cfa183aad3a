// seed inserts a demo user with a few clients and work entries into the local
// dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/ErlanBelekov/timesheet/internal/infrastructure/postgres"
)

const seedEmail = "seed@test.local"

type entrySpec struct {
	daysAgo     int
	hours       float64
	description string
}

var seedClients = []struct {
	name        string
	description string
	entries     []entrySpec
}{
	{"Acme Corp", "Retainer, billed monthly", []entrySpec{
		{0, 3.5, "API review"},
		{1, 7.25, "Billing integration"},
		{2, 8, "Billing integration"},
		{5, 1.5, "Weekly sync"},
	}},
	{"Globex", "Fixed price migration", []entrySpec{
		{1, 4, "Schema design"},
		{3, 6.75, "Data backfill"},
	}},
	{"Initech", "", nil},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set; run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	users := postgres.NewUserRepository(pool)
	clients := postgres.NewClientRepository(pool)
	entries := postgres.NewWorkEntryRepository(pool)

	user, created, err := users.FindOrCreateByEmail(ctx, seedEmail)
	if err != nil {
		pool.Close()
		log.Fatalf("upsert user: %v", err)
	}

	// Re-running the seed starts from a clean slate for this user.
	removed, err := clients.DeleteAll(ctx, user.ID)
	if err != nil {
		pool.Close()
		log.Fatalf("reset clients: %v", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var clientIDs []int64
	var entryCount int

	for _, sc := range seedClients {
		c := &domain.Client{UserID: user.ID, Name: sc.name}
		if sc.description != "" {
			d := sc.description
			c.Description = &d
		}
		c, err = clients.Create(ctx, c)
		if err != nil {
			pool.Close()
			log.Fatalf("create client %s: %v", sc.name, err)
		}
		clientIDs = append(clientIDs, c.ID)

		for _, es := range sc.entries {
			d := es.description
			_, err := entries.Create(ctx, &domain.WorkEntry{
				UserID:      user.ID,
				ClientID:    c.ID,
				Hours:       es.hours,
				Description: &d,
				Date:        today.AddDate(0, 0, -es.daysAgo),
			})
			if err != nil {
				pool.Close()
				log.Fatalf("create work entry for %s: %v", sc.name, err)
			}
			entryCount++
		}
	}

	pool.Close()

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s (new: %t)\n", seedEmail, created)
	fmt.Printf("  User ID:       %s\n", user.ID)
	fmt.Printf("  Clients:       %d  (removed %d from a previous run)\n", len(clientIDs), removed)
	fmt.Printf("  Work entries:  %d\n", entryCount)
	fmt.Printf("  Client IDs:    %v\n", clientIDs)
	fmt.Println()
	fmt.Println("How to test (AUTH_VARIANT=bearer_session):")
	fmt.Println()
	fmt.Println("  Step 1: log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/api/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\"}'\n", seedEmail)
	fmt.Println("    # → {\"message\":\"Login successful\",\"token\":\"eyJ...\",...}")
	fmt.Println()
	fmt.Println("  Step 2: list clients and entries:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/api/clients -H \"Authorization: Bearer $JWT\"")
	fmt.Println("    curl -s http://localhost:8080/api/work-entries -H \"Authorization: Bearer $JWT\"")
	fmt.Println()
	if len(clientIDs) > 0 {
		fmt.Println("  Step 3: export a report:")
		fmt.Println()
		fmt.Printf("    curl -s http://localhost:8080/api/reports/export/csv/%d -H \"Authorization: Bearer $JWT\"\n", clientIDs[0])
		fmt.Println()
	}
	fmt.Println("  With AUTH_VARIANT=header_email send the address instead of a token:")
	fmt.Println()
	fmt.Printf("    curl -s http://localhost:8080/api/clients -H 'X-User-Email: %s'\n", seedEmail)
}
