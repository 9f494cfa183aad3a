// migrate applies the embedded schema migrations.
// Run: go run ./cmd/migrate [up|down|status]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ErlanBelekov/timesheet/internal/infrastructure/postgres"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [up|down|status]\n", os.Args[0])
	}
	flag.Parse()

	cmd := postgres.MigrateUp
	if flag.NArg() > 0 {
		cmd = postgres.MigrateCommand(flag.Arg(0))
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, cmd); err != nil {
		pool.Close()
		log.Fatalf("migrate: %v", err)
	}
}
