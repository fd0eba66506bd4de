package main // Entry point for the maintenance job worker

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/irondb/gateway/internal/database"
	"github.com/irondb/gateway/internal/queue"
)

// The worker is a separate long-running process.  It shares the database
// and the queue transport with the gateway, and nothing else.
func main() {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("missing required env var: DATABASE_URL")
	}

	pool, err := database.Open(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer pool.Close()

	timeout := 10 * time.Minute
	if s := os.Getenv("JOB_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			timeout = d
		}
	}

	log.Printf("worker started, listening for jobs (timeout=%s)", timeout)
	if err := queue.NewWorker(pool, timeout).Run(); err != nil {
		log.Fatal(err)
	}
}
