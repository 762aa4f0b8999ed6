package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"homework-tools/api/internal/config"
	"homework-tools/api/internal/extract"
	"homework-tools/api/internal/handle"
	"homework-tools/api/internal/store"
	"homework-tools/api/internal/tutor"
)

func main() {
	cfg := config.Load()

	// Prefer platform PORT env var; fallback to cfg.Port; then to 8000
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	// --- Postgres ---
	dsn := config.ResolveDSN()
	if dsn == "" {
		log.Fatal("database DSN is empty: set DATABASE_URL or POSTGRES_* env vars")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
		if err := store.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("schema: %v", err)
		}
		log.Printf("db connected: %s", safeDSNSummary(dsn))
	}

	tut := tutor.New(cfg)
	parser := extract.NewOrchestrator(extract.New(tut.OpenAI, tut.Gemini))

	h := handle.New(cfg,
		parser,
		tut,
		store.NewSubmissionRepo(db),
		store.NewSessionRepo(db),
		store.NewAttemptRepo(db),
		store.NewMisconceptionRepo(db),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	h.Register(mux)

	addr := ":" + cfg.Port
	log.Printf("homework-tools listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// safeDSNSummary strips credentials from a DSN for logging.
func safeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "postgres"
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}
