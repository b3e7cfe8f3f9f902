// seed inserts a test user with a recorded purchase of p1 and prints a
// ready-to-use magic link, for poking at the storefront locally.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/stavrosk/checkout-gate/internal/infrastructure/postgres"
)

const (
	seedEmail   = "seed@test.local"
	seedProduct = "p1"
	seedAmount  = 1999
)

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Upsert test user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id`,
		uuid.NewString(), seedEmail,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Record a purchase under a synthetic session id; re-runs reuse it.
	sessionID := "seed_sess_" + seedProduct
	_, err = pool.Exec(ctx, `
		INSERT INTO purchases (id, user_id, prod_id, sess_id, amt)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (sess_id) DO NOTHING`,
		uuid.NewString(), userID, seedProduct, sessionID, seedAmount,
	)
	if err != nil {
		log.Fatalf("insert purchase: %v", err)
	}

	// Fresh magic link on every run; old ones stay redeemable until expiry.
	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		log.Fatalf("generate token: %v", err)
	}
	rawToken := base64.RawURLEncoding.EncodeToString(raw)
	tokenHash := fmt.Sprintf("%x", sha256.Sum256([]byte(rawToken)))

	_, err = pool.Exec(ctx, `
		INSERT INTO magic_links (id, email, token_hash, expires_at, used)
		VALUES ($1, $2, $3, $4, FALSE)`,
		uuid.NewString(), seedEmail, tokenHash, time.Now().Add(24*time.Hour),
	)
	if err != nil {
		log.Fatalf("insert magic link: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s\n", seedEmail)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Printf("  Owns:     %s (session %s)\n", seedProduct, sessionID)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Printf("  Sign in:  %s/login/%s\n", baseURL, rawToken)
	fmt.Printf("  Premium:  %s/view/%s   (should render)\n", baseURL, seedProduct)
	fmt.Printf("  Gated:    %s/view/p2   (should bounce to /)\n", baseURL)
}
