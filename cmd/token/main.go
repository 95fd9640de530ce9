// Command token mints a bearer token for local testing and service callers.
package main

import (
	"affiliate-ledger/internal/auth"
	authProcessor "affiliate-ledger/internal/auth/processor"
	"affiliate-ledger/internal/observability"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	userFlag := flag.String("user", "", "user id to embed as the token subject (random when empty)")
	role := flag.String("role", auth.RolePartner, "role to embed: partner, admin or service")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	userID := uuid.New()
	if *userFlag != "" {
		parsed, err := uuid.Parse(*userFlag)
		if err != nil {
			log.Fatalf("invalid user id: %v", err)
		}
		userID = parsed
	}

	logger := observability.NewLogger()
	defer logger.Sync()

	p := authProcessor.New(secret, logger)
	token, err := p.IssueToken(context.Background(), userID, *role, *ttl)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	fmt.Println(token)
}
