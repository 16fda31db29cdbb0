// Command token prints a signed access token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"cardledger/internal/auth"
	"cardledger/internal/config"
)

func main() {
	owner := flag.String("owner", "", "owner ID carried by the token (required)")
	actor := flag.String("actor", "", "actor recorded on ledger entries; defaults to the owner")
	role := flag.String("role", "", `role claim, "admin" unlocks the ledger-wide listings`)
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *owner == "" {
		log.Fatal("-owner is required")
	}
	if *actor == "" {
		*actor = *owner
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	token, err := jwtService.GenerateAccessToken(*owner, *actor, *role, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	// Round-trip through the same check the API applies.
	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		log.Fatalf("verify token: %v", err)
	}
	log.Printf("token %s for owner %q expires %s", claims.ID, claims.OwnerID, claims.ExpiresAt.Format(time.RFC3339))
	fmt.Println(token)
}
