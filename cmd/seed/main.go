package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cardledger/internal/config"
	"cardledger/internal/db"
	"cardledger/internal/logger"
	"cardledger/internal/repository"
	"cardledger/internal/service"
)

func main() {
	owner := flag.String("owner", "", "owner ID the cards are issued to (required)")
	actor := flag.String("actor", "seed", "actor recorded as the issuer")
	count := flag.Int("count", 10, "number of cards to issue (1-100)")
	balance := flag.String("balance", "100.00", "initial balance of every card")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.LogLevel, true)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if *owner == "" {
		zlog.Fatal("-owner is required")
	}
	initial, err := decimal.NewFromString(*balance)
	if err != nil {
		zlog.Fatal("invalid -balance", zap.String("balance", *balance), zap.Error(err))
	}

	// Connect to database
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	ledger := service.NewLedgerService(
		repository.NewLedgerStore(gormDB),
		service.NewSeededNumberGenerator(time.Now().UnixNano()),
		service.Options{Logger: zlog, MaxIssueAttempts: cfg.IssueMaxAttempts},
	)

	caller := service.Caller{OwnerID: *owner, Actor: *actor, SourceAddress: "seed"}
	cards, err := ledger.IssueBatch(context.Background(), caller, *count, initial)
	for _, card := range cards {
		zlog.Info("card issued",
			zap.String("card_number", card.CardNumber),
			zap.String("balance", card.Balance.StringFixed(2)),
		)
	}
	if err != nil {
		zlog.Fatal("seed incomplete", zap.Int("issued", len(cards)), zap.Error(err))
	}
	zlog.Info("seed completed", zap.String("owner_id", *owner), zap.Int("issued", len(cards)))
}
