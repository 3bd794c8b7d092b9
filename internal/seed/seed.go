package seed

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cryptojournal/internal/domain"
	"cryptojournal/internal/ports"
)

// Demo account credentials installed by Apply.
const (
	DemoEmail    = "demo@crypto.com"
	DemoPassword = "demo123"
	DemoUserID   = "demo-user-id"
)

// Apply installs the demo user and their sample trades. It is idempotent:
// nothing is written when the demo user already exists. Intended for local
// runs and test fixtures, never enabled by default.
func Apply(ctx context.Context, users ports.UserRepository, trades ports.TradeRepository, bcryptCost int) error {
	existing, err := users.FindUserByEmail(ctx, DemoEmail)
	if err != nil {
		return fmt.Errorf("failed to check for demo user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	demoUser := &domain.User{
		ID:           DemoUserID,
		Email:        DemoEmail,
		Name:         "Demo User",
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := users.CreateUser(ctx, demoUser); err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	for _, trade := range DemoTrades(DemoUserID) {
		if err := trades.Insert(ctx, trade); err != nil {
			return fmt.Errorf("failed to insert demo trade %s: %w", trade.ID, err)
		}
	}
	return nil
}

// DemoTrades returns the sample trade set owned by the given user: three
// closed trades (two winners, one loser) and one open short.
func DemoTrades(ownerID string) []*domain.Trade {
	trades := []*domain.Trade{
		{
			ID:         "trade-1",
			OwnerID:    ownerID,
			Coin:       "BTC",
			Direction:  domain.Long,
			EntryPrice: 42000,
			ExitPrice:  floatPtr(45000),
			Quantity:   0.5,
			Status:     domain.StatusClosed,
			Notes:      "Strong uptrend breakout",
			EntryDate:  date(2024, 1, 15),
			ExitDate:   datePtr(2024, 1, 20),
		},
		{
			ID:         "trade-2",
			OwnerID:    ownerID,
			Coin:       "ETH",
			Direction:  domain.Long,
			EntryPrice: 2200,
			ExitPrice:  floatPtr(2100),
			Quantity:   2,
			Status:     domain.StatusClosed,
			Notes:      "Stop loss triggered",
			EntryDate:  date(2024, 1, 18),
			ExitDate:   datePtr(2024, 1, 22),
		},
		{
			ID:         "trade-3",
			OwnerID:    ownerID,
			Coin:       "SOL",
			Direction:  domain.Short,
			EntryPrice: 95,
			Quantity:   10,
			Status:     domain.StatusOpen,
			Notes:      "Resistance level short",
			EntryDate:  date(2024, 1, 25),
		},
		{
			ID:         "trade-4",
			OwnerID:    ownerID,
			Coin:       "BTC",
			Direction:  domain.Long,
			EntryPrice: 43500,
			ExitPrice:  floatPtr(46200),
			Quantity:   0.3,
			Status:     domain.StatusClosed,
			Notes:      "Bullish momentum",
			EntryDate:  date(2024, 1, 10),
			ExitDate:   datePtr(2024, 1, 15),
		},
	}
	for _, t := range trades {
		t.RecalcProfitLoss()
	}
	return trades
}

func floatPtr(v float64) *float64 { return &v }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}
