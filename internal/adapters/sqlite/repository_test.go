package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptojournal/internal/domain"
	"cryptojournal/internal/ports"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "journal-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := NewRepository(Config{
		DBPath: dbPath,
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func floatPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func sampleTrade(id, ownerID string) *domain.Trade {
	return &domain.Trade{
		ID:         id,
		OwnerID:    ownerID,
		Coin:       "BTC",
		Direction:  domain.Long,
		EntryPrice: 42000,
		ExitPrice:  floatPtr(45000),
		Quantity:   0.5,
		Status:     domain.StatusClosed,
		Notes:      "breakout",
		EntryDate:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ExitDate:   timePtr(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		ProfitLoss: floatPtr(1500),
	}
}

func TestRepository_InsertAndFindTrade(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	trade := sampleTrade("trade-1", "owner-1")
	require.NoError(t, repo.Insert(ctx, trade))

	got, err := repo.FindByID(ctx, "trade-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, trade.ID, got.ID)
	assert.Equal(t, trade.OwnerID, got.OwnerID)
	assert.Equal(t, trade.Coin, got.Coin)
	assert.Equal(t, trade.Direction, got.Direction)
	assert.Equal(t, trade.EntryPrice, got.EntryPrice)
	require.NotNil(t, got.ExitPrice)
	assert.Equal(t, 45000.0, *got.ExitPrice)
	assert.Equal(t, trade.Status, got.Status)
	assert.Equal(t, trade.Notes, got.Notes)
	require.NotNil(t, got.ProfitLoss)
	assert.Equal(t, 1500.0, *got.ProfitLoss)
	assert.WithinDuration(t, trade.EntryDate, got.EntryDate, time.Second)
	require.NotNil(t, got.ExitDate)
	assert.WithinDuration(t, *trade.ExitDate, *got.ExitDate, time.Second)
}

func TestRepository_InsertOpenTradeWithNullFields(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	trade := &domain.Trade{
		ID:         "trade-open",
		OwnerID:    "owner-1",
		Coin:       "SOL",
		Direction:  domain.Short,
		EntryPrice: 95,
		Quantity:   10,
		Status:     domain.StatusOpen,
		EntryDate:  time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Insert(ctx, trade))

	got, err := repo.FindByID(ctx, "trade-open")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.ExitPrice)
	assert.Nil(t, got.ExitDate)
	assert.Nil(t, got.ProfitLoss)
	assert.Equal(t, domain.StatusOpen, got.Status)
}

func TestRepository_FindByIDMissing(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	got, err := repo.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepository_FindByOwner(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	older := sampleTrade("trade-old", "owner-1")
	older.EntryDate = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := sampleTrade("trade-new", "owner-1")
	newer.EntryDate = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	foreign := sampleTrade("trade-foreign", "owner-2")

	require.NoError(t, repo.Insert(ctx, older))
	require.NoError(t, repo.Insert(ctx, newer))
	require.NoError(t, repo.Insert(ctx, foreign))

	trades, err := repo.FindByOwner(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	// Newest entry first.
	assert.Equal(t, "trade-new", trades[0].ID)
	assert.Equal(t, "trade-old", trades[1].ID)
}

func TestRepository_Replace(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	trade := sampleTrade("trade-1", "owner-1")
	require.NoError(t, repo.Insert(ctx, trade))

	trade.ExitPrice = floatPtr(44000)
	trade.ProfitLoss = floatPtr(1000)
	trade.Notes = "took profit early"
	require.NoError(t, repo.Replace(ctx, "trade-1", trade))

	got, err := repo.FindByID(ctx, "trade-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.ProfitLoss)
	assert.Equal(t, 1000.0, *got.ProfitLoss)
	assert.Equal(t, "took profit early", got.Notes)
}

func TestRepository_ReplaceMissingIsNotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Replace(context.Background(), "nope", sampleTrade("nope", "owner-1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrNotFound))
}

func TestRepository_Remove(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleTrade("trade-1", "owner-1")))

	removed, err := repo.Remove(ctx, "trade-1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, "trade-1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepository_Users(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := &domain.User{
		ID:           "user-1",
		Email:        "trader@example.com",
		Name:         "Trader",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(ctx, user))

	byEmail, err := repo.FindUserByEmail(ctx, "trader@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "user-1", byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := repo.FindUserByID(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "trader@example.com", byID.Email)

	missing, err := repo.FindUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_DuplicateEmail(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	first := &domain.User{ID: "user-1", Email: "dup@example.com", Name: "A", PasswordHash: "h", CreatedAt: time.Now()}
	require.NoError(t, repo.CreateUser(ctx, first))

	second := &domain.User{ID: "user-2", Email: "dup@example.com", Name: "B", PasswordHash: "h", CreatedAt: time.Now()}
	err := repo.CreateUser(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrDuplicateEntry))
}
