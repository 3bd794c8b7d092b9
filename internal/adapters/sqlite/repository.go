package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cryptojournal/internal/domain"
	"cryptojournal/internal/ports"

	"github.com/mattn/go-sqlite3"
)

// Repository implements ports.TradeRepository and ports.UserRepository using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/journal.db" // Default path
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("%w: failed to ping database at '%s': %v", ports.ErrDBConnection, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from a
	// single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Database schema initialized/verified", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
// NOTE: This is a basic approach. A proper migration tool is recommended for production.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		coin TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL DEFAULT NULL,
		quantity REAL NOT NULL,
		status TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		entry_date TIMESTAMP NOT NULL,
		exit_date TIMESTAMP DEFAULT NULL,
		profit_loss REAL DEFAULT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trades_owner_id ON trades (owner_id, entry_date);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// --- TradeRepository Implementation ---

// Insert saves a new trade record.
func (r *Repository) Insert(ctx context.Context, trade *domain.Trade) error {
	const query = `
	INSERT INTO trades (id, owner_id, coin, direction, entry_price, exit_price,
	                    quantity, status, notes, entry_date, exit_date, profit_loss)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		trade.ID, trade.OwnerID, trade.Coin, string(trade.Direction), trade.EntryPrice,
		nullFloat(trade.ExitPrice), trade.Quantity, string(trade.Status), trade.Notes,
		trade.EntryDate, nullTime(trade.ExitDate), nullFloat(trade.ProfitLoss))
	if err != nil {
		return fmt.Errorf("%w: failed to insert trade %s: %v", ports.ErrQueryFailed, trade.ID, err)
	}
	r.logger.Debug(ctx, "Trade inserted", map[string]interface{}{"tradeID": trade.ID, "coin": trade.Coin})
	return nil
}

// FindByID retrieves a trade by its unique ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Trade, error) {
	const query = `
	SELECT id, owner_id, coin, direction, entry_price, exit_price,
	       quantity, status, notes, entry_date, exit_date, profit_loss
	FROM trades
	WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	trade, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug(ctx, "Trade not found by ID", map[string]interface{}{"tradeID": id})
			return nil, nil // Not an error, just not found
		}
		return nil, fmt.Errorf("%w: failed to query trade %s: %v", ports.ErrQueryFailed, id, err)
	}
	return trade, nil
}

// FindByOwner retrieves all trades for a user, newest entry first.
func (r *Repository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Trade, error) {
	const query = `
	SELECT id, owner_id, coin, direction, entry_price, exit_price,
	       quantity, status, notes, entry_date, exit_date, profit_loss
	FROM trades
	WHERE owner_id = ?
	ORDER BY entry_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query trades for owner %s: %v", ports.ErrQueryFailed, ownerID, err)
	}
	defer rows.Close()

	trades := make([]*domain.Trade, 0)
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade during FindByOwner: %w", err)
		}
		trades = append(trades, trade)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}
	return trades, nil
}

// Replace overwrites the stored record with the given ID.
func (r *Repository) Replace(ctx context.Context, id string, trade *domain.Trade) error {
	const query = `
	UPDATE trades
	SET owner_id = ?, coin = ?, direction = ?, entry_price = ?, exit_price = ?,
	    quantity = ?, status = ?, notes = ?, entry_date = ?, exit_date = ?, profit_loss = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		trade.OwnerID, trade.Coin, string(trade.Direction), trade.EntryPrice,
		nullFloat(trade.ExitPrice), trade.Quantity, string(trade.Status), trade.Notes,
		trade.EntryDate, nullTime(trade.ExitDate), nullFloat(trade.ProfitLoss),
		id)
	if err != nil {
		return fmt.Errorf("%w: failed to update trade %s: %v", ports.ErrUpdateFailed, id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for trade %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trade %s not found for replace: %w", id, ports.ErrNotFound)
	}
	r.logger.Debug(ctx, "Trade replaced", map[string]interface{}{"tradeID": id, "status": trade.Status})
	return nil
}

// Remove deletes a trade, reporting whether a record was removed.
func (r *Repository) Remove(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("%w: failed to delete trade %s: %v", ports.ErrDeleteFailed, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected for delete of trade %s: %w", id, err)
	}
	return rowsAffected > 0, nil
}

// --- UserRepository Implementation ---

// CreateUser saves a new user.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `
	INSERT INTO users (id, email, name, password_hash, created_at)
	VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("user with email %s: %w", user.Email, ports.ErrDuplicateEntry)
		}
		return fmt.Errorf("%w: failed to insert user %s: %v", ports.ErrQueryFailed, user.Email, err)
	}
	r.logger.Debug(ctx, "User created", map[string]interface{}{"userID": user.ID, "email": user.Email})
	return nil
}

// FindUserByEmail retrieves a user by email.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
	SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`
	return r.scanUserRow(ctx, r.db.QueryRowContext(ctx, query, email), email)
}

// FindUserByID retrieves a user by ID.
func (r *Repository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
	SELECT id, email, name, password_hash, created_at FROM users WHERE id = ?`
	return r.scanUserRow(ctx, r.db.QueryRowContext(ctx, query, id), id)
}

func (r *Repository) scanUserRow(ctx context.Context, row *sql.Row, key string) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Debug(ctx, "User not found", map[string]interface{}{"key": key})
			return nil, nil // Not an error, just not found
		}
		return nil, fmt.Errorf("%w: failed to query user %s: %v", ports.ErrQueryFailed, key, err)
	}
	return u, nil
}

// --- Helper Scan Functions ---

// scanner defines an interface compatible with *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanTrade scans a row into a domain.Trade struct.
func scanTrade(s scanner) (*domain.Trade, error) {
	t := &domain.Trade{}
	var direction, status string
	var exitPrice, profitLoss sql.NullFloat64
	var exitDate sql.NullTime
	err := s.Scan(
		&t.ID, &t.OwnerID, &t.Coin, &direction, &t.EntryPrice, &exitPrice,
		&t.Quantity, &status, &t.Notes, &t.EntryDate, &exitDate, &profitLoss)
	if err != nil {
		return nil, err // Handle sql.ErrNoRows in the caller
	}
	t.Direction = domain.Direction(direction)
	t.Status = domain.TradeStatus(status)
	if exitPrice.Valid {
		t.ExitPrice = &exitPrice.Float64
	}
	if exitDate.Valid {
		t.ExitDate = &exitDate.Time
	}
	if profitLoss.Valid {
		t.ProfitLoss = &profitLoss.Float64
	}
	return t, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
