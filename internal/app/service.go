package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"cryptojournal/internal/analytics"
	"cryptojournal/internal/domain"
	"cryptojournal/internal/ports"
)

// JournalService owns the trade lifecycle: input validation, ownership checks,
// derived P/L on every write, and aggregate statistics.
type JournalService struct {
	logger   ports.Logger
	trades   ports.TradeRepository
	validate *validator.Validate

	// mu guards locks; each entry serializes the read-then-write of one trade.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewJournalService creates the journal application service.
func NewJournalService(logger ports.Logger, trades ports.TradeRepository) (*JournalService, error) {
	if logger == nil || trades == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService")
	}
	return &JournalService{
		logger:   logger,
		trades:   trades,
		validate: newValidator(),
		locks:    make(map[string]*sync.Mutex),
	}, nil
}

// Create validates the input, derives P/L for trades created already closed,
// and persists the new record under the authenticated owner.
func (s *JournalService) Create(ctx context.Context, ownerID string, input TradeInput) (*domain.Trade, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, firstFieldError(err)
	}
	entryDate, err := parseDate("entryDate", input.EntryDate)
	if err != nil {
		return nil, err
	}
	var exitDate *time.Time
	if input.ExitDate != "" {
		parsed, err := parseDate("exitDate", input.ExitDate)
		if err != nil {
			return nil, err
		}
		exitDate = &parsed
	}

	trade := &domain.Trade{
		ID:         ulid.Make().String(),
		OwnerID:    ownerID,
		Coin:       input.Coin,
		Direction:  input.Direction,
		EntryPrice: input.EntryPrice,
		ExitPrice:  input.ExitPrice,
		Quantity:   input.Quantity,
		Status:     input.Status,
		Notes:      input.Notes,
		EntryDate:  entryDate,
		ExitDate:   exitDate,
	}
	trade.RecalcProfitLoss()

	if err := s.trades.Insert(ctx, trade); err != nil {
		s.logger.Error(ctx, err, "Failed to insert trade", map[string]interface{}{"ownerID": ownerID, "coin": trade.Coin})
		return nil, err
	}
	s.logger.Debug(ctx, "Trade created", map[string]interface{}{"tradeID": trade.ID, "coin": trade.Coin, "status": trade.Status})
	return trade, nil
}

// Update merges a partial input onto the stored trade and recomputes P/L from
// the merged view. A trade owned by someone else is reported as not found.
func (s *JournalService) Update(ctx context.Context, id, callerOwnerID string, input TradeUpdateInput) (*domain.Trade, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, firstFieldError(err)
	}
	// Parse dates up front so invalid input fails before the lock is taken.
	var entryDate, exitDate *time.Time
	if input.EntryDate != nil {
		parsed, err := parseDate("entryDate", *input.EntryDate)
		if err != nil {
			return nil, err
		}
		entryDate = &parsed
	}
	if input.ExitDate != nil {
		parsed, err := parseDate("exitDate", *input.ExitDate)
		if err != nil {
			return nil, err
		}
		exitDate = &parsed
	}

	unlock := s.lockTrade(id)
	defer unlock()

	existing, err := s.trades.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.OwnerID != callerOwnerID {
		// Missing and foreign records are deliberately indistinguishable.
		return nil, &ports.NotFoundError{ID: id}
	}

	merged := *existing
	if input.Coin != nil {
		merged.Coin = *input.Coin
	}
	if input.Direction != nil {
		merged.Direction = *input.Direction
	}
	if input.EntryPrice != nil {
		merged.EntryPrice = *input.EntryPrice
	}
	if input.ExitPrice != nil {
		merged.ExitPrice = input.ExitPrice
	}
	if input.Quantity != nil {
		merged.Quantity = *input.Quantity
	}
	if input.Status != nil {
		merged.Status = *input.Status
	}
	if input.Notes != nil {
		merged.Notes = *input.Notes
	}
	if entryDate != nil {
		merged.EntryDate = *entryDate
	}
	if exitDate != nil {
		merged.ExitDate = exitDate
	}
	merged.RecalcProfitLoss()

	if err := s.trades.Replace(ctx, id, &merged); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			// Deleted between the read and the write.
			return nil, &ports.NotFoundError{ID: id}
		}
		s.logger.Error(ctx, err, "Failed to replace trade", map[string]interface{}{"tradeID": id})
		return nil, err
	}
	s.logger.Debug(ctx, "Trade updated", map[string]interface{}{"tradeID": id, "status": merged.Status})
	return &merged, nil
}

// Delete removes a trade after the same ownership check as Update.
func (s *JournalService) Delete(ctx context.Context, id, callerOwnerID string) error {
	unlock := s.lockTrade(id)
	defer unlock()

	existing, err := s.trades.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != callerOwnerID {
		return &ports.NotFoundError{ID: id}
	}

	removed, err := s.trades.Remove(ctx, id)
	if err != nil {
		s.logger.Error(ctx, err, "Failed to remove trade", map[string]interface{}{"tradeID": id})
		return err
	}
	if !removed {
		return &ports.NotFoundError{ID: id}
	}
	s.logger.Debug(ctx, "Trade deleted", map[string]interface{}{"tradeID": id})
	return nil
}

// GetByID retrieves a single trade, reporting NotFoundError when absent.
func (s *JournalService) GetByID(ctx context.Context, id string) (*domain.Trade, error) {
	trade, err := s.trades.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, &ports.NotFoundError{ID: id}
	}
	return trade, nil
}

// ListByOwner returns the owner's trades, optionally filtered to coins that
// contain the search term (case-insensitive). Ordering is whatever the store
// defines.
func (s *JournalService) ListByOwner(ctx context.Context, ownerID, search string) ([]*domain.Trade, error) {
	trades, err := s.trades.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if search == "" {
		return trades, nil
	}
	needle := strings.ToLower(search)
	filtered := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if strings.Contains(strings.ToLower(t.Coin), needle) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Stats aggregates the owner's full trade set into summary statistics.
func (s *JournalService) Stats(ctx context.Context, ownerID string) (analytics.Stats, error) {
	trades, err := s.trades.FindByOwner(ctx, ownerID)
	if err != nil {
		return analytics.Stats{}, err
	}
	return analytics.Aggregate(trades), nil
}

// lockTrade serializes Update/Delete for one trade ID so the ownership read
// and the following write behave as a single unit even when the backing store
// has no atomic replace.
func (s *JournalService) lockTrade(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}
