package domain

import "time"

// Trade represents one position recorded in a user's journal.
type Trade struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"ownerId"` // owning user, never changes after creation
	Coin       string      `json:"coin"`    // short symbol (e.g., "BTC"), stored as provided
	Direction  Direction   `json:"direction"`
	EntryPrice float64     `json:"entryPrice"`
	ExitPrice  *float64    `json:"exitPrice,omitempty"` // set only once the position is closed
	Quantity   float64     `json:"quantity"`
	Status     TradeStatus `json:"status"`
	Notes      string      `json:"notes,omitempty"`
	EntryDate  time.Time   `json:"entryDate"`
	ExitDate   *time.Time  `json:"exitDate,omitempty"`
	ProfitLoss *float64    `json:"profitLoss,omitempty"` // derived on close, never taken from input
}

// IsOpen checks if the trade status is open.
func (t *Trade) IsOpen() bool {
	return t.Status == StatusOpen
}

// IsClosed checks if the trade status is closed.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// ComputeProfitLoss returns the realized P/L for the given fill values.
// A Long position profits when price rises, a Short when it falls.
func ComputeProfitLoss(direction Direction, entryPrice, exitPrice, quantity float64) float64 {
	priceDiff := exitPrice - entryPrice
	if direction == Short {
		priceDiff = entryPrice - exitPrice
	}
	return priceDiff * quantity
}

// RecalcProfitLoss derives ProfitLoss from the trade's own fields. It is set
// when the trade is closed with a known exit price; otherwise the previously
// stored value (or absence) is kept.
func (t *Trade) RecalcProfitLoss() {
	if t.Status == StatusClosed && t.ExitPrice != nil {
		pl := ComputeProfitLoss(t.Direction, t.EntryPrice, *t.ExitPrice, t.Quantity)
		t.ProfitLoss = &pl
	}
}
