package domain

// Direction indicates which way a position profits.
type Direction string

const (
	Long  Direction = "Long"
	Short Direction = "Short"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == Long || d == Short
}

// TradeStatus represents the lifecycle state of a journal trade.
type TradeStatus string

const (
	StatusOpen      TradeStatus = "Open"
	StatusClosed    TradeStatus = "Closed"
	StatusCancelled TradeStatus = "Cancelled"
)

// IsValid reports whether s is a known status.
func (s TradeStatus) IsValid() bool {
	return s == StatusOpen || s == StatusClosed || s == StatusCancelled
}
