package analytics

import (
	"math"

	"cryptojournal/internal/domain"
)

// Stats summarizes realized performance across a user's trade set.
type Stats struct {
	TotalTrades   int     `json:"totalTrades"` // closed trades only
	WinningTrades int     `json:"winningTrades"`
	OpenTrades    int     `json:"openTrades"`
	WinRate       float64 `json:"winRate"`   // percent of closed trades won, 1 decimal
	NetProfit     float64 `json:"netProfit"` // sum of realized P/L, 2 decimals
}

// Aggregate folds a trade set into summary statistics. Cancelled trades are
// excluded from every figure; a closed trade with zero P/L counts toward
// TotalTrades but is not a win.
func Aggregate(trades []*domain.Trade) Stats {
	var s Stats
	var net float64
	for _, t := range trades {
		switch t.Status {
		case domain.StatusOpen:
			s.OpenTrades++
		case domain.StatusClosed:
			s.TotalTrades++
			if t.ProfitLoss != nil {
				net += *t.ProfitLoss
				if *t.ProfitLoss > 0 {
					s.WinningTrades++
				}
			}
		}
	}
	if s.TotalTrades > 0 {
		s.WinRate = roundTo(float64(s.WinningTrades)/float64(s.TotalTrades)*100, 1)
	}
	s.NetProfit = roundTo(net, 2)
	return s
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
