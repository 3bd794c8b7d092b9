package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeProfitLoss(t *testing.T) {
	tests := []struct {
		name       string
		direction  Direction
		entryPrice float64
		exitPrice  float64
		quantity   float64
		want       float64
	}{
		{
			name:       "long profit",
			direction:  Long,
			entryPrice: 42000,
			exitPrice:  45000,
			quantity:   0.5,
			want:       1500,
		},
		{
			name:       "long loss",
			direction:  Long,
			entryPrice: 2200,
			exitPrice:  2100,
			quantity:   2,
			want:       -200,
		},
		{
			name:       "short profit",
			direction:  Short,
			entryPrice: 95,
			exitPrice:  90,
			quantity:   10,
			want:       50,
		},
		{
			name:       "short loss",
			direction:  Short,
			entryPrice: 95,
			exitPrice:  100,
			quantity:   10,
			want:       -50,
		},
		{
			name:       "flat exit",
			direction:  Long,
			entryPrice: 100,
			exitPrice:  100,
			quantity:   3,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProfitLoss(tt.direction, tt.entryPrice, tt.exitPrice, tt.quantity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecalcProfitLoss(t *testing.T) {
	exit := 45000.0

	t.Run("closed with exit price sets profit loss", func(t *testing.T) {
		trade := &Trade{
			Direction:  Long,
			EntryPrice: 42000,
			ExitPrice:  &exit,
			Quantity:   0.5,
			Status:     StatusClosed,
		}
		trade.RecalcProfitLoss()
		require.NotNil(t, trade.ProfitLoss)
		assert.Equal(t, 1500.0, *trade.ProfitLoss)
	})

	t.Run("open trade leaves profit loss absent", func(t *testing.T) {
		trade := &Trade{
			Direction:  Short,
			EntryPrice: 95,
			Quantity:   10,
			Status:     StatusOpen,
		}
		trade.RecalcProfitLoss()
		assert.Nil(t, trade.ProfitLoss)
	})

	t.Run("closed without exit price leaves profit loss absent", func(t *testing.T) {
		trade := &Trade{
			Direction:  Long,
			EntryPrice: 100,
			Quantity:   1,
			Status:     StatusClosed,
		}
		trade.RecalcProfitLoss()
		assert.Nil(t, trade.ProfitLoss)
	})

	t.Run("cancelled trade keeps previously stored value", func(t *testing.T) {
		stored := 25.0
		trade := &Trade{
			Direction:  Long,
			EntryPrice: 100,
			ExitPrice:  &exit,
			Quantity:   1,
			Status:     StatusCancelled,
			ProfitLoss: &stored,
		}
		trade.RecalcProfitLoss()
		require.NotNil(t, trade.ProfitLoss)
		assert.Equal(t, 25.0, *trade.ProfitLoss)
	})
}

func TestDirectionAndStatusValidity(t *testing.T) {
	assert.True(t, Long.IsValid())
	assert.True(t, Short.IsValid())
	assert.False(t, Direction("Sideways").IsValid())

	assert.True(t, StatusOpen.IsValid())
	assert.True(t, StatusClosed.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, TradeStatus("Pending").IsValid())
}
