package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDirectionFromAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   Direction
	}{
		{name: "negative is debit", amount: decimal.NewFromFloat(-42.50), want: DirectionDebit},
		{name: "positive is credit", amount: decimal.NewFromInt(100), want: DirectionCredit},
		{name: "zero is credit", amount: decimal.Zero, want: DirectionCredit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirectionFromAmount(tt.amount); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
