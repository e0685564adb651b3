package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrizePayoutDescription(t *testing.T) {
	amount := func(v float64) *float64 { return &v }
	item := func(s string) *string { return &s }

	tests := []struct {
		name  string
		prize Prize
		want  string
	}{
		{"whole amount", Prize{Amount: amount(100)}, "100.00"},
		{"fractional amount", Prize{Amount: amount(12.5)}, "12.50"},
		{"zero amount", Prize{Amount: amount(0)}, "0.00"},
		{"amount wins over item", Prize{Amount: amount(250.75), Item: item("Trophy")}, "250.75"},
		{"item", Prize{Item: item("Gift card")}, "Gift card"},
		{"empty item", Prize{Item: item("")}, "See admin"},
		{"nothing set", Prize{}, "See admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.prize.PayoutDescription())
		})
	}
}
