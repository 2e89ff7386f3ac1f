package services

import "testing"

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		qty       float64
		unitPrice float64
		want      float64
	}{
		{"simple", 3, 250000, 750000},
		{"fractional qty", 2.5, 100000, 250000},
		{"zero qty", 0, 50000, 0},
		{"zero price", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineTotal(tt.qty, tt.unitPrice); got != tt.want {
				t.Errorf("LineTotal(%v, %v) = %v, want %v", tt.qty, tt.unitPrice, got, tt.want)
			}
		})
	}
}

func TestSumLineTotals(t *testing.T) {
	items := []LineItem{
		{Description: "a", Quantity: 2, UnitPrice: 100000},
		{Description: "b", Quantity: 1, UnitPrice: 50000},
		{Description: "c", Quantity: 4, UnitPrice: 125000},
	}
	if got := SumLineTotals(items); got != 750000 {
		t.Errorf("SumLineTotals = %v, want 750000", got)
	}

	if got := SumLineTotals(nil); got != 0 {
		t.Errorf("SumLineTotals(nil) = %v, want 0", got)
	}
}

func TestCategoryTotalsGrandTotal(t *testing.T) {
	totals := CategoryTotals{
		"materiel_electrique":  500000,
		"main_oeuvre_electric": 250000,
		"ingenieur_process":    0,
	}
	if got := totals.GrandTotal(); got != 750000 {
		t.Errorf("GrandTotal = %v, want 750000", got)
	}
}
