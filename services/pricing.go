// Package services holds the domain logic of the cost estimation app: the
// cost store over PocketBase ledgers, pricing helpers, report assembly and
// the PDF/Excel generators.
package services

// LineTotal derives the cost of a single line item. Totals are never stored;
// they are always recomputed from quantity and unit price.
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// SumLineTotals aggregates a ledger's line totals into a category subtotal.
func SumLineTotals(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += LineTotal(it.Quantity, it.UnitPrice)
	}
	return sum
}

// CategoryTotals maps category key -> subtotal for one project.
type CategoryTotals map[string]float64

// GrandTotal sums all category subtotals.
func (t CategoryTotals) GrandTotal() float64 {
	var sum float64
	for _, v := range t {
		sum += v
	}
	return sum
}
