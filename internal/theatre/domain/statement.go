package theatre

import "fmt"

// LineItem is one priced performance on a statement.
type LineItem struct {
	PlayID        string
	PlayName      string
	Genre         Genre
	Audience      int
	Amount        int64
	VolumeCredits int
}

// StatementResult holds the priced lines and totals for an invoice.
type StatementResult struct {
	Customer           string
	Lines              []LineItem
	TotalAmount        int64
	TotalVolumeCredits int
}

// Aggregate prices an invoice with the default tariff.
func Aggregate(invoice Invoice, catalog Catalog) (StatementResult, error) {
	return DefaultRules().Aggregate(invoice, catalog)
}

// Aggregate prices every performance of the invoice in order and sums the totals.
// Any failure aborts the whole statement; no partial result is returned.
func (r Rules) Aggregate(invoice Invoice, catalog Catalog) (StatementResult, error) {
	if err := r.Validate(); err != nil {
		return StatementResult{}, err
	}
	if catalog == nil {
		return StatementResult{}, ErrNilCatalog
	}

	result := StatementResult{
		Customer: invoice.Customer,
		Lines:    make([]LineItem, 0, len(invoice.Performances)),
	}
	for i, perf := range invoice.Performances {
		play, err := catalog.Resolve(perf.PlayID)
		if err != nil {
			return StatementResult{}, fmt.Errorf("performance %d: %w", i, err)
		}
		amount, err := r.Amount(perf, play)
		if err != nil {
			return StatementResult{}, fmt.Errorf("performance %d (%s): %w", i, perf.PlayID, err)
		}
		credits := r.VolumeCredits(perf, play)

		result.Lines = append(result.Lines, LineItem{
			PlayID:        perf.PlayID,
			PlayName:      play.Name,
			Genre:         play.Type,
			Audience:      perf.Audience,
			Amount:        amount,
			VolumeCredits: credits,
		})
		result.TotalAmount += amount
		result.TotalVolumeCredits += credits
	}
	return result, nil
}
