package engine

import (
	"github.com/ledgerpilot/go-gl-recon/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregate sums balance rows by (account, period). Duplicate keys are summed,
// not overwritten: multi-organization exports legitimately repeat the same
// account and period.
func Aggregate(records []models.BalanceRecord) map[Key]decimal.Decimal {
	out := make(map[Key]decimal.Decimal, len(records))
	for _, rec := range records {
		key := NewKey(rec.Account, rec.Period)
		amount := decimal.Zero
		if rec.Amount != nil {
			amount = rec.Amount.Decimal
		}
		out[key] = out[key].Add(amount)
	}
	return out
}
