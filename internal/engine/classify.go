package engine

import (
	"fmt"
	"sort"

	"github.com/ledgerpilot/go-gl-recon/internal/models"

	"github.com/shopspring/decimal"
)

// roundingTolerance is the absolute variance treated as balanced regardless of
// the materiality threshold.
var roundingTolerance = decimal.NewFromFloat(0.01)

func (e *Engine) classify(glMap, subMap map[Key]decimal.Decimal, norm normalizedTransactions, ov overrides) []models.Reconciliation {
	keys := make(map[Key]struct{})
	for k := range glMap {
		keys[k] = struct{}{}
	}
	for k := range subMap {
		keys[k] = struct{}{}
	}
	for k := range norm.buckets {
		keys[k] = struct{}{}
	}

	ordered := make([]Key, 0, len(keys))
	for k := range keys {
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	out := make([]models.Reconciliation, 0, len(ordered))
	for _, key := range ordered {
		gl := glMap[key]
		sub := subMap[key]
		variance := gl.Sub(sub)
		transactions := norm.buckets[key]

		status, material := e.classifyVariance(variance)
		activity, adjustments := e.movement(key, norm, ov)

		rec := models.Reconciliation{
			Account:          key.Account(),
			Period:           key.Period(),
			GLBalance:        models.NewDecimalFromExternal(gl),
			SubledgerBalance: models.NewDecimalFromExternal(sub),
			Variance:         models.NewDecimalFromExternal(variance),
			Status:           status,
			Material:         material,
			Activity:         models.NewDecimalFromExternal(activity),
			Adjustments:      models.NewDecimalFromExternal(adjustments),
			Notes:            e.buildNotes(gl, sub, variance, status, len(transactions)),
			Transactions:     transactions,
		}
		out = append(out, rec)
	}

	return out
}

func (e *Engine) classifyVariance(variance decimal.Decimal) (status string, material bool) {
	abs := variance.Abs()
	if abs.LessThan(roundingTolerance) {
		return models.ReconStatusBalanced, false
	}
	if abs.GreaterThanOrEqual(e.materiality) {
		return models.ReconStatusMaterialVariance, true
	}
	return models.ReconStatusImmaterialVariance, false
}

// buildNotes composes the audit narrative. The order is user-facing audit
// language and must stay: variance statement, materiality statement,
// supporting-transaction count.
func (e *Engine) buildNotes(gl, sub, variance decimal.Decimal, status string, txCount int) []string {
	notes := make([]string, 0, 3)

	if status == models.ReconStatusBalanced {
		notes = append(notes, fmt.Sprintf("GL and subledger balances agree at %s.", gl))
		notes = append(notes, "Variance is within the 0.01 rounding tolerance.")
	} else {
		notes = append(notes, fmt.Sprintf("GL balance %s minus subledger balance %s leaves a variance of %s.", gl, sub, variance))
		if status == models.ReconStatusMaterialVariance {
			notes = append(notes, fmt.Sprintf("Variance meets or exceeds the materiality threshold of %s.", e.materiality))
		} else {
			notes = append(notes, fmt.Sprintf("Variance is below the materiality threshold of %s.", e.materiality))
		}
	}

	notes = append(notes, fmt.Sprintf("%d supporting transaction(s) recorded for this account and period.", txCount))

	return notes
}
