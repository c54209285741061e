package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ledgerpilot/go-gl-recon/internal/common"
	"github.com/ledgerpilot/go-gl-recon/internal/models"

	"github.com/shopspring/decimal"
)

// rollForward walks the resolved period order per account, carrying closing
// balances into the next period's opening. A known GL balance pins the closing
// for its period; periods without a GL snapshot fall back to the running total
// so the walk never terminates early.
func (e *Engine) rollForward(payload models.CanonicalPayload, glMap map[Key]decimal.Decimal, norm normalizedTransactions, ov overrides) []models.RollForwardEntry {
	accounts := e.resolveAccounts(payload, norm)
	periods := e.resolvePeriods(payload, norm)

	out := make([]models.RollForwardEntry, 0, len(accounts)*len(periods))
	for _, account := range accounts {
		opening := decimal.Zero

		for _, period := range periods {
			key := NewKey(account, period)
			activity, adjustments := e.movement(key, norm, ov)

			closing, fromGL := glMap[key]
			if !fromGL {
				closing = opening.Add(activity).Add(adjustments)
			}

			out = append(out, models.RollForwardEntry{
				Account:     account,
				Period:      period,
				Opening:     models.NewDecimalFromExternal(opening),
				Activity:    models.NewDecimalFromExternal(activity),
				Adjustments: models.NewDecimalFromExternal(adjustments),
				Closing:     models.NewDecimalFromExternal(closing),
				Commentary:  buildCommentary(activity, adjustments),
			})

			opening = closing
		}
	}

	return out
}

// resolveAccounts collects every account observed anywhere in the input,
// sorted. With no accounts at all the synthetic account stands in.
func (e *Engine) resolveAccounts(payload models.CanonicalPayload, norm normalizedTransactions) []string {
	seen := make(map[string]struct{})
	for _, rec := range payload.GLBalances {
		seen[rec.Account] = struct{}{}
	}
	for _, rec := range payload.SubledgerBalances {
		seen[rec.Account] = struct{}{}
	}
	for _, rec := range norm.records {
		seen[rec.Account] = struct{}{}
	}

	if len(seen) == 0 {
		return []string{e.syntheticAccount}
	}

	accounts := make([]string, 0, len(seen))
	for account := range seen {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)
	return accounts
}

// resolvePeriods prefers the explicit ordering, else the distinct detected
// periods ascending, else the current year-month.
func (e *Engine) resolvePeriods(payload models.CanonicalPayload, norm normalizedTransactions) []string {
	if len(payload.OrderedPeriods) > 0 {
		return payload.OrderedPeriods
	}

	seen := make(map[string]struct{})
	for _, rec := range payload.GLBalances {
		if rec.Period != "" {
			seen[rec.Period] = struct{}{}
		}
	}
	for _, rec := range payload.SubledgerBalances {
		if rec.Period != "" {
			seen[rec.Period] = struct{}{}
		}
	}
	for _, rec := range norm.records {
		if rec.Period != "" {
			seen[rec.Period] = struct{}{}
		}
	}

	if len(seen) == 0 {
		return []string{common.YearMonth(e.clock())}
	}

	periods := make([]string, 0, len(seen))
	for period := range seen {
		periods = append(periods, period)
	}
	sort.Strings(periods)
	return periods
}

func buildCommentary(activity, adjustments decimal.Decimal) string {
	parts := make([]string, 0, 2)
	if activity.Abs().GreaterThan(roundingTolerance) {
		parts = append(parts, fmt.Sprintf("activity of %s", activity))
	}
	if adjustments.Abs().GreaterThan(roundingTolerance) {
		parts = append(parts, fmt.Sprintf("adjustments of %s", adjustments))
	}

	if len(parts) == 0 {
		return "No material movement recorded."
	}
	return fmt.Sprintf("Reflects %s.", strings.Join(parts, " and "))
}
