package engine

import (
	"context"
	"time"

	"github.com/ledgerpilot/go-gl-recon/internal/config"
	"github.com/ledgerpilot/go-gl-recon/internal/models"

	"github.com/shopspring/decimal"
)

// Engine is the deterministic reconciliation computation. It holds only
// configuration: every run is a pure function of its payload, safe for any
// number of concurrent callers.
type Engine struct {
	materiality      decimal.Decimal
	syntheticAccount string
	clock            func() time.Time
}

type Option func(*Engine)

// WithClock overrides the time source. Tests use it to pin the fallback
// timestamp for unparseable transaction dates.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

func New(cfg config.ReconEngineConfig, opts ...Option) *Engine {
	e := &Engine{
		materiality:      decimal.NewFromFloat(cfg.MaterialityThreshold),
		syntheticAccount: cfg.SyntheticAccount,
		clock:            time.Now,
	}
	if e.materiality.IsZero() {
		e.materiality = decimal.NewFromInt(config.DefaultMaterialityThreshold)
	}
	if e.syntheticAccount == "" {
		e.syntheticAccount = config.DefaultSyntheticAccount
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// overrides are the caller-supplied per-period movement figures that take
// priority over what the transactions imply.
type overrides struct {
	activityByPeriod    map[string]decimal.Decimal
	adjustmentsByPeriod map[string]decimal.Decimal
}

func newOverrides(payload models.CanonicalPayload) overrides {
	ov := overrides{
		activityByPeriod:    make(map[string]decimal.Decimal, len(payload.ActivityByPeriod)),
		adjustmentsByPeriod: make(map[string]decimal.Decimal, len(payload.AdjustmentsByPeriod)),
	}
	for period, amount := range payload.ActivityByPeriod {
		if amount != nil {
			ov.activityByPeriod[period] = amount.Decimal
		}
	}
	for period, amount := range payload.AdjustmentsByPeriod {
		if amount != nil {
			ov.adjustmentsByPeriod[period] = amount.Decimal
		}
	}
	return ov
}

// movement resolves the effective activity and adjustments for one key.
func (e *Engine) movement(key Key, norm normalizedTransactions, ov overrides) (activity, adjustments decimal.Decimal) {
	activity = norm.activity[key]
	if v, ok := ov.activityByPeriod[key.Period()]; ok {
		activity = v
	}
	adjustments = ov.adjustmentsByPeriod[key.Period()]
	return activity, adjustments
}

// Run executes the full deterministic pipeline: aggregate both ledgers,
// normalize transactions, classify variances and build the roll-forward.
func (e *Engine) Run(ctx context.Context, payload models.CanonicalPayload) models.ToolOutput {
	glMap := Aggregate(payload.GLBalances)
	subMap := Aggregate(payload.SubledgerBalances)

	norm := e.normalizeTransactions(ctx, payload.Transactions, e.syntheticAccount)
	ov := newOverrides(payload)

	reconciliations := e.classify(glMap, subMap, norm, ov)
	rollForward := e.rollForward(payload, glMap, norm, ov)

	return models.ToolOutput{
		Materiality:      models.NewDecimalFromExternal(e.materiality),
		Reconciliations:  reconciliations,
		RollForward:      rollForward,
		Transactions:     norm.records,
		DataQualityNotes: norm.dataQualityNotes,
	}
}
