package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerpilot/go-gl-recon/internal/common"
	"github.com/ledgerpilot/go-gl-recon/internal/common/log"
	"github.com/ledgerpilot/go-gl-recon/internal/models"

	"github.com/shopspring/decimal"
)

// normalizedTransactions is the movement view the classifier and roll-forward
// consume. Total record count always equals the input count.
type normalizedTransactions struct {
	records  []models.TransactionRecord
	buckets  map[Key][]models.TransactionRecord
	activity map[Key]decimal.Decimal

	// dataQualityNotes flags silent substitutions so auditors can see them.
	dataQualityNotes []string
}

// rowState carries per-row intermediate values (net, resolved period) and is
// discarded once the immutable TransactionRecord is produced.
type rowState struct {
	net      decimal.Decimal
	period   string
	bookedAt time.Time
}

func (e *Engine) normalizeTransactions(ctx context.Context, inputs []models.TransactionInput, fallbackAccount string) normalizedTransactions {
	out := normalizedTransactions{
		records:  make([]models.TransactionRecord, 0, len(inputs)),
		buckets:  make(map[Key][]models.TransactionRecord),
		activity: make(map[Key]decimal.Decimal),
	}

	for _, in := range inputs {
		state := e.resolveRow(ctx, in, &out)

		account := in.Account
		if account == "" {
			account = fallbackAccount
		}

		rec := models.TransactionRecord{
			Account:     account,
			Period:      state.period,
			BookedAt:    state.bookedAt,
			Net:         models.NewDecimalFromExternal(state.net),
			Description: in.Description,
			Metadata:    in.Metadata,
		}

		key := NewKey(account, state.period)
		out.records = append(out.records, rec)
		out.buckets[key] = append(out.buckets[key], rec)
		out.activity[key] = out.activity[key].Add(state.net)
	}

	return out
}

func (e *Engine) resolveRow(ctx context.Context, in models.TransactionInput, out *normalizedTransactions) rowState {
	var state rowState

	// net movement: debit minus credit when either side is booked, else the
	// signed amount
	switch {
	case in.Debit != nil || in.Credit != nil:
		debit, credit := decimal.Zero, decimal.Zero
		if in.Debit != nil {
			debit = in.Debit.Decimal
		}
		if in.Credit != nil {
			credit = in.Credit.Decimal
		}
		state.net = debit.Sub(credit)
	case in.Amount != nil:
		state.net = in.Amount.Decimal
	}

	bookedAt, err := common.ParseTransactionDate(in.BookedAt)
	if err != nil {
		// Lenient on purpose: a malformed date mislabels the period bucket but
		// never drops the row. Flagged because it is an audit risk.
		bookedAt = e.clock()
		log.Warn(ctx, "[NORMALIZER] unparseable booked_at, substituting current time",
			log.String("account", in.Account),
			log.String("bookedAt", in.BookedAt),
		)
		out.dataQualityNotes = append(out.dataQualityNotes,
			fmt.Sprintf("transaction for account %q had unparseable booked_at %q; substituted current timestamp", in.Account, in.BookedAt))
	}
	state.bookedAt = bookedAt

	// metadata override wins over the booked date
	if p := in.Metadata["period"]; p != "" {
		state.period = p
	} else if p := in.Metadata["source_period"]; p != "" {
		state.period = p
	} else {
		state.period = common.YearMonth(bookedAt)
	}

	return state
}
