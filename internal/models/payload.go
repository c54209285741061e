package models

// CanonicalPayload is the normalized balance/transaction schema the engine consumes.
// Upstream collaborators (upload, column mapping) are responsible for producing it;
// this service never parses raw spreadsheet dialects.
type CanonicalPayload struct {
	GLBalances          []BalanceRecord     `json:"glBalances" validate:"required,min=1,dive"`
	SubledgerBalances   []BalanceRecord     `json:"subledgerBalances" validate:"required,dive"`
	Transactions        []TransactionInput  `json:"transactions" validate:"omitempty,dive"`
	OrderedPeriods      []string            `json:"orderedPeriods" validate:"omitempty,dive,required"`
	ActivityByPeriod    map[string]*Decimal `json:"activityByPeriod"`
	AdjustmentsByPeriod map[string]*Decimal `json:"adjustmentsByPeriod"`
}

// BalanceRecord is one balance row from either ledger. Period may be empty for
// exports that carry a single unlabelled snapshot.
type BalanceRecord struct {
	Account  string   `json:"account" validate:"required,accountid"`
	Period   string   `json:"period" validate:"omitempty,period"`
	Amount   *Decimal `json:"amount" validate:"required"`
	Currency string   `json:"currency"`
}

// TransactionInput is a raw transaction row as delivered upstream. BookedAt stays a
// string until the normalizer parses it, so a malformed date degrades instead of
// failing the bind.
type TransactionInput struct {
	Account     string            `json:"account" validate:"omitempty,accountid"`
	BookedAt    string            `json:"booked_at"`
	Debit       *Decimal          `json:"debit"`
	Credit      *Decimal          `json:"credit"`
	Amount      *Decimal          `json:"amount"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

// ToolCallArguments is the wire shape of the run_reconciliation tool contract.
// Field names are snake_case on the provider side.
type ToolCallArguments struct {
	GLBalances          []BalanceRecord     `json:"gl_balances" validate:"required,min=1,dive"`
	SubledgerBalances   []BalanceRecord     `json:"subledger_balances" validate:"required,dive"`
	Transactions        []TransactionInput  `json:"transactions" validate:"omitempty,dive"`
	OrderedPeriods      []string            `json:"ordered_periods" validate:"omitempty,dive,required"`
	ActivityByPeriod    map[string]*Decimal `json:"activity_by_period"`
	AdjustmentsByPeriod map[string]*Decimal `json:"adjustments_by_period"`
}

// ToPayload converts validated tool-call arguments into the canonical payload the
// engine runs on.
func (a ToolCallArguments) ToPayload() CanonicalPayload {
	return CanonicalPayload{
		GLBalances:          a.GLBalances,
		SubledgerBalances:   a.SubledgerBalances,
		Transactions:        a.Transactions,
		OrderedPeriods:      a.OrderedPeriods,
		ActivityByPeriod:    a.ActivityByPeriod,
		AdjustmentsByPeriod: a.AdjustmentsByPeriod,
	}
}
