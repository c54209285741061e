package models

import (
	"time"
)

// Reconciliation statuses. Balanced wins over materiality only inside the rounding
// tolerance; everything else is decided by the materiality threshold.
const (
	ReconStatusBalanced           = "balanced"
	ReconStatusMaterialVariance   = "material_variance"
	ReconStatusImmaterialVariance = "immaterial_variance"
)

// TransactionRecord is a normalized transaction after period resolution. The raw
// TransactionInput is discarded once this record is produced.
type TransactionRecord struct {
	Account     string            `json:"account"`
	Period      string            `json:"period"`
	BookedAt    time.Time         `json:"booked_at"`
	Net         Decimal           `json:"net"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Reconciliation is the verdict for one (account, period) key.
type Reconciliation struct {
	Account          string              `json:"account"`
	Period           string              `json:"period"`
	GLBalance        Decimal             `json:"glBalance"`
	SubledgerBalance Decimal             `json:"subledgerBalance"`
	Variance         Decimal             `json:"variance"`
	Status           string              `json:"status"`
	Material         bool                `json:"material"`
	Activity         Decimal             `json:"activity"`
	Adjustments      Decimal             `json:"adjustments"`
	Notes            []string            `json:"notes"`
	Transactions     []TransactionRecord `json:"transactions"`
}

// RollForwardEntry carries one period of the per-account roll-forward.
// For n>0, Opening equals the previous entry's Closing.
type RollForwardEntry struct {
	Account     string  `json:"account"`
	Period      string  `json:"period"`
	Opening     Decimal `json:"opening"`
	Activity    Decimal `json:"activity"`
	Adjustments Decimal `json:"adjustments"`
	Closing     Decimal `json:"closing"`
	Commentary  string  `json:"commentary"`
}

// ToolOutput is the deterministic engine result, also what the tool-calling
// provider receives back from run_reconciliation.
type ToolOutput struct {
	Materiality      Decimal             `json:"materiality"`
	Reconciliations  []Reconciliation    `json:"reconciliations"`
	RollForward      []RollForwardEntry  `json:"rollForward"`
	Transactions     []TransactionRecord `json:"transactions"`
	DataQualityNotes []string            `json:"dataQualityNotes,omitempty"`
}
