package validation_test

import (
	"testing"

	"github.com/ledgerpilot/go-gl-recon/internal/common/validation"
	"github.com/ledgerpilot/go-gl-recon/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, value string) *models.Decimal {
	t.Helper()

	d, err := models.NewDecimal(value)
	require.NoError(t, err)
	return &d
}

func validPayload(t *testing.T) models.CanonicalPayload {
	t.Helper()

	return models.CanonicalPayload{
		GLBalances: []models.BalanceRecord{
			{Account: "1000", Period: "2024-01", Amount: dec(t, "100")},
		},
		SubledgerBalances: []models.BalanceRecord{
			{Account: "1000", Period: "2024-01", Amount: dec(t, "100")},
		},
	}
}

func TestValidateStruct_CanonicalPayload(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *models.CanonicalPayload)
		wantErr bool
	}{
		{
			name:   "happy path",
			mutate: func(p *models.CanonicalPayload) {},
		},
		{
			name: "missing gl balances",
			mutate: func(p *models.CanonicalPayload) {
				p.GLBalances = nil
			},
			wantErr: true,
		},
		{
			name: "account contains key separator",
			mutate: func(p *models.CanonicalPayload) {
				p.GLBalances[0].Account = "10|00"
			},
			wantErr: true,
		},
		{
			name: "blank account",
			mutate: func(p *models.CanonicalPayload) {
				p.GLBalances[0].Account = "   "
			},
			wantErr: true,
		},
		{
			name: "missing amount",
			mutate: func(p *models.CanonicalPayload) {
				p.SubledgerBalances[0].Amount = nil
			},
			wantErr: true,
		},
		{
			name: "malformed period label",
			mutate: func(p *models.CanonicalPayload) {
				p.GLBalances[0].Period = "Jan-2024"
			},
			wantErr: true,
		},
		{
			name: "empty period is allowed",
			mutate: func(p *models.CanonicalPayload) {
				p.GLBalances[0].Period = ""
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload(t)
			tc.mutate(&payload)

			err := validation.ValidateStruct(payload)
			assert.Equal(t, tc.wantErr, err != nil)
		})
	}
}

func TestValidateStruct_DoCreateAgentRunRequest(t *testing.T) {
	req := models.DoCreateAgentRunRequest{
		UserPrompt: "reconcile january",
		Payload:    validPayload(t),
	}
	assert.NoError(t, validation.ValidateStruct(req))

	req.UserPrompt = ""
	assert.Error(t, validation.ValidateStruct(req))
}

func TestValidateStruct_ToolCallArguments(t *testing.T) {
	args := models.ToolCallArguments{
		GLBalances: []models.BalanceRecord{
			{Account: "1000", Period: "2024-01", Amount: dec(t, "100")},
		},
		SubledgerBalances: []models.BalanceRecord{
			{Account: "1000", Period: "2024-01", Amount: dec(t, "90")},
		},
	}
	assert.NoError(t, validation.ValidateStruct(args))

	args.GLBalances = nil
	assert.Error(t, validation.ValidateStruct(args))
}
