package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Optica-api/internal/application/dto"
	"github.com/jhoicas/Optica-api/internal/infrastructure/pdf"
)

func TestGenerateShiftReport(t *testing.T) {
	end := time.Now()
	closing := decimal.NewFromInt(140)
	diff := decimal.NewFromInt(-5)
	summary := &dto.ShiftSummaryResponse{
		Shift: dto.ShiftResponse{
			ID:           "7d1f0c1e-2b8a-4c55-9a0e-2f6b1b7f9a10",
			StartTime:    end.Add(-8 * time.Hour),
			EndTime:      &end,
			Status:       "ENDED",
			OpeningFloat: decimal.NewFromInt(100),
			ClosingFloat: &closing,
			Notes:        "faltante en monedas",
		},
		OperatorName: "Caja 1",
		PaymentsByMethod: []dto.MethodTotal{
			{Method: "CASH", Total: decimal.NewFromInt(60)},
			{Method: "CARD", Total: decimal.NewFromInt(40)},
		},
		CashIn:       decimal.NewFromInt(60),
		CashExpenses: decimal.NewFromInt(15),
		ExpectedCash: decimal.NewFromInt(145),
		Discrepancy:  &diff,
		OrderCount:   3,
		GeneratedAt:  end,
	}

	out, err := pdf.NewShiftReportGenerator("Óptica Central").GenerateShiftReport(context.Background(), summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
