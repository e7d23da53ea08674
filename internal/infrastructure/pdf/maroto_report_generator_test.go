package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
)

var (
	start = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
)

func TestTradeAccountPDF_GeneraDocumento(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("Tienda Central")
	out, err := g.TradeAccountPDF(context.Background(), &dto.TradeAccountDTO{
		Start: start, End: end,
		Sales:             decimal.NewFromInt(750),
		OpeningStock:      decimal.Zero,
		NewStock:          decimal.NewFromInt(1000),
		ClosingStock:      decimal.NewFromInt(500),
		CostOfSales:       decimal.NewFromInt(500),
		GrossProfitOrLoss: decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestCashUpPDF_GeneraDocumento(t *testing.T) {
	g := pdf.NewMarotoReportGenerator("")
	out, err := g.CashUpPDF(context.Background(), &dto.CashUpDTO{
		Start: start, End: end,
		Lines: []dto.CashUpLineDTO{{
			ProductID: "p1", Name: "Leche", SalesAmount: decimal.NewFromInt(750),
			BuyPrice: decimal.NewFromInt(10), SellPrice: decimal.NewFromInt(15),
			EstimatedQty: decimal.NewFromInt(50), Cash: decimal.NewFromInt(500), Profit: decimal.NewFromInt(250),
		}},
		TotalSales: decimal.NewFromInt(750), TotalCash: decimal.NewFromInt(500),
		TotalProfit: decimal.NewFromInt(250), CashBalance: decimal.NewFromInt(750),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
