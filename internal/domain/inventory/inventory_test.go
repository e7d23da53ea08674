package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// Proyección y corte
// ──────────────────────────────────────────────────────────────────────────────

func TestSumDeltas_IndependienteDelOrden(t *testing.T) {
	deltas := []decimal.Decimal{d("100"), d("-30"), d("-20"), d("0.5"), d("-0.25")}
	want := d("50.25")

	assert.True(t, want.Equal(inventory.SumDeltas(deltas)))

	reversed := make([]decimal.Decimal, len(deltas))
	for i := range deltas {
		reversed[len(deltas)-1-i] = deltas[i]
	}
	assert.True(t, want.Equal(inventory.SumDeltas(reversed)), "permutar el orden no cambia la suma")

	rotated := append(append([]decimal.Decimal{}, deltas[2:]...), deltas[:2]...)
	assert.True(t, want.Equal(inventory.SumDeltas(rotated)))
}

func TestSumDeltas_SinMovimientosEsCero(t *testing.T) {
	assert.True(t, inventory.SumDeltas(nil).IsZero())
}

func TestCutoff_Bordes(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, inventory.AsOf(at).Includes(at), "el cierre incluye created_at == fin")
	assert.False(t, inventory.Before(at).Includes(at), "la apertura excluye created_at == inicio")
	assert.True(t, inventory.Before(at).Includes(at.Add(-time.Microsecond)))
	assert.False(t, inventory.AsOf(at).Includes(at.Add(time.Microsecond)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Valoración
// ──────────────────────────────────────────────────────────────────────────────

func TestStockValue_PisoEnCeroPorProducto(t *testing.T) {
	quantities := map[string]decimal.Decimal{"a": d("10"), "b": d("-5"), "c": d("0")}
	prices := map[string]decimal.Decimal{"a": d("2.5"), "b": d("100"), "c": d("7")}

	// b negativo no descuenta el valor de a
	assert.True(t, d("25").Equal(inventory.StockValue(quantities, prices)))
}

func TestStockValue_ProductoSinPrecioAportaCero(t *testing.T) {
	quantities := map[string]decimal.Decimal{"a": d("3"), "huerfano": d("9")}
	prices := map[string]decimal.Decimal{"a": d("4")}

	assert.True(t, d("12").Equal(inventory.StockValue(quantities, prices)))
}

func TestPurchasesValue_IgnoraNoPositivos(t *testing.T) {
	purchased := map[string]decimal.Decimal{"a": d("100"), "b": d("-3"), "c": d("2")}
	prices := map[string]decimal.Decimal{"a": d("10"), "b": d("10"), "c": d("1.5")}

	assert.True(t, d("1003").Equal(inventory.PurchasesValue(purchased, prices)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuenta comercial
// ──────────────────────────────────────────────────────────────────────────────

func TestNewTradeAccount_EscenarioCompleto(t *testing.T) {
	ta := inventory.NewTradeAccount(d("750"), d("0"), d("1000"), d("500"))

	assert.True(t, d("500").Equal(ta.CostOfSales))
	assert.True(t, d("250").Equal(ta.GrossProfitOrLoss))
}

func TestNewTradeAccount_CostoNegativoNoSeRecorta(t *testing.T) {
	ta := inventory.NewTradeAccount(d("100"), d("50"), d("0"), d("80"))

	assert.True(t, d("-30").Equal(ta.CostOfSales), "un costo de ventas negativo se reporta tal cual")
	assert.True(t, d("130").Equal(ta.GrossProfitOrLoss))
}

// ──────────────────────────────────────────────────────────────────────────────
// Arqueo
// ──────────────────────────────────────────────────────────────────────────────

func TestNewCashUpLine_EstimaCantidadConPrecioActual(t *testing.T) {
	line := inventory.NewCashUpLine("p", d("750"), d("10"), d("15"))

	assert.True(t, d("50").Equal(line.EstimatedQty))
	assert.True(t, d("500").Equal(line.Cash))
	assert.True(t, d("250").Equal(line.Profit))
}

func TestNewCashUpLine_PrecioVentaCeroNoDivide(t *testing.T) {
	for _, price := range []string{"0", "-1"} {
		line := inventory.NewCashUpLine("p", d("100"), d("10"), d(price))
		assert.True(t, line.EstimatedQty.IsZero(), "precio %s", price)
		assert.True(t, line.Cash.IsZero())
		assert.True(t, line.Profit.IsZero())
	}
}

func TestNewCashUp_TotalesPorColumna(t *testing.T) {
	cu := inventory.NewCashUp([]inventory.CashUpLine{
		inventory.NewCashUpLine("a", d("750"), d("10"), d("15")),
		inventory.NewCashUpLine("b", d("40"), d("1"), d("2")),
	})

	require.Len(t, cu.Lines, 2)
	assert.True(t, d("790").Equal(cu.TotalSales))
	assert.True(t, d("520").Equal(cu.TotalCash))
	assert.True(t, d("270").Equal(cu.TotalProfit))
	assert.True(t, d("790").Equal(cu.CashBalance))
}

// ──────────────────────────────────────────────────────────────────────────────
// Vida útil
// ──────────────────────────────────────────────────────────────────────────────

func TestDaysInStock_DiasDeCalendario(t *testing.T) {
	today := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, inventory.DaysInStock(today, time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 1, inventory.DaysInStock(today, time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 37, inventory.DaysInStock(today, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestExpiredShelfLife_FiltraYOrdena(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	candidates := []inventory.ShelfLifeCandidate{
		{ProductID: "sin-vida-util", ShelfLifeDays: nil, LastRestockAt: timePtr(today.AddDate(0, 0, -100))},
		{ProductID: "sin-entradas", ShelfLifeDays: intPtr(1), LastRestockAt: nil},
		{ProductID: "justo-en-limite", ShelfLifeDays: intPtr(5), LastRestockAt: timePtr(today.AddDate(0, 0, -5))},
		{ProductID: "vencido-6", ShelfLifeDays: intPtr(5), LastRestockAt: timePtr(today.AddDate(0, 0, -6))},
		{ProductID: "vencido-30", ShelfLifeDays: intPtr(7), LastRestockAt: timePtr(today.AddDate(0, 0, -30))},
	}

	out := inventory.ExpiredShelfLife(today, candidates)

	require.Len(t, out, 2)
	assert.Equal(t, "vencido-30", out[0].ProductID)
	assert.Equal(t, 30, out[0].DaysInStock)
	assert.Equal(t, "vencido-6", out[1].ProductID)
	assert.Equal(t, 6, out[1].DaysInStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial de reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestNewRestockHistory_SoloDeltasPositivos(t *testing.T) {
	totals := map[string]decimal.Decimal{"a": d("100"), "b": d("-4")}
	prices := map[string]decimal.Decimal{"a": d("10"), "b": d("3")}

	h := inventory.NewRestockHistory(d("20"), totals, prices)

	assert.True(t, d("1000").Equal(h.NewValue))
	assert.True(t, d("1020").Equal(h.Closing))
	require.Len(t, h.Lines, 1)
	assert.Equal(t, "a", h.Lines[0].ProductID)
	assert.True(t, d("10").Equal(h.Lines[0].UnitPrice))
}

func TestNewRestockHistory_ReciboSoloNegativo(t *testing.T) {
	h := inventory.NewRestockHistory(d("0"), map[string]decimal.Decimal{"a": d("-10")}, map[string]decimal.Decimal{"a": d("5")})

	assert.True(t, h.NewValue.IsZero())
	assert.True(t, h.Closing.IsZero())
	assert.Empty(t, h.Lines)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escala de columnas NUMERIC
// ──────────────────────────────────────────────────────────────────────────────

func TestFitsQuantity_EscalaYMagnitud(t *testing.T) {
	for _, v := range []string{"1", "-2.5", "0.001", "1.5000", "99999999999.999"} {
		assert.True(t, inventory.FitsQuantity(d(v)), v)
	}
	for _, v := range []string{"0.0004", "0.0016", "-1.2345", "100000000000"} {
		assert.False(t, inventory.FitsQuantity(d(v)), v)
	}
}

func TestFitsPrice_EscalaYMagnitud(t *testing.T) {
	for _, v := range []string{"0", "12.34", "12.340", "999999999999.99"} {
		assert.True(t, inventory.FitsPrice(d(v)), v)
	}
	for _, v := range []string{"12.345", "0.001", "1000000000000"} {
		assert.False(t, inventory.FitsPrice(d(v)), v)
	}
}
