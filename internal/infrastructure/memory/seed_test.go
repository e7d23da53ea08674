package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
)

func TestLoadSeed_CargaCatalogoYVentas(t *testing.T) {
	seed, err := memory.LoadSeed("testdata/seed.yaml")
	require.NoError(t, err)
	require.Len(t, seed.Products, 2)
	require.Len(t, seed.Sales, 1)

	store := memory.NewStore()
	require.NoError(t, store.Apply(seed))
	repos := memory.NewRepositories(store)
	ctx := context.Background()

	cafe, err := repos.Products.GetByID(ctx, "tienda-centro", "cafe-500")
	require.NoError(t, err)
	require.NotNil(t, cafe)
	assert.Equal(t, "10.5", cafe.BuyPrice.String())
	require.NotNil(t, cafe.ShelfLifeDays)
	assert.Equal(t, 90, *cafe.ShelfLifeDays)
	require.NotNil(t, cafe.LowStockThreshold)
	assert.True(t, cafe.LowStockThreshold.Equal(decimal.NewFromInt(5)))

	// Números sin comillas en YAML también se aceptan.
	azucar, err := repos.Products.GetByID(ctx, "tienda-centro", "azucar-1k")
	require.NoError(t, err)
	require.NotNil(t, azucar)
	assert.Equal(t, "3.25", azucar.SellPrice.String())
	assert.Nil(t, azucar.ShelfLifeDays)

	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	total, err := repos.Sales.SalesTotal(ctx, "tienda-centro", feb, feb.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(450)))

	list, err := repos.Products.ListByBusiness(ctx, "otro-negocio", repository.ProductQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestApply_SeedInvalidoNoCargaNada(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"products": [
			{"id": "ok", "business_id": "b", "name": "Válido", "buy_price": "1", "sell_price": "2"},
			{"id": "mal", "business_id": "b", "name": "Precio con 3 decimales", "buy_price": "1.234"}
		]
	}`), 0o600))

	seed, err := memory.LoadSeed(path)
	require.NoError(t, err)

	store := memory.NewStore()
	assert.Error(t, store.Apply(seed))

	p, err := memory.NewRepositories(store).Products.GetByID(context.Background(), "b", "ok")
	require.NoError(t, err)
	assert.Nil(t, p, "un error de validación no deja carga parcial")
}

func TestLoadSeed_ArchivoInexistente(t *testing.T) {
	_, err := memory.LoadSeed(filepath.Join(t.TempDir(), "no-existe.yaml"))
	assert.Error(t, err)
}
