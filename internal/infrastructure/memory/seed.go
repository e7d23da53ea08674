package memory

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// Seed catálogo y ventas iniciales del driver en memoria (MEMORY_SEED_FILE).
// El catálogo y las ventas pertenecen a subsistemas externos; sin seed el driver arranca vacío
// y toda reposición responde 404.
type Seed struct {
	Products []SeedProduct `mapstructure:"products"`
	Sales    []SeedSale    `mapstructure:"sales"`
}

// SeedProduct producto del catálogo. Los decimales viajan como texto para no perder escala.
type SeedProduct struct {
	ID                string `mapstructure:"id"`
	BusinessID        string `mapstructure:"business_id"`
	SKU               string `mapstructure:"sku"`
	Name              string `mapstructure:"name"`
	BuyPrice          string `mapstructure:"buy_price"`
	SellPrice         string `mapstructure:"sell_price"`
	ShelfLifeDays     *int   `mapstructure:"shelf_life_days"`
	LowStockThreshold string `mapstructure:"low_stock_threshold"`
}

// SeedSale línea de venta finalizada; SoldAt en RFC3339.
type SeedSale struct {
	BusinessID string `mapstructure:"business_id"`
	ProductID  string `mapstructure:"product_id"`
	Amount     string `mapstructure:"amount"`
	SoldAt     string `mapstructure:"sold_at"`
}

// LoadSeed lee un archivo YAML o JSON (según la extensión).
func LoadSeed(path string) (*Seed, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("seed: leer %s: %w", path, err)
	}
	var seed Seed
	if err := v.Unmarshal(&seed); err != nil {
		return nil, fmt.Errorf("seed: decodificar %s: %w", path, err)
	}
	return &seed, nil
}

// Apply valida todo el seed y luego lo carga en el store; un error no deja carga parcial.
func (s *Store) Apply(seed *Seed) error {
	products := make([]entity.Product, 0, len(seed.Products))
	for i, sp := range seed.Products {
		p, err := sp.toEntity()
		if err != nil {
			return fmt.Errorf("seed: producto %d (%s): %w", i, sp.ID, err)
		}
		products = append(products, p)
	}
	sales := make([]SaleRecord, 0, len(seed.Sales))
	for i, ss := range seed.Sales {
		rec, err := ss.toRecord()
		if err != nil {
			return fmt.Errorf("seed: venta %d: %w", i, err)
		}
		sales = append(sales, rec)
	}

	for _, p := range products {
		s.PutProduct(p)
	}
	for _, rec := range sales {
		s.AddSale(rec)
	}
	return nil
}

func (sp SeedProduct) toEntity() (entity.Product, error) {
	if sp.ID == "" || sp.BusinessID == "" || sp.Name == "" {
		return entity.Product{}, fmt.Errorf("id, business_id y name son requeridos")
	}
	buy, err := parsePrice(sp.BuyPrice)
	if err != nil {
		return entity.Product{}, fmt.Errorf("buy_price: %w", err)
	}
	sell, err := parsePrice(sp.SellPrice)
	if err != nil {
		return entity.Product{}, fmt.Errorf("sell_price: %w", err)
	}
	now := time.Now()
	p := entity.Product{
		ID: sp.ID, BusinessID: sp.BusinessID, SKU: sp.SKU, Name: sp.Name,
		BuyPrice: buy, SellPrice: sell, ShelfLifeDays: sp.ShelfLifeDays,
		CreatedAt: now, UpdatedAt: now,
	}
	if sp.LowStockThreshold != "" {
		threshold, err := decimal.NewFromString(sp.LowStockThreshold)
		if err != nil || !inventory.FitsQuantity(threshold) {
			return entity.Product{}, fmt.Errorf("low_stock_threshold inválido %q", sp.LowStockThreshold)
		}
		p.LowStockThreshold = &threshold
	}
	return p, nil
}

func (ss SeedSale) toRecord() (SaleRecord, error) {
	if ss.BusinessID == "" || ss.ProductID == "" {
		return SaleRecord{}, fmt.Errorf("business_id y product_id son requeridos")
	}
	amount, err := parsePrice(ss.Amount)
	if err != nil {
		return SaleRecord{}, fmt.Errorf("amount: %w", err)
	}
	soldAt, err := time.Parse(time.RFC3339, ss.SoldAt)
	if err != nil {
		return SaleRecord{}, fmt.Errorf("sold_at: %w", err)
	}
	return SaleRecord{BusinessID: ss.BusinessID, ProductID: ss.ProductID, Amount: amount, SoldAt: soldAt}, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() || !inventory.FitsPrice(d) {
		return decimal.Zero, fmt.Errorf("precio inválido %q", raw)
	}
	return d, nil
}
