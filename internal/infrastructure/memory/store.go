// Package memory implementa los repositorios del ledger en memoria (STORAGE_DRIVER=memory).
// Pensado para desarrollo local y tests: los datos se pierden al reiniciar.
package memory

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// SaleRecord monto de una línea de venta finalizada (lo que expone el subsistema de transacciones).
type SaleRecord struct {
	BusinessID string
	ProductID  string
	Amount     decimal.Decimal
	SoldAt     time.Time
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	receipts  map[string]entity.StockReceipt
	movements []entity.StockMovement
	sales     []SaleRecord

	locksMu      sync.Mutex
	productLocks map[string]*sync.Mutex
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:     make(map[string]entity.Product),
		receipts:     make(map[string]entity.StockReceipt),
		productLocks: make(map[string]*sync.Mutex),
	}
}

// PutProduct crea o reemplaza un producto del catálogo (el catálogo es externo al ledger).
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// AddSale registra una línea de venta finalizada para los reportes de ventas.
func (s *Store) AddSale(rec SaleRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, rec)
}

// productLock mutex por (negocio, producto); se crea bajo demanda.
func (s *Store) productLock(businessID, productID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	key := businessID + "/" + productID
	l, ok := s.productLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.productLocks[key] = l
	}
	return l
}

// Repositories agrupa los adaptadores que comparten el mismo Store.
type Repositories struct {
	Products  *ProductRepository
	Movements *StockMovementRepository
	Receipts  *StockReceiptRepository
	Sales     *SalesRepository
	Tx        *TxRunner
}

// NewRepositories construye todos los repositorios sobre s.
func NewRepositories(s *Store) *Repositories {
	return &Repositories{
		Products:  &ProductRepository{s: s},
		Movements: &StockMovementRepository{s: s},
		Receipts:  &StockReceiptRepository{s: s},
		Sales:     &SalesRepository{s: s},
		Tx:        &TxRunner{s: s},
	}
}
