package inventory

import (
	"sort"
	"time"
)

// ShelfLifeCandidate producto evaluado por el escáner de promociones.
type ShelfLifeCandidate struct {
	ProductID     string
	ShelfLifeDays *int
	LastRestockAt *time.Time // último movimiento positivo; nil si nunca hubo entrada
}

// ExpiredItem producto que superó su vida útil en stock.
type ExpiredItem struct {
	ProductID     string
	ShelfLifeDays int
	DaysInStock   int
	LastRestockAt time.Time
}

// DaysInStock días de calendario entre la fecha del último reabastecimiento y hoy,
// ambos llevados a fecha en la zona horaria de today.
func DaysInStock(today, lastRestock time.Time) int {
	loc := today.Location()
	y1, m1, d1 := lastRestock.In(loc).Date()
	y2, m2, d2 := today.Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// ExpiredShelfLife filtra los candidatos con DaysInStock > ShelfLifeDays y los ordena de mayor a menor antigüedad.
// Sin vida útil configurada o sin entradas registradas el producto se excluye.
func ExpiredShelfLife(today time.Time, candidates []ShelfLifeCandidate) []ExpiredItem {
	out := make([]ExpiredItem, 0)
	for _, c := range candidates {
		if c.ShelfLifeDays == nil || c.LastRestockAt == nil {
			continue
		}
		days := DaysInStock(today, *c.LastRestockAt)
		if days <= *c.ShelfLifeDays {
			continue
		}
		out = append(out, ExpiredItem{
			ProductID:     c.ProductID,
			ShelfLifeDays: *c.ShelfLifeDays,
			DaysInStock:   days,
			LastRestockAt: *c.LastRestockAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysInStock != out[j].DaysInStock {
			return out[i].DaysInStock > out[j].DaysInStock
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}
