// Package inventory contiene los servicios de dominio del ledger de stock: proyección de cantidades,
// valoración y los cálculos de los reportes (cuenta comercial, arqueo, vida útil, historial de reposición).
// Todo es cálculo puro sobre datos ya agregados; la persistencia vive en los repositorios.
package inventory

import "time"

// Cutoff define el corte temporal de una proyección.
// AsOf incluye los movimientos con created_at == At; Before los excluye.
// El saldo de apertura de un período usa Before(inicio) y el de cierre AsOf(fin).
type Cutoff struct {
	At        time.Time
	Inclusive bool
}

// AsOf corte inclusivo: created_at <= t.
func AsOf(t time.Time) Cutoff {
	return Cutoff{At: t, Inclusive: true}
}

// Before corte estricto: created_at < t.
func Before(t time.Time) Cutoff {
	return Cutoff{At: t, Inclusive: false}
}

// Includes indica si un movimiento creado en t entra en el corte.
func (c Cutoff) Includes(t time.Time) bool {
	if c.Inclusive {
		return !t.After(c.At)
	}
	return t.Before(c.At)
}
