package analytics

import (
	"fmt"
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// Clock devuelve la hora actual; los tests la fijan.
type Clock func() time.Time

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// validatePeriod exige un rango cerrado no vacío.
func validatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start y end son requeridos", domain.ErrInvalidInput)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end no puede ser anterior a start", domain.ErrInvalidInput)
	}
	return nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
