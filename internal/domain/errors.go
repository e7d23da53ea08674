package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrInvalidInput es el ValidationError del ledger y ErrNotFound el NotFoundError:
// ambos se devuelven antes de cualquier escritura.
// Una venta con stock insuficiente no es un error: se repone el faltante.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
)
