// Package cache guarda las respuestas de escrituras con Idempotency-Key para poder repetirlas
// sin volver a escribir en el ledger. Redis en despliegues con varias instancias; memoria si no hay Redis.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyInFlight la misma llave se está procesando en otra petición.
var ErrKeyInFlight = errors.New("idempotency: petición en curso con la misma llave")

// StoredResponse respuesta guardada para repetir.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore contrato común de los almacenes.
//
// Flujo: Get → (si no hay respuesta) Reserve → handler → Complete (éxito) o Release (error).
type IdempotencyStore interface {
	// Get devuelve la respuesta guardada; (nil, nil) si no existe. ErrKeyInFlight si está reservada sin respuesta.
	Get(ctx context.Context, key string) (*StoredResponse, error)
	// Reserve marca la llave como en curso; false si ya existía.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Complete guarda la respuesta final con el TTL indicado.
	Complete(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	// Release borra la reserva para permitir reintentos.
	Release(ctx context.Context, key string) error
	Close() error
}
