package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// Cabeceras del protocolo de idempotencia.
const (
	HeaderIdempotencyKey    = "Idempotency-Key"
	HeaderIdempotentReplay  = "Idempotent-Replayed"
	inFlightReservationTTL  = 30 * time.Second
	maxIdempotencyKeyLength = 128
)

// Idempotency repite la respuesta 2xx guardada cuando llega la misma Idempotency-Key para el mismo
// negocio y ruta. Sin cabecera la petición pasa tal cual. Debe ir después de AuthMiddleware.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if key == "" {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLength {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Idempotency-Key demasiado larga"})
		}
		ctx := c.UserContext()
		storeKey := GetBusinessID(c) + ":" + c.Method() + ":" + c.Path() + ":" + key

		stored, err := store.Get(ctx, storeKey)
		switch {
		case errors.Is(err, cache.ErrKeyInFlight):
			return inFlight(c)
		case err != nil:
			log.Error().Err(err).Str("key", key).Msg("idempotency: lectura")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_UNAVAILABLE", Message: "no se pudo verificar la llave de idempotencia"})
		case stored != nil:
			return replay(c, stored)
		}

		reserved, err := store.Reserve(ctx, storeKey, inFlightReservationTTL)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("idempotency: reserva")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_UNAVAILABLE", Message: "no se pudo reservar la llave de idempotencia"})
		}
		if !reserved {
			return inFlight(c)
		}

		if err := c.Next(); err != nil {
			_ = store.Release(ctx, storeKey)
			return err
		}

		status := c.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			// Los errores no se guardan: el cliente puede reintentar con la misma llave.
			if err := store.Release(ctx, storeKey); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotency: liberar reserva")
			}
			return nil
		}
		resp := cache.StoredResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		}
		if err := store.Complete(ctx, storeKey, resp, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("idempotency: guardar respuesta")
		}
		return nil
	}
}

func replay(c *fiber.Ctx, stored *cache.StoredResponse) error {
	c.Set(HeaderIdempotentReplay, "true")
	if stored.ContentType != "" {
		c.Set(fiber.HeaderContentType, stored.ContentType)
	}
	return c.Status(stored.Status).Send(stored.Body)
}

func inFlight(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IDEMPOTENCY_IN_FLIGHT", Message: "otra petición con la misma Idempotency-Key está en curso"})
}
