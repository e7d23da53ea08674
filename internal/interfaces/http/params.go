package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

const dateLayout = "2006-01-02"

// parseTimeParam acepta RFC3339 o YYYY-MM-DD. Con endOfDay una fecha sin hora cubre el día completo.
func parseTimeParam(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	d, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return d.Add(24*time.Hour - time.Nanosecond), nil
	}
	return d, nil
}

// parsePeriod lee start/end; ausentes quedan en cero y el caso de uso decide el default.
func parsePeriod(c *fiber.Ctx) (start, end time.Time, ok bool, err error) {
	if raw := c.Query("start"); raw != "" {
		if start, err = parseTimeParam(raw, false); err != nil {
			return start, end, false, invalidQuery(c, "start")
		}
	}
	if raw := c.Query("end"); raw != "" {
		if end, err = parseTimeParam(raw, true); err != nil {
			return start, end, false, invalidQuery(c, "end")
		}
	}
	return start, end, true, nil
}

// parsePage lee limit/offset y aplica los defaults de paginación.
func parsePage(c *fiber.Ctx) (dto.PageRequest, bool, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, false, invalidQuery(c, "limit/offset")
	}
	if msg, ok := validateStruct(page); !ok {
		return page, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	}
	page.DefaultPage()
	return page, true, nil
}

func invalidQuery(c *fiber.Ctx, param string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "parámetro inválido: " + param})
}
