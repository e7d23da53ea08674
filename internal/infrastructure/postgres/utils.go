package postgres

import (
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

// psql builder con placeholders $1, $2...
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isCheckViolation verifica 23514 (p. ej. quantity <> 0 tras el redondeo de NUMERIC).
func isCheckViolation(err error) bool {
	return hasCode(err, "23514")
}

// isInvalidText verifica 22P02 (p. ej. un id que no es UUID); se trata como "no existe".
func isInvalidText(err error) bool {
	return hasCode(err, "22P02")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// cutoffPredicate created_at <= At (AsOf) o created_at < At (Before).
func cutoffPredicate(column string, c inventory.Cutoff) squirrel.Sqlizer {
	if c.Inclusive {
		return squirrel.LtOrEq{column: c.At}
	}
	return squirrel.Lt{column: c.At}
}
