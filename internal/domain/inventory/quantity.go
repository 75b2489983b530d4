package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// QuantityScale dígitos fraccionarios admitidos en cantidades (numeric(18,3)).
const QuantityScale = 3

var maxQuantity = decimal.New(1, 15) // 15 dígitos enteros

// ValidateQuantity exige q > 0, a lo sumo QuantityScale decimales y que quepa en la columna.
// No redondea: una cantidad con más decimales se rechaza.
func ValidateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if !q.Equal(q.Truncate(QuantityScale)) {
		return domain.ErrInvalidQuantity
	}
	if q.GreaterThanOrEqual(maxQuantity) {
		return domain.ErrInvalidQuantity
	}
	return nil
}
