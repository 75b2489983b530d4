package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceFilter filtros de la proyección de saldos. Statuses vacío equivale a solo POSTED.
type BalanceFilter struct {
	NodeIDs  []string
	ItemIDs  []string
	Statuses []MovementStatus
	From     *time.Time
	To       *time.Time
}

// BalanceRow saldo neto de un ítem en un nodo, con etiquetas para presentación.
type BalanceRow struct {
	NodeID   string
	NodeType NodeType
	NodeCode string
	NodeName string
	ItemID   string
	ItemCode string
	ItemName string
	UnitCode string
	Quantity decimal.Decimal
}
