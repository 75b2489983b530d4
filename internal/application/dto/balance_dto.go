package dto

import "github.com/shopspring/decimal"

// BalanceResponse saldo de un ítem en un nodo.
type BalanceResponse struct {
	NodeID   string          `json:"node_id"`
	NodeType string          `json:"node_type"`
	NodeCode string          `json:"node_code,omitempty"`
	NodeName string          `json:"node_name"`
	ItemID   string          `json:"item_id"`
	ItemCode string          `json:"item_code"`
	ItemName string          `json:"item_name"`
	UnitCode string          `json:"unit_code,omitempty"`
	Quantity decimal.Decimal `json:"quantity"`
}

// BalanceListResponse respuesta de GET /api/inventory/balances.
type BalanceListResponse struct {
	Items []BalanceResponse `json:"items"`
	Total int               `json:"total"`
}
