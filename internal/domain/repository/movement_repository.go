package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia de eventos y líneas de movimiento.
type MovementRepository interface {
	CreateEvent(ctx context.Context, e *entity.MovementEvent) error
	GetEvent(ctx context.Context, orgID, id string) (*entity.MovementEvent, error)
	// UpdateDraftEvent solo actualiza si el evento sigue en DRAFT; si no, devuelve domain.ErrImmutable.
	UpdateDraftEvent(ctx context.Context, e *entity.MovementEvent) error
	DeleteEvent(ctx context.Context, orgID, id string) error

	CreateLines(ctx context.Context, lines []*entity.MovementLine) error
	GetLine(ctx context.Context, orgID, id string) (*entity.MovementLine, error)
	ListLines(ctx context.Context, orgID, eventID string) ([]*entity.MovementLine, error)
	UpdateLine(ctx context.Context, l *entity.MovementLine) error
	// DeleteLine solo borra si el evento de la línea sigue en DRAFT; si no, devuelve domain.ErrImmutable.
	// Una línea inexistente devuelve domain.ErrNotFound.
	DeleteLine(ctx context.Context, orgID, id string) error
	CountLines(ctx context.Context, eventID string) (int, error)

	// ListRecent líneas más recientes (occurred_at desc, id desc) con etiquetas.
	ListRecent(ctx context.Context, orgID string, limit int) ([]*entity.MovementView, error)
}

// BalanceReader proyección de saldos sobre el libro. No persiste estado.
type BalanceReader interface {
	Balances(ctx context.Context, orgID string, f entity.BalanceFilter) ([]*entity.BalanceRow, error)
}
