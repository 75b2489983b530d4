package inventory

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// BalanceQuery filtros de la consulta de saldos. Statuses vacío = solo POSTED.
type BalanceQuery struct {
	NodeIDs  []string
	ItemIDs  []string
	Statuses []string
	From     *time.Time
	To       *time.Time
}

// BalanceUseCase proyección de saldos: recalcula desde el libro en cada llamada, sin caché.
type BalanceUseCase struct {
	repos   ports.Repositories
	metrics ports.LedgerMetrics
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(repos ports.Repositories, metrics ports.LedgerMetrics) *BalanceUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &BalanceUseCase{repos: repos, metrics: metrics}
}

// GetBalances devuelve el saldo neto por (nodo, ítem), sin filas en cero,
// ordenado por tipo de nodo, nombre de nodo y código de ítem.
func (uc *BalanceUseCase) GetBalances(ctx context.Context, orgID string, q BalanceQuery) (rows []*entity.BalanceRow, err error) {
	ctx, span := tracer.Start(ctx, "BalanceUseCase.GetBalances", trace.WithAttributes(
		attribute.String("organization_id", orgID),
	))
	defer func() { endSpan(span, err) }()

	f, err := q.filter()
	if err != nil {
		return nil, err
	}
	if q.matchesNothing(f) {
		return []*entity.BalanceRow{}, nil
	}
	start := time.Now()
	rows, err = uc.repos.Balances.Balances(ctx, orgID, f)
	if err != nil {
		return nil, err
	}
	rows = inventory.DropZero(rows)
	inventory.SortBalances(rows)
	uc.metrics.BalanceQueryObserved(time.Since(start), len(rows))
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows, nil
}

func (q BalanceQuery) filter() (entity.BalanceFilter, error) {
	f := entity.BalanceFilter{
		NodeIDs: lookupIDs(q.NodeIDs),
		ItemIDs: lookupIDs(q.ItemIDs),
		From:    q.From,
		To:      q.To,
	}
	for _, s := range q.Statuses {
		st, err := entity.ParseMovementStatus(s)
		if err != nil {
			return f, err
		}
		f.Statuses = append(f.Statuses, st)
	}
	if len(f.Statuses) == 0 {
		f.Statuses = []entity.MovementStatus{entity.StatusPosted}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, domain.ErrInvalidInput
	}
	return f, nil
}

// matchesNothing indica que algún filtro de IDs se pidió pero ninguno de sus
// valores es un UUID: esa dimensión no puede coincidir con ninguna línea.
func (q BalanceQuery) matchesNothing(f entity.BalanceFilter) bool {
	return (len(q.NodeIDs) > 0 && len(f.NodeIDs) == 0) ||
		(len(q.ItemIDs) > 0 && len(f.ItemIDs) == 0)
}
