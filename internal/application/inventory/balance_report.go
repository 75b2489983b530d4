package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// BalanceReport datos de entrada de un reporte de saldos.
type BalanceReport struct {
	OrganizationID string
	GeneratedAt    time.Time
	Statuses       []string
	From           *time.Time
	To             *time.Time
	Rows           []*entity.BalanceRow
}

// BalanceRenderer convierte un reporte de saldos a un formato de archivo (puerto de salida).
type BalanceRenderer interface {
	Render(report BalanceReport) ([]byte, error)
	ContentType() string
	Extension() string
}

// ReportFile archivo generado listo para descargar.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// BalanceReportUseCase exporta la proyección de saldos en los formatos registrados.
type BalanceReportUseCase struct {
	balances  *BalanceUseCase
	renderers map[string]BalanceRenderer
	now       func() time.Time
}

// NewBalanceReportUseCase registra los renderers por formato (pdf, xlsx, ...).
func NewBalanceReportUseCase(balances *BalanceUseCase, renderers map[string]BalanceRenderer) *BalanceReportUseCase {
	return &BalanceReportUseCase{
		balances:  balances,
		renderers: renderers,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Export calcula los saldos con los mismos filtros de GetBalances y los renderiza.
func (uc *BalanceReportUseCase) Export(ctx context.Context, orgID, format string, q BalanceQuery) (*ReportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	r, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("formato %q: %w", format, domain.ErrInvalidInput)
	}
	ctx, span := tracer.Start(ctx, "BalanceReportUseCase.Export")
	defer span.End()

	rows, err := uc.balances.GetBalances(ctx, orgID, q)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	content, err := r.Render(BalanceReport{
		OrganizationID: orgID,
		GeneratedAt:    now,
		Statuses:       q.Statuses,
		From:           q.From,
		To:             q.To,
		Rows:           rows,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return &ReportFile{
		Filename:    fmt.Sprintf("saldos-%s.%s", now.Format("20060102-150405"), r.Extension()),
		ContentType: r.ContentType(),
		Content:     content,
	}, nil
}
