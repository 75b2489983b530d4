package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/report"
)

func sampleReport() inventory.BalanceReport {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return inventory.BalanceReport{
		OrganizationID: "org-1",
		GeneratedAt:    time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC),
		Statuses:       []string{"POSTED", "DRAFT"},
		From:           &from,
		Rows: []*entity.BalanceRow{
			{NodeType: entity.NodeTypeWarehouse, NodeCode: "W1", NodeName: "Bodega Uno", ItemCode: "TOR-01", ItemName: "Tornillo", UnitCode: "UND", Quantity: decimal.RequireFromString("70")},
			{NodeType: entity.NodeTypeVirtual, NodeCode: "EXTERNAL", NodeName: "External", ItemCode: "TOR-01", ItemName: "Tornillo", UnitCode: "UND", Quantity: decimal.RequireFromString("-70.5")},
		},
	}
}

func TestXLSXRenderer_EscribeFilas(t *testing.T) {
	r := report.NewXLSXRenderer()
	content, err := r.Render(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, "xlsx", r.Extension())

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Saldos")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Contains(t, rows[0][0], "POSTED, DRAFT")
	assert.Equal(t, "Tipo nodo", rows[2][0])
	assert.Equal(t, []string{"WAREHOUSE", "W1", "Bodega Uno", "TOR-01", "Tornillo", "UND", "70"}, rows[3])
	assert.Equal(t, "-70.5", rows[4][6])
}

func TestPDFRenderer_GeneraDocumento(t *testing.T) {
	r := report.NewPDFRenderer()
	content, err := r.Render(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	assert.Equal(t, "application/pdf", r.ContentType())
}

func TestPDFRenderer_SinFilas(t *testing.T) {
	content, err := report.NewPDFRenderer().Render(inventory.BalanceReport{GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
