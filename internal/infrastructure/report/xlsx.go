package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

var _ inventory.BalanceRenderer = (*XLSXRenderer)(nil)

const balanceSheet = "Saldos"

var xlsxHeader = []any{"Tipo nodo", "Código nodo", "Nodo", "Código ítem", "Ítem", "Unidad", "Cantidad"}

// XLSXRenderer genera el reporte de saldos como libro de Excel.
type XLSXRenderer struct{}

// NewXLSXRenderer construye el renderer.
func NewXLSXRenderer() *XLSXRenderer { return &XLSXRenderer{} }

func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXRenderer) Extension() string { return "xlsx" }

// Render escribe una hoja "Saldos": fila de filtros, cabecera y una fila por saldo.
// La cantidad se escribe como número para que Excel pueda sumarla.
func (XLSXRenderer) Render(rep inventory.BalanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", balanceSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetCellValue(balanceSheet, "A1", filterSummary(rep)); err != nil {
		return nil, fmt.Errorf("xlsx: filtros: %w", err)
	}
	header := xlsxHeader
	if err := f.SetSheetRow(balanceSheet, "A3", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(balanceSheet, "A3", "G3", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, r := range rep.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		qty, _ := r.Quantity.Float64()
		values := []any{string(r.NodeType), r.NodeCode, r.NodeName, r.ItemCode, r.ItemName, r.UnitCode, qty}
		if err := f.SetSheetRow(balanceSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(balanceSheet, "A", "B", 14)
	_ = f.SetColWidth(balanceSheet, "C", "E", 28)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
