package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestCreateEvent_ValoresPorDefectoYNumeracion(t *testing.T) {
	f := newFixture(t)

	out := f.create(t, "",
		f.move(f.external, f.w1, "10"),
		f.move(f.w1, f.w2, "4"),
		f.move(f.w2, f.adjustment, "1.5"),
	)

	assert.Equal(t, entity.DefaultEventType, out.Event.EventType)
	assert.Equal(t, entity.StatusPosted, out.Event.Status)
	assert.False(t, out.Event.OccurredAt.IsZero())
	assert.Equal(t, testUserID, out.Event.CreatedBy)
	require.Len(t, out.Lines, 3)
	for i, l := range out.Lines {
		assert.Equal(t, i+1, l.LineNo)
		assert.Equal(t, out.Event.ID, l.EventID)
		assert.Equal(t, f.unit.ID, l.UnitID, "la unidad se toma del ítem")
	}
}

func TestCreateEvent_EscenarioExterno(t *testing.T) {
	f := newFixture(t)

	f.create(t, "POSTED", f.move(f.external, f.w1, "100"))
	f.create(t, "POSTED", f.move(f.w1, f.external, "30"))

	assert.True(t, f.balanceOf(t, f.w1).Equal(qty("70")))
	assert.True(t, f.balanceOf(t, f.external).Equal(qty("-70")))
}

func TestCreateEvent_LoteConUnaLineaInvalidaNoPersisteNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.movements.CreateEvent(ctx, inventory.CreateEventInput{
		OrganizationID: testOrgID,
		Lines: []inventory.LineInput{
			f.move(f.external, f.w1, "5"),
			f.move(f.w1, f.w1, "1"),
		},
	})
	assert.ErrorIs(t, err, domain.ErrSameNode)

	list, err := f.movements.ListMovements(ctx, testOrgID, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.True(t, f.balanceOf(t, f.w1).IsZero())
}

func TestCreateEvent_EstadoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.movements.CreateEvent(context.Background(), inventory.CreateEventInput{
		OrganizationID: testOrgID,
		Status:         "ARCHIVED",
		Lines:          []inventory.LineInput{f.move(f.external, f.w1, "1")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateDraftLine_EditaBorrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	occurred := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	draft, err := f.movements.CreateEvent(ctx, inventory.CreateEventInput{
		OrganizationID: testOrgID,
		EventType:      "RECEIPT",
		Status:         "DRAFT",
		OccurredAt:     &occurred,
		ReferenceType:  "PO",
		ReferenceID:    "PO-1",
		Note:           "inicial",
		Lines:          []inventory.LineInput{f.move(f.external, f.w1, "5")},
	})
	require.NoError(t, err)

	out, err := f.movements.UpdateDraftLine(ctx, inventory.UpdateLineInput{
		OrganizationID: testOrgID,
		LineID:         draft.Lines[0].ID,
		Note:           "corregido",
		Line:           f.move(f.external, f.w2, "7"),
	})
	require.NoError(t, err)

	assert.Equal(t, "RECEIPT", out.Event.EventType, "sin event_type se conserva el actual")
	assert.True(t, occurred.Equal(out.Event.OccurredAt), "sin occurred_at se conserva el actual")
	assert.Empty(t, out.Event.ReferenceType, "la referencia se reemplaza")
	assert.Equal(t, "corregido", out.Event.Note)
	assert.Equal(t, f.w2.ID, out.Lines[0].ToNodeID)
	assert.True(t, out.Lines[0].Quantity.Equal(qty("7")))
	assert.Equal(t, 1, out.Lines[0].LineNo)

	// Un borrador no afecta los saldos por defecto.
	assert.True(t, f.balanceOf(t, f.w2).IsZero())
}

func TestUpdateDraftLine_EventoContabilizadoEsInmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	posted := f.create(t, "POSTED", f.move(f.external, f.w1, "5"))

	_, err := f.movements.UpdateDraftLine(ctx, inventory.UpdateLineInput{
		OrganizationID: testOrgID,
		LineID:         posted.Lines[0].ID,
		Line:           f.move(f.external, f.w1, "500"),
	})
	assert.ErrorIs(t, err, domain.ErrImmutable)

	got, err := f.movements.GetEvent(ctx, testOrgID, posted.Event.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, got.Lines[0].Quantity.Equal(qty("5")), "la línea contabilizada no cambia")
	assert.True(t, f.balanceOf(t, f.w1).Equal(qty("5")))
}

func TestUpdateDraftLine_InexistenteYValidacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.movements.UpdateDraftLine(ctx, inventory.UpdateLineInput{
		OrganizationID: testOrgID, LineID: uuid.NewString(), Line: f.move(f.external, f.w1, "1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	draft := f.create(t, "DRAFT", f.move(f.external, f.w1, "1"))
	_, err = f.movements.UpdateDraftLine(ctx, inventory.UpdateLineInput{
		OrganizationID: testOrgID, LineID: draft.Lines[0].ID, Line: f.move(f.w1, f.w1, "1"),
	})
	assert.ErrorIs(t, err, domain.ErrSameNode)

	// Otra organización no ve la línea.
	_, err = f.movements.UpdateDraftLine(ctx, inventory.UpdateLineInput{
		OrganizationID: otherOrgID, LineID: draft.Lines[0].ID, Line: f.move(f.external, f.w1, "1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateDraftLine_ContabilizaDesdeEdicion(t *testing.T) {
	f := newFixture(t)
	draft := f.create(t, "DRAFT", f.move(f.external, f.w1, "3"))

	out, err := f.movements.UpdateDraftLine(context.Background(), inventory.UpdateLineInput{
		OrganizationID: testOrgID,
		LineID:         draft.Lines[0].ID,
		Status:         strPtr("POSTED"),
		Line:           f.move(f.external, f.w1, "3"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPosted, out.Event.Status)
	assert.True(t, f.balanceOf(t, f.w1).Equal(qty("3")))
}

func TestDeleteDraftLine_BorraEventoAlQuedarVacio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.create(t, "DRAFT", f.move(f.external, f.w1, "1"), f.move(f.external, f.w2, "2"))

	require.NoError(t, f.movements.DeleteDraftLine(ctx, testOrgID, draft.Lines[0].ID))
	got, err := f.movements.GetEvent(ctx, testOrgID, draft.Event.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 1)

	require.NoError(t, f.movements.DeleteDraftLine(ctx, testOrgID, draft.Lines[1].ID))
	_, err = f.movements.GetEvent(ctx, testOrgID, draft.Event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteDraftLine_ContabilizadoEInexistente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	posted := f.create(t, "POSTED", f.move(f.external, f.w1, "1"))

	assert.ErrorIs(t, f.movements.DeleteDraftLine(ctx, testOrgID, posted.Lines[0].ID), domain.ErrImmutable)
	assert.ErrorIs(t, f.movements.DeleteDraftLine(ctx, testOrgID, uuid.NewString()), domain.ErrNotFound)
	assert.ErrorIs(t, f.movements.DeleteDraftLine(ctx, testOrgID, "no-es-uuid"), domain.ErrNotFound)
}

func TestTransitionEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.create(t, "DRAFT", f.move(f.external, f.w1, "8"))

	out, err := f.movements.TransitionEvent(ctx, testOrgID, draft.Event.ID, entity.StatusPosted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPosted, out.Event.Status)
	assert.Len(t, out.Lines, 1)
	assert.True(t, f.balanceOf(t, f.w1).Equal(qty("8")))

	_, err = f.movements.TransitionEvent(ctx, testOrgID, draft.Event.ID, entity.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrImmutable)

	_, err = f.movements.TransitionEvent(ctx, testOrgID, uuid.NewString(), entity.StatusPosted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_OrdenYLimite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		_, err := f.movements.CreateEvent(ctx, inventory.CreateEventInput{
			OrganizationID: testOrgID,
			OccurredAt:     &at,
			Lines:          []inventory.LineInput{f.move(f.external, f.w1, "1")},
		})
		require.NoError(t, err)
	}

	list, err := f.movements.ListMovements(ctx, testOrgID, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].OccurredAt.After(list[1].OccurredAt))
	assert.Equal(t, "External", list[0].FromNodeName)
	assert.Equal(t, "Bodega Uno", list[0].ToNodeName)
	assert.Equal(t, "TOR-01", list[0].ItemCode)
	assert.Equal(t, "UND", list[0].UnitCode)

	all, err := f.movements.ListMovements(ctx, testOrgID, 10_000)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
