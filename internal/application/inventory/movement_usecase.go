package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// LedgerConfig valores por defecto y límites del libro.
type LedgerConfig struct {
	DefaultEventType string
	DefaultStatus    entity.MovementStatus
	ListDefaultLimit int
	ListMaxLimit     int
}

// DefaultLedgerConfig MOVE, POSTED y listados de 100 (máximo 500).
func DefaultLedgerConfig() LedgerConfig {
	return LedgerConfig{
		DefaultEventType: entity.DefaultEventType,
		DefaultStatus:    entity.StatusPosted,
		ListDefaultLimit: 100,
		ListMaxLimit:     500,
	}
}

// CreateEventInput entrada para registrar un evento con sus líneas.
// EventType y Status vacíos usan los valores por defecto; OccurredAt nil = ahora.
type CreateEventInput struct {
	OrganizationID string
	CreatedBy      string
	EventType      string
	Status         string
	OccurredAt     *time.Time
	ReferenceType  string
	ReferenceID    string
	Note           string
	Lines          []LineInput
}

// UpdateLineInput edición de una línea en borrador y de la cabecera de su evento.
// EventType, Status y OccurredAt nil conservan el valor actual; referencia y nota se reemplazan.
type UpdateLineInput struct {
	OrganizationID string
	LineID         string
	EventType      *string
	Status         *string
	OccurredAt     *time.Time
	ReferenceType  string
	ReferenceID    string
	Note           string
	Line           LineInput
}

// EventWithLines evento con sus líneas en orden de lineNo.
type EventWithLines struct {
	Event *entity.MovementEvent
	Lines []*entity.MovementLine
}

// MovementUseCase casos de uso del libro de movimientos. Cada escritura es una única transacción.
type MovementUseCase struct {
	tx        ports.TxRunner
	repos     ports.Repositories
	validator LineValidator
	cfg       LedgerConfig
	metrics   ports.LedgerMetrics
	log       *logger.Logger
	now       func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	tx ports.TxRunner,
	repos ports.Repositories,
	cfg LedgerConfig,
	metrics ports.LedgerMetrics,
	log *logger.Logger,
) *MovementUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &MovementUseCase{
		tx:      tx,
		repos:   repos,
		cfg:     cfg,
		metrics: metrics,
		log:     log.Component("movements"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateEvent valida el lote completo y persiste el evento y sus líneas (lineNo 1..N) de forma atómica.
// Si alguna línea falla no se persiste nada.
func (uc *MovementUseCase) CreateEvent(ctx context.Context, in CreateEventInput) (out *EventWithLines, err error) {
	ctx, span := tracer.Start(ctx, "MovementUseCase.CreateEvent", trace.WithAttributes(
		attribute.String("organization_id", in.OrganizationID),
		attribute.Int("lines", len(in.Lines)),
	))
	defer func() {
		uc.observe("create", err)
		endSpan(span, err)
	}()

	status := uc.cfg.DefaultStatus
	if strings.TrimSpace(in.Status) != "" {
		if status, err = entity.ParseMovementStatus(in.Status); err != nil {
			return nil, err
		}
	}
	eventType := strings.TrimSpace(in.EventType)
	if eventType == "" {
		eventType = uc.cfg.DefaultEventType
	}
	now := uc.now()
	occurredAt := now
	if in.OccurredAt != nil {
		occurredAt = in.OccurredAt.UTC()
	}

	ev := &entity.MovementEvent{
		ID:             uuid.New().String(),
		OrganizationID: in.OrganizationID,
		EventType:      eventType,
		Status:         status,
		OccurredAt:     occurredAt,
		ReferenceType:  strings.TrimSpace(in.ReferenceType),
		ReferenceID:    strings.TrimSpace(in.ReferenceID),
		Note:           in.Note,
		CreatedBy:      in.CreatedBy,
	}

	var lines []*entity.MovementLine
	err = uc.tx.Run(ctx, func(r ports.Repositories) error {
		valid, err := uc.validator.Validate(ctx, r, in.OrganizationID, in.Lines)
		if err != nil {
			return err
		}
		if err := r.Movements.CreateEvent(ctx, ev); err != nil {
			return err
		}
		lines = make([]*entity.MovementLine, len(valid))
		for i, v := range valid {
			lines[i] = &entity.MovementLine{
				ID:             uuid.New().String(),
				EventID:        ev.ID,
				OrganizationID: in.OrganizationID,
				LineNo:         i + 1,
				ItemID:         v.ItemID,
				UnitID:         v.UnitID,
				FromNodeID:     v.FromNodeID,
				ToNodeID:       v.ToNodeID,
				Quantity:       v.Quantity,
			}
		}
		return r.Movements.CreateLines(ctx, lines)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.EventCreated(string(ev.Status), len(lines))
	uc.log.Info().
		Str("organization_id", ev.OrganizationID).
		Str("event_id", ev.ID).
		Str("status", string(ev.Status)).
		Int("lines", len(lines)).
		Msg("evento de movimiento registrado")
	return &EventWithLines{Event: ev, Lines: lines}, nil
}

// UpdateDraftLine reemplaza una línea de un evento en borrador y actualiza su cabecera.
// Devuelve domain.ErrNotFound si la línea no existe y domain.ErrImmutable si el evento ya no es borrador.
func (uc *MovementUseCase) UpdateDraftLine(ctx context.Context, in UpdateLineInput) (out *EventWithLines, err error) {
	ctx, span := tracer.Start(ctx, "MovementUseCase.UpdateDraftLine", trace.WithAttributes(
		attribute.String("organization_id", in.OrganizationID),
		attribute.String("line_id", in.LineID),
	))
	defer func() {
		uc.observe("update", err)
		endSpan(span, err)
	}()

	if !isUUID(in.LineID) {
		return nil, domain.ErrNotFound
	}
	err = uc.tx.Run(ctx, func(r ports.Repositories) error {
		line, ev, err := uc.loadDraftLine(ctx, r, in.OrganizationID, in.LineID)
		if err != nil {
			return err
		}
		valid, err := uc.validator.Validate(ctx, r, in.OrganizationID, []LineInput{in.Line})
		if err != nil {
			return err
		}

		if in.EventType != nil && strings.TrimSpace(*in.EventType) != "" {
			ev.EventType = strings.TrimSpace(*in.EventType)
		}
		if in.OccurredAt != nil {
			ev.OccurredAt = in.OccurredAt.UTC()
		}
		ev.ReferenceType = strings.TrimSpace(in.ReferenceType)
		ev.ReferenceID = strings.TrimSpace(in.ReferenceID)
		ev.Note = in.Note
		if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
			next, err := entity.ParseMovementStatus(*in.Status)
			if err != nil {
				return err
			}
			if err := ev.TransitionTo(next); err != nil {
				return err
			}
		}
		if err := r.Movements.UpdateDraftEvent(ctx, ev); err != nil {
			return err
		}

		v := valid[0]
		line.ItemID, line.UnitID = v.ItemID, v.UnitID
		line.FromNodeID, line.ToNodeID = v.FromNodeID, v.ToNodeID
		line.Quantity = v.Quantity
		if err := r.Movements.UpdateLine(ctx, line); err != nil {
			return err
		}
		out = &EventWithLines{Event: ev, Lines: []*entity.MovementLine{line}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteDraftLine borra una línea de un evento en borrador; si era la última, borra también el evento.
func (uc *MovementUseCase) DeleteDraftLine(ctx context.Context, orgID, lineID string) (err error) {
	ctx, span := tracer.Start(ctx, "MovementUseCase.DeleteDraftLine", trace.WithAttributes(
		attribute.String("organization_id", orgID),
		attribute.String("line_id", lineID),
	))
	defer func() {
		uc.observe("delete", err)
		endSpan(span, err)
	}()

	if !isUUID(lineID) {
		return domain.ErrNotFound
	}
	return uc.tx.Run(ctx, func(r ports.Repositories) error {
		line, ev, err := uc.loadDraftLine(ctx, r, orgID, lineID)
		if err != nil {
			return err
		}
		if err := r.Movements.DeleteLine(ctx, orgID, line.ID); err != nil {
			return err
		}
		remaining, err := r.Movements.CountLines(ctx, ev.ID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return r.Movements.DeleteEvent(ctx, orgID, ev.ID)
		}
		return nil
	})
}

// TransitionEvent contabiliza o cancela un evento en borrador.
func (uc *MovementUseCase) TransitionEvent(ctx context.Context, orgID, eventID string, next entity.MovementStatus) (out *EventWithLines, err error) {
	ctx, span := tracer.Start(ctx, "MovementUseCase.TransitionEvent", trace.WithAttributes(
		attribute.String("organization_id", orgID),
		attribute.String("event_id", eventID),
		attribute.String("status", string(next)),
	))
	defer func() {
		uc.observe("transition", err)
		endSpan(span, err)
	}()

	if !isUUID(eventID) {
		return nil, domain.ErrNotFound
	}
	var from entity.MovementStatus
	err = uc.tx.Run(ctx, func(r ports.Repositories) error {
		ev, err := r.Movements.GetEvent(ctx, orgID, eventID)
		if err != nil {
			return err
		}
		if ev == nil {
			return domain.ErrNotFound
		}
		from = ev.Status
		if err := ev.TransitionTo(next); err != nil {
			return err
		}
		if err := r.Movements.UpdateDraftEvent(ctx, ev); err != nil {
			return err
		}
		lines, err := r.Movements.ListLines(ctx, orgID, ev.ID)
		if err != nil {
			return err
		}
		out = &EventWithLines{Event: ev, Lines: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.EventTransitioned(string(from), string(next))
	uc.log.Info().Str("event_id", eventID).Str("from", string(from)).Str("to", string(next)).Msg("transición de evento")
	return out, nil
}

// GetEvent obtiene un evento con sus líneas.
func (uc *MovementUseCase) GetEvent(ctx context.Context, orgID, eventID string) (*EventWithLines, error) {
	if !isUUID(eventID) {
		return nil, domain.ErrNotFound
	}
	ev, err := uc.repos.Movements.GetEvent(ctx, orgID, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.repos.Movements.ListLines(ctx, orgID, ev.ID)
	if err != nil {
		return nil, err
	}
	return &EventWithLines{Event: ev, Lines: lines}, nil
}

// ListMovements últimas líneas de la organización. limit <= 0 usa el valor por defecto; se acota al máximo.
func (uc *MovementUseCase) ListMovements(ctx context.Context, orgID string, limit int) ([]*entity.MovementView, error) {
	return uc.repos.Movements.ListRecent(ctx, orgID, uc.ListLimit(limit))
}

// ListLimit aplica el valor por defecto y el máximo configurados a un límite de listado.
func (uc *MovementUseCase) ListLimit(limit int) int {
	if limit <= 0 {
		limit = uc.cfg.ListDefaultLimit
	}
	if limit > uc.cfg.ListMaxLimit {
		limit = uc.cfg.ListMaxLimit
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}

// loadDraftLine carga la línea y su evento; distingue inexistente de no editable.
func (uc *MovementUseCase) loadDraftLine(ctx context.Context, r ports.Repositories, orgID, lineID string) (*entity.MovementLine, *entity.MovementEvent, error) {
	line, err := r.Movements.GetLine(ctx, orgID, lineID)
	if err != nil {
		return nil, nil, err
	}
	if line == nil {
		return nil, nil, domain.ErrNotFound
	}
	ev, err := r.Movements.GetEvent(ctx, orgID, line.EventID)
	if err != nil {
		return nil, nil, err
	}
	if ev == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !ev.IsMutable() {
		return nil, nil, domain.ErrImmutable
	}
	return line, ev, nil
}

// observe registra rechazos y fallos internos de una escritura.
func (uc *MovementUseCase) observe(op string, err error) {
	if err == nil {
		return
	}
	kind := domain.KindOf(err)
	uc.metrics.WriteRejected(op, kind.String())
	if kind == domain.KindInternal {
		uc.log.Error().Err(err).Str("op", op).Msg("fallo interno en el libro de movimientos")
		return
	}
	uc.log.Debug().Err(err).Str("op", op).Str("kind", kind.String()).Msg("escritura rechazada")
}
