package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.BalanceReader      = (*MovementRepo)(nil)
)

const (
	eventColumns = `id, organization_id, event_type, status, occurred_at, reference_type, reference_id, note, created_by, created_at, updated_at`
	lineColumns  = `id, event_id, organization_id, line_no, item_id, unit_id, from_node_id, to_node_id, quantity, created_at, updated_at`
)

// MovementRepo eventos y líneas de movimiento sobre PostgreSQL; también resuelve la proyección de saldos.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) CreateEvent(ctx context.Context, e *entity.MovementEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movement_events (id, organization_id, event_type, status, occurred_at, reference_type, reference_id, note, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		e.ID, e.OrganizationID, e.EventType, string(e.Status), e.OccurredAt,
		nullable(e.ReferenceType), nullable(e.ReferenceID), nullable(e.Note), nullable(e.CreatedBy),
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert movement event: %w", err)
	}
	return nil
}

func (r *MovementRepo) GetEvent(ctx context.Context, orgID, id string) (*entity.MovementEvent, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + eventColumns + ` FROM movement_events WHERE organization_id = $1 AND id = $2`
	e, err := scanEvent(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement event: %w", err)
	}
	return e, nil
}

// UpdateDraftEvent el filtro status = 'DRAFT' es la guarda contra escrituras concurrentes sobre un evento ya cerrado.
func (r *MovementRepo) UpdateDraftEvent(ctx context.Context, e *entity.MovementEvent) error {
	query := `
		UPDATE movement_events
		SET event_type = $3, status = $4, occurred_at = $5, reference_type = $6, reference_id = $7, note = $8, updated_at = now()
		WHERE organization_id = $1 AND id = $2 AND status = 'DRAFT'
		RETURNING created_by, created_at, updated_at`
	var createdBy *string
	err := r.q.QueryRow(ctx, query,
		e.OrganizationID, e.ID, e.EventType, string(e.Status), e.OccurredAt,
		nullable(e.ReferenceType), nullable(e.ReferenceID), nullable(e.Note),
	).Scan(&createdBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrImmutable
		}
		return fmt.Errorf("update movement event: %w", err)
	}
	e.CreatedBy = deref(createdBy)
	return nil
}

// DeleteEvent las líneas se borran en cascada.
func (r *MovementRepo) DeleteEvent(ctx context.Context, orgID, id string) error {
	if !validUUID(id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM movement_events WHERE organization_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("delete movement event: %w", err)
	}
	return nil
}

// CreateLines inserta el lote en una sola sentencia; los CHECK de la tabla repiten las reglas del validador.
func (r *MovementRepo) CreateLines(ctx context.Context, lines []*entity.MovementLine) error {
	if len(lines) == 0 {
		return nil
	}
	var (
		sb   strings.Builder
		args = make([]any, 0, len(lines)*9)
	)
	sb.WriteString(`INSERT INTO movement_lines (id, event_id, organization_id, line_no, item_id, unit_id, from_node_id, to_node_id, quantity, created_at, updated_at) VALUES `)
	for i, l := range lines {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		p := i * 9
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, now(), now())",
			p+1, p+2, p+3, p+4, p+5, p+6, p+7, p+8, p+9)
		args = append(args, l.ID, l.EventID, l.OrganizationID, l.LineNo, l.ItemID, l.UnitID, l.FromNodeID, l.ToNodeID, l.Quantity)
	}
	sb.WriteString(` RETURNING id, created_at, updated_at`)

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return mapLineError(fmt.Errorf("insert movement lines: %w", err))
	}
	defer rows.Close()
	byID := make(map[string]*entity.MovementLine, len(lines))
	for _, l := range lines {
		byID[l.ID] = l
	}
	for rows.Next() {
		var id string
		var tmp entity.MovementLine
		if err := rows.Scan(&id, &tmp.CreatedAt, &tmp.UpdatedAt); err != nil {
			return fmt.Errorf("scan movement line: %w", err)
		}
		if l, ok := byID[id]; ok {
			l.CreatedAt, l.UpdatedAt = tmp.CreatedAt, tmp.UpdatedAt
		}
	}
	if err := rows.Err(); err != nil {
		return mapLineError(fmt.Errorf("insert movement lines: %w", err))
	}
	return nil
}

func (r *MovementRepo) GetLine(ctx context.Context, orgID, id string) (*entity.MovementLine, error) {
	if !validUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + lineColumns + ` FROM movement_lines WHERE organization_id = $1 AND id = $2`
	l, err := scanLine(r.q.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement line: %w", err)
	}
	return l, nil
}

func (r *MovementRepo) ListLines(ctx context.Context, orgID, eventID string) ([]*entity.MovementLine, error) {
	if !validUUID(eventID) {
		return nil, nil
	}
	query := `SELECT ` + lineColumns + ` FROM movement_lines WHERE organization_id = $1 AND event_id = $2 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, orgID, eventID)
	if err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *MovementRepo) UpdateLine(ctx context.Context, l *entity.MovementLine) error {
	query := `
		UPDATE movement_lines
		SET item_id = $3, unit_id = $4, from_node_id = $5, to_node_id = $6, quantity = $7, updated_at = now()
		WHERE organization_id = $1 AND id = $2
		RETURNING event_id, line_no, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		l.OrganizationID, l.ID, l.ItemID, l.UnitID, l.FromNodeID, l.ToNodeID, l.Quantity,
	).Scan(&l.EventID, &l.LineNo, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return mapLineError(fmt.Errorf("update movement line: %w", err))
	}
	return nil
}

// DeleteLine borra la línea solo si su evento sigue en DRAFT. La CTE bloquea la fila del evento
// hasta el commit, así que una contabilización concurrente espera a esta tx.
func (r *MovementRepo) DeleteLine(ctx context.Context, orgID, id string) error {
	if !validUUID(id) {
		return domain.ErrNotFound
	}
	query := `
		WITH draft AS (
			SELECT e.id
			FROM movement_events e
			JOIN movement_lines l ON l.event_id = e.id
			WHERE l.organization_id = $1 AND l.id = $2 AND e.status = 'DRAFT'
			FOR UPDATE OF e
		)
		DELETE FROM movement_lines
		WHERE organization_id = $1 AND id = $2 AND event_id IN (SELECT id FROM draft)`
	tag, err := r.q.Exec(ctx, query, orgID, id)
	if err != nil {
		return fmt.Errorf("delete movement line: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	l, err := r.GetLine(ctx, orgID, id)
	if err != nil {
		return err
	}
	if l == nil {
		return domain.ErrNotFound
	}
	return domain.ErrImmutable
}

func (r *MovementRepo) CountLines(ctx context.Context, eventID string) (int, error) {
	if !validUUID(eventID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM movement_lines WHERE event_id = $1`, eventID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movement lines: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) ListRecent(ctx context.Context, orgID string, limit int) ([]*entity.MovementView, error) {
	query := `
		SELECT l.id, l.event_id, l.organization_id, l.line_no, l.item_id, l.unit_id, l.from_node_id, l.to_node_id,
			l.quantity, l.created_at, l.updated_at,
			e.event_type, e.status, e.occurred_at, e.reference_type, e.reference_id, e.note,
			fn.name, fn.node_type, tn.name, tn.node_type, i.code, i.name, COALESCE(u.code, '')
		FROM movement_lines l
		JOIN movement_events e ON e.id = l.event_id
		JOIN nodes fn ON fn.id = l.from_node_id
		JOIN nodes tn ON tn.id = l.to_node_id
		JOIN items i ON i.id = l.item_id
		LEFT JOIN units u ON u.id = l.unit_id
		WHERE l.organization_id = $1
		ORDER BY e.occurred_at DESC, l.id DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementView
	for rows.Next() {
		var (
			v                 entity.MovementView
			status            string
			fromType, toType  string
			refType, refID, n *string
		)
		if err := rows.Scan(
			&v.Line.ID, &v.Line.EventID, &v.Line.OrganizationID, &v.Line.LineNo, &v.Line.ItemID, &v.Line.UnitID,
			&v.Line.FromNodeID, &v.Line.ToNodeID, &v.Line.Quantity, &v.Line.CreatedAt, &v.Line.UpdatedAt,
			&v.EventType, &status, &v.OccurredAt, &refType, &refID, &n,
			&v.FromNodeName, &fromType, &v.ToNodeName, &toType, &v.ItemCode, &v.ItemName, &v.UnitCode,
		); err != nil {
			return nil, fmt.Errorf("scan movement view: %w", err)
		}
		v.Status = entity.MovementStatus(status)
		v.FromNodeType, v.ToNodeType = entity.NodeType(fromType), entity.NodeType(toType)
		v.ReferenceType, v.ReferenceID, v.Note = deref(refType), deref(refID), deref(n)
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Balances proyecta cada línea en +q al destino y -q al origen, agrega por (nodo, ítem)
// y descarta los saldos en cero. No hay tabla de saldos.
func (r *MovementRepo) Balances(ctx context.Context, orgID string, f entity.BalanceFilter) ([]*entity.BalanceRow, error) {
	statuses := f.Statuses
	if len(statuses) == 0 {
		statuses = []entity.MovementStatus{entity.StatusPosted}
	}
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, string(s))
	}

	args := []any{orgID, names}
	pos := 3
	eventFilter := ""
	if f.From != nil {
		eventFilter += fmt.Sprintf(" AND e.occurred_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		eventFilter += fmt.Sprintf(" AND e.occurred_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	postingFilter := ""
	if len(f.NodeIDs) > 0 {
		postingFilter += fmt.Sprintf(" AND p.node_id = ANY($%d::uuid[])", pos)
		args = append(args, uuids(f.NodeIDs))
		pos++
	}
	if len(f.ItemIDs) > 0 {
		postingFilter += fmt.Sprintf(" AND p.item_id = ANY($%d::uuid[])", pos)
		args = append(args, uuids(f.ItemIDs))
	}

	query := `
		WITH scoped AS (
			SELECT l.from_node_id, l.to_node_id, l.item_id, l.quantity
			FROM movement_lines l
			JOIN movement_events e ON e.id = l.event_id
			WHERE l.organization_id = $1 AND e.status = ANY($2)` + eventFilter + `
		), postings AS (
			SELECT to_node_id AS node_id, item_id, quantity AS qty FROM scoped
			UNION ALL
			SELECT from_node_id AS node_id, item_id, -quantity AS qty FROM scoped
		)
		SELECT p.node_id, n.node_type, COALESCE(n.code, ''), n.name, p.item_id, i.code, i.name,
			COALESCE(u.code, ''), SUM(p.qty)
		FROM postings p
		JOIN nodes n ON n.id = p.node_id
		JOIN items i ON i.id = p.item_id
		LEFT JOIN units u ON u.id = i.unit_id
		WHERE TRUE` + postingFilter + `
		GROUP BY p.node_id, n.node_type, n.code, n.name, p.item_id, i.code, i.name, u.code
		HAVING SUM(p.qty) <> 0`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.BalanceRow
	for rows.Next() {
		var (
			b        entity.BalanceRow
			nodeType string
		)
		if err := rows.Scan(&b.NodeID, &nodeType, &b.NodeCode, &b.NodeName,
			&b.ItemID, &b.ItemCode, &b.ItemName, &b.UnitCode, &b.Quantity); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		b.NodeType = entity.NodeType(nodeType)
		list = append(list, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("balances: %w", err)
	}
	inventory.SortBalances(list)
	return list, nil
}

// mapLineError traduce las violaciones de CHECK/FK de movement_lines a errores de dominio.
func mapLineError(err error) error {
	switch {
	case hasConstraint(err, "movement_lines_distinct_nodes"):
		return domain.ErrSameNode
	case hasConstraint(err, "movement_lines_quantity_positive"):
		return domain.ErrInvalidQuantity
	case hasConstraint(err, "movement_lines_from_node_fk"):
		return domain.ErrBadFromNode
	case hasConstraint(err, "movement_lines_to_node_fk"):
		return domain.ErrBadToNode
	case hasConstraint(err, "movement_lines_item_fk"):
		return domain.ErrBadItem
	case hasConstraint(err, "movement_lines_unit_fk"):
		return domain.ErrBadUnit
	}
	return err
}

func scanEvent(row pgx.Row) (*entity.MovementEvent, error) {
	var (
		e                               entity.MovementEvent
		status                          string
		refType, refID, note, createdBy *string
	)
	err := row.Scan(&e.ID, &e.OrganizationID, &e.EventType, &status, &e.OccurredAt,
		&refType, &refID, &note, &createdBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Status = entity.MovementStatus(status)
	e.ReferenceType, e.ReferenceID = deref(refType), deref(refID)
	e.Note, e.CreatedBy = deref(note), deref(createdBy)
	return &e, nil
}

func scanLine(row pgx.Row) (*entity.MovementLine, error) {
	var l entity.MovementLine
	err := row.Scan(&l.ID, &l.EventID, &l.OrganizationID, &l.LineNo, &l.ItemID, &l.UnitID,
		&l.FromNodeID, &l.ToNodeID, &l.Quantity, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
