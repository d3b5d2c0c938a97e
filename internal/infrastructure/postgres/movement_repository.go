package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL. No expone UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, movement_type, quantity, quantity_before, quantity_after,
	from_storage_unit_id, to_storage_unit_id, reason, notes, reference, user_id, movement_date, created_at`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var typ string
	err := row.Scan(
		&m.ID, &m.ItemID, &typ, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.FromStorageUnitID, &m.ToStorageUnitID, &m.Reason, &m.Notes, &m.Reference,
		&m.UserID, &m.MovementDate, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	return &m, nil
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, string(m.Type), m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.FromStorageUnitID, m.ToStorageUnitID, m.Reason, m.Notes, m.Reference,
		m.UserID, m.MovementDate, m.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert movement", err)
	}
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get movement", err)
	}
	return m, nil
}

// ListByItem más reciente primero; from/to nil no filtran.
func (r *MovementRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+movementColumns+`
		FROM movements
		WHERE item_id = $1
		  AND ($2::timestamptz IS NULL OR movement_date >= $2)
		  AND ($3::timestamptz IS NULL OR movement_date <= $3)
		ORDER BY movement_date DESC, created_at DESC
		LIMIT $4 OFFSET $5`,
		itemID, from, to, limitArg(limit), offset)
	if err != nil {
		return nil, wrapErr("list movements", err)
	}
	defer rows.Close()

	list := []*entity.Movement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, wrapErr("scan movement", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list movements", err)
	}
	return list, nil
}

func (r *MovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM movements WHERE item_id = $1`, itemID).Scan(&n); err != nil {
		return 0, wrapErr("count movements", err)
	}
	return n, nil
}
