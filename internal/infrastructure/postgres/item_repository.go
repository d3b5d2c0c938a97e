package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, description, quantity, price, sku, min_stock, storage_unit_id, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Quantity, &it.Price, &it.SKU,
		&it.MinStock, &it.StorageUnitID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Quantity, item.Price, item.SKU,
		item.MinStock, item.StorageUnitID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.NotFoundError{Resource: "Storage unit", ID: item.StorageUnitID}
		}
		return wrapErr("insert item", err)
	}
	return nil
}

func (r *ItemRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(op, err)
	}
	return it, nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "get item", `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

func (r *ItemRepo) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	return r.getOne(ctx, "get item by sku", `SELECT `+itemColumns+` FROM items WHERE sku = $1`, sku)
}

// GetForUpdate obtiene el ítem y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, "get item for update", `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// UpdateQuantity compare-and-set sobre la cantidad leída en la tx.
func (r *ItemRepo) UpdateQuantity(ctx context.Context, id string, expected, quantity int) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE items SET quantity = $3, updated_at = now() WHERE id = $1 AND quantity = $2`,
		id, expected, quantity)
	if err != nil {
		return wrapErr("update item quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

func (r *ItemRepo) UpdateStorageUnit(ctx context.Context, id, storageUnitID string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE items SET storage_unit_id = $2, updated_at = now() WHERE id = $1`, id, storageUnitID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.NotFoundError{Resource: "Storage unit", ID: storageUnitID}
		}
		return wrapErr("update item storage unit", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "Item", ID: id}
	}
	return nil
}

func (r *ItemRepo) UpdateDetails(ctx context.Context, item *entity.Item) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE items
		SET name = $2, description = $3, price = $4, sku = $5, min_stock = $6, updated_at = $7
		WHERE id = $1`,
		item.ID, item.Name, item.Description, item.Price, item.SKU, item.MinStock, item.UpdatedAt)
	if err != nil {
		return wrapErr("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "Item", ID: item.ID}
	}
	return nil
}

func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	var (
		where []string
		args  []any
	)
	if filter.StorageUnitID != "" {
		args = append(args, filter.StorageUnitID)
		where = append(where, fmt.Sprintf("storage_unit_id = $%d", len(args)))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args)))
	}
	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, limitArg(filter.Limit), filter.Offset)
	query += fmt.Sprintf(` ORDER BY seq LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list items", err)
	}
	defer rows.Close()

	list := []*entity.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, wrapErr("scan item", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list items", err)
	}
	return list, nil
}

// Delete la FK RESTRICT de movements impide borrar ítems con historial.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasMovements
		}
		return wrapErr("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "Item", ID: id}
	}
	return nil
}
