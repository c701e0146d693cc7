package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selerasa/restopos/internal/domain/menu"
)

var _ menu.Repository = (*MenuRepository)(nil)

// MenuRepository implements menu.Repository backed by PostgreSQL.
type MenuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a MenuRepository that uses the given pool.
func NewMenuRepository(pool *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{pool: pool}
}

const menuColumns = `id, name, category, price, status, description, created_at`

func scanMenuItem(row pgx.Row) (menu.Item, error) {
	var it menu.Item
	err := row.Scan(&it.ID, &it.Name, &it.Category, &it.Price, &it.Status, &it.Description, &it.CreatedAt)
	return it, err
}

// List returns the full catalog ordered by category and name.
func (r *MenuRepository) List(ctx context.Context) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+menuColumns+` FROM menu_items ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	defer rows.Close()

	var items []menu.Item
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID returns a single menu item, or menu.ErrNotFound.
func (r *MenuRepository) GetByID(ctx context.Context, id int64) (*menu.Item, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = $1`, id)
	it, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, menu.ErrNotFound
		}
		return nil, fmt.Errorf("getting menu item %d: %w", id, err)
	}
	return &it, nil
}

// GetByIDs returns the menu items matching ids in a single query. Missing ids
// are simply absent from the result; callers detect them.
func (r *MenuRepository) GetByIDs(ctx context.Context, ids []int64) ([]menu.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+menuColumns+` FROM menu_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("getting menu items: %w", err)
	}
	defer rows.Close()

	var items []menu.Item
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning menu item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Create inserts a new menu item and fills in its generated ID.
func (r *MenuRepository) Create(ctx context.Context, it *menu.Item) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO menu_items (name, category, price, status, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		it.Name, it.Category, it.Price, it.Status, it.Description,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating menu item %q: %w", it.Name, err)
	}
	return nil
}

// Update rewrites the mutable fields of a menu item.
func (r *MenuRepository) Update(ctx context.Context, it *menu.Item) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE menu_items SET name = $2, category = $3, price = $4, status = $5, description = $6
		 WHERE id = $1`,
		it.ID, it.Name, it.Category, it.Price, it.Status, it.Description)
	if err != nil {
		return fmt.Errorf("updating menu item %d: %w", it.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return menu.ErrNotFound
	}
	return nil
}
