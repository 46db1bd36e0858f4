package repo

import (
	"context"
	"errors"
	"fmt"

	dom "github.com/CleanArchitectureTutorials/PackAndGo/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PGPackingListRepo implements PackingListRepo with Postgres. All write
// methods expect to run inside a unit-of-work transaction so the scalar
// update and the item row reconciliation commit as one.
type PGPackingListRepo struct {
	db DB
}

// NewPGPackingListRepo returns a new PGPackingListRepo bound to db.
func NewPGPackingListRepo(db DB) *PGPackingListRepo {
	return &PGPackingListRepo{db: db}
}

func (r *PGPackingListRepo) GetByID(ctx context.Context, id uuid.UUID) (*dom.PackingList, bool, error) {
	var (
		name    string
		ownerID uuid.UUID
	)
	err := r.db.QueryRow(ctx,
		`SELECT name, owner_id FROM packing_lists WHERE id = $1`, id,
	).Scan(&name, &ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return dom.LoadPackingList(id, name, ownerID, items), true, nil
}

func (r *PGPackingListRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dom.PackingList, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM packing_lists WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type header struct {
		id   uuid.UUID
		name string
	}
	var headers []header
	for rows.Next() {
		var h header
		if err := rows.Scan(&h.id, &h.name); err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Item rows are fetched per list; owners hold a handful of lists.
	lists := make([]*dom.PackingList, 0, len(headers))
	for _, h := range headers {
		items, err := r.loadItems(ctx, h.id)
		if err != nil {
			return nil, err
		}
		lists = append(lists, dom.LoadPackingList(h.id, h.name, ownerID, items))
	}
	return lists, nil
}

func (r *PGPackingListRepo) Add(ctx context.Context, l *dom.PackingList) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO packing_lists (id, name, owner_id) VALUES ($1, $2, $3)`,
		l.ID(), l.Name(), l.OwnerID(),
	)
	if err != nil {
		return err
	}
	for _, it := range l.Items() {
		if err := r.insertItem(ctx, l.ID(), ItemRow{ID: it.ID(), Name: it.Name(), Packed: it.IsPacked()}); err != nil {
			return err
		}
	}
	return nil
}

// Update reconciles the persisted rows with the in-memory aggregate:
// scalar fields first, then the minimal delete/update/insert set for the
// item rows. A list that was never added is left alone.
func (r *PGPackingListRepo) Update(ctx context.Context, l *dom.PackingList) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE packing_lists SET name = $2, owner_id = $3, updated_at = now() WHERE id = $1`,
		l.ID(), l.Name(), l.OwnerID(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Absent aggregate: Update never implicitly inserts.
		return nil
	}

	persisted, err := r.itemRows(ctx, l.ID())
	if err != nil {
		return err
	}
	plan := PlanItems(persisted, l.Items())

	for _, id := range plan.Deletes {
		if _, err := r.db.Exec(ctx, `DELETE FROM list_items WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete item %s: %w", id, err)
		}
	}
	for _, row := range plan.Updates {
		if _, err := r.db.Exec(ctx,
			`UPDATE list_items SET name = $2, is_packed = $3 WHERE id = $1`,
			row.ID, row.Name, row.Packed,
		); err != nil {
			return fmt.Errorf("update item %s: %w", row.ID, err)
		}
	}
	for _, row := range plan.Inserts {
		if err := r.insertItem(ctx, l.ID(), row); err != nil {
			return fmt.Errorf("insert item %s: %w", row.ID, err)
		}
	}
	return nil
}

func (r *PGPackingListRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// list_items rows go with the list via ON DELETE CASCADE.
	_, err := r.db.Exec(ctx, `DELETE FROM packing_lists WHERE id = $1`, id)
	return err
}

func (r *PGPackingListRepo) insertItem(ctx context.Context, listID uuid.UUID, row ItemRow) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO list_items (id, list_id, name, is_packed) VALUES ($1, $2, $3, $4)`,
		row.ID, listID, row.Name, row.Packed,
	)
	return err
}

func (r *PGPackingListRepo) itemRows(ctx context.Context, listID uuid.UUID) ([]ItemRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, is_packed FROM list_items WHERE list_id = $1`, listID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ItemRow
	for rows.Next() {
		var row ItemRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Packed); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *PGPackingListRepo) loadItems(ctx context.Context, listID uuid.UUID) ([]dom.Item, error) {
	rows, err := r.itemRows(ctx, listID)
	if err != nil {
		return nil, err
	}
	items := make([]dom.Item, 0, len(rows))
	for _, row := range rows {
		it, err := dom.LoadItem(row.ID, row.Name, row.Packed)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
