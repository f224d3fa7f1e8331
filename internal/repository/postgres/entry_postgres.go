package postgres

import (
	"context"
	"database/sql"

	"guestbook/internal/model"
	"guestbook/internal/repository"
)

// EntryPostgres is a PostgreSQL implementation of repository.EntryRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type EntryPostgres struct {
	db *sql.DB
}

// NewEntryPostgres creates a new EntryPostgres repository.
func NewEntryPostgres(db *sql.DB) *EntryPostgres {
	return &EntryPostgres{db: db}
}

var _ repository.EntryRepository = (*EntryPostgres)(nil)

// Create inserts a new entry row and returns the stored record.
func (r *EntryPostgres) Create(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	const q = `
		INSERT INTO entries (id, name, entry, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, entry, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.Name,
		e.Entry,
		e.CreatedAt,
	)
	var out model.Entry
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.Entry,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single entry by its ID.
func (r *EntryPostgres) FindByID(ctx context.Context, id string) (*model.Entry, error) {
	const q = `
		SELECT id, name, entry, created_at
		FROM entries
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var e model.Entry
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Entry,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns entries using LIMIT/OFFSET pagination and a total count.
func (r *EntryPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Entry], error) {
	// Count total rows
	const qCount = `SELECT COUNT(*) FROM entries`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	const qList = `
		SELECT id, name, entry, created_at
		FROM entries
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Entry]{
		Items: items,
		Total: total,
	}, nil
}

// ListAll returns every entry without pagination, newest first.
func (r *EntryPostgres) ListAll(ctx context.Context) ([]model.Entry, error) {
	const q = `
		SELECT id, name, entry, created_at
		FROM entries
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Delete removes an entry by ID. It does not return an error if the row does not exist.
func (r *EntryPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM entries WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	// Missing rows are not an error; the delete contract is idempotent.
	_, _ = res.RowsAffected()
	return nil
}

func scanEntries(rows *sql.Rows) ([]model.Entry, error) {
	items := make([]model.Entry, 0)
	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.Entry,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
