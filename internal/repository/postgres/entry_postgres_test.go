package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"guestbook/internal/model"
	"guestbook/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEntryPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewEntryPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	e := &model.Entry{
		ID:        "test-uuid",
		Name:      "Alice",
		Entry:     "hello guestbook",
		CreatedAt: now,
	}

	rows := sqlmock.NewRows([]string{"id", "name", "entry", "created_at"}).
		AddRow(e.ID, e.Name, e.Entry, e.CreatedAt)

	mock.ExpectQuery("INSERT INTO entries").
		WithArgs(e.ID, e.Name, e.Entry, e.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, e)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, e.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewEntryPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "entry", "created_at"}).
			AddRow("test-id", "Bob", "second entry", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM entries WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		e, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, e)
		assert.Equal(t, "test-id", e.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM entries WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		e, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, e)
	})
}

func TestEntryPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewEntryPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM entries").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "name", "entry", "created_at"}).
			AddRow("test-id", "Carol", "third entry", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM entries ORDER BY").
			WithArgs(10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})
}

func TestEntryPostgres_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewEntryPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "entry", "created_at"}).
		AddRow("id-2", "Bob", "newer", time.Now()).
		AddRow("id-1", "Alice", "older", time.Now().Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM entries ORDER BY").
		WillReturnRows(rows)

	items, err := repo.ListAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "id-2", items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntryPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewEntryPostgres(db)
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM entries WHERE id = ?").
			WithArgs("test-id").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Delete(ctx, "test-id")

		assert.NoError(t, err)
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM entries WHERE id = ?").
			WithArgs("missing-id").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Delete(ctx, "missing-id")

		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
