package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/board-runtime/webapi-backend/internal/testprojects/domain"
)

// The connecting role may run with a restricted default search_path that
// hides the public tables, so every session sets it explicitly first.
const setSearchPath = `SET search_path = public, "$user"`

// TestProjectRepository provides persistence operations for test projects.
// Each operation acquires its own connection so the search_path setting is
// scoped to a single session, and releases it on every exit path.
type TestProjectRepository struct {
	db *sql.DB
}

func New(db *sql.DB) *TestProjectRepository {
	return &TestProjectRepository{db: db}
}

func (r *TestProjectRepository) withConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, setSearchPath); err != nil {
		return err
	}
	return fn(conn)
}

// List returns all projects ordered by ascending id.
func (r *TestProjectRepository) List(ctx context.Context) ([]domain.TestProject, error) {
	const q = `SELECT "Id", "Name" FROM "TestProjects" ORDER BY "Id"`

	out := make([]domain.TestProject, 0, 16)
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p domain.TestProject
			if err := rows.Scan(&p.ID, &p.Name); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the project with the given id, or domain.ErrNotFound.
func (r *TestProjectRepository) GetByID(ctx context.Context, id int) (*domain.TestProject, error) {
	const q = `SELECT "Id", "Name" FROM "TestProjects" WHERE "Id" = $1`

	var p domain.TestProject
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project and returns it with the store-assigned id.
func (r *TestProjectRepository) Create(ctx context.Context, name string) (*domain.TestProject, error) {
	const q = `INSERT INTO "TestProjects" ("Name") VALUES ($1) RETURNING "Id", "Name"`

	var p domain.TestProject
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, q, name).Scan(&p.ID, &p.Name)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update overwrites the project's name and returns the updated row,
// or domain.ErrNotFound when no row matched.
func (r *TestProjectRepository) Update(ctx context.Context, id int, name string) (*domain.TestProject, error) {
	const q = `UPDATE "TestProjects" SET "Name" = $1 WHERE "Id" = $2 RETURNING "Id", "Name"`

	var p domain.TestProject
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, q, name, id).Scan(&p.ID, &p.Name)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Delete removes the project with the given id. It reports whether a row
// was actually removed.
func (r *TestProjectRepository) Delete(ctx context.Context, id int) (bool, error) {
	const q = `DELETE FROM "TestProjects" WHERE "Id" = $1`

	var deleted bool
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		result, err := conn.ExecContext(ctx, q, id)
		if err != nil {
			return err
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		deleted = rowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
