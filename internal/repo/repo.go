package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
}

// Run is one stored calculation: the request as received and the result as
// returned.
type Run struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int             `json:"user_id"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

type RunRepository interface {
	SaveRun(ctx context.Context, run Run) error
	ListRuns(ctx context.Context, userID int, kind string, limit int) ([]Run, error)
	GetRun(ctx context.Context, userID int, id uuid.UUID) (Run, error)
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	login TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS runs (
	id UUID PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	kind TEXT NOT NULL,
	input JSONB NOT NULL,
	result JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_user_created ON runs (user_id, created_at DESC);
`

func (r *PostgresUserRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) SaveRun(ctx context.Context, run Run) error {
	query := "INSERT INTO runs (id, user_id, kind, input, result, created_at) VALUES ($1, $2, $3, $4, $5, $6)"
	_, err := r.db.ExecContext(ctx, query, run.ID, run.UserID, run.Kind, []byte(run.Input), []byte(run.Result), run.CreatedAt)
	return err
}

func (r *PostgresUserRepository) ListRuns(ctx context.Context, userID int, kind string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, user_id, kind, input, result, created_at FROM runs
		WHERE user_id=$1 AND ($2 = '' OR kind=$2)
		ORDER BY created_at DESC LIMIT $3`
	rows, err := r.db.QueryContext(ctx, query, userID, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *PostgresUserRepository) GetRun(ctx context.Context, userID int, id uuid.UUID) (Run, error) {
	query := "SELECT id, user_id, kind, input, result, created_at FROM runs WHERE id=$1 AND user_id=$2"
	run, err := scanRun(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return Run{}, ErrNotFound
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var run Run
	var input, result []byte
	if err := s.Scan(&run.ID, &run.UserID, &run.Kind, &input, &result, &run.CreatedAt); err != nil {
		return Run{}, err
	}
	run.Input = json.RawMessage(input)
	run.Result = json.RawMessage(result)
	return run, nil
}
