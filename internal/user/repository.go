package user

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password_hash, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateOwner(ctx context.Context, email, passwordHash, gymName string) (*User, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var u User
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING ` + userColumns
	if err := tx.GetContext(ctx, &u, query, email, passwordHash); err != nil {
		return nil, 0, err
	}

	var gymID int
	query = `
		INSERT INTO gyms (user_id, name, email)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := tx.GetContext(ctx, &gymID, query, u.ID, gymName, email); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return &u, gymID, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u User
	if err := r.db.GetContext(ctx, &u, query, email); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u User
	if err := r.db.GetContext(ctx, &u, query, id); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) GymIDForUser(ctx context.Context, userID int) (int, error) {
	query := `SELECT id FROM gyms WHERE user_id = $1`

	var gymID int
	if err := r.db.GetContext(ctx, &gymID, query, userID); err != nil {
		return 0, err
	}
	return gymID, nil
}
