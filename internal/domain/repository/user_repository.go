package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careconnect/internal/common"
	"careconnect/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, hashed_password, role, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.HashedPassword, user.Role, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("user with email %q: %w", user.Email, common.ErrUserExists)
		}
		return fmt.Errorf("pgUserRepository.Create: %v: %w", err, common.ErrStorage)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, hashed_password, role, created_at
	          FROM users WHERE email = $1`
	return r.findOne(ctx, "FindByEmail", query, email)
}

func (r *pgUserRepository) findOne(ctx context.Context, op, query string, arg string) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.%s: %v: %w", op, err, common.ErrStorage)
	}
	return user, nil
}
