package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ma-nadeau/FRED/internal/core/domain"
)

// UserRepository persists users.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a UserRepository over the shared pool.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, age)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.Age).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapError(err, "creating user")
	}
	return u, nil
}

func (r *UserRepository) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	query := `SELECT id, name, email, password_hash, age, created_at FROM users WHERE email = $1`
	var u domain.User
	err := r.db.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapError(err, "user by email")
	}
	return u, nil
}

func (r *UserRepository) UserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	query := `SELECT id, name, email, password_hash, age, created_at FROM users WHERE id = $1`
	var u domain.User
	err := r.db.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapError(err, "user by id")
	}
	return u, nil
}
