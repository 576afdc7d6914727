package postgres

import (
	"context"
	"database/sql"
	"time"

	"daanbridge-backend/internal/domain"
	"daanbridge-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (email, phone_number, password_hash, name, role, is_anonymous, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query, user.Email, user.PhoneNumber, user.PasswordHash, user.Name, user.Role, user.IsAnonymous, now, now).Scan(&user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role, is_anonymous, created_on, updated_on
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, email, COALESCE(phone_number, ''), password_hash, name, role, is_anonymous, created_on, updated_on
	          FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET email = $1, phone_number = $2, name = $3, is_anonymous = $4, updated_on = $5 WHERE id = $6`
	now := time.Now().Format("2006-01-02")
	_, err := r.db.ExecContext(ctx, query, user.Email, user.PhoneNumber, user.Name, user.IsAnonymous, now, user.ID)
	return err
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var createdOn, updatedOn time.Time
	err := row.Scan(&user.ID, &user.Email, &user.PhoneNumber, &user.PasswordHash, &user.Name, &user.Role, &user.IsAnonymous, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	user.CreatedOn = createdOn.Format("2006-01-02")
	user.UpdatedOn = updatedOn.Format("2006-01-02")
	return &user, nil
}
