package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

const userColumns = `id, name, email, role, password, COALESCE(reset_password_token, ''), reset_password_expire, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row rowScanner) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password,
		&u.ResetPasswordToken, &u.ResetPasswordExpire, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, role, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Role, u.Password)

	return mapErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email))))
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, u.Name, u.Email, u.Role, u.ID)
	return mapErr(row.Scan(&u.UpdatedAt))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return affectedOne(r.pool.Exec(ctx, `
		UPDATE users SET password = $1, updated_at = now() WHERE id = $2
	`, hash, id))
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return affectedOne(r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, tokenHash string, expire time.Time) error {
	return affectedOne(r.pool.Exec(ctx, `
		UPDATE users SET reset_password_token = $1, reset_password_expire = $2 WHERE id = $3
	`, tokenHash, expire, id))
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	return affectedOne(r.pool.Exec(ctx, `
		UPDATE users SET reset_password_token = NULL, reset_password_expire = NULL WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE reset_password_token = $1 AND reset_password_expire > $2
	`, tokenHash, now))
}

func (r *UserRepository) ResetPassword(ctx context.Context, id, hash string) error {
	return affectedOne(r.pool.Exec(ctx, `
		UPDATE users
		SET password = $1, reset_password_token = NULL, reset_password_expire = NULL, updated_at = now()
		WHERE id = $2
	`, hash, id))
}

var _ repository.UserRepository = (*UserRepository)(nil)
