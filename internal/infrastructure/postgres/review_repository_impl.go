package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

const reviewColumns = `id, bootcamp_id, user_id, title, text, rating, created_at`

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func scanReview(row rowScanner) (*entity.Review, error) {
	rv := &entity.Review{}
	if err := row.Scan(&rv.ID, &rv.BootcampID, &rv.UserID, &rv.Title, &rv.Text, &rv.Rating, &rv.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return rv, nil
}

func (r *ReviewRepository) collect(ctx context.Context, sql string, args ...any) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	return out, rows.Err()
}

// Create relies on reviews_bootcamp_user_key to reject a second review.
func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (bootcamp_id, user_id, title, text, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rv.BootcampID, rv.UserID, rv.Title, rv.Text, rv.Rating)
	return mapErr(row.Scan(&rv.ID, &rv.CreatedAt))
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
}

func (r *ReviewRepository) List(ctx context.Context) ([]entity.Review, error) {
	return r.collect(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at`)
}

func (r *ReviewRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Review, error) {
	return r.collect(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE bootcamp_id = $1 ORDER BY created_at`, bootcampID)
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	return affectedOne(r.pool.Exec(ctx, `
		UPDATE reviews SET title = $1, text = $2, rating = $3 WHERE id = $4
	`, rv.Title, rv.Text, rv.Rating, rv.ID))
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	return affectedOne(r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id))
}

func (r *ReviewRepository) AverageRating(ctx context.Context, bootcampID string) (float64, int, error) {
	var (
		avg float64
		n   int
	)
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0)::float8, count(*) FROM reviews WHERE bootcamp_id = $1
	`, bootcampID).Scan(&avg, &n)
	return avg, n, mapErr(err)
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
