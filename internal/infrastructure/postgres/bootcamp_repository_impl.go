package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/geocoder"
)

const bootcampColumns = `id, owner_id, name, slug, description, website, phone, email, address, zipcode,
	latitude, longitude, careers, housing, job_assistance, job_guarantee, accept_gi, photo,
	average_rating, average_cost, created_at, updated_at`

type BootcampRepository struct {
	pool *pgxpool.Pool
}

func NewBootcampRepository(pool *pgxpool.Pool) *BootcampRepository {
	return &BootcampRepository{pool: pool}
}

func scanBootcamp(row rowScanner) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Slug, &b.Description, &b.Website, &b.Phone,
		&b.Email, &b.Address, &b.Zipcode, &b.Latitude, &b.Longitude, &b.Careers, &b.Housing,
		&b.JobAssistance, &b.JobGuarantee, &b.AcceptGI, &b.Photo, &b.AverageRating, &b.AverageCost,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return b, nil
}

func (r *BootcampRepository) collect(ctx context.Context, sql string, args ...any) ([]entity.Bootcamp, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.Bootcamp{}
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	if b.Careers == nil {
		b.Careers = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bootcamps (owner_id, name, slug, description, website, phone, email, address, zipcode,
			latitude, longitude, careers, housing, job_assistance, job_guarantee, accept_gi)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, photo, created_at, updated_at
	`, b.OwnerID, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address, b.Zipcode,
		b.Latitude, b.Longitude, b.Careers, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGI)

	return mapErr(row.Scan(&b.ID, &b.Photo, &b.CreatedAt, &b.UpdatedAt))
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return scanBootcamp(r.pool.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE id = $1`, id))
}

func (r *BootcampRepository) List(ctx context.Context) ([]entity.Bootcamp, error) {
	return r.collect(ctx, `SELECT `+bootcampColumns+` FROM bootcamps ORDER BY created_at`)
}

func (r *BootcampRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM bootcamps WHERE owner_id = $1`, ownerID).Scan(&n)
	return n, mapErr(err)
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	if b.Careers == nil {
		b.Careers = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE bootcamps
		SET name = $1, slug = $2, description = $3, website = $4, phone = $5, email = $6, address = $7,
			zipcode = $8, latitude = $9, longitude = $10, careers = $11, housing = $12,
			job_assistance = $13, job_guarantee = $14, accept_gi = $15, updated_at = now()
		WHERE id = $16
		RETURNING updated_at
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address, b.Zipcode,
		b.Latitude, b.Longitude, b.Careers, b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGI, b.ID)
	return mapErr(row.Scan(&b.UpdatedAt))
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	return affectedOne(r.pool.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id))
}

// WithinRadius filters by haversine distance in kilometres.
func (r *BootcampRepository) WithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]entity.Bootcamp, error) {
	return r.collect(ctx, `
		SELECT `+bootcampColumns+` FROM bootcamps
		WHERE 2 * $3 * asin(least(1, sqrt(
			power(sin(radians(latitude - $1) / 2), 2) +
			cos(radians($1)) * cos(radians(latitude)) * power(sin(radians(longitude - $2) / 2), 2)
		))) <= $4
		ORDER BY created_at
	`, lat, lng, geocoder.EarthRadiusKm, radiusKm)
}

func (r *BootcampRepository) SetPhoto(ctx context.Context, id, photo string) error {
	return affectedOne(r.pool.Exec(ctx, `UPDATE bootcamps SET photo = $1, updated_at = now() WHERE id = $2`, photo, id))
}

func (r *BootcampRepository) SetAverageRating(ctx context.Context, id string, avg *float64) error {
	return affectedOne(r.pool.Exec(ctx, `UPDATE bootcamps SET average_rating = $1 WHERE id = $2`, avg, id))
}

func (r *BootcampRepository) SetAverageCost(ctx context.Context, id string, avg *float64) error {
	return affectedOne(r.pool.Exec(ctx, `UPDATE bootcamps SET average_cost = $1 WHERE id = $2`, avg, id))
}

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
