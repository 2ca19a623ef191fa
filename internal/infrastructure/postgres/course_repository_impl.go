package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

const courseColumns = `id, bootcamp_id, owner_id, title, description, weeks, tuition, minimum_skill, scholarship_available, created_at`

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func scanCourse(row rowScanner) (*entity.Course, error) {
	c := &entity.Course{}
	if err := row.Scan(&c.ID, &c.BootcampID, &c.OwnerID, &c.Title, &c.Description, &c.Weeks,
		&c.Tuition, &c.MinimumSkill, &c.ScholarshipAvailable, &c.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CourseRepository) collect(ctx context.Context, sql string, args ...any) ([]entity.Course, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []entity.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (bootcamp_id, owner_id, title, description, weeks, tuition, minimum_skill, scholarship_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, c.BootcampID, c.OwnerID, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable)
	return mapErr(row.Scan(&c.ID, &c.CreatedAt))
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

func (r *CourseRepository) List(ctx context.Context) ([]entity.Course, error) {
	return r.collect(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY created_at`)
}

func (r *CourseRepository) ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error) {
	return r.collect(ctx, `SELECT `+courseColumns+` FROM courses WHERE bootcamp_id = $1 ORDER BY created_at`, bootcampID)
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	return affectedOne(r.pool.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, weeks = $3, tuition = $4, minimum_skill = $5, scholarship_available = $6
		WHERE id = $7
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill, c.ScholarshipAvailable, c.ID))
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return affectedOne(r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id))
}

func (r *CourseRepository) AverageTuition(ctx context.Context, bootcampID string) (float64, int, error) {
	var (
		avg float64
		n   int
	)
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(tuition), 0)::float8, count(*) FROM courses WHERE bootcamp_id = $1
	`, bootcampID).Scan(&avg, &n)
	return avg, n, mapErr(err)
}

var _ repository.CourseRepository = (*CourseRepository)(nil)
