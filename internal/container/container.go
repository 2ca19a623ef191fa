// Package container holds the constructed dependencies shared by the route
// modules. It is built once in main and passed down explicitly.
package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/config"
	"github.com/oksasatya/bootcamp-directory/internal/application"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	pginfra "github.com/oksasatya/bootcamp-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
	tpl "github.com/oksasatya/bootcamp-directory/pkg/mailer/templates"
	"github.com/oksasatya/bootcamp-directory/pkg/storage"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Redis  *redis.Client // nil disables rate limiting

	Users     repo.UserRepository
	Bootcamps repo.BootcampRepository
	Courses   repo.CourseRepository
	Reviews   repo.ReviewRepository

	JWT      *helpers.JWTManager
	Cookies  *helpers.Manager
	Mail     mailer.Sender
	Geocoder geocoder.Geocoder
	Files    storage.FileStorage
	Index    application.BootcampIndex // nil disables search
}

// New fills the parts derived from configuration alone. Repositories and
// collaborators are set by the caller.
func New(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config:  cfg,
		Logger:  logger,
		JWT:     helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}
}

// UsePostgres wires the PostgreSQL repositories.
func (c *Container) UsePostgres(pool *pgxpool.Pool) {
	c.Users = pginfra.NewUserRepository(pool)
	c.Bootcamps = pginfra.NewBootcampRepository(pool)
	c.Courses = pginfra.NewCourseRepository(pool)
	c.Reviews = pginfra.NewReviewRepository(pool)
}

// Services is the application layer built on top of a container.
type Services struct {
	Auth       *application.AuthService
	Users      *application.UserService
	Bootcamps  *application.BootcampService
	Courses    *application.CourseService
	Reviews    *application.ReviewService
	Aggregator *application.Aggregator
}

func (c *Container) Services() Services {
	agg := application.NewAggregator(c.Bootcamps, c.Reviews, c.Courses, c.Logger)
	branding := tpl.Branding{AppName: c.Config.AppName, CompanyName: c.Config.CompanyName, SupportURL: c.Config.SupportURL}
	return Services{
		Auth:       application.NewAuthService(c.Users, c.JWT, c.Mail, c.Logger, c.Config.ResetPasswordURL, branding),
		Users:      application.NewUserService(c.Users, c.Logger),
		Bootcamps:  application.NewBootcampService(c.Bootcamps, c.Geocoder, c.Files, c.Index, c.Logger, c.Config.MaxFileUpload),
		Courses:    application.NewCourseService(c.Courses, c.Bootcamps, agg, c.Logger),
		Reviews:    application.NewReviewService(c.Reviews, c.Bootcamps, agg, c.Logger),
		Aggregator: agg,
	}
}
