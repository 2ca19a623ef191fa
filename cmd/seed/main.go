package main

import (
	"context"
	"flag"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/config"
	"github.com/oksasatya/bootcamp-directory/internal/container"
	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	pginfra "github.com/oksasatya/bootcamp-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/bootcamp-directory/internal/infrastructure/search"
	"github.com/oksasatya/bootcamp-directory/pkg/geocoder"
	"github.com/oksasatya/bootcamp-directory/pkg/helpers"
	"github.com/oksasatya/bootcamp-directory/pkg/mailer"
)

func main() {
	importData := flag.Bool("import", false, "insert the demo users, bootcamps, courses and reviews")
	destroy := flag.Bool("destroy", false, "delete every user, bootcamp, course and review")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if *importData == *destroy {
		logger.Fatal("pass exactly one of -import or -destroy")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	if *destroy {
		if err := destroyAll(ctx, pool); err != nil {
			logger.WithError(err).Fatal("destroy failed")
		}
		logger.Info("data destroyed")
		return
	}

	c := container.New(cfg, logger)
	c.UsePostgres(pool)
	c.Geocoder = seedZipcodes
	c.Mail = mailer.LogSender{Logger: logger}
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Fatal("failed to init elasticsearch client")
		}
		idx := search.NewBootcampIndex(es, cfg.ESBootcampsIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			logger.WithError(err).Warn("could not ensure bootcamp index")
		}
		c.Index = idx
	}

	if err := importAll(ctx, c, logger); err != nil {
		logger.WithError(err).Fatal("import failed; run with -destroy first if the data already exists")
	}
	logger.Info("data imported")
}

func destroyAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `TRUNCATE reviews, courses, bootcamps, users CASCADE`)
	return err
}

// importAll goes through the application services so slugs, geocoding and
// the rating and cost aggregates are computed exactly as for API writes.
func importAll(ctx context.Context, c *container.Container, logger *logrus.Logger) error {
	svc := c.Services()

	users := map[string]*entity.User{}
	for _, in := range seedUsers {
		in.Password = seedPassword
		u, err := svc.Users.Create(ctx, in)
		if err != nil {
			return err
		}
		users[u.Email] = u
	}

	bootcamps := map[string]*entity.Bootcamp{}
	for _, sb := range seedBootcamps {
		owner := users[sb.Publisher]
		b, err := svc.Bootcamps.Create(ctx, owner, sb.Input)
		if err != nil {
			return err
		}
		bootcamps[b.Name] = b
		for _, in := range sb.Courses {
			if _, err := svc.Courses.Create(ctx, owner, b.ID, in); err != nil {
				return err
			}
		}
	}

	for _, sr := range seedReviews {
		if _, err := svc.Reviews.Create(ctx, users[sr.Author], bootcamps[sr.Bootcamp].ID, sr.Input); err != nil {
			return err
		}
	}

	logger.WithFields(logrus.Fields{
		"users":     len(users),
		"bootcamps": len(bootcamps),
		"reviews":   len(seedReviews),
		"password":  seedPassword,
	}).Info("seeded")
	return nil
}

func (g staticGeocoder) Geocode(_ context.Context, zipcode string) (geocoder.Location, error) {
	loc, ok := g[strings.TrimSpace(zipcode)]
	if !ok {
		return geocoder.Location{}, geocoder.ErrNoResult
	}
	return loc, nil
}
