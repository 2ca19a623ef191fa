package router

import (
	"github.com/oksasatya/bootcamp-directory/internal/container"
	handlers "github.com/oksasatya/bootcamp-directory/internal/interface/http"
	"github.com/oksasatya/bootcamp-directory/internal/interface/middleware"
	"github.com/oksasatya/bootcamp-directory/internal/router/modules"
)

// InitModules builds the application services from c and adds every feature module to r.
// It should be called once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	svc := c.Services()
	guard := middleware.NewGuard(svc.Auth, c.Logger)

	limits := modules.Limits{Redis: c.Redis, Logger: c.Logger}
	if c.Config.Env == "development" {
		limits.Allow = middleware.AllowPrivateIP()
	}
	r.Use(limits.PerIP(300))

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, c.Cookies, c.Logger), guard, limits))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Users, c.Logger), guard))
	r.Add(modules.NewBootcampModule(handlers.NewBootcampHandler(svc.Bootcamps, c.Logger), guard))
	r.Add(modules.NewCourseModule(handlers.NewCourseHandler(svc.Courses, c.Logger), guard))
	r.Add(modules.NewReviewModule(handlers.NewReviewHandler(svc.Reviews, c.Logger), guard))

	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limits))
	}
}
