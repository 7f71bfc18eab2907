// Package learningplatform предоставляет маршруты для основного приложения.
package learningplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/taallam/learning-platform/internal/http/handlers/auth/currentuser"
	"github.com/taallam/learning-platform/internal/http/handlers/auth/login"
	"github.com/taallam/learning-platform/internal/http/handlers/auth/logout"
	"github.com/taallam/learning-platform/internal/http/handlers/auth/register"
	certlist "github.com/taallam/learning-platform/internal/http/handlers/certificate/list"
	certread "github.com/taallam/learning-platform/internal/http/handlers/certificate/read"
	certverify "github.com/taallam/learning-platform/internal/http/handlers/certificate/verify"
	coursebycategory "github.com/taallam/learning-platform/internal/http/handlers/course/bycategory"
	courselist "github.com/taallam/learning-platform/internal/http/handlers/course/list"
	courseread "github.com/taallam/learning-platform/internal/http/handlers/course/read"
	enrollmentcreate "github.com/taallam/learning-platform/internal/http/handlers/enrollment/create"
	enrollmentlist "github.com/taallam/learning-platform/internal/http/handlers/enrollment/list"
	enrollmentprogress "github.com/taallam/learning-platform/internal/http/handlers/enrollment/progress"
	"github.com/taallam/learning-platform/internal/http/handlers/profile/updateemail"
	"github.com/taallam/learning-platform/internal/http/handlers/profile/updatepassword"
	"github.com/taallam/learning-platform/internal/http/handlers/profile/updatephone"
	"github.com/taallam/learning-platform/internal/http/middlewarectx"
	authservice "github.com/taallam/learning-platform/internal/services/auth"
	catalogservice "github.com/taallam/learning-platform/internal/services/catalog"
	certservice "github.com/taallam/learning-platform/internal/services/certificate"
	enrollmentservice "github.com/taallam/learning-platform/internal/services/enrollment"
	"github.com/taallam/learning-platform/internal/session"
	"github.com/taallam/learning-platform/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	sessions *session.Store, db *storage.Storage,
	authService *authservice.Service, catalogService *catalogservice.Service,
	enrollmentService *enrollmentservice.Service, certificateService *certservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Сессия подхватывается везде, где она есть: сертификат по ID
		// доступен анонимно, но чужим вошедшим пользователям закрыт.
		r.Use(middlewarectx.ResolveUser(sessions, db, logger))

		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService, sessions).ServeHTTP)
		r.Post("/login", login.New(logger, authService, sessions).ServeHTTP)
		r.Post("/logout", logout.New(logger, sessions).ServeHTTP)

		r.Get("/courses", courselist.New(logger, catalogService).ServeHTTP)
		r.Get("/courses/category/{category}", coursebycategory.New(logger, catalogService).ServeHTTP)
		r.Get("/courses/{id}", courseread.New(logger, catalogService).ServeHTTP)

		r.Get("/certificates/verify/{number}", certverify.New(logger, certificateService).ServeHTTP)
		r.Get("/certificates/{id}", certread.New(logger, certificateService).ServeHTTP)

		// Группа с обязательной сессией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireUser(logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/user", currentuser.New(logger).ServeHTTP)
			r.Patch("/user/email", updateemail.New(logger, authService).ServeHTTP)
			r.Patch("/user/phone", updatephone.New(logger, authService).ServeHTTP)
			r.Patch("/user/password", updatepassword.New(logger, authService).ServeHTTP)

			r.Get("/enrollments", enrollmentlist.New(logger, enrollmentService).ServeHTTP)
			r.Post("/enrollments", enrollmentcreate.New(logger, enrollmentService).ServeHTTP)
			r.Patch("/enrollments/{id}/progress", enrollmentprogress.New(logger, enrollmentService).ServeHTTP)

			r.Get("/certificates", certlist.New(logger, certificateService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
