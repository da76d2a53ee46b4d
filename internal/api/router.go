package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baharkarakas/biblioteca-backend/internal/api/handlers"
	"github.com/baharkarakas/biblioteca-backend/internal/auth"
	"github.com/baharkarakas/biblioteca-backend/internal/config"
	"github.com/baharkarakas/biblioteca-backend/internal/middleware"
	"github.com/baharkarakas/biblioteca-backend/internal/models"
	"github.com/baharkarakas/biblioteca-backend/internal/services"
)

type RouterDeps struct {
	Cfg     config.Config
	TM      *auth.TokenManager
	UserSvc *services.UserService
	BookSvc *services.BookService
	LoanSvc *services.LoanService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	am := middleware.NewAuthMiddleware(d.TM)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	ah := handlers.NewAuthHandler(d.UserSvc)
	bh := handlers.NewBookHandler(d.BookSvc)
	lh := handlers.NewLoanHandler(d.LoanSvc)
	uh := handlers.NewUserHandler(d.UserSvc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)
		r.Post("/auth/refresh", ah.Refresh)

		// authenticated
		r.Group(func(r chi.Router) {
			r.Use(am.Auth)

			r.Get("/books", bh.List)
			r.Get("/books/{id}", bh.Get)
			r.Get("/loans/mine", lh.Mine)

			// admin
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Post("/books", bh.Create)
				r.Put("/books/{id}", bh.Update)
				r.Delete("/books/{id}", bh.Delete)

				r.Get("/loans", lh.List)
				r.Post("/loans", lh.Create)
				r.Get("/loans/{id}", lh.Get)
				r.Put("/loans/{id}/return", lh.Return)
				r.Delete("/loans/{id}", lh.Delete)
				r.Get("/loans/user/{userID}", lh.ListByUser)

				r.Get("/users", uh.List)
				r.Get("/users/{id}", uh.Get)
			})
		})
	})

	return r
}
