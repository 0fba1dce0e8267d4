package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/sce-foundation/sce-portal/internal/auth"
	"github.com/sce-foundation/sce-portal/internal/object"
	"github.com/sce-foundation/sce-portal/internal/position"
	"github.com/sce-foundation/sce-portal/internal/post"
	"github.com/sce-foundation/sce-portal/internal/transport/middleware"
	"github.com/sce-foundation/sce-portal/internal/transport/swagger"
	"github.com/sce-foundation/sce-portal/internal/user"
)

type RouterDeps struct {
	DB              *sql.DB
	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	ObjectHandler   *object.Handler
	PostHandler     *post.Handler
	PositionHandler *position.Handler
	AllowedOrigins  string
	Logger          *slog.Logger
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if deps.AuthHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/register", deps.AuthHandler.Register)
				sr.Post("/login", deps.AuthHandler.Login)
				sr.Post("/logout", deps.AuthHandler.Logout)
			})
		}

		// Catalog reads are open to anonymous viewers; clearance filtering
		// treats them as clearance 0.
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.OptionalAuthMiddleware)

			if deps.ObjectHandler != nil {
				pr.Get("/objects", deps.ObjectHandler.ListObjects)
				pr.Get("/objects/{id}", deps.ObjectHandler.GetObject)
			}
			if deps.PostHandler != nil {
				pr.Get("/posts", deps.PostHandler.ListPosts)
				pr.Get("/posts/{id}", deps.PostHandler.GetPost)
			}
			if deps.PositionHandler != nil {
				pr.Get("/positions", deps.PositionHandler.ListPositions)
				pr.Get("/positions/{id}", deps.PositionHandler.GetPosition)
			}
		})

		// Authenticated routes
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)

			pr.Get("/users/me", deps.AuthHandler.Me)

			if deps.PostHandler != nil {
				pr.With(auth.RequireRoles(user.RoleAdministrator, user.RoleModerator, user.RoleResearcher)).
					Post("/posts", deps.PostHandler.CreatePost)
			}

			// Administrator-only writes
			pr.Group(func(ar chi.Router) {
				ar.Use(auth.RequireAdministrator)

				if deps.ObjectHandler != nil {
					ar.Post("/objects", deps.ObjectHandler.CreateObject)
					ar.Put("/objects/{id}", deps.ObjectHandler.UpdateObject)
					ar.Delete("/objects/{id}", deps.ObjectHandler.DeleteObject)
				}

				if deps.PostHandler != nil {
					ar.Put("/posts/{id}", deps.PostHandler.UpdatePost)
					ar.Delete("/posts/{id}", deps.PostHandler.DeletePost)
				}

				if deps.PositionHandler != nil {
					ar.Post("/positions", deps.PositionHandler.CreatePosition)
					ar.Put("/positions/{id}", deps.PositionHandler.UpdatePosition)
					ar.Delete("/positions/{id}", deps.PositionHandler.DeletePosition)
				}

				if deps.UserHandler != nil {
					ar.Route("/admin/users", func(ur chi.Router) {
						ur.Get("/", deps.UserHandler.ListUsers)
						ur.Get("/{id}", deps.UserHandler.GetUser)
						ur.Patch("/{id}", deps.UserHandler.UpdateUser)
						ur.Post("/{id}/approve", deps.UserHandler.Approve)
						ur.Post("/{id}/reject", deps.UserHandler.Reject)
						ur.Post("/{id}/block", deps.UserHandler.Block)
						ur.Post("/{id}/reactivate", deps.UserHandler.Reactivate)
					})
				}
			})
		})
	})
}
