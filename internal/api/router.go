package api

import (
	"net/http"

	"github.com/dom/crowd-translate/internal/api/handlers"
	"github.com/dom/crowd-translate/internal/api/middleware"
	"github.com/dom/crowd-translate/internal/api/respond"
	"github.com/dom/crowd-translate/internal/config"
	"github.com/dom/crowd-translate/internal/service"
	"github.com/dom/crowd-translate/internal/validation"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(services *service.Services, cfg *config.Config, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Set before any Route call so sub-routers inherit them.
	r.NotFound(respond.NotFound)
	r.MethodNotAllowed(respond.MethodNotAllowed)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	validator := validation.New()
	requireAuth := middleware.Auth(services.Auth, log)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg.FrontendURL, log)
	bookHandler := handlers.NewBookHandler(services.Book, validator, log)
	translationHandler := handlers.NewTranslationHandler(services.Translation, validator, log)
	bookmarkHandler := handlers.NewBookmarkHandler(services.Bookmark, log)
	profileHandler := handlers.NewProfileHandler(services.Profile, log)
	translateHandler := handlers.NewTranslateHandler(services.Translate, log)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/google-url", authHandler.GoogleURL)
		r.Post("/validate-token", authHandler.ValidateToken)
		r.With(requireAuth).Get("/me", authHandler.Me)
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", bookHandler.List)
		r.Get("/{id}", bookHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", bookHandler.Create)
			r.Put("/{id}", bookHandler.Update)
		})
	})

	r.Route("/translations", func(r chi.Router) {
		r.Get("/", translationHandler.List)
		r.Get("/book/{bookId}", translationHandler.ListByBook)
		r.Get("/{id}", translationHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", translationHandler.Create)
			r.Put("/{id}", translationHandler.Update)
		})
	})

	// Every bookmark route needs a session.
	r.Route("/bookmarks", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", bookmarkHandler.List)
			r.Post("/", bookmarkHandler.Create)
			r.Get("/check", bookmarkHandler.Check)
			r.Get("/check-book", bookmarkHandler.CheckBook)
			r.Get("/check-translation", bookmarkHandler.CheckTranslation)
			r.Delete("/{id}", bookmarkHandler.Delete)
		})
	})

	r.Route("/profile", func(r chi.Router) {
		r.With(requireAuth).Get("/", profileHandler.GetProfile)
		r.Get("/{id}", profileHandler.GetPublicProfile)
	})

	r.Post("/translate", translateHandler.Translate)

	return r
}
