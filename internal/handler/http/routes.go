package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging)

	// request/response routes
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}

		// routes without authorization
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version/", h.getServerVersion)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/api/auth/me", h.me)
			r.Get("/api/bookmarks", h.listBookmarks)
			r.With(h.checkHash).Post("/api/bookmarks", h.createBookmark)
			r.With(h.checkHash).Put("/api/bookmarks/{id}", h.updateBookmark)
			r.Delete("/api/bookmarks/{id}", h.deleteBookmark)
		})
	})

	// long-lived stream: no compression, no request timeout
	router.With(h.auth).Get("/api/bookmarks/changes", h.changes)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
