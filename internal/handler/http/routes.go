package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxRequestBodyBytes bounds every request body. Upload blobs travel as
// Base64 inside JSON, so this is roughly 1.3x the largest accepted file.
const MaxRequestBodyBytes = 16 << 20

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.RequestSize(MaxRequestBodyBytes))
	router.Use(withGZip)
	router.Use(middleware.Compress(5, "application/json"))

	// routes without a session
	router.Group(func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/verify-totp", h.verifyTOTP)
		r.Get("/qrcode", h.qrCode)
		r.Get("/health", h.health)
	})

	// routes with a session
	router.Group(func(r chi.Router) {
		r.Use(h.session)

		r.Post("/upload", h.upload)
		r.Get("/download", h.download)
		r.Post("/logout", h.logout)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
