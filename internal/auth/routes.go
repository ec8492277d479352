package auth

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers account routes. Credential endpoints get a tight
// per-IP rate limit to slow down enumeration and brute force attempts.
func (h *Handler) MountRoutes(r chi.Router, tokens *TokenManager) {
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/register", h.HandleRegister)
		r.Post("/login", h.HandleLogin)
	})
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(tokens))
		r.Put("/profile", h.HandleUpdateProfile)
	})
}
