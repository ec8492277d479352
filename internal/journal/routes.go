package journal

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers journal routes. The router mounts this group
// behind the bearer-token middleware, so every handler can assume an
// authenticated principal.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/moods", h.HandleMoods)
	r.Get("/moods/series", h.HandleMoodSeries)
	r.Get("/{id}", h.HandleGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
}
