package convert

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the conversion endpoints under /convert.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/convert", func(r chi.Router) {
		r.Get("/units", h.ListUnits)
		r.Post("/units", h.Units)
		r.Get("/currency", h.ListCurrencies)
		r.Post("/currency", h.Currency)
		r.Post("/age", h.Age)
	})
}
