package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all calculator endpoints onto the given router
// under the /calculator prefix.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/calculator", func(r chi.Router) {
		r.Post("/long", h.Long)
		r.Post("/long/stream", h.StreamLong)
		r.Post("/chain", h.Chain)
		r.Post("/chain/stream", h.StreamChain)
		r.Post("/calculate", h.Calculate)

		r.Get("/history", h.History)
		r.Delete("/history", h.ClearHistory)
		r.Post("/history/{index}/replay", h.Replay)

		r.Get("/examples", h.Examples)
		r.Post("/examples/random", h.RandomExample)
	})
}
