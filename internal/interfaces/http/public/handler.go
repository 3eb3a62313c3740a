package public

import (
	"log"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/latex-free-eats/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/latex-free-eats/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger             *log.Logger
	submissionQueries  publicapp.SubmissionQueryService
	submissionCommands publicapp.SubmissionCommandService
	restaurantQueries  publicapp.RestaurantQueryService
	limiter            common.Limiter
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger             *log.Logger
	SubmissionQueries  publicapp.SubmissionQueryService
	SubmissionCommands publicapp.SubmissionCommandService
	RestaurantQueries  publicapp.RestaurantQueryService
	// SubmitLimiter throttles new submissions per client IP. Nil disables it.
	SubmitLimiter common.Limiter
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:             cfg.Logger,
		submissionQueries:  cfg.SubmissionQueries,
		submissionCommands: cfg.SubmissionCommands,
		restaurantQueries:  cfg.RestaurantQueries,
		limiter:            cfg.SubmitLimiter,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/restaurants", h.restaurantSearchHandler())
	r.Get("/reported-restaurants", h.reportedRestaurantsHandler())
	r.Get("/submissions", h.submissionListHandler())
	r.Get("/submissions/{id}", h.submissionDetailHandler())
	r.With(common.RateLimit(h.logger, h.limiter)).Post("/submissions", h.submissionCreateHandler())
	r.Put("/submissions/{id}", h.submissionUpdateHandler())
	r.Delete("/submissions/{id}", h.submissionDeleteHandler())
}
