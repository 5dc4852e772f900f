package community

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/middleware"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/errorhandler"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/response"
)

// Handler handles community risk HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new community handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Risk handles GET /community/risk
func (h *Handler) Risk(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	risk, err := h.service.Risk(r.Context(), ownerID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "COMMUNITY_RISK_FAILED", "Failed to compute community risk", err)
		return
	}

	response.OK(w, risk)
}

// Routes returns community routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/risk", h.Risk)

	return r
}
