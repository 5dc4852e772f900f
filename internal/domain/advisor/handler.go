package advisor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/customer"
	"github.com/Maheenrz/smart-khata-ai/internal/middleware"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/errorhandler"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/response"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/validator"
)

// Handler handles advisor HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new advisor handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Cashflow handles GET /advisor/cashflow
func (h *Handler) Cashflow(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	insight, err := h.service.CashflowInsight(r.Context(), ownerID, middleware.GetShopName(r.Context()))
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ADVISOR_CASHFLOW_FAILED", "Failed to build cashflow insight", err)
		return
	}

	response.OK(w, insight)
}

// Message handles POST /advisor/message
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	message, err := h.service.ReminderMessage(r.Context(), ownerID, middleware.GetShopName(r.Context()), &req)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			response.NotFound(w, "Customer not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "ADVISOR_MESSAGE_FAILED", "Failed to generate reminder", err)
		return
	}

	response.OK(w, message)
}

// Routes returns advisor routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/cashflow", h.Cashflow)
	r.Post("/message", h.Message)

	return r
}
