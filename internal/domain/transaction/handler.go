package transaction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/middleware"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/errorhandler"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/response"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/validator"
)

// Handler handles ledger HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new transaction handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /transactions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		response.BadRequest(w, "Invalid customer_id")
		return
	}

	t, err := h.service.Record(r.Context(), ownerID, customerID, req.Amount, Kind(req.Kind))
	if err != nil {
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			response.NotFound(w, "Customer not found")
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, err.Error())
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "TRANSACTION_CREATE_FAILED", "Failed to record transaction", err)
		}
		return
	}

	response.Created(w, t.ToResponse())
}

// MarkRepaid handles PATCH /transactions/{id}/repaid
func (h *Handler) MarkRepaid(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	transactionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	if err := h.service.MarkRepaid(r.Context(), ownerID, transactionID); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			response.NotFound(w, "Transaction not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "TRANSACTION_REPAY_FAILED", "Failed to mark transaction repaid", err)
		return
	}

	response.OK(w, map[string]string{"message": "Marked as repaid"})
}

// Routes returns transaction routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Create)
	r.Patch("/{id}/repaid", h.MarkRepaid)

	return r
}
