package customer

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

// Handler handles customer HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new customer handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /customers
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	summaries, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_LIST_FAILED", "Failed to list customers", err)
		return
	}

	response.OK(w, summaries)
}

// Create handles POST /customers
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

	c, err := h.service.Create(r.Context(), ownerID, &req)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_CREATE_FAILED", "Failed to create customer", err)
		return
	}

	response.Created(w, CreateResponse{ID: c.ID.String(), Message: "Customer added"})
}

// Detail handles GET /customers/{id}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	detail, err := h.service.Detail(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, "Customer not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_DETAIL_FAILED", "Failed to load customer", err)
		return
	}

	response.OK(w, detail)
}

// Delete handles DELETE /customers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	if ownerID == uuid.Nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			response.NotFound(w, "Customer not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_DELETE_FAILED", "Failed to delete customer", err)
		return
	}

	response.OK(w, map[string]string{"message": "Customer deleted successfully"})
}

// Routes returns customer routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Detail)
	r.Delete("/{id}", h.Delete)

	return r
}
