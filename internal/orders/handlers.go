package orders

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"commerce-api/internal/auth"
	"commerce-api/internal/http/response"
)

// Handler handles HTTP requests for orders
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetOrder handles GET /orders/{id} (authenticated)
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid id")
		return
	}

	order, err := h.service.GetOrder(r.Context(), auth.PrincipalFrom(r.Context()), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, order)
}
