package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"commerce-api/internal/auth"
	"commerce-api/internal/http/response"
	"commerce-api/internal/logger"
)

// Handler handles HTTP requests for catalog operations
type Handler struct {
	service *Service
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListProducts(r.Context(), parseListQuery(r))
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

// GetProduct handles GET /products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /products (admin only)
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFrom(r.Context())

	var req ProductInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Debugf("CreateProduct: decode body: %v", err)
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.service.InsertProduct(r.Context(), principal, req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/products/%d", product.ID))
	response.JSON(w, http.StatusCreated, product)
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.service.ListCategories(r.Context())
	if err != nil {
		response.FromError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, cats)
}

// parseListQuery reads name, page, size and sort. Unparseable numbers fall back to defaults.
func parseListQuery(r *http.Request) ListQuery {
	v := r.URL.Query()
	q := ListQuery{Name: strings.TrimSpace(v.Get("name"))}
	q.Page, _ = strconv.Atoi(v.Get("page"))
	q.Size, _ = strconv.Atoi(v.Get("size"))

	// sort=price,desc
	if s := v.Get("sort"); s != "" {
		field, dir, _ := strings.Cut(s, ",")
		q.Sort = SortField(strings.ToLower(strings.TrimSpace(field)))
		q.Desc = strings.EqualFold(strings.TrimSpace(dir), "desc")
	}
	return q.normalize()
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
