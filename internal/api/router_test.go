package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-api/internal/auth"
	"commerce-api/internal/catalog"
	"commerce-api/internal/orders"
)

var secret = []byte("api-test-secret")

type harness struct {
	handler http.Handler
	admin   string
	client  string
	offline bool
	ready   error
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	signer := auth.NewHMACSigner(secret, time.Hour)
	admin, err := signer.Sign("alex@gmail.com", auth.RoleClient, auth.RoleAdmin)
	require.NoError(t, err)
	client, err := signer.Sign("maria@gmail.com", auth.RoleClient)
	require.NoError(t, err)

	h := &harness{admin: admin, client: client}
	h.handler = NewRouter(Deps{
		Catalog:  catalog.NewService(catalog.NewMemoryStore()),
		Orders:   orders.NewService(orders.NewMemoryStore()),
		Verifier: auth.NewHMACVerifier(secret),
		Ready:    func(context.Context) error { return h.ready },
		Offline:  func() bool { return h.offline },
		Registry: prometheus.NewRegistry(),
	})
	return h
}

func (h *harness) do(method, path, token string, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Accept", "application/json")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "bearer "+token)
	}
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestEveryExistingProductIsReturnedByID(t *testing.T) {
	h := newHarness(t)
	for id := 1; id <= 25; id++ {
		w := h.do(http.MethodGet, fmt.Sprintf("/products/%d", id), "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(id), decode(t, w)["id"])
	}
}

func TestMissingResourcesAreNotFound(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/products/300", "", "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/orders/300", h.admin, "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/orders/300", h.client, "").Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/nowhere", "", "").Code)
}

func TestOrderVisibility(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/orders/1", h.client, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Maria Brown", body["client"].(map[string]any)["name"])

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/orders/2", h.client, "").Code)

	for _, id := range []int{1, 2, 3} {
		assert.Equal(t, http.StatusOK, h.do(http.MethodGet, fmt.Sprintf("/orders/%d", id), h.admin, "").Code)
	}

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/orders/1", h.admin+"123444", "").Code)
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/orders/1", "", "").Code)
}

func TestProductListing(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/products?name=pc", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	content := body["content"].([]any)
	second := content[1].(map[string]any)
	assert.Equal(t, float64(6), second["id"])
	assert.Equal(t, "PC Gamer Ex", second["name"])
	assert.Equal(t, 1350.0, second["price"])
	assert.Equal(t, float64(21), body["totalElements"])
}

func TestProductInsert(t *testing.T) {
	h := newHarness(t)
	valid := `{"name":"Meu produto","description":"Lorem ipsum, dolor sit amet consectetur adipisicing elit.","price":50.0,"imgUrl":"https://example.com/1.jpg","categories":[{"id":2},{"id":3}]}`

	w := h.do(http.MethodPost, "/products", h.admin, valid)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Meu produto", body["name"])
	assert.Equal(t, 50.0, body["price"])

	created := h.do(http.MethodGet, w.Header().Get("Location"), "", "")
	assert.Equal(t, http.StatusOK, created.Code)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/products", h.client, valid).Code)
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodPost, "/products", h.admin+"123444", valid).Code)

	w = h.do(http.MethodPost, "/products", h.admin, `{"name":"a","description":"Lorem ipsum dolor","price":50,"categories":[{"id":2}]}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errs := decode(t, w)["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].(map[string]any)["fieldName"])
}

func TestOperationalEndpoints(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/ready", "", "").Code)
	h.ready = errors.New("db down")
	assert.Equal(t, http.StatusServiceUnavailable, h.do(http.MethodGet, "/ready", "", "").Code)

	h.offline = true
	assert.Equal(t, http.StatusServiceUnavailable, h.do(http.MethodGet, "/products/1", "", "").Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/health", "", "").Code)
	h.offline = false

	flags := decode(t, h.do(http.MethodGet, "/_flags", "", ""))
	assert.Equal(t, false, flags["offline"])

	h.do(http.MethodGet, "/products/1", "", "")
	metrics := h.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `http_requests_total{method="GET",route="/products/{id}",status="200"}`)
}

func TestCORSPreflight(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://shop.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
