package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-api/internal/apperr"
	"commerce-api/internal/auth"
)

var (
	admin  = &auth.Principal{Email: "alex@gmail.com", Roles: []auth.Role{auth.RoleClient, auth.RoleAdmin}}
	client = &auth.Principal{Email: "maria@gmail.com", Roles: []auth.Role{auth.RoleClient}}
)

func TestGetOrder(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  *auth.Principal
		id      int64
		wantErr error
	}{
		{"admin existing order", admin, 1, nil},
		{"client owns order", client, 1, nil},
		{"client foreign order", client, 2, apperr.ErrForbidden},
		{"admin missing order", admin, 300, apperr.ErrNotFound},
		{"client missing order", client, 300, apperr.ErrNotFound},
		{"anonymous", nil, 1, apperr.ErrUnauthorized},
		{"admin foreign order", admin, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := svc.GetOrder(ctx, tt.caller, tt.id)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, o)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, o.ID)
		})
	}
}

func TestOrderDTO(t *testing.T) {
	o, err := NewService(NewMemoryStore()).GetOrder(context.Background(), client, 1)
	require.NoError(t, err)

	assert.Equal(t, "Maria Brown", o.Client.Name)
	assert.Equal(t, StatusPaid, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "The Lord of the Rings", o.Items[0].Name)
	assert.Equal(t, 181.0, o.Items[0].SubTotal)
	assert.Equal(t, "Macbook Pro", o.Items[1].Name)
	assert.Equal(t, 1431.0, o.Total)
}

func TestHandler_GetOrder(t *testing.T) {
	secret := []byte("orders-test-secret")
	signer := auth.NewHMACSigner(secret, time.Hour)
	adminToken, err := signer.Sign("alex@gmail.com", auth.RoleClient, auth.RoleAdmin)
	require.NoError(t, err)
	clientToken, err := signer.Sign("maria@gmail.com", auth.RoleClient)
	require.NoError(t, err)

	h := NewHandler(NewService(NewMemoryStore()))
	r := mux.NewRouter()
	r.Use(auth.Authenticate(auth.NewHMACVerifier(secret)))
	r.HandleFunc("/orders/{id}", auth.RequireAuth(h.GetOrder)).Methods(http.MethodGet)

	tests := []struct {
		name           string
		token          string
		path           string
		expectedStatus int
	}{
		{"admin existing", adminToken, "/orders/1", http.StatusOK},
		{"client owner", clientToken, "/orders/1", http.StatusOK},
		{"client foreign", clientToken, "/orders/2", http.StatusForbidden},
		{"admin missing", adminToken, "/orders/300", http.StatusNotFound},
		{"client missing", clientToken, "/orders/300", http.StatusNotFound},
		{"invalid token", adminToken + "123444", "/orders/1", http.StatusUnauthorized},
		{"no token", "", "/orders/1", http.StatusUnauthorized},
		{"bad id", adminToken, "/orders/x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Accept", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var body struct {
				ID     int64 `json:"id"`
				Client struct {
					Name string `json:"name"`
				} `json:"client"`
				Items []struct {
					Name string `json:"name"`
				} `json:"items"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, int64(1), body.ID)
			assert.Equal(t, "Maria Brown", body.Client.Name)
			var names []string
			for _, it := range body.Items {
				names = append(names, it.Name)
			}
			assert.ElementsMatch(t, []string{"The Lord of the Rings", "Macbook Pro"}, names)
		})
	}
}
