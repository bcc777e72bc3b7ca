package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiendas-api/internal/application/dto"
	"github.com/jhoicas/tiendas-api/internal/application/retail"
	"github.com/jhoicas/tiendas-api/internal/infrastructure/flatfile"
	apphttp "github.com/jhoicas/tiendas-api/internal/interfaces/http"
)

// buildTestApp arma la API completa sobre archivos en memoria.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := flatfile.Open(afero.NewMemMapFs(), flatfile.Paths{
		Stores:    "CSV/stores.csv",
		Inventory: "CSV/inventory.csv",
		Products:  "CSV/products.csv",
	})
	require.NoError(t, err)
	svc := retail.NewStoreService(
		flatfile.NewStoreRepository(db),
		flatfile.NewProductRepository(db),
		flatfile.NewInventoryRepository(db),
		flatfile.NewTxRunner(db),
		nil,
	)
	app := fiber.New()
	app.Use(apphttp.RequestLogger(nil))
	apphttp.Router(app, apphttp.RouterDeps{StoreService: svc})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func createStore(t *testing.T, app *fiber.App, name string) dto.StoreResponse {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/stores", dto.CreateStoreRequest{Name: name, Address: "Calle 1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var s dto.StoreResponse
	require.NoError(t, json.Unmarshal(body, &s))
	return s
}

func deliver(t *testing.T, app *fiber.App, code int, product string, qty int, price string) {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/inventory/deliveries", map[string]any{
		"store_code": code, "product_name": product, "quantity": qty, "price": price,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
}

func TestRouter_FlujoCompleto(t *testing.T) {
	app := buildTestApp(t)
	a := createStore(t, app, "A")
	b := createStore(t, app, "B")
	assert.Equal(t, 10000, a.Code)
	assert.Equal(t, 10001, b.Code)

	deliver(t, app, a.Code, "Bread", 50, "2")
	deliver(t, app, b.Code, "Bread", 50, "1.8")

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/Bread/cheapest-store", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var cheapest dto.StoreResponse
	require.NoError(t, json.Unmarshal(body, &cheapest))
	assert.Equal(t, b.Code, cheapest.Code)

	resp, body = doJSON(t, app, http.MethodPost, "/api/stores/10000/purchases", dto.OrderRequest{Items: map[string]int{"Bread": 10}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var purchase map[string]any
	require.NoError(t, json.Unmarshal(body, &purchase))
	assert.Equal(t, "20", purchase["total"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/stores/10000/inventory", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var items []dto.InventoryItemResponse
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 40, items[0].Quantity)

	resp, body = doJSON(t, app, http.MethodGet, "/api/stores/10001/affordable?budget=3.6", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var aff dto.AffordableResponse
	require.NoError(t, json.Unmarshal(body, &aff))
	assert.Equal(t, map[string]int{"Bread": 2}, aff.Items)

	resp, body = doJSON(t, app, http.MethodPost, "/api/purchases/best-store", dto.OrderRequest{Items: map[string]int{"Bread": 45}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	var best dto.BestStoreResponse
	require.NoError(t, json.Unmarshal(body, &best))
	assert.Equal(t, b.Code, best.Store.Code)
	assert.Equal(t, "81", best.Total.String())
}

func TestRouter_ErroresDeDominio(t *testing.T) {
	app := buildTestApp(t)
	s := createStore(t, app, "A")
	deliver(t, app, s.Code, "Bread", 1, "2")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"tienda inexistente", http.MethodGet, "/api/stores/99999", nil, fiber.StatusNotFound, "NOT_FOUND"},
		{"código no numérico", http.MethodGet, "/api/stores/abc", nil, fiber.StatusBadRequest, "INVALID_CODE"},
		{"stock insuficiente", http.MethodPost, "/api/stores/10000/purchases", dto.OrderRequest{Items: map[string]int{"Bread": 2}}, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"producto desconocido", http.MethodPost, "/api/stores/10000/purchase-cost", dto.OrderRequest{Items: map[string]int{"Caviar": 1}}, fiber.StatusNotFound, "NOT_FOUND"},
		{"pedido vacío", http.MethodPost, "/api/stores/10000/purchase-cost", dto.OrderRequest{}, fiber.StatusBadRequest, "VALIDATION"},
		{"presupuesto negativo", http.MethodGet, "/api/stores/10000/affordable?budget=-1", nil, fiber.StatusBadRequest, "VALIDATION"},
		{"presupuesto inválido", http.MethodGet, "/api/stores/10000/affordable?budget=mucho", nil, fiber.StatusBadRequest, "VALIDATION"},
		{"sin proveedor", http.MethodPost, "/api/purchases/best-store", dto.OrderRequest{Items: map[string]int{"Bread": 5}}, fiber.StatusConflict, "NO_SUPPLIER"},
		{"sin precio inicial", http.MethodPost, "/api/inventory/deliveries", map[string]any{"store_code": 10000, "product_name": "Milk", "quantity": 3, "price": "0"}, fiber.StatusBadRequest, "INVALID_PRICE"},
		{"ingreso a tienda inexistente", http.MethodPost, "/api/inventory/deliveries", map[string]any{"store_code": 1, "product_name": "Milk", "quantity": 3, "price": "1"}, fiber.StatusNotFound, "NOT_FOUND"},
		{"sin producto en stock", http.MethodGet, "/api/products/Milk/cheapest-store", nil, fiber.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := doJSON(t, app, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			var e dto.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &e))
			assert.Equal(t, tc.code, e.Code)
		})
	}
}

func TestRouter_ProductosIdempotentes(t *testing.T) {
	app := buildTestApp(t)
	for i := 0; i < 2; i++ {
		resp, body := doJSON(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{Name: "Queso"})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	}
	resp, body := doJSON(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, []dto.ProductResponse{{Name: "Queso"}}, list)
}

func TestRequestLogger_PropagaRequestID(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/stores", nil), -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)
}
