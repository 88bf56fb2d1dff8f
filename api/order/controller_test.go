package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	orderapp "shop/application/order"
	"shop/domain/shared"
	"shop/infrastructure/persistence/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockProductRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	customers := mocks.NewMockCustomerRepository()
	products := mocks.NewMockProductRepository()
	orders := mocks.NewMockOrderRepository()
	uow := mocks.NewMockUnitOfWork(orders, products)

	customers.AddCustomer("cust-1", "Dana Reyes", "dana@example.com")
	products.AddProduct("prod-widget", "Widget", *shared.NewMoney(1000, "USD"), 5)

	service := orderapp.NewApplicationService(orders, customers, products, uow)

	engine := gin.New()
	group := engine.Group("/api/v1")
	NewController(service).RegisterRoutes(group)
	return engine, products
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return recorder, env
}

func TestCreateOrderEndpoint_Success(t *testing.T) {
	engine, products := newTestRouter(t)

	recorder, env := doJSON(t, engine, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": "cust-1",
		"items":       []gin.H{{"product_id": "prod-widget", "quantity": 3}},
	})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.True(t, env.Success)

	var created orderapp.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "cust-1", created.CustomerID)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "prod-widget", created.Items[0].ProductID)
	assert.Equal(t, 3, created.Items[0].Quantity)
	assert.Equal(t, int64(1000), created.Items[0].UnitPrice.Amount)
	assert.Equal(t, int64(3000), created.TotalAmount.Amount)

	remaining, err := products.FindByID(context.Background(), "prod-widget")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining.Quantity())
}

func TestCreateOrderEndpoint_UnknownCustomer(t *testing.T) {
	engine, _ := newTestRouter(t)

	recorder, env := doJSON(t, engine, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": "cust-missing",
		"items":       []gin.H{{"product_id": "prod-widget", "quantity": 1}},
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", env.Error)
}

func TestCreateOrderEndpoint_UnknownProduct(t *testing.T) {
	engine, _ := newTestRouter(t)

	recorder, env := doJSON(t, engine, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": "cust-1",
		"items":       []gin.H{{"product_id": "prod-ghost", "quantity": 1}},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Equal(t, "INVALID_ORDER", env.Error)
}

func TestCreateOrderEndpoint_InsufficientStock(t *testing.T) {
	engine, products := newTestRouter(t)

	recorder, env := doJSON(t, engine, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": "cust-1",
		"items":       []gin.H{{"product_id": "prod-widget", "quantity": 7}},
	})

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Error)
	assert.Contains(t, env.Message, "Widget")

	remaining, err := products.FindByID(context.Background(), "prod-widget")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining.Quantity())
}

func TestCreateOrderEndpoint_BindingErrors(t *testing.T) {
	engine, _ := newTestRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing customer", gin.H{"items": []gin.H{{"product_id": "prod-widget", "quantity": 1}}}},
		{"empty items", gin.H{"customer_id": "cust-1", "items": []gin.H{}}},
		{"zero quantity", gin.H{"customer_id": "cust-1", "items": []gin.H{{"product_id": "prod-widget", "quantity": 0}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder, env := doJSON(t, engine, http.MethodPost, "/api/v1/orders", tc.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestGetOrderEndpoint_NotFound(t *testing.T) {
	engine, _ := newTestRouter(t)

	recorder, env := doJSON(t, engine, http.MethodGet, "/api/v1/orders/order-missing", nil)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", env.Error)
}

func TestGetCustomerOrdersEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t)

	_, created := doJSON(t, engine, http.MethodPost, "/api/v1/orders", gin.H{
		"customer_id": "cust-1",
		"items":       []gin.H{{"product_id": "prod-widget", "quantity": 1}},
	})
	require.True(t, created.Success)

	recorder, env := doJSON(t, engine, http.MethodGet, "/api/v1/orders/customer/cust-1", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var list []orderapp.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "cust-1", list[0].CustomerID)
}
