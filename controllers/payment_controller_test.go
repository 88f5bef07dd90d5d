package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-backend/controllers"
	"storefront-backend/models"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// --- Mock PaymentService ---

type mockPaymentService struct {
	createIntentFn func(req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, *services.ServiceError)
}

func (m *mockPaymentService) CreatePaymentIntent(req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, *services.ServiceError) {
	return m.createIntentFn(req)
}

func setupPaymentRouter(svc services.PaymentService) *gin.Engine {
	r := gin.New()
	pc := controllers.NewPaymentController(svc)

	r.POST("/api/create-payment-intent", pc.CreatePaymentIntent)
	return r
}

// --- Tests ---

func TestController_CreatePaymentIntent_Success(t *testing.T) {
	svc := &mockPaymentService{
		createIntentFn: func(req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, *services.ServiceError) {
			assert.True(t, req.Amount.IsPositive())
			return &models.PaymentIntentResponse{
				ClientSecret:    "pi_123_secret_abc",
				PaymentIntentID: "pi_123",
			}, nil
		},
	}
	r := setupPaymentRouter(svc)

	body, _ := json.Marshal(map[string]interface{}{
		"amount": "49.99",
		"order_data": map[string]string{
			"order_number":   "ORD-1756227123456042",
			"customer_email": "jane@example.com",
		},
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/create-payment-intent", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "pi_123_secret_abc", resp["client_secret"])
	assert.Equal(t, "pi_123", resp["payment_intent_id"])
}

func TestController_CreatePaymentIntent_GatewayUnavailable(t *testing.T) {
	svc := &mockPaymentService{
		createIntentFn: func(_ *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: 503, Message: "Payment gateway not configured"}
		},
	}
	r := setupPaymentRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/api/create-payment-intent", bytes.NewBufferString(`{"amount":"10.00"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "Payment gateway not configured", resp["error"])
}

func TestController_CreatePaymentIntent_MalformedBody(t *testing.T) {
	svc := &mockPaymentService{}
	r := setupPaymentRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/api/create-payment-intent", bytes.NewBufferString(`{"amount":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
