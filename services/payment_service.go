package services

import (
	"storefront-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"go.uber.org/zap"
)

var decimalHundred = decimal.NewFromInt(100)

// PaymentService defines the interface for payment intents.
type PaymentService interface {
	CreatePaymentIntent(req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, *ServiceError)
}

// stripePaymentService implements PaymentService against Stripe. An empty
// secret key leaves the gateway unconfigured: every request is answered
// with 503 instead of failing at startup, so the rest of the storefront
// keeps working without payment credentials.
type stripePaymentService struct {
	secretKey string
	logger    *zap.Logger
}

// NewStripePaymentService creates a new PaymentService.
func NewStripePaymentService(secretKey string, logger *zap.Logger) PaymentService {
	if secretKey != "" {
		stripe.Key = secretKey
	}
	return &stripePaymentService{secretKey: secretKey, logger: logger}
}

// CreatePaymentIntent creates a Stripe payment intent for the given amount,
// in USD, and returns the client secret the storefront confirms with.
func (s *stripePaymentService) CreatePaymentIntent(req *models.CreatePaymentIntentRequest) (*models.PaymentIntentResponse, *ServiceError) {
	if s.secretKey == "" {
		return nil, &ServiceError{StatusCode: 503, Message: "Payment gateway not configured"}
	}
	if !req.Amount.IsPositive() {
		return nil, &ServiceError{StatusCode: 400, Message: "Amount must be greater than zero"}
	}

	cents := req.Amount.Mul(decimalHundred).Round(0).IntPart()
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	if req.OrderData != nil {
		if req.OrderData.OrderNumber != "" {
			params.AddMetadata("order_number", req.OrderData.OrderNumber)
		}
		if req.OrderData.CustomerEmail != "" {
			params.AddMetadata("customer_email", req.OrderData.CustomerEmail)
			params.ReceiptEmail = stripe.String(req.OrderData.CustomerEmail)
		}
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		s.logger.Error("Failed to create payment intent",
			zap.Int64("amount_cents", cents),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create payment intent"}
	}

	s.logger.Info("Payment intent created",
		zap.String("payment_intent_id", pi.ID),
		zap.Int64("amount_cents", cents),
	)
	return &models.PaymentIntentResponse{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
	}, nil
}
