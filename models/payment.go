package models

import "github.com/shopspring/decimal"

// PaymentOrderData carries the optional order context attached to a payment
// intent as gateway metadata.
type PaymentOrderData struct {
	OrderNumber   string `json:"order_number"`
	CustomerEmail string `json:"customer_email"`
}

// CreatePaymentIntentRequest is the checkout payment payload. Amount is in
// major currency units, e.g. 49.99.
type CreatePaymentIntentRequest struct {
	Amount    decimal.Decimal   `json:"amount"`
	OrderData *PaymentOrderData `json:"order_data"`
}

// PaymentIntentResponse returns what the storefront needs to confirm the
// payment client-side.
type PaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}
