package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		App: config.AppConfig{FrontendURL: "https://shop.example.com"},
		External: config.ExternalConfig{
			Stripe: config.StripeConfig{
				SecretKey: "sk_test_123",
				BaseURL:   baseURL,
				Currency:  "usd",
			},
		},
		Checkout: config.CheckoutConfig{DeliveryFee: 10},
	}
}

func testOrder() *order.Order {
	return &order.Order{
		ID:     7,
		Amount: 60,
		Items: []order.Item{
			{Name: "Classic Cotton Tee", Color: "Black", Price: 25, Quantity: 2},
		},
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/sessions", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "sk_test_123", user)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "https://shop.example.com/verify?success=true&orderId=7", r.PostForm.Get("success_url"))
		assert.Equal(t, "https://shop.example.com/verify?success=false&orderId=7", r.PostForm.Get("cancel_url"))
		assert.Equal(t, "7", r.PostForm.Get("client_reference_id"))

		assert.Equal(t, "Classic Cotton Tee (Black)", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "2500", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "2", r.PostForm.Get("line_items[0][quantity]"))

		assert.Equal(t, "Delivery Fee", r.PostForm.Get("line_items[1][price_data][product_data][name]"))
		assert.Equal(t, "1000", r.PostForm.Get("line_items[1][price_data][unit_amount]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[1][quantity]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/pay/cs_test_1"}`))
	}))
	defer server.Close()

	svc := NewStripeService(testConfig(server.URL))
	session, err := svc.CreateCheckoutSession(context.Background(), testOrder())
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", session.URL)
}

func TestCreateCheckoutSessionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid API Key provided"}}`))
	}))
	defer server.Close()

	svc := NewStripeService(testConfig(server.URL))
	_, err := svc.CreateCheckoutSession(context.Background(), testOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API Key provided")
}

func TestCreateCheckoutSessionMissingKey(t *testing.T) {
	cfg := testConfig("http://localhost:0")
	cfg.External.Stripe.SecretKey = ""

	svc := NewStripeService(cfg)
	_, err := svc.CreateCheckoutSession(context.Background(), testOrder())
	assert.Error(t, err)
}

func TestCreateCheckoutSessionMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_test_2"}`))
	}))
	defer server.Close()

	svc := NewStripeService(testConfig(server.URL))
	_, err := svc.CreateCheckoutSession(context.Background(), testOrder())
	assert.Error(t, err)
}
