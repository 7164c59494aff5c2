// internal/domain/payment/stripe_service.go
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/order"
)

// StripeService creates Stripe Checkout Sessions for card-paid orders.
// Payment completion is confirmed out-of-band via the verify endpoint;
// nothing here mutates the order.
type StripeService struct {
	config     *config.Config
	baseURL    string
	httpClient *http.Client
}

// NewStripeService creates a new Stripe service
func NewStripeService(cfg *config.Config) *StripeService {
	return &StripeService{
		config:  cfg,
		baseURL: cfg.External.Stripe.BaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CheckoutSession is the subset of the Stripe session object we consume
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession builds a line-item manifest (one entry per order
// item plus one flat delivery-fee entry) and requests a hosted checkout
// session. Returns the redirect target for the storefront.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, o *order.Order) (*CheckoutSession, error) {
	if s.config.External.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}

	form := s.buildSessionForm(o)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.SetBasicAuth(s.config.External.Stripe.SecretKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var sErr stripeError
		if json.Unmarshal(body, &sErr) == nil && sErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe rejected the session: %s", sErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe returned status %d", resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode stripe session: %w", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("stripe session is missing a redirect URL")
	}

	return &session, nil
}

// buildSessionForm encodes the checkout session request body
func (s *StripeService) buildSessionForm(o *order.Order) url.Values {
	currency := s.config.External.Stripe.Currency
	frontend := s.config.App.FrontendURL

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", fmt.Sprintf("%s/verify?success=true&orderId=%d", frontend, o.ID))
	form.Set("cancel_url", fmt.Sprintf("%s/verify?success=false&orderId=%d", frontend, o.ID))
	form.Set("client_reference_id", strconv.FormatUint(uint64(o.ID), 10))

	for i, item := range o.Items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", currency)
		form.Set(prefix+"[price_data][product_data][name]", fmt.Sprintf("%s (%s)", item.Name, item.Color))
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.Price*100, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(item.Quantity))
	}

	feeIndex := len(o.Items)
	prefix := fmt.Sprintf("line_items[%d]", feeIndex)
	form.Set(prefix+"[price_data][currency]", currency)
	form.Set(prefix+"[price_data][product_data][name]", "Delivery Fee")
	form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(s.config.Checkout.DeliveryFee*100, 10))
	form.Set(prefix+"[quantity]", "1")

	return form
}
