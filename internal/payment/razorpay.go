package payment

import (
	"context"
	"crypto/hmac"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"sportify-backend/internal/config"

	"github.com/valyala/fasthttp"
)

// Razorpay talks to the Razorpay Orders API. The HTTP client is built on
// first use.
type Razorpay struct {
	keyID     string
	keySecret string
	baseURL   string

	once   sync.Once
	client *fasthttp.Client
}

func NewRazorpay(cfg *config.Config) *Razorpay {
	return &Razorpay{
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
		baseURL:   cfg.RazorpayBaseURL,
	}
}

func (r *Razorpay) httpClient() *fasthttp.Client {
	r.once.Do(func() {
		r.client = &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: time.Minute,
		}
	})
	return r.client
}

func (r *Razorpay) KeyID() string { return r.keyID }

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (r *Razorpay) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	if r.keyID == "" || r.keySecret == "" {
		return nil, errors.New("razorpay credentials are not configured")
	}

	body, err := json.Marshal(orderRequest{Amount: amountMinor, Currency: currency, Receipt: receipt})
	if err != nil {
		return nil, fmt.Errorf("failed to encode order request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.baseURL + "/orders")
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(r.keyID+":"+r.keySecret)))
	req.SetBody(body)

	timeout := 10 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if err := r.httpClient().DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		var apiErr apiError
		if json.Unmarshal(resp.Body(), &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay: %s", apiErr.Error.Description)
		}
		return nil, fmt.Errorf("razorpay returned status %d", resp.StatusCode())
	}

	var order Order
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("failed to decode razorpay order: %w", err)
	}
	return &order, nil
}

func (r *Razorpay) VerifySignature(orderID, paymentID, signature string) bool {
	if r.keySecret == "" {
		return false
	}
	expected := Sign(r.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
