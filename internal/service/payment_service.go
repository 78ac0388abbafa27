package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrBillingTypeInvalid = errors.New("the billingType field is not valid")

var validBillingTypes = []string{"BOLETO", "CREDIT_CARD", "PIX", "UNDEFINED"}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// PaymentService forwards charge requests to the Asaas gateway. The core
// only validates the payload and relays the gateway's answer; retries and
// idempotency are the gateway's concern.
type PaymentService struct {
	httpClient httpDoer
	baseURL    string
	apiKey     string
}

func NewPaymentService(baseURL, apiKey string) *PaymentService {
	return &PaymentService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type ChargeInput struct {
	Customer    string  `json:"customer"`
	BillingType string  `json:"billingType"`
	DueDate     string  `json:"dueDate"`
	Value       float64 `json:"value"`
}

type ChargeResult struct {
	InvoiceURL string
	Raw        map[string]any
}

func (in *ChargeInput) missingField() string {
	switch {
	case strings.TrimSpace(in.Customer) == "":
		return "customer"
	case strings.TrimSpace(in.BillingType) == "":
		return "billingType"
	case strings.TrimSpace(in.DueDate) == "":
		return "dueDate"
	case in.Value == 0:
		return "value"
	}
	return ""
}

func (s *PaymentService) CreateCharge(ctx context.Context, in ChargeInput) (*ChargeResult, error) {
	if field := in.missingField(); field != "" {
		return nil, &ValidationError{Fields: []string{field}}
	}

	valid := false
	for _, t := range validBillingTypes {
		if in.BillingType == t {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrBillingTypeInvalid
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, storeErr(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return nil, storeErr(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment gateway: unexpected status %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("payment gateway: %w", err)
	}

	result := &ChargeResult{Raw: raw}
	if url, ok := raw["invoiceUrl"].(string); ok {
		result.InvoiceURL = url
	}
	return result, nil
}
