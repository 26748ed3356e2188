package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrLinkNotFound is returned when the provider reports no link for an
// id.
var ErrLinkNotFound = errors.New("payment link not found")

// ProviderClient talks to the external payment-link provider's HTTP
// API.
type ProviderClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Logger  *zap.Logger
}

func NewProviderClient(baseURL, apiKey string, logger *zap.Logger) *ProviderClient {
	return &ProviderClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 20 * time.Second},
		Logger:  logger,
	}
}

// CreateLinkRequest describes the payment link to create. Amount is a
// fixed-point decimal string.
type CreateLinkRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	Amount            string `json:"amount"`
	Currency          string `json:"amount_currency"`
	ReturnURL         string `json:"return_url"`
	FailureReturnURL  string `json:"failure_return_url"`
	CustomerFirstName string `json:"first_name"`
	CustomerLastName  string `json:"last_name"`
	CustomerEmail     string `json:"email,omitempty"`
	ExternalReference string `json:"external_reference"`
}

// PaymentLink is the provider's link representation. Raw holds the full
// response body for the metadata snapshot.
type PaymentLink struct {
	ID     string          `json:"id"`
	URL    string          `json:"url"`
	Status string          `json:"status"`
	Raw    json.RawMessage `json:"-"`
}

// CreatePaymentLink creates a new link at the provider.
func (c *ProviderClient) CreatePaymentLink(ctx context.Context, req CreateLinkRequest) (*PaymentLink, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment link request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/payment_links", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build payment link request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		c.Logger.Warn("payment link creation rejected",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", raw))
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var link PaymentLink
	if err := json.Unmarshal(raw, &link); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}
	link.Raw = raw
	return &link, nil
}

// GetPaymentLink fetches the current representation of a link by id,
// used to let a customer retry a failed checkout.
func (c *ProviderClient) GetPaymentLink(ctx context.Context, linkID string) (*PaymentLink, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/payment_links/"+linkID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment link request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrLinkNotFound
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var link PaymentLink
	if err := json.Unmarshal(raw, &link); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}
	link.Raw = raw
	return &link, nil
}

func (c *ProviderClient) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
}
