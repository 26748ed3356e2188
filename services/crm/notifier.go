package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"studiobook/models"
)

// Notifier pushes new leads to the CRM. Calls are best-effort: the
// orchestrator logs and swallows failures after commit.
type Notifier interface {
	PushReservation(ctx context.Context, reservation *models.Reservation, contact *models.Contact) error
	PushOrder(ctx context.Context, order *models.Order, contact *models.Contact) error
}

// HTTPNotifier posts lead entries to a CRM webhook endpoint.
type HTTPNotifier struct {
	Endpoint string
	Token    string
	Client   *http.Client
	Logger   *zap.Logger
}

func NewHTTPNotifier(endpoint, token string, logger *zap.Logger) *HTTPNotifier {
	return &HTTPNotifier{
		Endpoint: endpoint,
		Token:    token,
		Client:   &http.Client{Timeout: 10 * time.Second},
		Logger:   logger,
	}
}

func (n *HTTPNotifier) PushReservation(ctx context.Context, reservation *models.Reservation, contact *models.Contact) error {
	return n.push(ctx, map[string]interface{}{
		"kind":        "booking",
		"referenceId": reservation.ID,
		"fullName":    contact.FullName,
		"email":       contact.Email,
		"phone":       contact.PhoneNumber,
		"startTime":   reservation.StartTime,
		"endTime":     reservation.EndTime,
		"amount":      reservation.FinalAmount,
		"currency":    reservation.Currency,
	})
}

func (n *HTTPNotifier) PushOrder(ctx context.Context, order *models.Order, contact *models.Contact) error {
	return n.push(ctx, map[string]interface{}{
		"kind":        "order",
		"referenceId": order.ID,
		"fullName":    contact.FullName,
		"email":       contact.Email,
		"phone":       contact.PhoneNumber,
		"amount":      order.FinalAmount,
		"currency":    order.Currency,
	})
}

func (n *HTTPNotifier) push(ctx context.Context, entry map[string]interface{}) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal crm entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build crm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.Token != "" {
		req.Header.Set("Authorization", "Bearer "+n.Token)
	}

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("crm push failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("crm push returned status %d", resp.StatusCode)
	}
	return nil
}

// NoopNotifier is used when no CRM endpoint is configured.
type NoopNotifier struct{}

func (NoopNotifier) PushReservation(context.Context, *models.Reservation, *models.Contact) error {
	return nil
}

func (NoopNotifier) PushOrder(context.Context, *models.Order, *models.Contact) error {
	return nil
}
