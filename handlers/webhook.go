package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studiobook/models"
	"studiobook/services/webhook"
	"studiobook/utils"
)

// SignatureHeader carries the provider's HMAC-SHA256 hex signature of
// the raw request body.
const SignatureHeader = "x-provider-signature"

// WebhookHandler receives payment-provider callbacks.
type WebhookHandler struct {
	Reconciler *webhook.Reconciler
	Logger     *zap.Logger
}

func NewWebhookHandler(reconciler *webhook.Reconciler, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Reconciler: reconciler, Logger: logger}
}

// HandleProviderEvent handles POST /api/webhooks/payment-provider.
// Responds 200 for every processed event, including no-ops, so the
// provider does not retry; 401 and 404 are reserved for signature and
// lookup failures.
func (h *WebhookHandler) HandleProviderEvent(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "could not read request body")
		return
	}

	if err := h.Reconciler.VerifySignature(body, c.GetHeader(SignatureHeader)); err != nil {
		respondServiceError(c, err)
		return
	}

	var event models.ProviderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "malformed event payload")
		return
	}

	if err := h.Reconciler.Process(c.Request.Context(), event); err != nil {
		respondServiceError(c, err)
		return
	}

	h.Logger.Info("webhook processed",
		zap.String("eventType", event.EventType),
		zap.String("externalID", event.Data.ExternalID))
	c.JSON(http.StatusOK, gin.H{"received": true})
}
