package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studiobook/services/payment"
)

// PaymentHandler exposes payment-link retrieval and the provider
// readiness probe.
type PaymentHandler struct {
	Gateway *payment.Gateway
}

func NewPaymentHandler(gateway *payment.Gateway) *PaymentHandler {
	return &PaymentHandler{Gateway: gateway}
}

// GetPaymentLink handles GET /api/payment-link/:id, used to re-initiate
// a checkout.
func (h *PaymentHandler) GetPaymentLink(c *gin.Context) {
	linkID := c.Param("id")
	url, err := h.Gateway.GetPaymentLink(c.Request.Context(), linkID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentLink": url})
}

// PaymentHealth handles GET /api/payment/health.
func (h *PaymentHandler) PaymentHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"paymentService": payment.CheckPaymentServiceConfig()})
}
