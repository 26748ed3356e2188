package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"studiobook/handlers"
	"studiobook/utils"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Booking *handlers.BookingHandler
	Studio  *handlers.StudioHandler
	Payment *handlers.PaymentHandler
	Webhook *handlers.WebhookHandler
}

// RegisterRoutes attaches all endpoints to the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	{
		api.POST("/bookings", hb.Booking.CreateBooking)
		api.GET("/bookings/:id", hb.Booking.GetBooking)
		api.POST("/orders", hb.Booking.CreateOrder)
		api.GET("/orders/:id", hb.Booking.GetOrder)

		api.GET("/studios", hb.Studio.ListStudios)
		api.GET("/studios/:id/availability", hb.Booking.DaySchedule)

		api.GET("/payment-link/:id", hb.Payment.GetPaymentLink)
		api.GET("/payment/health", hb.Payment.PaymentHealth)

		api.POST("/webhooks/payment-provider", hb.Webhook.HandleProviderEvent)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}
