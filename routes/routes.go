package routes

import (
	"deskhive/handlers"
	"deskhive/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the router needs.
type HandlerBundle struct {
	Catalog  *handlers.CatalogHandler
	Checkout *handlers.CheckoutHandler
	Admin    *handlers.AdminHandler
}

// RegisterRoutes registers all endpoints.
func RegisterRoutes(r *gin.Engine, h *HandlerBundle) {
	r.GET("/health", handlers.HealthHandler)

	api := r.Group("/api")
	{
		api.GET("/locations", h.Catalog.ListLocationsHandler)
		api.GET("/pricing-catalog/:locationId", h.Catalog.ListOfferingsHandler)
		api.POST("/create-order", h.Checkout.CreateOrderHandler)
		api.POST("/verify-payment", h.Checkout.VerifyPaymentHandler)

		api.POST("/admin/login", h.Admin.LoginHandler)

		adm := api.Group("/admin", middleware.AdminAuthMiddleware())
		{
			adm.POST("/locations", h.Admin.CreateLocationHandler)
			adm.PUT("/locations/:id", h.Admin.UpdateLocationHandler)
			adm.DELETE("/locations/:id", h.Admin.DeleteLocationHandler)
			adm.POST("/offerings", h.Admin.CreateOfferingHandler)
			adm.PUT("/offerings/:id", h.Admin.UpdateOfferingHandler)
			adm.DELETE("/offerings/:id", h.Admin.DeleteOfferingHandler)
		}
	}
}
