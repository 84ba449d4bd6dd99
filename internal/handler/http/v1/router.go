package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check доступен без ключа
	api.GET("/system/health", h.healthCheck)

	secured := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	incidents := secured.Group("/incidents")
	{
		incidents.POST("", h.reportIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.GET("/:id/offers", h.listOffers)
		incidents.GET("/:id/locations", h.latestLocations)
		incidents.POST("/:id/stream-token", h.issueStreamToken)
		incidents.POST("/:id/resolve", h.resolveIncident)
		incidents.POST("/:id/cancel", h.cancelIncident)
		incidents.POST("/:id/expire", h.expireIncident)

		// Действия исполнителей по отдельной услуге
		services := incidents.Group("/:id/services/:kind")
		services.POST("/accept", h.acceptOffer)
		services.POST("/decline", h.declineOffer)
		services.POST("/assign", h.assignManually)
		services.POST("/arrive", h.markArrived)
	}

	responders := secured.Group("/responders")
	{
		responders.POST("", h.registerResponder)
		responders.GET("/nearby", h.nearbyResponders)
		responders.PUT("/:id/location", h.updateResponderLocation)
		responders.PUT("/:id/availability", h.updateResponderAvailability)
		responders.PUT("/:id/beds", h.updateResponderBeds)
	}
}
