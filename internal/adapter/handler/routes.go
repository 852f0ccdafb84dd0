package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jessicacaley/oo-ride-share/internal/adapter/websocket"
	"github.com/jessicacaley/oo-ride-share/internal/core/service"
	"go.uber.org/zap"
)

// NewRouter builds the API. The websocket event routes are only mounted when
// hub is non-nil.
func NewRouter(env string, logger *zap.Logger, dispatcher *service.Dispatcher, authSvc *service.AuthService, hub *websocket.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "env": env})
	})

	dispatchHandler := NewDispatchHandler(dispatcher)
	authHandler := NewAuthHandler(authSvc, dispatcher)

	api := r.Group("/api/v1")
	{
		api.POST("/login", authHandler.Login)

		api.GET("/drivers", dispatchHandler.ListDrivers)
		api.GET("/drivers/:id", dispatchHandler.GetDriver)
		api.GET("/passengers", dispatchHandler.ListPassengers)
		api.GET("/passengers/:id", dispatchHandler.GetPassenger)
		api.GET("/trips", dispatchHandler.ListTrips)
		api.GET("/trips/:id", dispatchHandler.GetTrip)

		authed := api.Group("", AuthMiddleware(authSvc))
		authed.POST("/trips", dispatchHandler.RequestTrip)
		authed.POST("/trips/:id/complete", dispatchHandler.CompleteTrip)

		if hub != nil {
			eventsHandler := NewEventsHandler(hub, dispatcher, logger)
			api.GET("/ws/drivers/:id", eventsHandler.DriverEvents)
			authed.GET("/ws/passenger", eventsHandler.PassengerEvents)
		}
	}

	return r
}
