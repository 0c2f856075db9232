package server

import (
	"car-auction/internal/metrics"
	handler "car-auction/services/bidding/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Options controls optional parts of the router
type Options struct {
	// AllowSeed mounts POST /api/init-data
	AllowSeed bool
	// Recorder receives request metrics. Nil disables them.
	Recorder metrics.Recorder
	// Gatherer backs GET /metrics. Nil leaves the endpoint unmounted.
	Gatherer prometheus.Gatherer
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(service handler.BiddingServiceInterface, opts Options) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	recorder := opts.Recorder
	if recorder == nil {
		recorder = metrics.Nop{}
	}

	router.Use(gin.Recovery())                    // recover from panics
	router.Use(RequestIDMiddleware)               // correlate logs per request
	router.Use(RequestLoggerMiddleware(recorder)) // custom request logging

	biddingHandler := handler.NewBiddingHandler(service)

	api := router.Group("/api")
	{
		api.POST("/register", biddingHandler.RegisterHandler)
		api.POST("/login", biddingHandler.LoginHandler)

		auctions := api.Group("/auctions")
		{
			auctions.GET("", biddingHandler.ListAuctionsHandler)
			auctions.POST("/:id/bid", biddingHandler.PlaceBidHandler)
			auctions.GET("/:id/bids", biddingHandler.GetBidsHandler)
		}

		if opts.AllowSeed {
			api.POST("/init-data", biddingHandler.InitDataHandler)
		}
	}

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(opts.Gatherer)))
	}

	return router
}
