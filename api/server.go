package api

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vantran/live-auction-BE/internal/auction"
	"github.com/vantran/live-auction-BE/internal/clock"
	"github.com/vantran/live-auction-BE/internal/event"
	"github.com/vantran/live-auction-BE/internal/monitoring"
	"github.com/vantran/live-auction-BE/internal/util"
)

type Server struct {
	router     *gin.Engine
	store      *auction.Store
	serializer *auction.Serializer
	controller *auction.Controller
	hub        *event.Hub
	authorizer Authorizer
	config     *util.Config
	clock      clock.Clock
	upgrader   websocket.Upgrader
}

// NewServer creates a new HTTP server and sets up routing.
func NewServer(store *auction.Store, serializer *auction.Serializer, controller *auction.Controller, hub *event.Hub, authorizer Authorizer, config *util.Config, clk clock.Clock) *Server {
	server := &Server{
		store:      store,
		serializer: serializer,
		controller: controller,
		hub:        hub,
		authorizer: authorizer,
		config:     config,
		clock:      clk,
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			return slices.Contains(config.AllowedOrigins, origin)
		},
	}

	server.setupRouter()
	return server
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     server.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(monitoring.GinMiddleware())

	router.GET("/items", server.listItems)
	router.GET("/items/:id/bids", server.getUserBids)
	router.GET("/server-time", server.serverTime)
	router.GET("/ws", server.serveWS)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminGroup := router.Group("/admin")
	adminGroup.Use(adminAuthMiddleware(server.authorizer))
	{
		adminGroup.POST("/items", server.createItem)
		adminGroup.POST("/items/:id/start", server.startAuction)
	}

	server.router = router
}

// Start runs the HTTP server on the given address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}
