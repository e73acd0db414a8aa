package http_server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/abrar71/swaggerfilesv2" // swagger embed files
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"paintingauction/internal/auth"
	"paintingauction/internal/http/artisthandler"
	"paintingauction/internal/http/auctionhandler"
	"paintingauction/internal/http/bidhandler"
	"paintingauction/internal/http/middleware"
	"paintingauction/internal/http/paintinghandler"
	"paintingauction/internal/http/userhandler"
	"paintingauction/internal/services/artist"
	"paintingauction/internal/services/auction"
	"paintingauction/internal/services/bidding"
	"paintingauction/internal/services/painting"
	"paintingauction/internal/services/user"
)

// Services bundles what the REST API serves.
type Services struct {
	Auctions  auction.IAuctionService
	Paintings painting.IPaintingService
	Artists   artist.IArtistService
	Bids      bidding.IBidService
	Users     user.IUserService
}

type httpServer struct {
	listenPort     uint16
	allowedOrigins []string
	srv            http.Server
	ln             net.Listener
	services       Services
	verifier       middleware.TokenVerifier
	wsHandler      gin.HandlerFunc
}

func NewHttpServer(listenPort uint16, allowedOrigins []string, verifier middleware.TokenVerifier,
	wsHandler gin.HandlerFunc, services Services) *httpServer {
	return &httpServer{
		listenPort:     listenPort,
		allowedOrigins: allowedOrigins,
		services:       services,
		verifier:       verifier,
		wsHandler:      wsHandler,
	}
}

// Handler builds the routed engine wrapped in CORS.
func (h *httpServer) Handler() http.Handler {
	routerEngine := gin.New()

	// Swagger UI and API specs
	routerEngine.StaticFS("/swagger-apis", http.FS(swaggerfilesv2.FS))
	routerEngine.Static("/api-specs", "api_specs")

	routerEngine.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	routerEngine.Use(ginzap.RecoveryWithZap(zap.L(), true))

	api := routerEngine.Group("/api")

	// websocket endpoint
	if h.wsHandler != nil {
		api.GET("/ws", h.wsHandler)
	}

	authed := api.Group("", middleware.Authenticate(h.verifier))
	viewer := authed.Group("", middleware.RequireRoles(auth.RoleAdmin, auth.RoleBidder))
	admin := authed.Group("", middleware.RequireRoles(auth.RoleAdmin))

	userhandler.New(h.services.Users).Register(api, authed, admin)
	artisthandler.New(h.services.Artists).Register(viewer, admin)
	paintinghandler.New(h.services.Paintings).Register(viewer, admin)
	auctionhandler.New(h.services.Auctions).Register(viewer, admin)
	bidhandler.New(h.services.Bids).Register(viewer, admin)

	return cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})(routerEngine)
}

func (h *httpServer) Start() error {
	var err error
	listenAddr := fmt.Sprintf(":%d", h.listenPort)
	h.ln, err = net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	h.srv = http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("http_server_listening", zap.String("addr", listenAddr))
	err = h.srv.Serve(h.ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Dispose gracefully shuts the HTTP server down.
// It waits up to 10 s for in-flight requests to finish.
func (h *httpServer) Dispose() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.srv.Shutdown(ctx); err != nil {
		zap.L().Error("http_dispose", zap.Error(err))
		return err
	}
	return nil
}
