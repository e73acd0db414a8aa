package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"paintingauction/internal/auctionsweep"
	"paintingauction/internal/auth"
	"paintingauction/internal/config"
	"paintingauction/internal/database/db_client"
	"paintingauction/internal/database/migrations"
	"paintingauction/internal/http/http_server"
	"paintingauction/internal/redis/expiry"
	"paintingauction/internal/redis/publisher"
	"paintingauction/internal/redis/redis_client"
	"paintingauction/internal/redis/watcher/auctionwatcher"
	"paintingauction/internal/services/artist"
	"paintingauction/internal/services/auction"
	"paintingauction/internal/services/bidding"
	"paintingauction/internal/services/painting"
	"paintingauction/internal/services/user"
	"paintingauction/internal/ws"
)

var (
	Log, _ = zap.NewDevelopment()
)

// @title						Painting Auction API
// @version					1.0
// @description				Marketplace backend for painting auctions: artists, paintings, auctions and bids.
// @BasePath					/api
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	defer Log.Sync()
	zap.ReplaceGlobals(Log)

	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	var err error
	var cfg *config.Config
	var redisClient *redis.Client

	// 1. Load configuration
	cfg, err = config.LoadConfig()
	if err != nil {
		Log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		Log = Log.WithOptions(zap.IncreaseLevel(lvl))
		zap.ReplaceGlobals(Log)
	}
	Log.Debug("Configuration loaded successfully",
		zap.Uint16("http_port", cfg.HttpServerPort),
		zap.String("postgres_host", cfg.PostgresHost),
		zap.String("redis_host", cfg.RedisHost))

	// 2. Context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// 3. Postgres db client and schema
	pgDb, err := db_client.Open(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDb, cfg.PostgresMaxOpenConns)
	if err != nil {
		Log.Fatal("pg_open", zap.Error(err))
	}
	defer pgDb.Close()

	if err := migrations.Apply(ctx, pgDb); err != nil {
		Log.Fatal("pg_migrate", zap.Error(err))
	}

	// 4. Redis
	redisClient, err = redis_client.NewRedisClient(cfg.RedisHost, int(cfg.RedisPort), cfg.RedisPassword, cfg.RedisDb)
	if err != nil {
		Log.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer redisClient.Close()
	Log.Debug("Redis client created successfully")

	pub := publisher.NewRedisPublisher(redisClient)
	timers := expiry.NewRedisTimers(redisClient)

	// 5. Services
	tokens := auth.NewTokenService(cfg.JwtSecret, cfg.JwtIssuer, cfg.JwtAudience, cfg.JwtTTL)
	hasher := auth.NewHasher(cfg.BcryptCost)

	auctionService := auction.NewAuctionService(pgDb, timers, pub)
	bidService := bidding.NewBidService(pgDb, pub)
	userService := user.NewUserService(pgDb, tokens, hasher)
	services := http_server.Services{
		Auctions:  auctionService,
		Paintings: painting.NewPaintingService(pgDb),
		Artists:   artist.NewArtistService(pgDb),
		Bids:      bidService,
		Users:     userService,
	}

	if created, err := userService.SeedAdmin(ctx, cfg.AdminSeedEmail, cfg.AdminSeedPassword, cfg.AdminSeedName); err != nil {
		Log.Fatal("admin_seed", zap.Error(err))
	} else if created {
		Log.Info("admin_seeded", zap.String("email", cfg.AdminSeedEmail))
	}

	// 6. Background: key-expiry watcher and periodic sweep close ended auctions
	go auctionwatcher.Run(ctx, redisClient, auctionService)
	auctionsweep.Run(ctx, auctionService, cfg.AuctionSweepInterval)

	// 7. WebSockets hub + Redis fan-out
	hub := ws.NewHub()
	wsSrv := ws.NewWsServer(hub, ws.NewRedisFeed(redisClient, hub), auctionService, bidService, cfg.CorsAllowedOrigins)

	// 8. HTTP + WS server
	httpServer := http_server.NewHttpServer(cfg.HttpServerPort, cfg.CorsAllowedOrigins, tokens, wsSrv.Handle, services)
	go func() {
		<-ctx.Done()
		_ = httpServer.Dispose()
	}()
	if err := httpServer.Start(); err != nil {
		Log.Fatal("Failed to start HTTP server", zap.Error(err))
	}
	Log.Info("http_server_stopped")
}
