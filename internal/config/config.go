package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug" validate:"oneof=debug info warn error"`

	HttpServerPort     uint16   `env:"HTTP_SERVER_PORT"     envDefault:"8085" validate:"min=1000,max=65535"`
	CorsAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000,http://localhost:5173" envSeparator:","`

	PostgresHost         string `env:"POSTGRES_HOST"           envDefault:"localhost"`
	PostgresPort         string `env:"POSTGRES_PORT"           envDefault:"5432"`
	PostgresUser         string `env:"POSTGRES_USER"           envDefault:"auction_user"`
	PostgresPassword     string `env:"POSTGRES_PASSWORD"       envDefault:"auction_password"`
	PostgresDb           string `env:"POSTGRES_DB"             envDefault:"painting_auction"`
	PostgresMaxOpenConns int    `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"50" validate:"min=1"`

	RedisHost     string `env:"REDIS_HOST"     envDefault:"localhost"`
	RedisPort     uint16 `env:"REDIS_PORT"     envDefault:"6379" validate:"min=1000,max=65535"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDb       int    `env:"REDIS_DB"       envDefault:"0" validate:"min=0,max=15"`

	JwtSecret   string        `env:"JWT_SECRET,required" validate:"min=16"`
	JwtIssuer   string        `env:"JWT_ISSUER"   envDefault:"painting-auction"`
	JwtAudience string        `env:"JWT_AUDIENCE" envDefault:"painting-auction-clients"`
	JwtTTL      time.Duration `env:"JWT_TTL"      envDefault:"2h" validate:"gt=0"`
	BcryptCost  int           `env:"BCRYPT_COST"  envDefault:"12" validate:"min=4,max=31"`

	AuctionSweepInterval time.Duration `env:"AUCTION_SWEEP_INTERVAL" envDefault:"30s" validate:"gt=0"`

	AdminSeedEmail    string `env:"ADMIN_SEED_EMAIL"    validate:"omitempty,email"`
	AdminSeedPassword string `env:"ADMIN_SEED_PASSWORD"`
	AdminSeedName     string `env:"ADMIN_SEED_NAME"     envDefault:"Admin"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
