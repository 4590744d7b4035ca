package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, API keys), security settings
// - default: Values common across all environments (timezone, timeout, TTLs), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Upstream UpstreamConfig
	Payment  PaymentConfig
	Cache    CacheConfig
	Search   SearchConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"America/Denver"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"2"`
	// dev database used by atlas to compute schema diffs
	DevURL string `envconfig:"DB_DEV_URL" default:"docker://postgres/17/dev"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:4321"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Denver"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-25200"` // -7*60*60
}

type JWTConfig struct {
	Secret          string        `envconfig:"JWT_SECRET" required:"true"`
	SessionDuration time.Duration `envconfig:"JWT_SESSION_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type UpstreamConfig struct {
	DataBaseURL    string        `envconfig:"UPSTREAM_DATA_BASE_URL" default:"https://api.liteapi.travel/v3.0"`
	BookingBaseURL string        `envconfig:"UPSTREAM_BOOKING_BASE_URL" default:"https://book.liteapi.travel/v3.0"`
	APIKey         string        `envconfig:"UPSTREAM_API_KEY" required:"true"`
	Timeout        time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"20s"`
}

type PaymentConfig struct {
	BaseURL   string `envconfig:"PAYMENT_BASE_URL" default:"https://api.stripe.com"`
	SecretKey string `envconfig:"PAYMENT_SECRET_KEY" required:"true"`
}

type CacheConfig struct {
	Backend      string        `envconfig:"CACHE_BACKEND" default:"memory"` // memory | redis
	RedisURL     string        `envconfig:"CACHE_REDIS_URL" default:"redis://localhost:6379/0"`
	HotelsTTL    time.Duration `envconfig:"CACHE_HOTELS_TTL" default:"1h"`
	DetailTTL    time.Duration `envconfig:"CACHE_DETAIL_TTL" default:"24h"`
	RatesTTL     time.Duration `envconfig:"CACHE_RATES_TTL" default:"5m"`
	ReviewsTTL   time.Duration `envconfig:"CACHE_REVIEWS_TTL" default:"6h"`
	PrebookTTL   time.Duration `envconfig:"CACHE_PREBOOK_TTL" default:"1h"`
	KeyPrefix    string        `envconfig:"CACHE_KEY_PREFIX" default:"skistays:"`
	StoreTimeout time.Duration `envconfig:"CACHE_STORE_TIMEOUT" default:"250ms"`
}

type SearchConfig struct {
	DefaultMargin     float64 `envconfig:"SEARCH_DEFAULT_MARGIN" default:"15"`
	HotelLimit        int     `envconfig:"SEARCH_HOTEL_LIMIT" default:"500"`
	DetailConcurrency int     `envconfig:"SEARCH_DETAIL_CONCURRENCY" default:"8"`
	StreamChunkSize   int     `envconfig:"SEARCH_STREAM_CHUNK_SIZE" default:"25"`
	StreamConcurrency int     `envconfig:"SEARCH_STREAM_CONCURRENCY" default:"4"`
	DefaultCurrency   string  `envconfig:"SEARCH_DEFAULT_CURRENCY" default:"USD"`
	GuestNationality  string  `envconfig:"SEARCH_GUEST_NATIONALITY" default:"US"`
	CountryCode       string  `envconfig:"SEARCH_COUNTRY_CODE" default:"US"`
	DefaultCity       string  `envconfig:"SEARCH_DEFAULT_CITY" default:"Park City"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889", // Test port
			ShutdownTimeout: time.Second,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "America/Denver",
			MaxConns: 5,
			MinConns: 1,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Denver",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -25200,
		},
		JWT: JWTConfig{
			Secret:          "test-secret",
			SessionDuration: 7 * 24 * time.Hour,
		},
		Cookie: CookieConfig{
			Secure:   false,
			SameSite: "Lax",
		},
		Upstream: UpstreamConfig{
			DataBaseURL:    "http://127.0.0.1:0",
			BookingBaseURL: "http://127.0.0.1:0",
			APIKey:         "test-api-key",
			Timeout:        2 * time.Second,
		},
		Payment: PaymentConfig{
			BaseURL:   "http://127.0.0.1:0",
			SecretKey: "sk_test",
		},
		Cache: CacheConfig{
			Backend:      "memory",
			HotelsTTL:    time.Hour,
			DetailTTL:    time.Hour,
			RatesTTL:     5 * time.Minute,
			ReviewsTTL:   time.Hour,
			PrebookTTL:   time.Hour,
			KeyPrefix:    "test:",
			StoreTimeout: 100 * time.Millisecond,
		},
		Search: SearchConfig{
			DefaultMargin:     15,
			HotelLimit:        500,
			DetailConcurrency: 4,
			StreamChunkSize:   2,
			StreamConcurrency: 2,
			DefaultCurrency:   "USD",
			GuestNationality:  "US",
			CountryCode:       "US",
			DefaultCity:       "Park City",
		},
	}
}
