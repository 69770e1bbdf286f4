package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Prasi710/Turffy/pkg/client"
	"github.com/Prasi710/Turffy/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration
	MongoReadTimeout  time.Duration
	MongoWriteTimeout time.Duration

	Port string

	JWTSecret   string
	TokenExpiry time.Duration

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string

	OpeningHour int
	ClosingHour int

	OtpTTL        time.Duration
	OtpSendLimit  int
	OtpSendWindow time.Duration

	KafkaBrokers     []string
	KafkaEventsTopic string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		MongoReadTimeout:  getEnvDuration(EnvMongoReadTimeout, DefaultMongoReadTimeout),
		MongoWriteTimeout: getEnvDuration(EnvMongoWriteTimeout, DefaultMongoWriteTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		JWTSecret:   getEnvStr(EnvJWTSecret, ""),
		TokenExpiry: getEnvDuration(EnvTokenExpiry, DefaultTokenExpiry),

		RazorpayKeyID:     getEnvStr(EnvRazorpayKeyID, ""),
		RazorpayKeySecret: getEnvStr(EnvRazorpayKeySecret, ""),
		RazorpayBaseURL:   getEnvStr(EnvRazorpayBaseURL, DefaultRazorpayBaseURL),

		OpeningHour: getEnvNum(EnvOpeningHour, DefaultOpeningHour),
		ClosingHour: getEnvNum(EnvClosingHour, DefaultClosingHour),

		OtpTTL:        getEnvDuration(EnvOtpTTL, DefaultOtpTTL),
		OtpSendLimit:  getEnvNum(EnvOtpSendLimit, DefaultOtpSendLimit),
		OtpSendWindow: getEnvDuration(EnvOtpSendWindow, DefaultOtpSendWindow),

		KafkaBrokers:     getEnvList(EnvKafkaBrokers),
		KafkaEventsTopic: getEnvStr(EnvKafkaEventsTopic, "turffy.reservations"),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errs = append(errs, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errs = append(errs, "MongoDatabaseName cannot be empty")
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, "JWTSecret cannot be empty")
	}
	if cfg.TokenExpiry <= 0 {
		errs = append(errs, fmt.Sprintf("TokenExpiry must be positive, got: %s", cfg.TokenExpiry))
	}

	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		errs = append(errs, "RazorpayKeyID and RazorpayKeySecret must be set")
	}

	if cfg.OpeningHour < 0 || cfg.OpeningHour > 23 {
		errs = append(errs, fmt.Sprintf("OpeningHour must be between 0 and 23, got: %d", cfg.OpeningHour))
	}
	if cfg.ClosingHour < 1 || cfg.ClosingHour > 24 {
		errs = append(errs, fmt.Sprintf("ClosingHour must be between 1 and 24, got: %d", cfg.ClosingHour))
	}
	if cfg.ClosingHour <= cfg.OpeningHour {
		errs = append(errs, fmt.Sprintf("ClosingHour (%d) must be after OpeningHour (%d)", cfg.ClosingHour, cfg.OpeningHour))
	}

	for name, d := range map[string]time.Duration{
		"MongoConnTimeout":  cfg.MongoConnTimeout,
		"MongoReadTimeout":  cfg.MongoReadTimeout,
		"MongoWriteTimeout": cfg.MongoWriteTimeout,
		"OtpTTL":            cfg.OtpTTL,
		"OtpSendWindow":     cfg.OtpSendWindow,
		"RequestTimeout":    cfg.RequestTimeout,
		"ReadTimeout":       cfg.ReadTimeout,
		"WriteTimeout":      cfg.WriteTimeout,
		"IdleTimeout":       cfg.IdleTimeout,
		"ShutdownTimeout":   cfg.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive, got: %s", name, d))
		}
	}

	if cfg.OtpSendLimit <= 0 {
		errs = append(errs, fmt.Sprintf("OtpSendLimit must be positive, got: %d", cfg.OtpSendLimit))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if len(errs) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, e := range errs {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"jwt_secret_set", cfg.JWTSecret != "",
		"token_expiry", cfg.TokenExpiry,
		"razorpay_key_set", cfg.RazorpayKeyID != "",
		"razorpay_base_url", cfg.RazorpayBaseURL,
		"opening_hour", cfg.OpeningHour,
		"closing_hour", cfg.ClosingHour,
		"otp_ttl", cfg.OtpTTL,
		"otp_send_limit", cfg.OtpSendLimit,
		"otp_send_window", cfg.OtpSendWindow,
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_events_topic", cfg.KafkaEventsTopic,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
