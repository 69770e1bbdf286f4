package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "turfhub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultTokenExpiry = 30 * 24 * time.Hour

	DefaultRazorpayBaseURL = "https://api.razorpay.com"

	// Operating window of every turf: first slot starts at 06:00, last
	// slot ends at 23:00.
	DefaultOpeningHour = 6
	DefaultClosingHour = 23

	DefaultOtpTTL        = 5 * time.Minute
	DefaultOtpSendLimit  = 5
	DefaultOtpSendWindow = 15 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second
	DefaultMongoReadTimeout  = 5 * time.Second
	DefaultMongoWriteTimeout = 5 * time.Second
)
