package config

const (
	EnvMongoURI          = "MONGO_URL"
	EnvMongoDatabaseName = "DB_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret   = "JWT_SECRET"
	EnvTokenExpiry = "TOKEN_EXPIRY"

	EnvRazorpayKeyID     = "RAZORPAY_KEY_ID"
	EnvRazorpayKeySecret = "RAZORPAY_KEY_SECRET"
	EnvRazorpayBaseURL   = "RAZORPAY_BASE_URL"

	EnvOpeningHour = "OPENING_HOUR"
	EnvClosingHour = "CLOSING_HOUR"

	EnvOtpTTL            = "OTP_TTL"
	EnvOtpSendLimit      = "OTP_SEND_LIMIT"
	EnvOtpSendWindow     = "OTP_SEND_WINDOW"
	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaEventsTopic  = "KAFKA_EVENTS_TOPIC"
	EnvRequestTimeout    = "REQUEST_TIMEOUT"
	EnvMaxRequestSize    = "MAX_REQUEST_SIZE"
	EnvReadTimeout       = "READ_TIMEOUT"
	EnvWriteTimeout      = "WRITE_TIMEOUT"
	EnvIdleTimeout       = "IDLE_TIMEOUT"
	EnvShutdownTimeout   = "SHUTDOWN_TIMEOUT"
	EnvMongoReadTimeout  = "MONGO_READ_TIMEOUT"
	EnvMongoWriteTimeout = "MONGO_WRITE_TIMEOUT"
)
