package model

import "time"

// OtpCode is a one-time login code pending verification. Expired codes
// are reaped by a Mongo TTL index on expires_at.
type OtpCode struct {
	Phone     string    `bson:"_id"`
	Code      string    `bson:"code"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
