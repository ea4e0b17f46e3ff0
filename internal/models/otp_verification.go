package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTPType distinguishes email codes from the deprecated phone codes
type OTPType string

const (
	OTPTypeEmail OTPType = "email"
	OTPTypePhone OTPType = "phone" // deprecated, kept for old records
)

// OTPVerification is an ephemeral proof of email ownership. Only the SHA-256
// hash of the code is stored; records are purged by a TTL index 10 minutes
// after creation regardless of outcome.
type OTPVerification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	OTPHash   string             `bson:"otp" json:"-"`
	Type      OTPType            `bson:"type" json:"type"`
	Verified  bool               `bson:"verified" json:"verified"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the record's code can no longer be redeemed
func (o *OTPVerification) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
