package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimStatus represents the lifecycle status of a claim
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusVerified  ClaimStatus = "verified"
	ClaimStatusShipped   ClaimStatus = "shipped"
	ClaimStatusDelivered ClaimStatus = "delivered"
	ClaimStatusCancelled ClaimStatus = "cancelled"
)

// ValidClaimStatus reports whether the given status is one of the known states
func ValidClaimStatus(s ClaimStatus) bool {
	switch s {
	case ClaimStatusPending, ClaimStatusVerified, ClaimStatusShipped,
		ClaimStatusDelivered, ClaimStatusCancelled:
		return true
	}
	return false
}

// CountsAgainstAvailability reports whether a claim in this status consumes a
// tote from its cause's pool. Pending and cancelled claims reserve nothing.
func (s ClaimStatus) CountsAgainstAvailability() bool {
	switch s {
	case ClaimStatusVerified, ClaimStatusShipped, ClaimStatusDelivered:
		return true
	}
	return false
}

// ActiveClaimStatuses are the states that count against a cause's tote pool
var ActiveClaimStatuses = []ClaimStatus{
	ClaimStatusVerified,
	ClaimStatusShipped,
	ClaimStatusDelivered,
}

// Claim represents an individual's request for one tote from a cause's pool
type Claim struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CauseID       primitive.ObjectID `bson:"causeId" json:"causeId"`
	CauseTitle    string             `bson:"causeTitle" json:"causeTitle"`
	FullName      string             `bson:"fullName" json:"fullName"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Purpose       string             `bson:"purpose,omitempty" json:"purpose,omitempty"`
	Address       string             `bson:"address" json:"address"`
	City          string             `bson:"city" json:"city"`
	State         string             `bson:"state" json:"state"`
	ZipCode       string             `bson:"zipCode" json:"zipCode"`
	Status        ClaimStatus        `bson:"status" json:"status"`
	EmailVerified bool               `bson:"emailVerified" json:"emailVerified"`
	ShippingDate  time.Time          `bson:"shippingDate,omitempty" json:"shippingDate,omitempty"`
	DeliveryDate  time.Time          `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
