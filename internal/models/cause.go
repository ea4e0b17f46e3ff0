package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CauseStatus represents the moderation status of a cause
type CauseStatus string

const (
	CauseStatusPending   CauseStatus = "pending"
	CauseStatusApproved  CauseStatus = "approved"
	CauseStatusCompleted CauseStatus = "completed"
	CauseStatusRejected  CauseStatus = "rejected"
)

// Cause represents a fundraising campaign for which totes are distributed.
// CurrentAmount is a cache of the sum of approved sponsorship amounts and is
// only ever written by recomputing from the sponsorships collection. Tote
// capacity is never stored; it is derived on read (see ToteAvailability).
type Cause struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	TargetAmount  float64            `bson:"targetAmount" json:"targetAmount"`
	CurrentAmount float64            `bson:"currentAmount" json:"currentAmount"`
	Status        CauseStatus        `bson:"status" json:"status"`
	CreatorID     primitive.ObjectID `bson:"creator,omitempty" json:"creator,omitempty"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Location      string             `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ToteAvailability is the computed tote summary for a cause. All three fields
// are derived at read time and never persisted.
type ToteAvailability struct {
	TotalTotes     int `json:"totalTotes"`
	ClaimedTotes   int `json:"claimedTotes"`
	AvailableTotes int `json:"availableTotes"`
}

// CauseDetail is the single-cause response body: the cause document, its
// availability summary, and optionally its sponsorships.
type CauseDetail struct {
	Cause
	ToteAvailability
	Sponsorships []*Sponsorship `json:"sponsorships,omitempty"`
}
