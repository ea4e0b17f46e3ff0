package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SponsorshipStatus represents the lifecycle status of a sponsorship
type SponsorshipStatus string

const (
	SponsorshipStatusPending   SponsorshipStatus = "pending"
	SponsorshipStatusApproved  SponsorshipStatus = "approved"
	SponsorshipStatusRejected  SponsorshipStatus = "rejected"
	SponsorshipStatusCompleted SponsorshipStatus = "completed"
	SponsorshipStatusFailed    SponsorshipStatus = "failed"
)

// DistributionType indicates how a sponsorship's totes are handed out
type DistributionType string

const (
	DistributionTypeOnline   DistributionType = "online"
	DistributionTypePhysical DistributionType = "physical"
)

// Sponsorship represents an organization's funding commitment to a cause,
// denominated in a quantity of totes. Only approved sponsorships contribute
// to a cause's currentAmount and tote capacity.
type Sponsorship struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CauseID              primitive.ObjectID `bson:"cause" json:"cause"`
	OrganizationName     string             `bson:"organizationName" json:"organizationName"`
	ContactEmail         string             `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ToteQuantity         int                `bson:"toteQuantity" json:"toteQuantity"`
	UnitPrice            float64            `bson:"unitPrice" json:"unitPrice"`
	TotalAmount          float64            `bson:"totalAmount" json:"totalAmount"`
	Status               SponsorshipStatus  `bson:"status" json:"status"`
	DistributionType     DistributionType   `bson:"distributionType" json:"distributionType"`
	DistributionPoints   []string           `bson:"distributionPoints,omitempty" json:"distributionPoints,omitempty"`
	PhysicalDistribution primitive.ObjectID `bson:"physicalDistribution,omitempty" json:"physicalDistribution,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ApprovedTotals holds the aggregated funding of a cause's approved
// sponsorships: the money sum and the tote capacity.
type ApprovedTotals struct {
	TotalAmount  float64 `bson:"totalAmount"`
	ToteQuantity int     `bson:"toteQuantity"`
}
