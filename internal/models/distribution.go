package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationType categorizes a physical pickup point
type LocationType string

const (
	LocationTypeMall         LocationType = "mall"
	LocationTypeMetroStation LocationType = "metro_station"
	LocationTypeAirport      LocationType = "airport"
	LocationTypeSchool       LocationType = "school"
	LocationTypeOther        LocationType = "other"
)

// DistributionLocation is a named physical site where totes are handed out.
// TotesCount is a running counter maintained by distribution writes; it is a
// cache of the sum of live allocations referencing this location and can be
// rebuilt from them (see LocationService.ReconcileTotes).
type DistributionLocation struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name       string             `bson:"name" json:"name"`
	Type       LocationType       `bson:"type" json:"type"`
	Address    string             `bson:"address,omitempty" json:"address,omitempty"`
	City       string             `bson:"city,omitempty" json:"city,omitempty"`
	State      string             `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode    string             `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	TotesCount int                `bson:"totesCount" json:"totesCount"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AllocationStatus represents the fulfillment status of one location entry
type AllocationStatus string

const (
	AllocationStatusPending    AllocationStatus = "pending"
	AllocationStatusInProgress AllocationStatus = "in_progress"
	AllocationStatusCompleted  AllocationStatus = "completed"
	AllocationStatusCancelled  AllocationStatus = "cancelled"
)

// ValidAllocationStatus reports whether the given status is a known state
func ValidAllocationStatus(s AllocationStatus) bool {
	switch s {
	case AllocationStatusPending, AllocationStatusInProgress,
		AllocationStatusCompleted, AllocationStatusCancelled:
		return true
	}
	return false
}

// LocationAllocation is one entry of a distribution's location list,
// embedded in the PhysicalDistribution document
type LocationAllocation struct {
	LocationID      primitive.ObjectID `bson:"location" json:"location"`
	Quantity        int                `bson:"quantity" json:"quantity"`
	Status          AllocationStatus   `bson:"status" json:"status"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	DistributedDate time.Time          `bson:"distributedDate,omitempty" json:"distributedDate,omitempty"`
}

// PhysicalDistribution is the fulfillment plan for exactly one sponsorship's
// totes. Invariant: the allocation quantities always sum to the sponsorship's
// toteQuantity after any successful create or update.
type PhysicalDistribution struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	SponsorshipID         primitive.ObjectID   `bson:"sponsorship" json:"sponsorship"`
	ContactName           string               `bson:"contactName" json:"contactName"`
	ContactPhone          string               `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	ShippingAddress       string               `bson:"shippingAddress" json:"shippingAddress"`
	ShippingCity          string               `bson:"shippingCity,omitempty" json:"shippingCity,omitempty"`
	ShippingState         string               `bson:"shippingState,omitempty" json:"shippingState,omitempty"`
	ShippingZipCode       string               `bson:"shippingZipCode,omitempty" json:"shippingZipCode,omitempty"`
	DistributionLocations []LocationAllocation `bson:"distributionLocations" json:"distributionLocations"`
	Status                AllocationStatus     `bson:"status" json:"status"`
	CreatedAt             time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// AllocatedQuantity returns the sum of quantities across the location list
func (d *PhysicalDistribution) AllocatedQuantity() int {
	total := 0
	for _, a := range d.DistributionLocations {
		total += a.Quantity
	}
	return total
}
