// Package repositories defines the storage interfaces consumed by the
// service layer. MongoDB implementations live in the mongodb subpackage.
package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sshusain313/causeconnect-sub000/internal/models"
)

// UserRepository handles storage operations for users
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CauseRepository handles storage operations for causes
type CauseRepository interface {
	Create(ctx context.Context, cause *models.Cause) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cause, error)
	FindAll(ctx context.Context, status models.CauseStatus, category string) ([]*models.Cause, error)
	Update(ctx context.Context, cause *models.Cause) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.CauseStatus) error
	SetCurrentAmount(ctx context.Context, id primitive.ObjectID, amount float64) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SponsorshipRepository handles storage operations for sponsorships
type SponsorshipRepository interface {
	Create(ctx context.Context, sponsorship *models.Sponsorship) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sponsorship, error)
	FindByCause(ctx context.Context, causeID primitive.ObjectID) ([]*models.Sponsorship, error)
	FindAll(ctx context.Context, status models.SponsorshipStatus) ([]*models.Sponsorship, error)
	Update(ctx context.Context, sponsorship *models.Sponsorship) error
	SetPhysicalDistribution(ctx context.Context, id, distributionID primitive.ObjectID) error
	ClearPhysicalDistribution(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ApprovedTotals aggregates totalAmount and toteQuantity over the cause's
	// approved sponsorships.
	ApprovedTotals(ctx context.Context, causeID primitive.ObjectID) (*models.ApprovedTotals, error)
}

// ClaimRepository handles storage operations for claims
type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error)
	FindByCause(ctx context.Context, causeID primitive.ObjectID) ([]*models.Claim, error)
	FindAll(ctx context.Context, status models.ClaimStatus) ([]*models.Claim, error)
	Update(ctx context.Context, claim *models.Claim) error
	SetEmailVerified(ctx context.Context, email string) error
	// CountActiveByCause counts claims whose status consumes a tote
	// (verified, shipped or delivered).
	CountActiveByCause(ctx context.Context, causeID primitive.ObjectID) (int64, error)
}

// OTPRepository handles storage operations for OTP verification records
type OTPRepository interface {
	Create(ctx context.Context, otp *models.OTPVerification) error
	FindByEmail(ctx context.Context, email string) ([]*models.OTPVerification, error)
	// FindLiveByEmail returns the newest unverified, unexpired record for the
	// email, or nil when none exists.
	FindLiveByEmail(ctx context.Context, email string, now time.Time) (*models.OTPVerification, error)
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
}

// LocationRepository handles storage operations for distribution locations
type LocationRepository interface {
	Create(ctx context.Context, location *models.DistributionLocation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DistributionLocation, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.DistributionLocation, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*models.DistributionLocation, error)
	Update(ctx context.Context, location *models.DistributionLocation) error
	IncrementTotes(ctx context.Context, id primitive.ObjectID, delta int) error
	SetTotesCount(ctx context.Context, id primitive.ObjectID, count int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// DistributionRepository handles storage operations for physical distributions
type DistributionRepository interface {
	Create(ctx context.Context, distribution *models.PhysicalDistribution) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.PhysicalDistribution, error)
	FindBySponsorship(ctx context.Context, sponsorshipID primitive.ObjectID) (*models.PhysicalDistribution, error)
	FindAll(ctx context.Context) ([]*models.PhysicalDistribution, error)
	Update(ctx context.Context, distribution *models.PhysicalDistribution) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// SumAllocationsForLocation sums live allocation quantities referencing
	// the location, for totesCount reconciliation.
	SumAllocationsForLocation(ctx context.Context, locationID primitive.ObjectID) (int, error)
}

// TransactionRunner executes fn atomically when the storage layer supports
// multi-document transactions. fn must perform its reads and writes through
// the context it receives.
type TransactionRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
