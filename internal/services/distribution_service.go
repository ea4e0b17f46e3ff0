package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/sshusain313/causeconnect-sub000/internal/apperrors"
	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/repositories"
)

// AllocationInput is one requested location allocation on create/update
type AllocationInput struct {
	LocationID primitive.ObjectID `json:"location" binding:"required"`
	Quantity   int                `json:"quantity" binding:"required"`
	Notes      string             `json:"notes,omitempty"`
}

// CreateDistributionInput is the payload for creating a distribution
type CreateDistributionInput struct {
	SponsorshipID   primitive.ObjectID `json:"sponsorshipId" binding:"required"`
	ContactName     string             `json:"contactName" binding:"required"`
	ContactPhone    string             `json:"contactPhone,omitempty"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
	ShippingCity    string             `json:"shippingCity,omitempty"`
	ShippingState   string             `json:"shippingState,omitempty"`
	ShippingZipCode string             `json:"shippingZipCode,omitempty"`
	Allocations     []AllocationInput  `json:"distributionLocations" binding:"required"`
}

// UpdateDistributionInput is the payload for updating a distribution. A nil
// Allocations slice leaves the location list untouched.
type UpdateDistributionInput struct {
	ContactName     string            `json:"contactName,omitempty"`
	ContactPhone    string            `json:"contactPhone,omitempty"`
	ShippingAddress string            `json:"shippingAddress,omitempty"`
	ShippingCity    string            `json:"shippingCity,omitempty"`
	ShippingState   string            `json:"shippingState,omitempty"`
	ShippingZipCode string            `json:"shippingZipCode,omitempty"`
	Allocations     []AllocationInput `json:"distributionLocations,omitempty"`
}

// DistributionService is the allocator: it splits a sponsorship's tote
// quantity across physical locations and keeps each location's running
// totesCount in step with the allocations that reference it.
//
// Create and update adjust location counters with sequential per-location
// increments; each increment is atomic but the set is not, so a mid-call
// failure can leave counters ahead of or behind the allocations. Delete is
// the one all-or-nothing path, run inside a storage transaction.
// LocationService.ReconcileTotes rebuilds a drifted counter from source rows.
type DistributionService struct {
	distributionRepo repositories.DistributionRepository
	sponsorshipRepo  repositories.SponsorshipRepository
	locationRepo     repositories.LocationRepository
	tx               repositories.TransactionRunner
}

// NewDistributionService creates a new DistributionService
func NewDistributionService(
	distributionRepo repositories.DistributionRepository,
	sponsorshipRepo repositories.SponsorshipRepository,
	locationRepo repositories.LocationRepository,
	tx repositories.TransactionRunner,
) *DistributionService {
	return &DistributionService{
		distributionRepo: distributionRepo,
		sponsorshipRepo:  sponsorshipRepo,
		locationRepo:     locationRepo,
		tx:               tx,
	}
}

// validateAllocations checks quantity conservation against the sponsorship's
// toteQuantity and that every referenced location resolves
func (s *DistributionService) validateAllocations(ctx context.Context, allocations []AllocationInput, toteQuantity int) error {
	if len(allocations) == 0 {
		return apperrors.Validation("at least one distribution location is required")
	}

	total := 0
	ids := make([]primitive.ObjectID, 0, len(allocations))
	for _, a := range allocations {
		if a.Quantity <= 0 {
			return apperrors.Validation("allocation quantity must be positive for location %s", a.LocationID.Hex())
		}
		total += a.Quantity
		ids = append(ids, a.LocationID)
	}

	if total != toteQuantity {
		return apperrors.Validation(
			"allocated quantity %d does not match sponsorship tote quantity %d", total, toteQuantity)
	}

	found, err := s.locationRepo.FindByIDs(ctx, ids)
	if err != nil {
		return apperrors.Server("failed to resolve locations", err)
	}
	if len(found) != len(uniqueIDs(ids)) {
		known := make(map[primitive.ObjectID]bool, len(found))
		for _, loc := range found {
			known[loc.ID] = true
		}
		var missing []string
		for _, id := range ids {
			if !known[id] {
				missing = append(missing, id.Hex())
			}
		}
		return apperrors.Validation("unknown distribution locations: %s", strings.Join(missing, ", "))
	}
	return nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// CreateDistribution persists the fulfillment plan for a sponsorship's
// totes: every entry starts pending, the sponsorship gains the
// back-reference and becomes physical, and each location's counter grows by
// its allocated quantity.
func (s *DistributionService) CreateDistribution(ctx context.Context, input *CreateDistributionInput) (*models.PhysicalDistribution, error) {
	sponsorship, err := s.sponsorshipRepo.FindByID(ctx, input.SponsorshipID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("sponsorship %s not found", input.SponsorshipID.Hex())
		}
		return nil, apperrors.Server("failed to load sponsorship", err)
	}
	if !sponsorship.PhysicalDistribution.IsZero() {
		return nil, apperrors.Validation("sponsorship %s already has a physical distribution", sponsorship.ID.Hex())
	}

	if err := s.validateAllocations(ctx, input.Allocations, sponsorship.ToteQuantity); err != nil {
		return nil, err
	}

	entries := make([]models.LocationAllocation, 0, len(input.Allocations))
	for _, a := range input.Allocations {
		entries = append(entries, models.LocationAllocation{
			LocationID: a.LocationID,
			Quantity:   a.Quantity,
			Status:     models.AllocationStatusPending,
			Notes:      a.Notes,
		})
	}

	distribution := &models.PhysicalDistribution{
		SponsorshipID:         sponsorship.ID,
		ContactName:           input.ContactName,
		ContactPhone:          input.ContactPhone,
		ShippingAddress:       input.ShippingAddress,
		ShippingCity:          input.ShippingCity,
		ShippingState:         input.ShippingState,
		ShippingZipCode:       input.ShippingZipCode,
		DistributionLocations: entries,
		Status:                models.AllocationStatusPending,
	}
	if err := s.distributionRepo.Create(ctx, distribution); err != nil {
		return nil, apperrors.Server("failed to create distribution", err)
	}

	if err := s.sponsorshipRepo.SetPhysicalDistribution(ctx, sponsorship.ID, distribution.ID); err != nil {
		return nil, apperrors.Server("failed to link distribution to sponsorship", err)
	}

	for _, entry := range entries {
		if err := s.locationRepo.IncrementTotes(ctx, entry.LocationID, entry.Quantity); err != nil {
			return nil, apperrors.Server("failed to update location tote count", err)
		}
	}

	slog.Info("distribution created",
		"distributionId", distribution.ID.Hex(),
		"sponsorshipId", sponsorship.ID.Hex(),
		"locations", len(entries))
	return distribution, nil
}

// GetDistribution retrieves a distribution by ID
func (s *DistributionService) GetDistribution(ctx context.Context, id primitive.ObjectID) (*models.PhysicalDistribution, error) {
	distribution, err := s.distributionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("distribution %s not found", id.Hex())
		}
		return nil, apperrors.Server("failed to load distribution", err)
	}
	return distribution, nil
}

// GetDistributions lists all distributions
func (s *DistributionService) GetDistributions(ctx context.Context) ([]*models.PhysicalDistribution, error) {
	distributions, err := s.distributionRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Server("failed to list distributions", err)
	}
	return distributions, nil
}

// GetDistributionBySponsorship retrieves the distribution backing a sponsorship
func (s *DistributionService) GetDistributionBySponsorship(ctx context.Context, sponsorshipID primitive.ObjectID) (*models.PhysicalDistribution, error) {
	distribution, err := s.distributionRepo.FindBySponsorship(ctx, sponsorshipID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("no distribution for sponsorship %s", sponsorshipID.Hex())
		}
		return nil, apperrors.Server("failed to load distribution", err)
	}
	return distribution, nil
}

// UpdateDistribution updates shipping fields and, when a new location list is
// supplied, re-validates conservation against the sponsorship's toteQuantity
// and replays the counters: every old allocation is decremented, every new
// one incremented. A full decrement-then-increment pass, not a diff, so the
// result is the same whichever locations were added, removed or resized.
func (s *DistributionService) UpdateDistribution(ctx context.Context, id primitive.ObjectID, input *UpdateDistributionInput) (*models.PhysicalDistribution, error) {
	distribution, err := s.GetDistribution(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ContactName != "" {
		distribution.ContactName = input.ContactName
	}
	if input.ContactPhone != "" {
		distribution.ContactPhone = input.ContactPhone
	}
	if input.ShippingAddress != "" {
		distribution.ShippingAddress = input.ShippingAddress
	}
	if input.ShippingCity != "" {
		distribution.ShippingCity = input.ShippingCity
	}
	if input.ShippingState != "" {
		distribution.ShippingState = input.ShippingState
	}
	if input.ShippingZipCode != "" {
		distribution.ShippingZipCode = input.ShippingZipCode
	}

	oldEntries := distribution.DistributionLocations
	if input.Allocations != nil {
		sponsorship, err := s.sponsorshipRepo.FindByID(ctx, distribution.SponsorshipID)
		if err != nil {
			return nil, apperrors.Server("failed to load sponsorship", err)
		}
		if err := s.validateAllocations(ctx, input.Allocations, sponsorship.ToteQuantity); err != nil {
			return nil, err
		}

		entries := make([]models.LocationAllocation, 0, len(input.Allocations))
		for _, a := range input.Allocations {
			entries = append(entries, models.LocationAllocation{
				LocationID: a.LocationID,
				Quantity:   a.Quantity,
				Status:     models.AllocationStatusPending,
				Notes:      a.Notes,
			})
		}
		distribution.DistributionLocations = entries
	}

	if err := s.distributionRepo.Update(ctx, distribution); err != nil {
		return nil, apperrors.Server("failed to update distribution", err)
	}

	if input.Allocations != nil {
		for _, entry := range oldEntries {
			if err := s.locationRepo.IncrementTotes(ctx, entry.LocationID, -entry.Quantity); err != nil {
				return nil, apperrors.Server("failed to release location tote count", err)
			}
		}
		for _, entry := range distribution.DistributionLocations {
			if err := s.locationRepo.IncrementTotes(ctx, entry.LocationID, entry.Quantity); err != nil {
				return nil, apperrors.Server("failed to update location tote count", err)
			}
		}
	}

	return distribution, nil
}

// UpdateLocationStatus mutates one location entry's status, notes and
// distributed date, then recomputes the parent status: all entries completed
// makes the parent completed, any in_progress makes it in_progress, anything
// else leaves it unchanged. The parent can therefore stay at a stale value
// if entries revert from in_progress toward pending; that is documented
// behavior.
func (s *DistributionService) UpdateLocationStatus(
	ctx context.Context,
	distributionID, locationID primitive.ObjectID,
	status models.AllocationStatus,
	notes string,
	distributedDate *time.Time,
) (*models.PhysicalDistribution, error) {
	if !models.ValidAllocationStatus(status) {
		return nil, apperrors.Validation("unknown location status %q", status)
	}

	distribution, err := s.GetDistribution(ctx, distributionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range distribution.DistributionLocations {
		entry := &distribution.DistributionLocations[i]
		if entry.LocationID != locationID {
			continue
		}
		entry.Status = status
		if notes != "" {
			entry.Notes = notes
		}
		if distributedDate != nil {
			entry.DistributedDate = *distributedDate
		}
		found = true
		break
	}
	if !found {
		return nil, apperrors.NotFound("location %s is not part of distribution %s",
			locationID.Hex(), distributionID.Hex())
	}

	allCompleted := true
	anyInProgress := false
	for _, entry := range distribution.DistributionLocations {
		if entry.Status != models.AllocationStatusCompleted {
			allCompleted = false
		}
		if entry.Status == models.AllocationStatusInProgress {
			anyInProgress = true
		}
	}
	if allCompleted {
		distribution.Status = models.AllocationStatusCompleted
	} else if anyInProgress {
		distribution.Status = models.AllocationStatusInProgress
	}

	if err := s.distributionRepo.Update(ctx, distribution); err != nil {
		return nil, apperrors.Server("failed to update distribution", err)
	}
	return distribution, nil
}

// DeleteDistribution removes a distribution inside a single transaction:
// every location counter is released, the sponsorship back-reference is
// cleared and the document deleted, or none of it happens.
func (s *DistributionService) DeleteDistribution(ctx context.Context, id primitive.ObjectID) error {
	distribution, err := s.GetDistribution(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, entry := range distribution.DistributionLocations {
			if err := s.locationRepo.IncrementTotes(txCtx, entry.LocationID, -entry.Quantity); err != nil {
				return err
			}
		}
		if err := s.sponsorshipRepo.ClearPhysicalDistribution(txCtx, distribution.SponsorshipID); err != nil {
			return err
		}
		return s.distributionRepo.Delete(txCtx, id)
	})
	if err != nil {
		return apperrors.Server("failed to delete distribution", err)
	}

	slog.Info("distribution deleted", "distributionId", id.Hex())
	return nil
}
