package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/sshusain313/causeconnect-sub000/internal/apperrors"
	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/repositories"
)

// SponsorshipService handles sponsorship CRUD and the admin status
// transitions. Every write that can change a cause's approved set funnels
// through CauseService.RecomputeCurrentAmount.
type SponsorshipService struct {
	sponsorshipRepo repositories.SponsorshipRepository
	causeService    *CauseService
}

// NewSponsorshipService creates a new SponsorshipService
func NewSponsorshipService(sponsorshipRepo repositories.SponsorshipRepository, causeService *CauseService) *SponsorshipService {
	return &SponsorshipService{
		sponsorshipRepo: sponsorshipRepo,
		causeService:    causeService,
	}
}

// CreateSponsorship records a public sponsorship submission in pending
// status. totalAmount defaults to toteQuantity x unitPrice when not supplied.
func (s *SponsorshipService) CreateSponsorship(ctx context.Context, sponsorship *models.Sponsorship) (*models.Sponsorship, error) {
	if sponsorship.CauseID.IsZero() {
		return nil, apperrors.Validation("cause is required")
	}
	if sponsorship.OrganizationName == "" {
		return nil, apperrors.Validation("organizationName is required")
	}
	if sponsorship.ToteQuantity < 1 {
		return nil, apperrors.Validation("toteQuantity must be at least 1")
	}
	switch sponsorship.DistributionType {
	case "":
		sponsorship.DistributionType = models.DistributionTypeOnline
	case models.DistributionTypeOnline, models.DistributionTypePhysical:
	default:
		return nil, apperrors.Validation("unknown distribution type %q", sponsorship.DistributionType)
	}

	if sponsorship.TotalAmount == 0 {
		sponsorship.TotalAmount = float64(sponsorship.ToteQuantity) * sponsorship.UnitPrice
	}
	sponsorship.Status = models.SponsorshipStatusPending
	sponsorship.PhysicalDistribution = primitive.NilObjectID

	if err := s.sponsorshipRepo.Create(ctx, sponsorship); err != nil {
		return nil, apperrors.Server("failed to create sponsorship", err)
	}
	return sponsorship, nil
}

// GetSponsorship retrieves a sponsorship by ID
func (s *SponsorshipService) GetSponsorship(ctx context.Context, id primitive.ObjectID) (*models.Sponsorship, error) {
	sponsorship, err := s.sponsorshipRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("sponsorship %s not found", id.Hex())
		}
		return nil, apperrors.Server("failed to load sponsorship", err)
	}
	return sponsorship, nil
}

// GetSponsorships lists sponsorships, optionally filtered by status
func (s *SponsorshipService) GetSponsorships(ctx context.Context, status models.SponsorshipStatus) ([]*models.Sponsorship, error) {
	sponsorships, err := s.sponsorshipRepo.FindAll(ctx, status)
	if err != nil {
		return nil, apperrors.Server("failed to list sponsorships", err)
	}
	return sponsorships, nil
}

// SetStatus moves a sponsorship to a new status (admin action) and
// recomputes the cause's funding total, since the approved set may have
// changed in either direction.
func (s *SponsorshipService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.SponsorshipStatus) (*models.Sponsorship, error) {
	switch status {
	case models.SponsorshipStatusPending, models.SponsorshipStatusApproved,
		models.SponsorshipStatusRejected, models.SponsorshipStatusCompleted,
		models.SponsorshipStatusFailed:
	default:
		return nil, apperrors.Validation("unknown sponsorship status %q", status)
	}

	sponsorship, err := s.GetSponsorship(ctx, id)
	if err != nil {
		return nil, err
	}

	sponsorship.Status = status
	if err := s.sponsorshipRepo.Update(ctx, sponsorship); err != nil {
		return nil, apperrors.Server("failed to update sponsorship", err)
	}

	if err := s.causeService.RecomputeCurrentAmount(ctx, sponsorship.CauseID); err != nil {
		return nil, err
	}

	slog.Info("sponsorship status updated", "sponsorshipId", id.Hex(), "status", status)
	return sponsorship, nil
}

// UpdateSponsorship updates a sponsorship's funding fields and recomputes
// the cause total, since amount changes on an approved sponsorship move the
// aggregate.
func (s *SponsorshipService) UpdateSponsorship(ctx context.Context, sponsorship *models.Sponsorship) (*models.Sponsorship, error) {
	existing, err := s.GetSponsorship(ctx, sponsorship.ID)
	if err != nil {
		return nil, err
	}
	if sponsorship.ToteQuantity < 1 {
		return nil, apperrors.Validation("toteQuantity must be at least 1")
	}
	if sponsorship.TotalAmount == 0 {
		sponsorship.TotalAmount = float64(sponsorship.ToteQuantity) * sponsorship.UnitPrice
	}

	sponsorship.CauseID = existing.CauseID
	sponsorship.Status = existing.Status
	sponsorship.PhysicalDistribution = existing.PhysicalDistribution
	sponsorship.CreatedAt = existing.CreatedAt
	if err := s.sponsorshipRepo.Update(ctx, sponsorship); err != nil {
		return nil, apperrors.Server("failed to update sponsorship", err)
	}

	if err := s.causeService.RecomputeCurrentAmount(ctx, sponsorship.CauseID); err != nil {
		return nil, err
	}
	return sponsorship, nil
}

// DeleteSponsorship removes a sponsorship and recomputes the cause total
func (s *SponsorshipService) DeleteSponsorship(ctx context.Context, id primitive.ObjectID) error {
	sponsorship, err := s.GetSponsorship(ctx, id)
	if err != nil {
		return err
	}

	if err := s.sponsorshipRepo.Delete(ctx, id); err != nil {
		return apperrors.Server("failed to delete sponsorship", err)
	}
	return s.causeService.RecomputeCurrentAmount(ctx, sponsorship.CauseID)
}
