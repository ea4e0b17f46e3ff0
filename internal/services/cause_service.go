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

// CauseService handles cause management, the funding aggregator and the
// availability view composer. currentAmount is only ever written by
// RecomputeCurrentAmount; tote totals are derived fresh on every read.
type CauseService struct {
	causeRepo       repositories.CauseRepository
	sponsorshipRepo repositories.SponsorshipRepository
	claimRepo       repositories.ClaimRepository
}

// NewCauseService creates a new CauseService
func NewCauseService(
	causeRepo repositories.CauseRepository,
	sponsorshipRepo repositories.SponsorshipRepository,
	claimRepo repositories.ClaimRepository,
) *CauseService {
	return &CauseService{
		causeRepo:       causeRepo,
		sponsorshipRepo: sponsorshipRepo,
		claimRepo:       claimRepo,
	}
}

// CreateCause creates a cause in pending status owned by the creator
func (s *CauseService) CreateCause(ctx context.Context, cause *models.Cause, creatorID primitive.ObjectID) (*models.Cause, error) {
	if cause.Title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if cause.TargetAmount <= 0 {
		return nil, apperrors.Validation("targetAmount must be positive")
	}

	cause.Status = models.CauseStatusPending
	cause.CurrentAmount = 0
	cause.CreatorID = creatorID
	if err := s.causeRepo.Create(ctx, cause); err != nil {
		return nil, apperrors.Server("failed to create cause", err)
	}
	return cause, nil
}

// GetCauses lists causes filtered by status and category
func (s *CauseService) GetCauses(ctx context.Context, status models.CauseStatus, category string) ([]*models.Cause, error) {
	causes, err := s.causeRepo.FindAll(ctx, status, category)
	if err != nil {
		return nil, apperrors.Server("failed to list causes", err)
	}
	return causes, nil
}

// GetCauseDetail returns the cause with its computed availability and,
// when includeSponsorships is set, its sponsorships
func (s *CauseService) GetCauseDetail(ctx context.Context, id primitive.ObjectID, includeSponsorships bool) (*models.CauseDetail, error) {
	cause, err := s.causeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("cause %s not found", id.Hex())
		}
		return nil, apperrors.Server("failed to load cause", err)
	}

	availability, err := s.GetCauseAvailability(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.CauseDetail{
		Cause:            *cause,
		ToteAvailability: *availability,
	}
	if includeSponsorships {
		sponsorships, err := s.sponsorshipRepo.FindByCause(ctx, id)
		if err != nil {
			return nil, apperrors.Server("failed to load sponsorships", err)
		}
		detail.Sponsorships = sponsorships
	}
	return detail, nil
}

// GetCauseAvailability composes the tote summary for a cause from its
// approved sponsorships and active claims. Read-only and side-effect free;
// availableTotes is floored at zero even if over-claiming occurred.
func (s *CauseService) GetCauseAvailability(ctx context.Context, causeID primitive.ObjectID) (*models.ToteAvailability, error) {
	totals, err := s.sponsorshipRepo.ApprovedTotals(ctx, causeID)
	if err != nil {
		return nil, apperrors.Server("failed to aggregate sponsorships", err)
	}

	claimed, err := s.claimRepo.CountActiveByCause(ctx, causeID)
	if err != nil {
		return nil, apperrors.Server("failed to count claims", err)
	}

	available := totals.ToteQuantity - int(claimed)
	if available < 0 {
		available = 0
	}
	return &models.ToteAvailability{
		TotalTotes:     totals.ToteQuantity,
		ClaimedTotes:   int(claimed),
		AvailableTotes: available,
	}, nil
}

// RecomputeCurrentAmount re-derives a cause's funding total from its
// approved sponsorships and writes it back. Always recomputes from source
// rows so concurrent or retried writes converge to the correct value.
func (s *CauseService) RecomputeCurrentAmount(ctx context.Context, causeID primitive.ObjectID) error {
	totals, err := s.sponsorshipRepo.ApprovedTotals(ctx, causeID)
	if err != nil {
		return apperrors.Server("failed to aggregate sponsorships", err)
	}

	if err := s.causeRepo.SetCurrentAmount(ctx, causeID, totals.TotalAmount); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("cause %s not found", causeID.Hex())
		}
		return apperrors.Server("failed to update cause amount", err)
	}

	slog.Info("recomputed cause funding", "causeId", causeID.Hex(), "currentAmount", totals.TotalAmount)
	return nil
}

// UpdateCause updates mutable cause fields. currentAmount and status are
// not updatable through this path.
func (s *CauseService) UpdateCause(ctx context.Context, cause *models.Cause) (*models.Cause, error) {
	existing, err := s.causeRepo.FindByID(ctx, cause.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("cause %s not found", cause.ID.Hex())
		}
		return nil, apperrors.Server("failed to load cause", err)
	}

	cause.Status = existing.Status
	cause.CurrentAmount = existing.CurrentAmount
	cause.CreatorID = existing.CreatorID
	cause.CreatedAt = existing.CreatedAt
	if err := s.causeRepo.Update(ctx, cause); err != nil {
		return nil, apperrors.Server("failed to update cause", err)
	}
	return cause, nil
}

// SetStatus moves a cause to a new moderation status (admin action)
func (s *CauseService) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CauseStatus) (*models.Cause, error) {
	switch status {
	case models.CauseStatusPending, models.CauseStatusApproved,
		models.CauseStatusCompleted, models.CauseStatusRejected:
	default:
		return nil, apperrors.Validation("unknown cause status %q", status)
	}

	if err := s.causeRepo.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("cause %s not found", id.Hex())
		}
		return nil, apperrors.Server("failed to update cause status", err)
	}
	cause, err := s.causeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Server("failed to reload cause", err)
	}
	return cause, nil
}

// DeleteCause removes a cause
func (s *CauseService) DeleteCause(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.causeRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFound("cause %s not found", id.Hex())
		}
		return apperrors.Server("failed to load cause", err)
	}
	if err := s.causeRepo.Delete(ctx, id); err != nil {
		return apperrors.Server("failed to delete cause", err)
	}
	return nil
}
