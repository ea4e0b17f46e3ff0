package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/sshusain313/causeconnect-sub000/internal/apperrors"
	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/repositories"
)

// claimTransitions is the claim state machine: pending -> verified|cancelled,
// verified -> shipped|cancelled, shipped -> delivered. delivered and
// cancelled are terminal.
var claimTransitions = map[models.ClaimStatus][]models.ClaimStatus{
	models.ClaimStatusPending:   {models.ClaimStatusVerified, models.ClaimStatusCancelled},
	models.ClaimStatusVerified:  {models.ClaimStatusShipped, models.ClaimStatusCancelled},
	models.ClaimStatusShipped:   {models.ClaimStatusDelivered},
	models.ClaimStatusDelivered: {},
	models.ClaimStatusCancelled: {},
}

func transitionAllowed(from, to models.ClaimStatus) bool {
	for _, next := range claimTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ClaimService governs the claim lifecycle. Status only ever advances
// through UpdateStatus; the public path creates pending claims and the OTP
// flow flips emailVerified separately.
type ClaimService struct {
	claimRepo    repositories.ClaimRepository
	causeService *CauseService
}

// NewClaimService creates a new ClaimService
func NewClaimService(claimRepo repositories.ClaimRepository, causeService *CauseService) *ClaimService {
	return &ClaimService{
		claimRepo:    claimRepo,
		causeService: causeService,
	}
}

// CreateClaim records a public claim submission. The claim starts pending
// and unverified; pending claims reserve no totes.
func (s *ClaimService) CreateClaim(ctx context.Context, claim *models.Claim) (*models.Claim, error) {
	if claim.CauseID.IsZero() {
		return nil, apperrors.Validation("causeId is required")
	}
	if claim.FullName == "" || claim.Email == "" {
		return nil, apperrors.Validation("fullName and email are required")
	}
	if claim.Address == "" || claim.City == "" || claim.State == "" || claim.ZipCode == "" {
		return nil, apperrors.Validation("a complete shipping address is required")
	}

	claim.Status = models.ClaimStatusPending
	claim.EmailVerified = false
	claim.ShippingDate = time.Time{}
	claim.DeliveryDate = time.Time{}
	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, apperrors.Server("failed to create claim", err)
	}
	return claim, nil
}

// GetClaim retrieves a claim by ID
func (s *ClaimService) GetClaim(ctx context.Context, id primitive.ObjectID) (*models.Claim, error) {
	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("claim %s not found", id.Hex())
		}
		return nil, apperrors.Server("failed to load claim", err)
	}
	return claim, nil
}

// GetClaims lists claims, optionally filtered by status
func (s *ClaimService) GetClaims(ctx context.Context, status models.ClaimStatus) ([]*models.Claim, error) {
	if status != "" && !models.ValidClaimStatus(status) {
		return nil, apperrors.Validation("unknown claim status %q", status)
	}
	claims, err := s.claimRepo.FindAll(ctx, status)
	if err != nil {
		return nil, apperrors.Server("failed to list claims", err)
	}
	return claims, nil
}

// GetClaimsByCause lists all claims for a cause
func (s *ClaimService) GetClaimsByCause(ctx context.Context, causeID primitive.ObjectID) ([]*models.Claim, error) {
	claims, err := s.claimRepo.FindByCause(ctx, causeID)
	if err != nil {
		return nil, apperrors.Server("failed to list claims", err)
	}
	return claims, nil
}

// UpdateStatus drives a claim through the state machine (admin action).
// Moving to shipped stamps shippingDate; delivered stamps deliveryDate.
// Approval of a pending claim is refused once the cause's pool is exhausted;
// the check is read-then-write, so the availability floor remains the net.
func (s *ClaimService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ClaimStatus) (*models.Claim, error) {
	if !models.ValidClaimStatus(status) {
		return nil, apperrors.Validation("unknown claim status %q", status)
	}

	claim, err := s.claimRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("claim %s not found", id.Hex())
		}
		return nil, apperrors.Server("failed to load claim", err)
	}

	if !transitionAllowed(claim.Status, status) {
		return nil, apperrors.Validation("cannot move claim from %s to %s", claim.Status, status)
	}

	if claim.Status == models.ClaimStatusPending && status == models.ClaimStatusVerified {
		availability, err := s.causeService.GetCauseAvailability(ctx, claim.CauseID)
		if err != nil {
			return nil, err
		}
		if availability.AvailableTotes <= 0 {
			return nil, apperrors.Validation("no totes available for cause %s", claim.CauseID.Hex())
		}
	}

	now := time.Now()
	switch status {
	case models.ClaimStatusShipped:
		claim.ShippingDate = now
	case models.ClaimStatusDelivered:
		claim.DeliveryDate = now
	}
	claim.Status = status

	if err := s.claimRepo.Update(ctx, claim); err != nil {
		return nil, apperrors.Server("failed to update claim", err)
	}

	slog.Info("claim status updated", "claimId", id.Hex(), "status", status)
	return claim, nil
}
