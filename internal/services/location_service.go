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

// LocationService manages distribution locations (admin surface)
type LocationService struct {
	locationRepo     repositories.LocationRepository
	distributionRepo repositories.DistributionRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(locationRepo repositories.LocationRepository, distributionRepo repositories.DistributionRepository) *LocationService {
	return &LocationService{
		locationRepo:     locationRepo,
		distributionRepo: distributionRepo,
	}
}

// CreateLocation registers a new physical pickup point
func (s *LocationService) CreateLocation(ctx context.Context, location *models.DistributionLocation) (*models.DistributionLocation, error) {
	if location.Name == "" {
		return nil, apperrors.Validation("name is required")
	}
	switch location.Type {
	case models.LocationTypeMall, models.LocationTypeMetroStation,
		models.LocationTypeAirport, models.LocationTypeSchool, models.LocationTypeOther:
	default:
		return nil, apperrors.Validation("unknown location type %q", location.Type)
	}

	location.TotesCount = 0
	location.IsActive = true
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, apperrors.Server("failed to create location", err)
	}
	return location, nil
}

// GetLocation retrieves a location by ID
func (s *LocationService) GetLocation(ctx context.Context, id primitive.ObjectID) (*models.DistributionLocation, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("location %s not found", id.Hex())
		}
		return nil, apperrors.Server("failed to load location", err)
	}
	return location, nil
}

// GetLocations lists locations, optionally only active ones
func (s *LocationService) GetLocations(ctx context.Context, activeOnly bool) ([]*models.DistributionLocation, error) {
	locations, err := s.locationRepo.FindAll(ctx, activeOnly)
	if err != nil {
		return nil, apperrors.Server("failed to list locations", err)
	}
	return locations, nil
}

// UpdateLocation updates a location's descriptive fields. TotesCount is not
// updatable here; it belongs to the allocator and ReconcileTotes.
func (s *LocationService) UpdateLocation(ctx context.Context, location *models.DistributionLocation) (*models.DistributionLocation, error) {
	existing, err := s.GetLocation(ctx, location.ID)
	if err != nil {
		return nil, err
	}

	location.TotesCount = existing.TotesCount
	location.CreatedAt = existing.CreatedAt
	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, apperrors.Server("failed to update location", err)
	}
	return location, nil
}

// ReconcileTotes rebuilds a location's totesCount from the live allocations
// referencing it. The counter is a cache of a derivable quantity; this is
// the self-healing path for drift left behind by interrupted allocator calls.
func (s *LocationService) ReconcileTotes(ctx context.Context, id primitive.ObjectID) (*models.DistributionLocation, error) {
	location, err := s.GetLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	sum, err := s.distributionRepo.SumAllocationsForLocation(ctx, id)
	if err != nil {
		return nil, apperrors.Server("failed to sum allocations", err)
	}

	if sum != location.TotesCount {
		slog.Warn("location tote count drifted, reconciling",
			"locationId", id.Hex(), "stored", location.TotesCount, "derived", sum)
		if err := s.locationRepo.SetTotesCount(ctx, id, sum); err != nil {
			return nil, apperrors.Server("failed to write reconciled count", err)
		}
		location.TotesCount = sum
	}
	return location, nil
}

// DeleteLocation removes a location that no distribution references
func (s *LocationService) DeleteLocation(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetLocation(ctx, id); err != nil {
		return err
	}

	sum, err := s.distributionRepo.SumAllocationsForLocation(ctx, id)
	if err != nil {
		return apperrors.Server("failed to check allocations", err)
	}
	if sum > 0 {
		return apperrors.Validation("location %s still has %d allocated totes", id.Hex(), sum)
	}

	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return apperrors.Server("failed to delete location", err)
	}
	return nil
}
