package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sshusain313/causeconnect-sub000/internal/apperrors"
	"github.com/sshusain313/causeconnect-sub000/internal/models"
)

type sponsorshipFixture struct {
	*causeFixture
	service *SponsorshipService
}

func newSponsorshipFixture() *sponsorshipFixture {
	cf := newCauseFixture()
	return &sponsorshipFixture{
		causeFixture: cf,
		service:      NewSponsorshipService(cf.sponsorships, cf.causeFixture.service),
	}
}

func (f *sponsorshipFixture) currentAmount(t *testing.T, causeID primitive.ObjectID) float64 {
	t.Helper()
	cause, err := f.causes.FindByID(context.Background(), causeID)
	require.NoError(t, err)
	return cause.CurrentAmount
}

func TestCreateSponsorship(t *testing.T) {
	f := newSponsorshipFixture()
	cause := f.addCause(t, models.CauseStatusApproved)

	sponsorship, err := f.service.CreateSponsorship(context.Background(), &models.Sponsorship{
		CauseID:          cause.ID,
		OrganizationName: "Acme Corp",
		ToteQuantity:     40,
		UnitPrice:        12.5,
		Status:           models.SponsorshipStatusApproved, // discarded
	})
	require.NoError(t, err)

	assert.Equal(t, models.SponsorshipStatusPending, sponsorship.Status)
	assert.Equal(t, models.DistributionTypeOnline, sponsorship.DistributionType)
	assert.Equal(t, float64(500), sponsorship.TotalAmount)
	assert.True(t, sponsorship.PhysicalDistribution.IsZero())

	// An explicit totalAmount is kept as supplied.
	sponsorship, err = f.service.CreateSponsorship(context.Background(), &models.Sponsorship{
		CauseID:          cause.ID,
		OrganizationName: "Acme Corp",
		ToteQuantity:     40,
		UnitPrice:        12.5,
		TotalAmount:      450,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(450), sponsorship.TotalAmount)
}

func TestCreateSponsorshipValidation(t *testing.T) {
	f := newSponsorshipFixture()
	cause := f.addCause(t, models.CauseStatusApproved)

	_, err := f.service.CreateSponsorship(context.Background(), &models.Sponsorship{
		OrganizationName: "Acme Corp", ToteQuantity: 10,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.service.CreateSponsorship(context.Background(), &models.Sponsorship{
		CauseID: cause.ID, ToteQuantity: 10,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.service.CreateSponsorship(context.Background(), &models.Sponsorship{
		CauseID: cause.ID, OrganizationName: "Acme Corp", ToteQuantity: 0,
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.service.CreateSponsorship(context.Background(), &models.Sponsorship{
		CauseID: cause.ID, OrganizationName: "Acme Corp", ToteQuantity: 10,
		DistributionType: models.DistributionType("courier"),
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestSetSponsorshipStatusRecomputesFunding(t *testing.T) {
	f := newSponsorshipFixture()
	cause := f.addCause(t, models.CauseStatusApproved)
	sponsorship := f.addSponsorship(t, cause.ID, 40, 500, models.SponsorshipStatusPending)

	// Pending sponsorships contribute nothing.
	assert.Equal(t, float64(0), f.currentAmount(t, cause.ID))

	updated, err := f.service.SetStatus(context.Background(), sponsorship.ID, models.SponsorshipStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.SponsorshipStatusApproved, updated.Status)
	assert.Equal(t, float64(500), f.currentAmount(t, cause.ID))

	// Rejection pulls the amount back out.
	_, err = f.service.SetStatus(context.Background(), sponsorship.ID, models.SponsorshipStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, float64(0), f.currentAmount(t, cause.ID))
}

func TestSetSponsorshipStatusUnknown(t *testing.T) {
	f := newSponsorshipFixture()
	cause := f.addCause(t, models.CauseStatusApproved)
	sponsorship := f.addSponsorship(t, cause.ID, 10, 100, models.SponsorshipStatusPending)

	_, err := f.service.SetStatus(context.Background(), sponsorship.ID, models.SponsorshipStatus("refunded"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestUpdateSponsorshipRecomputesFunding(t *testing.T) {
	f := newSponsorshipFixture()
	cause := f.addCause(t, models.CauseStatusApproved)
	sponsorship := f.addSponsorship(t, cause.ID, 40, 500, models.SponsorshipStatusApproved)
	require.NoError(t, f.causeFixture.service.RecomputeCurrentAmount(context.Background(), cause.ID))
	require.Equal(t, float64(500), f.currentAmount(t, cause.ID))

	updated, err := f.service.UpdateSponsorship(context.Background(), &models.Sponsorship{
		ID:               sponsorship.ID,
		CauseID:          primitive.NewObjectID(), // discarded, the cause link is fixed
		OrganizationName: "Acme Corp",
		ToteQuantity:     60,
		TotalAmount:      800,
		Status:           models.SponsorshipStatusPending, // discarded
	})
	require.NoError(t, err)

	assert.Equal(t, cause.ID, updated.CauseID)
	assert.Equal(t, models.SponsorshipStatusApproved, updated.Status)
	assert.Equal(t, float64(800), f.currentAmount(t, cause.ID))
}

func TestDeleteSponsorshipRecomputesFunding(t *testing.T) {
	f := newSponsorshipFixture()
	cause := f.addCause(t, models.CauseStatusApproved)
	sponsorship := f.addSponsorship(t, cause.ID, 40, 500, models.SponsorshipStatusApproved)
	require.NoError(t, f.causeFixture.service.RecomputeCurrentAmount(context.Background(), cause.ID))

	require.NoError(t, f.service.DeleteSponsorship(context.Background(), sponsorship.ID))
	assert.Equal(t, float64(0), f.currentAmount(t, cause.ID))

	err := f.service.DeleteSponsorship(context.Background(), sponsorship.ID)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
