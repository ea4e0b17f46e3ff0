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

type causeFixture struct {
	causes       *fakeCauseRepo
	sponsorships *fakeSponsorshipRepo
	claims       *fakeClaimRepo
	service      *CauseService
}

func newCauseFixture() *causeFixture {
	causes := newFakeCauseRepo()
	sponsorships := newFakeSponsorshipRepo()
	claims := newFakeClaimRepo()
	return &causeFixture{
		causes:       causes,
		sponsorships: sponsorships,
		claims:       claims,
		service:      NewCauseService(causes, sponsorships, claims),
	}
}

func (f *causeFixture) addCause(t *testing.T, status models.CauseStatus) *models.Cause {
	t.Helper()
	cause := &models.Cause{
		Title:        "School Supplies Drive",
		Description:  "Totes for students",
		Category:     "education",
		TargetAmount: 5000,
		Status:       status,
	}
	require.NoError(t, f.causes.Create(context.Background(), cause))
	f.causes.causes[cause.ID].Status = status
	return cause
}

func (f *causeFixture) addSponsorship(t *testing.T, causeID primitive.ObjectID, quantity int, amount float64, status models.SponsorshipStatus) *models.Sponsorship {
	t.Helper()
	s := &models.Sponsorship{
		CauseID:          causeID,
		OrganizationName: "Acme Corp",
		ToteQuantity:     quantity,
		TotalAmount:      amount,
		Status:           status,
	}
	require.NoError(t, f.sponsorships.Create(context.Background(), s))
	return s
}

func (f *causeFixture) addClaim(t *testing.T, causeID primitive.ObjectID, status models.ClaimStatus) *models.Claim {
	t.Helper()
	claim := &models.Claim{
		CauseID:  causeID,
		FullName: "Jordan Lee",
		Email:    "jordan@example.com",
		Address:  "1 Main St",
		City:     "Austin",
		State:    "TX",
		ZipCode:  "78701",
		Status:   status,
	}
	require.NoError(t, f.claims.Create(context.Background(), claim))
	return claim
}

func TestCreateCause(t *testing.T) {
	f := newCauseFixture()
	creator := primitive.NewObjectID()

	cause, err := f.service.CreateCause(context.Background(), &models.Cause{
		Title:         "Park Cleanup",
		TargetAmount:  1000,
		CurrentAmount: 999, // caller-supplied amounts are discarded
		Status:        models.CauseStatusApproved,
	}, creator)
	require.NoError(t, err)

	assert.Equal(t, models.CauseStatusPending, cause.Status)
	assert.Equal(t, float64(0), cause.CurrentAmount)
	assert.Equal(t, creator, cause.CreatorID)
	assert.False(t, cause.ID.IsZero())
}

func TestCreateCauseValidation(t *testing.T) {
	f := newCauseFixture()

	_, err := f.service.CreateCause(context.Background(), &models.Cause{TargetAmount: 100}, primitive.NewObjectID())
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.service.CreateCause(context.Background(), &models.Cause{Title: "x"}, primitive.NewObjectID())
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestGetCauseAvailability(t *testing.T) {
	f := newCauseFixture()
	cause := f.addCause(t, models.CauseStatusApproved)

	// Only approved sponsorships contribute to the pool.
	f.addSponsorship(t, cause.ID, 100, 1000, models.SponsorshipStatusApproved)
	f.addSponsorship(t, cause.ID, 50, 500, models.SponsorshipStatusPending)
	f.addSponsorship(t, cause.ID, 25, 250, models.SponsorshipStatusRejected)

	// Only verified, shipped and delivered claims consume totes.
	f.addClaim(t, cause.ID, models.ClaimStatusVerified)
	f.addClaim(t, cause.ID, models.ClaimStatusShipped)
	f.addClaim(t, cause.ID, models.ClaimStatusDelivered)
	f.addClaim(t, cause.ID, models.ClaimStatusPending)
	f.addClaim(t, cause.ID, models.ClaimStatusCancelled)

	availability, err := f.service.GetCauseAvailability(context.Background(), cause.ID)
	require.NoError(t, err)

	assert.Equal(t, 100, availability.TotalTotes)
	assert.Equal(t, 3, availability.ClaimedTotes)
	assert.Equal(t, 97, availability.AvailableTotes)
}

func TestGetCauseAvailabilityFloorsAtZero(t *testing.T) {
	f := newCauseFixture()
	cause := f.addCause(t, models.CauseStatusApproved)

	f.addSponsorship(t, cause.ID, 2, 20, models.SponsorshipStatusApproved)
	f.addClaim(t, cause.ID, models.ClaimStatusVerified)
	f.addClaim(t, cause.ID, models.ClaimStatusVerified)
	f.addClaim(t, cause.ID, models.ClaimStatusVerified)

	availability, err := f.service.GetCauseAvailability(context.Background(), cause.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, availability.TotalTotes)
	assert.Equal(t, 3, availability.ClaimedTotes)
	assert.Equal(t, 0, availability.AvailableTotes)
}

func TestGetCauseAvailabilityEmptyCause(t *testing.T) {
	f := newCauseFixture()
	cause := f.addCause(t, models.CauseStatusApproved)

	availability, err := f.service.GetCauseAvailability(context.Background(), cause.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, availability.TotalTotes)
	assert.Equal(t, 0, availability.ClaimedTotes)
	assert.Equal(t, 0, availability.AvailableTotes)
}

func TestRecomputeCurrentAmount(t *testing.T) {
	f := newCauseFixture()
	cause := f.addCause(t, models.CauseStatusApproved)

	approved := f.addSponsorship(t, cause.ID, 10, 300, models.SponsorshipStatusApproved)
	f.addSponsorship(t, cause.ID, 10, 200, models.SponsorshipStatusApproved)
	f.addSponsorship(t, cause.ID, 10, 999, models.SponsorshipStatusPending)

	require.NoError(t, f.service.RecomputeCurrentAmount(context.Background(), cause.ID))
	stored, err := f.service.GetCauseDetail(context.Background(), cause.ID, false)
	require.NoError(t, err)
	assert.Equal(t, float64(500), stored.CurrentAmount)

	// Recompute is idempotent.
	require.NoError(t, f.service.RecomputeCurrentAmount(context.Background(), cause.ID))
	stored, err = f.service.GetCauseDetail(context.Background(), cause.ID, false)
	require.NoError(t, err)
	assert.Equal(t, float64(500), stored.CurrentAmount)

	// Dropping a sponsorship out of the approved set drops the total.
	f.sponsorships.sponsorships[approved.ID].Status = models.SponsorshipStatusRejected
	require.NoError(t, f.service.RecomputeCurrentAmount(context.Background(), cause.ID))
	stored, err = f.service.GetCauseDetail(context.Background(), cause.ID, false)
	require.NoError(t, err)
	assert.Equal(t, float64(200), stored.CurrentAmount)
}

func TestRecomputeCurrentAmountMissingCause(t *testing.T) {
	f := newCauseFixture()
	err := f.service.RecomputeCurrentAmount(context.Background(), primitive.NewObjectID())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestGetCauseDetail(t *testing.T) {
	f := newCauseFixture()
	cause := f.addCause(t, models.CauseStatusApproved)
	f.addSponsorship(t, cause.ID, 40, 400, models.SponsorshipStatusApproved)
	f.addClaim(t, cause.ID, models.ClaimStatusVerified)

	detail, err := f.service.GetCauseDetail(context.Background(), cause.ID, false)
	require.NoError(t, err)
	assert.Equal(t, cause.ID, detail.ID)
	assert.Equal(t, 40, detail.TotalTotes)
	assert.Equal(t, 39, detail.AvailableTotes)
	assert.Nil(t, detail.Sponsorships)

	detail, err = f.service.GetCauseDetail(context.Background(), cause.ID, true)
	require.NoError(t, err)
	assert.Len(t, detail.Sponsorships, 1)
}

func TestGetCauseDetailNotFound(t *testing.T) {
	f := newCauseFixture()
	_, err := f.service.GetCauseDetail(context.Background(), primitive.NewObjectID(), false)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateCausePreservesManagedFields(t *testing.T) {
	f := newCauseFixture()
	cause := f.addCause(t, models.CauseStatusApproved)
	f.causes.causes[cause.ID].CurrentAmount = 750

	updated, err := f.service.UpdateCause(context.Background(), &models.Cause{
		ID:            cause.ID,
		Title:         "Updated Title",
		TargetAmount:  9000,
		Status:        models.CauseStatusRejected,
		CurrentAmount: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, models.CauseStatusApproved, updated.Status)
	assert.Equal(t, float64(750), updated.CurrentAmount)
}

func TestSetCauseStatus(t *testing.T) {
	f := newCauseFixture()
	cause := f.addCause(t, models.CauseStatusPending)

	updated, err := f.service.SetStatus(context.Background(), cause.ID, models.CauseStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.CauseStatusApproved, updated.Status)

	_, err = f.service.SetStatus(context.Background(), cause.ID, models.CauseStatus("archived"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = f.service.SetStatus(context.Background(), primitive.NewObjectID(), models.CauseStatusApproved)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
