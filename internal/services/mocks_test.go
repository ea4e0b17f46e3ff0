package services

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/repositories"
)

// In-memory fakes of the repository interfaces. They return
// mongo.ErrNoDocuments for missing documents, matching the mongodb
// implementations the services are written against.

type fakeCauseRepo struct {
	causes map[primitive.ObjectID]*models.Cause
}

var _ repositories.CauseRepository = (*fakeCauseRepo)(nil)

func newFakeCauseRepo() *fakeCauseRepo {
	return &fakeCauseRepo{causes: make(map[primitive.ObjectID]*models.Cause)}
}

func (r *fakeCauseRepo) Create(ctx context.Context, cause *models.Cause) error {
	cause.ID = primitive.NewObjectID()
	cause.CreatedAt = time.Now()
	cause.UpdatedAt = time.Now()
	copied := *cause
	r.causes[cause.ID] = &copied
	return nil
}

func (r *fakeCauseRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cause, error) {
	cause, ok := r.causes[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *cause
	return &copied, nil
}

func (r *fakeCauseRepo) FindAll(ctx context.Context, status models.CauseStatus, category string) ([]*models.Cause, error) {
	out := []*models.Cause{}
	for _, cause := range r.causes {
		if status != "" && cause.Status != status {
			continue
		}
		if category != "" && cause.Category != category {
			continue
		}
		copied := *cause
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeCauseRepo) Update(ctx context.Context, cause *models.Cause) error {
	if _, ok := r.causes[cause.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	cause.UpdatedAt = time.Now()
	copied := *cause
	r.causes[cause.ID] = &copied
	return nil
}

func (r *fakeCauseRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CauseStatus) error {
	cause, ok := r.causes[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	cause.Status = status
	return nil
}

func (r *fakeCauseRepo) SetCurrentAmount(ctx context.Context, id primitive.ObjectID, amount float64) error {
	cause, ok := r.causes[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	cause.CurrentAmount = amount
	return nil
}

func (r *fakeCauseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.causes, id)
	return nil
}

type fakeSponsorshipRepo struct {
	sponsorships map[primitive.ObjectID]*models.Sponsorship
}

var _ repositories.SponsorshipRepository = (*fakeSponsorshipRepo)(nil)

func newFakeSponsorshipRepo() *fakeSponsorshipRepo {
	return &fakeSponsorshipRepo{sponsorships: make(map[primitive.ObjectID]*models.Sponsorship)}
}

func (r *fakeSponsorshipRepo) Create(ctx context.Context, s *models.Sponsorship) error {
	s.ID = primitive.NewObjectID()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	copied := *s
	r.sponsorships[s.ID] = &copied
	return nil
}

func (r *fakeSponsorshipRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sponsorship, error) {
	s, ok := r.sponsorships[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSponsorshipRepo) FindByCause(ctx context.Context, causeID primitive.ObjectID) ([]*models.Sponsorship, error) {
	out := []*models.Sponsorship{}
	for _, s := range r.sponsorships {
		if s.CauseID == causeID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSponsorshipRepo) FindAll(ctx context.Context, status models.SponsorshipStatus) ([]*models.Sponsorship, error) {
	out := []*models.Sponsorship{}
	for _, s := range r.sponsorships {
		if status == "" || s.Status == status {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeSponsorshipRepo) Update(ctx context.Context, s *models.Sponsorship) error {
	if _, ok := r.sponsorships[s.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	s.UpdatedAt = time.Now()
	copied := *s
	r.sponsorships[s.ID] = &copied
	return nil
}

func (r *fakeSponsorshipRepo) SetPhysicalDistribution(ctx context.Context, id, distributionID primitive.ObjectID) error {
	s, ok := r.sponsorships[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.PhysicalDistribution = distributionID
	s.DistributionType = models.DistributionTypePhysical
	return nil
}

func (r *fakeSponsorshipRepo) ClearPhysicalDistribution(ctx context.Context, id primitive.ObjectID) error {
	s, ok := r.sponsorships[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	s.PhysicalDistribution = primitive.NilObjectID
	return nil
}

func (r *fakeSponsorshipRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.sponsorships, id)
	return nil
}

func (r *fakeSponsorshipRepo) ApprovedTotals(ctx context.Context, causeID primitive.ObjectID) (*models.ApprovedTotals, error) {
	totals := &models.ApprovedTotals{}
	for _, s := range r.sponsorships {
		if s.CauseID == causeID && s.Status == models.SponsorshipStatusApproved {
			totals.TotalAmount += s.TotalAmount
			totals.ToteQuantity += s.ToteQuantity
		}
	}
	return totals, nil
}

type fakeClaimRepo struct {
	claims map[primitive.ObjectID]*models.Claim
}

var _ repositories.ClaimRepository = (*fakeClaimRepo)(nil)

func newFakeClaimRepo() *fakeClaimRepo {
	return &fakeClaimRepo{claims: make(map[primitive.ObjectID]*models.Claim)}
}

func (r *fakeClaimRepo) Create(ctx context.Context, claim *models.Claim) error {
	claim.ID = primitive.NewObjectID()
	claim.CreatedAt = time.Now()
	claim.UpdatedAt = time.Now()
	copied := *claim
	r.claims[claim.ID] = &copied
	return nil
}

func (r *fakeClaimRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error) {
	claim, ok := r.claims[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *claim
	return &copied, nil
}

func (r *fakeClaimRepo) FindByCause(ctx context.Context, causeID primitive.ObjectID) ([]*models.Claim, error) {
	out := []*models.Claim{}
	for _, claim := range r.claims {
		if claim.CauseID == causeID {
			copied := *claim
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeClaimRepo) FindAll(ctx context.Context, status models.ClaimStatus) ([]*models.Claim, error) {
	out := []*models.Claim{}
	for _, claim := range r.claims {
		if status == "" || claim.Status == status {
			copied := *claim
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeClaimRepo) Update(ctx context.Context, claim *models.Claim) error {
	if _, ok := r.claims[claim.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	claim.UpdatedAt = time.Now()
	copied := *claim
	r.claims[claim.ID] = &copied
	return nil
}

func (r *fakeClaimRepo) SetEmailVerified(ctx context.Context, email string) error {
	for _, claim := range r.claims {
		if claim.Email == email {
			claim.EmailVerified = true
		}
	}
	return nil
}

func (r *fakeClaimRepo) CountActiveByCause(ctx context.Context, causeID primitive.ObjectID) (int64, error) {
	var n int64
	for _, claim := range r.claims {
		if claim.CauseID == causeID && claim.Status.CountsAgainstAvailability() {
			n++
		}
	}
	return n, nil
}

type fakeOTPRepo struct {
	records map[primitive.ObjectID]*models.OTPVerification
}

var _ repositories.OTPRepository = (*fakeOTPRepo)(nil)

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{records: make(map[primitive.ObjectID]*models.OTPVerification)}
}

func (r *fakeOTPRepo) Create(ctx context.Context, otp *models.OTPVerification) error {
	otp.ID = primitive.NewObjectID()
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now()
	}
	copied := *otp
	r.records[otp.ID] = &copied
	return nil
}

func (r *fakeOTPRepo) FindByEmail(ctx context.Context, email string) ([]*models.OTPVerification, error) {
	out := []*models.OTPVerification{}
	for _, record := range r.records {
		if record.Email == email {
			copied := *record
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOTPRepo) FindLiveByEmail(ctx context.Context, email string, now time.Time) (*models.OTPVerification, error) {
	var newest *models.OTPVerification
	for _, record := range r.records {
		if record.Email != email || record.Verified || record.Expired(now) {
			continue
		}
		if newest == nil || record.CreatedAt.After(newest.CreatedAt) {
			newest = record
		}
	}
	if newest == nil {
		return nil, nil
	}
	copied := *newest
	return &copied, nil
}

func (r *fakeOTPRepo) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	record, ok := r.records[id]
	if !ok || record.Verified {
		return mongo.ErrNoDocuments
	}
	record.Verified = true
	return nil
}

type fakeLocationRepo struct {
	locations map[primitive.ObjectID]*models.DistributionLocation
}

var _ repositories.LocationRepository = (*fakeLocationRepo)(nil)

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[primitive.ObjectID]*models.DistributionLocation)}
}

func (r *fakeLocationRepo) Create(ctx context.Context, location *models.DistributionLocation) error {
	location.ID = primitive.NewObjectID()
	location.CreatedAt = time.Now()
	location.UpdatedAt = time.Now()
	copied := *location
	r.locations[location.ID] = &copied
	return nil
}

func (r *fakeLocationRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DistributionLocation, error) {
	location, ok := r.locations[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *location
	return &copied, nil
}

func (r *fakeLocationRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.DistributionLocation, error) {
	out := []*models.DistributionLocation{}
	seen := make(map[primitive.ObjectID]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if location, ok := r.locations[id]; ok {
			copied := *location
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) FindAll(ctx context.Context, activeOnly bool) ([]*models.DistributionLocation, error) {
	out := []*models.DistributionLocation{}
	for _, location := range r.locations {
		if activeOnly && !location.IsActive {
			continue
		}
		copied := *location
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeLocationRepo) Update(ctx context.Context, location *models.DistributionLocation) error {
	if _, ok := r.locations[location.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *location
	r.locations[location.ID] = &copied
	return nil
}

func (r *fakeLocationRepo) IncrementTotes(ctx context.Context, id primitive.ObjectID, delta int) error {
	location, ok := r.locations[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	location.TotesCount += delta
	return nil
}

func (r *fakeLocationRepo) SetTotesCount(ctx context.Context, id primitive.ObjectID, count int) error {
	location, ok := r.locations[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	location.TotesCount = count
	return nil
}

func (r *fakeLocationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(r.locations, id)
	return nil
}

type fakeDistributionRepo struct {
	distributions map[primitive.ObjectID]*models.PhysicalDistribution
	deleteErr     error
}

var _ repositories.DistributionRepository = (*fakeDistributionRepo)(nil)

func newFakeDistributionRepo() *fakeDistributionRepo {
	return &fakeDistributionRepo{distributions: make(map[primitive.ObjectID]*models.PhysicalDistribution)}
}

func (r *fakeDistributionRepo) Create(ctx context.Context, d *models.PhysicalDistribution) error {
	d.ID = primitive.NewObjectID()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	copied := *d
	copied.DistributionLocations = append([]models.LocationAllocation(nil), d.DistributionLocations...)
	r.distributions[d.ID] = &copied
	return nil
}

func (r *fakeDistributionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PhysicalDistribution, error) {
	d, ok := r.distributions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *d
	copied.DistributionLocations = append([]models.LocationAllocation(nil), d.DistributionLocations...)
	return &copied, nil
}

func (r *fakeDistributionRepo) FindBySponsorship(ctx context.Context, sponsorshipID primitive.ObjectID) (*models.PhysicalDistribution, error) {
	for _, d := range r.distributions {
		if d.SponsorshipID == sponsorshipID {
			copied := *d
			copied.DistributionLocations = append([]models.LocationAllocation(nil), d.DistributionLocations...)
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeDistributionRepo) FindAll(ctx context.Context) ([]*models.PhysicalDistribution, error) {
	out := []*models.PhysicalDistribution{}
	for _, d := range r.distributions {
		copied := *d
		copied.DistributionLocations = append([]models.LocationAllocation(nil), d.DistributionLocations...)
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeDistributionRepo) Update(ctx context.Context, d *models.PhysicalDistribution) error {
	if _, ok := r.distributions[d.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	d.UpdatedAt = time.Now()
	copied := *d
	copied.DistributionLocations = append([]models.LocationAllocation(nil), d.DistributionLocations...)
	r.distributions[d.ID] = &copied
	return nil
}

func (r *fakeDistributionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.distributions[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.distributions, id)
	return nil
}

func (r *fakeDistributionRepo) SumAllocationsForLocation(ctx context.Context, locationID primitive.ObjectID) (int, error) {
	sum := 0
	for _, d := range r.distributions {
		for _, a := range d.DistributionLocations {
			if a.LocationID == locationID {
				sum += a.Quantity
			}
		}
	}
	return sum, nil
}

// fakeTxRunner mimics transaction semantics over the fakes: it snapshots
// the location counters and sponsorship back-references before running fn
// and restores them when fn fails, which is the observable effect the
// delete path relies on.
type fakeTxRunner struct {
	locations    *fakeLocationRepo
	sponsorships *fakeSponsorshipRepo
}

func (t *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	counts := make(map[primitive.ObjectID]int, len(t.locations.locations))
	for id, location := range t.locations.locations {
		counts[id] = location.TotesCount
	}
	backrefs := make(map[primitive.ObjectID]primitive.ObjectID, len(t.sponsorships.sponsorships))
	for id, s := range t.sponsorships.sponsorships {
		backrefs[id] = s.PhysicalDistribution
	}
	if err := fn(ctx); err != nil {
		for id, count := range counts {
			if location, ok := t.locations.locations[id]; ok {
				location.TotesCount = count
			}
		}
		for id, ref := range backrefs {
			if s, ok := t.sponsorships.sponsorships[id]; ok {
				s.PhysicalDistribution = ref
			}
		}
		return err
	}
	return nil
}

// recordingMailer captures outbound mail for assertions
type recordingMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *recordingMailer) SendMail(to, subject, body string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return "TEST-MSG", nil
}
