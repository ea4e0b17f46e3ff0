package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/repositories"
)

// Compile-time check to ensure SponsorshipRepository implements the interface
var _ repositories.SponsorshipRepository = (*SponsorshipRepository)(nil)

// SponsorshipRepository handles MongoDB operations for Sponsorship
type SponsorshipRepository struct {
	collection *mongo.Collection
}

// NewSponsorshipRepository creates a new SponsorshipRepository
func NewSponsorshipRepository(db *mongo.Database) *SponsorshipRepository {
	return &SponsorshipRepository{
		collection: db.Collection("sponsorships"),
	}
}

// Create inserts a new sponsorship
func (r *SponsorshipRepository) Create(ctx context.Context, sponsorship *models.Sponsorship) error {
	sponsorship.ID = primitive.NewObjectID()
	sponsorship.CreatedAt = time.Now()
	sponsorship.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, sponsorship)
	return err
}

// FindByID finds a sponsorship by ID
func (r *SponsorshipRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sponsorship, error) {
	var sponsorship models.Sponsorship
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sponsorship)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &sponsorship, nil
}

// FindByCause retrieves all sponsorships referencing a cause
func (r *SponsorshipRepository) FindByCause(ctx context.Context, causeID primitive.ObjectID) ([]*models.Sponsorship, error) {
	return r.findMany(ctx, bson.M{"cause": causeID})
}

// FindAll retrieves sponsorships, optionally filtered by status
func (r *SponsorshipRepository) FindAll(ctx context.Context, status models.SponsorshipStatus) ([]*models.Sponsorship, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.findMany(ctx, filter)
}

func (r *SponsorshipRepository) findMany(ctx context.Context, filter bson.M) ([]*models.Sponsorship, error) {
	var sponsorships []*models.Sponsorship
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sponsorships); err != nil {
		return nil, err
	}
	if sponsorships == nil {
		sponsorships = []*models.Sponsorship{}
	}
	return sponsorships, nil
}

// Update updates an existing sponsorship
func (r *SponsorshipRepository) Update(ctx context.Context, sponsorship *models.Sponsorship) error {
	sponsorship.UpdatedAt = time.Now()
	filter := bson.M{"_id": sponsorship.ID}
	update := bson.M{"$set": sponsorship}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// SetPhysicalDistribution sets the back-reference to a distribution and marks
// the sponsorship as physically distributed
func (r *SponsorshipRepository) SetPhysicalDistribution(ctx context.Context, id, distributionID primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{
		"physicalDistribution": distributionID,
		"distributionType":     models.DistributionTypePhysical,
		"updatedAt":            time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ClearPhysicalDistribution removes the back-reference to a deleted distribution
func (r *SponsorshipRepository) ClearPhysicalDistribution(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$unset": bson.M{"physicalDistribution": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete deletes a sponsorship by ID
func (r *SponsorshipRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ApprovedTotals aggregates totalAmount and toteQuantity over the approved
// sponsorships of a cause. Returns zero totals when none exist.
func (r *SponsorshipRepository) ApprovedTotals(ctx context.Context, causeID primitive.ObjectID) (*models.ApprovedTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"cause":  causeID,
			"status": models.SponsorshipStatusApproved,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalAmount":  bson.M{"$sum": "$totalAmount"},
			"toteQuantity": bson.M{"$sum": "$toteQuantity"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.ApprovedTotals
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &models.ApprovedTotals{}, nil
	}
	return &results[0], nil
}
