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

// Compile-time check to ensure DistributionRepository implements the interface
var _ repositories.DistributionRepository = (*DistributionRepository)(nil)

// DistributionRepository handles MongoDB operations for PhysicalDistribution
type DistributionRepository struct {
	collection *mongo.Collection
}

// NewDistributionRepository creates a new DistributionRepository
func NewDistributionRepository(db *mongo.Database) *DistributionRepository {
	return &DistributionRepository{
		collection: db.Collection("physicaldistributions"),
	}
}

// Create inserts a new distribution
func (r *DistributionRepository) Create(ctx context.Context, distribution *models.PhysicalDistribution) error {
	distribution.ID = primitive.NewObjectID()
	distribution.CreatedAt = time.Now()
	distribution.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, distribution)
	return err
}

// FindByID finds a distribution by ID
func (r *DistributionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.PhysicalDistribution, error) {
	var distribution models.PhysicalDistribution
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&distribution)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &distribution, nil
}

// FindBySponsorship finds the distribution backing a sponsorship, if any
func (r *DistributionRepository) FindBySponsorship(ctx context.Context, sponsorshipID primitive.ObjectID) (*models.PhysicalDistribution, error) {
	var distribution models.PhysicalDistribution
	err := r.collection.FindOne(ctx, bson.M{"sponsorship": sponsorshipID}).Decode(&distribution)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &distribution, nil
}

// FindAll retrieves all distributions
func (r *DistributionRepository) FindAll(ctx context.Context) ([]*models.PhysicalDistribution, error) {
	var distributions []*models.PhysicalDistribution
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &distributions); err != nil {
		return nil, err
	}
	if distributions == nil {
		distributions = []*models.PhysicalDistribution{}
	}
	return distributions, nil
}

// Update updates an existing distribution
func (r *DistributionRepository) Update(ctx context.Context, distribution *models.PhysicalDistribution) error {
	distribution.UpdatedAt = time.Now()
	filter := bson.M{"_id": distribution.ID}
	update := bson.M{"$set": distribution}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete deletes a distribution by ID
func (r *DistributionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SumAllocationsForLocation sums live allocation quantities referencing the
// location across all distributions. Used to rebuild totesCount.
func (r *DistributionRepository) SumAllocationsForLocation(ctx context.Context, locationID primitive.ObjectID) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"distributionLocations.location": locationID}}},
		{{Key: "$unwind", Value: "$distributionLocations"}},
		{{Key: "$match", Value: bson.M{"distributionLocations.location": locationID}}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"quantity": bson.M{"$sum": "$distributionLocations.quantity"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Quantity int `bson:"quantity"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Quantity, nil
}
