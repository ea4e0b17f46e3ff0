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

// Compile-time check to ensure LocationRepository implements the interface
var _ repositories.LocationRepository = (*LocationRepository)(nil)

// LocationRepository handles MongoDB operations for DistributionLocation
type LocationRepository struct {
	collection *mongo.Collection
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{
		collection: db.Collection("distributionlocations"),
	}
}

// Create inserts a new location
func (r *LocationRepository) Create(ctx context.Context, location *models.DistributionLocation) error {
	location.ID = primitive.NewObjectID()
	location.CreatedAt = time.Now()
	location.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, location)
	return err
}

// FindByID finds a location by ID
func (r *LocationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DistributionLocation, error) {
	var location models.DistributionLocation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&location)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &location, nil
}

// FindByIDs retrieves the locations matching the given IDs. Callers compare
// the result length against the request to detect unresolved references.
func (r *LocationRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.DistributionLocation, error) {
	var locations []*models.DistributionLocation
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []*models.DistributionLocation{}
	}
	return locations, nil
}

// FindAll retrieves all locations, optionally only active ones
func (r *LocationRepository) FindAll(ctx context.Context, activeOnly bool) ([]*models.DistributionLocation, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	var locations []*models.DistributionLocation
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []*models.DistributionLocation{}
	}
	return locations, nil
}

// Update updates an existing location
func (r *LocationRepository) Update(ctx context.Context, location *models.DistributionLocation) error {
	location.UpdatedAt = time.Now()
	filter := bson.M{"_id": location.ID}
	update := bson.M{"$set": location}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// IncrementTotes atomically adjusts a location's running tote counter by
// delta, which may be negative
func (r *LocationRepository) IncrementTotes(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc": bson.M{"totesCount": delta},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetTotesCount overwrites the counter with a recomputed value
func (r *LocationRepository) SetTotesCount(ctx context.Context, id primitive.ObjectID, count int) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"totesCount": count, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a location by ID
func (r *LocationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
