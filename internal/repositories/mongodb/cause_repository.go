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

// Compile-time check to ensure CauseRepository implements the interface
var _ repositories.CauseRepository = (*CauseRepository)(nil)

// CauseRepository handles MongoDB operations for Cause
type CauseRepository struct {
	collection *mongo.Collection
}

// NewCauseRepository creates a new CauseRepository
func NewCauseRepository(db *mongo.Database) *CauseRepository {
	return &CauseRepository{
		collection: db.Collection("causes"),
	}
}

// Create inserts a new cause
func (r *CauseRepository) Create(ctx context.Context, cause *models.Cause) error {
	cause.ID = primitive.NewObjectID()
	cause.CreatedAt = time.Now()
	cause.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, cause)
	return err
}

// FindByID finds a cause by ID
func (r *CauseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cause, error) {
	var cause models.Cause
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cause)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &cause, nil
}

// FindAll retrieves causes, optionally filtered by status and category
func (r *CauseRepository) FindAll(ctx context.Context, status models.CauseStatus, category string) ([]*models.Cause, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if category != "" {
		filter["category"] = category
	}

	var causes []*models.Cause
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &causes); err != nil {
		return nil, err
	}
	if causes == nil {
		causes = []*models.Cause{}
	}
	return causes, nil
}

// Update updates an existing cause
func (r *CauseRepository) Update(ctx context.Context, cause *models.Cause) error {
	cause.UpdatedAt = time.Now()
	filter := bson.M{"_id": cause.ID}
	update := bson.M{"$set": cause}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// SetStatus updates only the status of a cause
func (r *CauseRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.CauseStatus) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetCurrentAmount writes the recomputed funding total for a cause
func (r *CauseRepository) SetCurrentAmount(ctx context.Context, id primitive.ObjectID, amount float64) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"currentAmount": amount, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete deletes a cause by ID
func (r *CauseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
