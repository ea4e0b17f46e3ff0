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

// Compile-time check to ensure ClaimRepository implements the interface
var _ repositories.ClaimRepository = (*ClaimRepository)(nil)

// ClaimRepository handles MongoDB operations for Claim
type ClaimRepository struct {
	collection *mongo.Collection
}

// NewClaimRepository creates a new ClaimRepository
func NewClaimRepository(db *mongo.Database) *ClaimRepository {
	return &ClaimRepository{
		collection: db.Collection("claims"),
	}
}

// Create inserts a new claim
func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	claim.ID = primitive.NewObjectID()
	claim.CreatedAt = time.Now()
	claim.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, claim)
	return err
}

// FindByID finds a claim by ID
func (r *ClaimRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error) {
	var claim models.Claim
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&claim)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &claim, nil
}

// FindByCause retrieves all claims referencing a cause
func (r *ClaimRepository) FindByCause(ctx context.Context, causeID primitive.ObjectID) ([]*models.Claim, error) {
	return r.findMany(ctx, bson.M{"causeId": causeID})
}

// FindAll retrieves claims, optionally filtered by status
func (r *ClaimRepository) FindAll(ctx context.Context, status models.ClaimStatus) ([]*models.Claim, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.findMany(ctx, filter)
}

func (r *ClaimRepository) findMany(ctx context.Context, filter bson.M) ([]*models.Claim, error) {
	var claims []*models.Claim
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &claims); err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []*models.Claim{}
	}
	return claims, nil
}

// Update updates an existing claim
func (r *ClaimRepository) Update(ctx context.Context, claim *models.Claim) error {
	claim.UpdatedAt = time.Now()
	filter := bson.M{"_id": claim.ID}
	update := bson.M{"$set": claim}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// SetEmailVerified flips emailVerified on every claim for the given address.
// Used after a successful OTP verification.
func (r *ClaimRepository) SetEmailVerified(ctx context.Context, email string) error {
	filter := bson.M{"email": email, "emailVerified": false}
	update := bson.M{"$set": bson.M{"emailVerified": true, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// CountActiveByCause counts claims for a cause whose status consumes a tote
func (r *ClaimRepository) CountActiveByCause(ctx context.Context, causeID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"causeId": causeID,
		"status":  bson.M{"$in": models.ActiveClaimStatuses},
	}
	return r.collection.CountDocuments(ctx, filter)
}
