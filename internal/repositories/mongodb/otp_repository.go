package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sshusain313/causeconnect-sub000/internal/models"
	"github.com/sshusain313/causeconnect-sub000/internal/repositories"
)

// Compile-time check to ensure OTPRepository implements the interface
var _ repositories.OTPRepository = (*OTPRepository)(nil)

// OTPRepository handles MongoDB operations for OTPVerification. Record
// expiry is enforced by a TTL index on expiresAt (see pkg/mongodb).
type OTPRepository struct {
	collection *mongo.Collection
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{
		collection: db.Collection("otpverifications"),
	}
}

// Create inserts a new verification record
func (r *OTPRepository) Create(ctx context.Context, otp *models.OTPVerification) error {
	otp.ID = primitive.NewObjectID()
	otp.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, otp)
	return err
}

// FindByEmail retrieves all records for an email, newest first. Multiple
// records can coexist within the retention window.
func (r *OTPRepository) FindByEmail(ctx context.Context, email string) ([]*models.OTPVerification, error) {
	var records []*models.OTPVerification
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.OTPVerification{}
	}
	return records, nil
}

// FindLiveByEmail returns the newest unverified, unexpired record for the
// email, or nil when there is none
func (r *OTPRepository) FindLiveByEmail(ctx context.Context, email string, now time.Time) (*models.OTPVerification, error) {
	filter := bson.M{
		"email":     email,
		"verified":  false,
		"expiresAt": bson.M{"$gt": now},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var record models.OTPVerification
	err := r.collection.FindOne(ctx, filter, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// MarkVerified marks a record as consumed. Verified records are immutable
// from then on; any later match against them reports "already used".
func (r *OTPRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "verified": false}
	update := bson.M{"$set": bson.M{"verified": true}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
