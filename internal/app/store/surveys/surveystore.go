// internal/app/store/surveys/surveystore.go
package surveystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists Survey documents in the "surveys" collection.
// Surveys reference their owner by user_id; nothing enforces the link.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("surveys")}
}

// ErrNotFound is returned when an account has no survey.
var ErrNotFound = errors.New("survey not found")

var errNoUser = errors.New("survey user_id is required")

// Create inserts a survey for userID and returns the stored document.
func (s *Store) Create(ctx context.Context, userID string, ans models.Answers) (models.Survey, error) {
	if userID == "" {
		return models.Survey{}, errNoUser
	}
	now := time.Now().UTC()
	sv := models.Survey{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Answers:   ans,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, sv); err != nil {
		return models.Survey{}, err
	}
	return sv, nil
}

// GetFirstByUser returns the oldest survey for userID.
// More than one may exist for legacy data; only the first is read or edited.
func (s *Store) GetFirstByUser(ctx context.Context, userID string) (*models.Survey, error) {
	var sv models.Survey
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&sv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sv, nil
}

// UpdateAnswers replaces the answers of survey id and stamps updated_at.
func (s *Store) UpdateAnswers(ctx context.Context, id primitive.ObjectID, ans models.Answers) (*models.Survey, error) {
	set, err := answersDoc(ans)
	if err != nil {
		return nil, err
	}
	set["updated_at"] = time.Now().UTC()

	var sv models.Survey
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&sv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sv, nil
}

// ListAll returns every survey. The stats dashboard reads the whole
// collection in one pass, so no paging is applied.
func (s *Store) ListAll(ctx context.Context) ([]models.Survey, error) {
	cur, err := s.c.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Survey
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByUser removes every survey owned by userID.
func (s *Store) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByUser reports how many surveys userID owns.
func (s *Store) CountByUser(ctx context.Context, userID string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"user_id": userID})
}

// answersDoc flattens Answers to the field map used in $set, keeping the
// bson tags as the single source of field names.
func answersDoc(ans models.Answers) (bson.M, error) {
	raw, err := bson.Marshal(ans)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
