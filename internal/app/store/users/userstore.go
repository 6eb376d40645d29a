// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists Account documents in the "users" collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when an account with the same email already exists.
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// ErrNotFound is returned when no account has the requested id.
	ErrNotFound = errors.New("account not found")

	errNoID        = errors.New("account id is required")
	errBadStatus   = errors.New(`status must be "pending"|"approved"|"rejected"`)
	errBadUserType = errors.New(`user_type must be "admin"|"user"`)
)

// GetByID loads an account by id. Returns ErrNotFound if there is none.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByEmail looks up an account by case-insensitive email. Returns ErrNotFound if there is none.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account after normalizing & validating fields.
// The id must already be set; it is the identity id issued at registration.
// Status defaults to pending and user type to user.
func (s *Store) Create(ctx context.Context, a models.Account) (models.Account, error) {
	if a.ID == "" {
		return models.Account{}, errNoID
	}
	a.Email = normalize.Email(a.Email)
	a.FirstName = normalize.Name(a.FirstName)
	a.LastName = normalize.Name(a.LastName)
	a.MiddleInitial = normalize.Name(a.MiddleInitial)
	a.Username = normalize.Name(a.Username)

	a.Status = normalize.Status(a.Status)
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	if !models.ValidStatus(a.Status) {
		return models.Account{}, errBadStatus
	}

	a.UserType = normalize.UserType(a.UserType)
	if a.UserType == "" {
		a.UserType = models.UserTypeUser
	}
	if a.UserType != models.UserTypeUser && a.UserType != models.UserTypeAdmin {
		return models.Account{}, errBadUserType
	}

	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, ErrDuplicateEmail
		}
		return models.Account{}, err
	}
	return a, nil
}

// List returns every account, newest first.
func (s *Store) List(ctx context.Context) ([]models.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Account
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByIDs loads the accounts whose ids are listed. Unknown ids are skipped.
func (s *Store) GetByIDs(ctx context.Context, ids []string) ([]models.Account, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Account
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetStatus moves an account to status. Setting the status it already has
// succeeds. Returns ErrNotFound if no account has the id.
func (s *Store) SetStatus(ctx context.Context, id, status string) (*models.Account, error) {
	status = normalize.Status(status)
	if !models.ValidStatus(status) {
		return nil, errBadStatus
	}
	return s.update(ctx, id, bson.M{"status": status})
}

// SetSurveyCompleted records whether the account has submitted its survey.
func (s *Store) SetSurveyCompleted(ctx context.Context, id string, done bool) error {
	_, err := s.update(ctx, id, bson.M{"survey_completed": done})
	return err
}

// UpdateProfile replaces the owner-editable profile fields.
// Status, user type and email are never touched here.
func (s *Store) UpdateProfile(ctx context.Context, id string, p models.Profile) (*models.Account, error) {
	set := bson.M{
		"first_name":        normalize.Name(p.FirstName),
		"last_name":         normalize.Name(p.LastName),
		"middle_initial":    normalize.Name(p.MiddleInitial),
		"username":          normalize.Name(p.Username),
		"age":               p.Age,
		"birth_date":        p.BirthDate,
		"contact_number":    normalize.Name(p.ContactNumber),
		"house_number":      normalize.Name(p.HouseNumber),
		"street":            normalize.Name(p.Street),
		"barangay":          normalize.Name(p.Barangay),
		"city_municipality": normalize.Name(p.CityMunicipality),
		"province":          normalize.Name(p.Province),
	}
	return s.update(ctx, id, set)
}

// Promote makes an existing account an approved admin.
func (s *Store) Promote(ctx context.Context, id string) (*models.Account, error) {
	return s.update(ctx, id, bson.M{
		"user_type": models.UserTypeAdmin,
		"status":    models.StatusApproved,
	})
}

// Delete removes an account by id and returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// update applies set (plus updated_at) and returns the document after the change.
func (s *Store) update(ctx context.Context, id string, set bson.M) (*models.Account, error) {
	set["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var a models.Account
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
