package userstore

import (
	"context"

	"github.com/dalemusser/youthportal/internal/app/system/auth"
	"github.com/dalemusser/youthportal/internal/app/system/display"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/app/system/timeouts"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher to load fresh account data on each request.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// FetchUser retrieves an account by id and returns nil if it is not found
// or if any error occurs. This implements auth.UserFetcher.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	if userID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var a models.Account
	proj := options.FindOne().SetProjection(bson.M{
		"_id":            1,
		"email":          1,
		"first_name":     1,
		"middle_initial": 1,
		"last_name":      1,
		"user_type":      1,
		"status":         1,
	})
	if err := f.users.FindOne(ctx, bson.M{"_id": userID}, proj).Decode(&a); err != nil {
		return nil
	}

	return &auth.SessionUser{
		ID:     a.ID,
		Name:   display.Name(a),
		Email:  a.Email,
		Role:   normalize.UserType(a.UserType),
		Status: normalize.Status(a.Status),
	}
}
