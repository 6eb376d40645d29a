// internal/app/system/identity/identity.go
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/youthportal/internal/app/system/apperr"
	"github.com/dalemusser/youthportal/internal/app/system/normalize"
	"github.com/dalemusser/youthportal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Provider is the authentication boundary. Refusals come back as
// *apperr.ProviderAuthError; anything else is an infrastructure failure.
type Provider interface {
	// Create registers a credential and returns its id.
	Create(ctx context.Context, email, password, displayName string) (string, error)
	// Verify checks a credential and returns the identity id.
	Verify(ctx context.Context, email, password string) (string, error)
	// Delete removes an identity. Deleting a missing identity is not an error.
	Delete(ctx context.Context, id string) error
	// ResetToken issues a password-reset token for email.
	// It returns CodeUserNotFound when no identity has that email.
	ResetToken(ctx context.Context, email string) (string, error)
	// ResetPassword consumes a reset token and sets a new password.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// BcryptCost for password hashes.
const BcryptCost = 10

// Store is the Mongo-backed Provider. Identities live in the "identities"
// collection and never leave this package with their hash attached.
type Store struct {
	c      *mongo.Collection
	tokens *Tokens
	now    func() time.Time
}

// New creates a Store. tokens signs and checks password-reset tokens.
func New(db *mongo.Database, tokens *Tokens) *Store {
	return &Store{
		c:      db.Collection("identities"),
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

var _ Provider = (*Store)(nil)

func (s *Store) Create(ctx context.Context, email, password, displayName string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	id := primitive.NewObjectID().Hex()
	doc := models.Identity{
		ID:           id,
		Email:        normalize.Email(email),
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
		CreatedAt:    s.now(),
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return "", apperr.Provider(apperr.CodeEmailInUse, nil)
		}
		return "", err
	}
	return id, nil
}

func (s *Store) Verify(ctx context.Context, email, password string) (string, error) {
	ident, err := s.byEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return "", apperr.Provider(apperr.CodeWrongPassword, nil)
	}
	if ident.Disabled {
		return "", apperr.Provider(apperr.CodeUserDisabled, nil)
	}
	return ident.ID, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *Store) ResetToken(ctx context.Context, email string) (string, error) {
	ident, err := s.byEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if ident.Disabled {
		return "", apperr.Provider(apperr.CodeUserDisabled, nil)
	}
	return s.tokens.Issue(ident.ID, ident.PasswordHash)
}

// ResetPassword accepts a token only while the password it was issued
// against is still current, so each token works once.
func (s *Store) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return apperr.Provider(apperr.CodeInvalidResetToken, err)
	}

	var ident models.Identity
	if err := s.c.FindOne(ctx, bson.M{"_id": claims.Subject}).Decode(&ident); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.Provider(apperr.CodeInvalidResetToken, nil)
		}
		return err
	}
	if claims.Fingerprint != fingerprint(ident.PasswordHash) {
		return apperr.Provider(apperr.CodeInvalidResetToken, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	now := s.now()
	// Match on the old hash too; a concurrent reset with the same token loses.
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": ident.ID, "password_hash": ident.PasswordHash},
		bson.M{"$set": bson.M{"password_hash": string(hash), "password_changed_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.Provider(apperr.CodeInvalidResetToken, nil)
	}
	return nil
}

func (s *Store) byEmail(ctx context.Context, email string) (*models.Identity, error) {
	var ident models.Identity
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&ident); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Provider(apperr.CodeUserNotFound, nil)
		}
		return nil, err
	}
	return &ident, nil
}
