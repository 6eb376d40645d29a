// internal/app/system/identity/tokens.go
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultResetExpiry is how long a password-reset link stays valid.
const DefaultResetExpiry = time.Hour

const resetPurpose = "password-reset"

// ResetClaims binds a reset token to one identity and to the password hash
// current when it was issued.
type ResetClaims struct {
	Purpose     string `json:"purpose"`
	Fingerprint string `json:"fp"`
	jwt.RegisteredClaims
}

// Tokens signs and checks password-reset tokens (HS256).
type Tokens struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewTokens creates a token signer. If expiry is 0 or negative,
// DefaultResetExpiry is used.
func NewTokens(secret string, expiry time.Duration, issuer string) (*Tokens, error) {
	if len(secret) < 16 {
		return nil, errors.New("reset token secret must be at least 16 characters")
	}
	if expiry <= 0 {
		expiry = DefaultResetExpiry
	}
	return &Tokens{secret: []byte(secret), expiry: expiry, issuer: issuer, now: time.Now}, nil
}

// Issue signs a token for identity id whose current hash is passwordHash.
func (t *Tokens) Issue(id, passwordHash string) (string, error) {
	now := t.now()
	claims := ResetClaims{
		Purpose:     resetPurpose,
		Fingerprint: fingerprint(passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Parse verifies signature, expiry and purpose and returns the claims.
func (t *Tokens) Parse(token string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (any, error) {
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithLeeway(30*time.Second), jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Purpose != resetPurpose || claims.Subject == "" {
		return nil, errors.New("not a password reset token")
	}
	if t.issuer != "" && claims.Issuer != t.issuer {
		return nil, errors.New("unexpected token issuer")
	}
	return claims, nil
}

func fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
