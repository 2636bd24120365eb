package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrUnauthorized       = errors.New("invalid or missing credentials")
	ErrInvalidCredentials = errors.New("no user is registered with this email")
	ErrAPIKeyNotFound     = errors.New("api key not found")
)

// Identity kinds.
const (
	IdentityAPIKey = "api_key"
	IdentityUser   = "user"
)

// Identity is the caller resolved by an Authenticator.
// API keys are not bound to a user, so only KeyID is set for them.
type Identity struct {
	Kind      string     `json:"kind"`
	KeyID     *uuid.UUID `json:"keyId,omitempty"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	Email     string     `json:"email,omitempty"`
	FirstName string     `json:"firstName,omitempty"`
	LastName  string     `json:"lastName,omitempty"`
}

type identityKey struct{}

// ContextWithIdentity returns a copy of ctx carrying id.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by ContextWithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Authenticator validates a raw credential taken from a request header.
// Exactly one implementation is active per deployment.
type Authenticator interface {
	Authenticate(ctx context.Context, credential string) (Identity, error)
}

// APIKeyAuthenticator accepts any active key stored in api_keys.
type APIKeyAuthenticator struct {
	keyRepo repository.APIKeyRepository
	log     *zap.Logger
}

// NewAPIKeyAuthenticator creates a new APIKeyAuthenticator.
func NewAPIKeyAuthenticator(keyRepo repository.APIKeyRepository, log *zap.Logger) *APIKeyAuthenticator {
	return &APIKeyAuthenticator{keyRepo: keyRepo, log: log}
}

// Authenticate implements Authenticator.
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context, credential string) (Identity, error) {
	id, err := uuid.Parse(strings.TrimSpace(credential))
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	key, err := a.keyRepo.FindByID(ctx, id)
	if err != nil {
		return Identity{}, notFoundOr(a.log, "find api key", err, ErrUnauthorized)
	}
	if !key.IsActive {
		return Identity{}, ErrUnauthorized
	}

	return Identity{Kind: IdentityAPIKey, KeyID: &key.ID}, nil
}

// TokenClaims is the payload of an access token.
type TokenClaims struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.RegisteredClaims
}

// TokenAuthenticator issues and verifies HS256 access tokens whose subject
// is a user id.
type TokenAuthenticator struct {
	secret    []byte
	issuer    string
	expiresIn time.Duration
	users     *UserService
	now       func() time.Time
}

// NewTokenAuthenticator creates a new TokenAuthenticator.
func NewTokenAuthenticator(secret, issuer string, expiresIn time.Duration, users *UserService) *TokenAuthenticator {
	return &TokenAuthenticator{
		secret:    []byte(secret),
		issuer:    issuer,
		expiresIn: expiresIn,
		users:     users,
		now:       time.Now,
	}
}

// Issue signs a token for user that expires after the configured window.
func (a *TokenAuthenticator) Issue(user *models.User) (string, error) {
	now := a.now()
	claims := TokenClaims{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiresIn)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate implements Authenticator. The credential may carry a
// "Bearer " prefix.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, credential string) (Identity, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(credential), "Bearer "))
	if raw == "" {
		return Identity{}, ErrUnauthorized
	}

	var claims TokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return Identity{}, ErrUnauthorized
		}
		return Identity{}, err
	}

	return Identity{
		Kind:      IdentityUser,
		UserID:    &user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// AuthService handles token issuance and API key administration.
type AuthService struct {
	users   *UserService
	tokens  *TokenAuthenticator
	keyRepo repository.APIKeyRepository
	log     *zap.Logger
}

// NewAuthService creates a new AuthService. tokens is nil when the
// deployment runs in API key mode.
func NewAuthService(users *UserService, tokens *TokenAuthenticator, keyRepo repository.APIKeyRepository, log *zap.Logger) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		keyRepo: keyRepo,
		log:     log,
	}
}

// Login issues an access token for the user registered with email.
// No secret is checked: knowing a registered email is enough.
func (s *AuthService) Login(ctx context.Context, email string) (string, error) {
	if s.tokens == nil {
		return "", ErrUnauthorized
	}

	user, err := s.users.FindByEmail(ctx, email, true)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	return s.tokens.Issue(user)
}

// GenerateAPIKey stores and returns a new active key.
func (s *AuthService) GenerateAPIKey(ctx context.Context) (*models.APIKey, error) {
	key := &models.APIKey{IsActive: true}
	if err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, storageError(s.log, "create api key", err)
	}
	return key, nil
}

// DeactivateAPIKey revokes a key.
func (s *AuthService) DeactivateAPIKey(ctx context.Context, id uuid.UUID) error {
	found, err := s.keyRepo.SetActive(ctx, id, false)
	if err != nil {
		return storageError(s.log, "deactivate api key", err)
	}
	if !found {
		return ErrAPIKeyNotFound
	}
	return nil
}
