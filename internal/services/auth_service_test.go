package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	serviceSuite
	tokens *TokenAuthenticator
	auth   *AuthService
	apiKey *APIKeyAuthenticator
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.tokens = NewTokenAuthenticator("test-secret", "test-issuer", time.Hour, s.users)
	s.auth = NewAuthService(s.users, s.tokens, s.keys, s.log)
	s.apiKey = NewAPIKeyAuthenticator(s.keys, s.log)
}

func (s *AuthServiceTestSuite) TestAPIKey_Active() {
	key, err := s.auth.GenerateAPIKey(s.ctx)
	s.Require().NoError(err)
	s.True(key.IsActive)

	id, err := s.apiKey.Authenticate(s.ctx, key.ID.String())

	s.Require().NoError(err)
	s.Equal(IdentityAPIKey, id.Kind)
	s.Equal(key.ID, *id.KeyID)
	s.Nil(id.UserID)
}

func (s *AuthServiceTestSuite) TestAPIKey_Rejected() {
	key, err := s.auth.GenerateAPIKey(s.ctx)
	s.Require().NoError(err)
	s.Require().NoError(s.auth.DeactivateAPIKey(s.ctx, key.ID))

	for _, credential := range []string{"", "not-a-uuid", uuid.NewString(), key.ID.String()} {
		_, err := s.apiKey.Authenticate(s.ctx, credential)
		s.ErrorIs(err, ErrUnauthorized, credential)
	}
}

func (s *AuthServiceTestSuite) TestDeactivateAPIKey_NotFound() {
	err := s.auth.DeactivateAPIKey(s.ctx, uuid.New())
	s.ErrorIs(err, ErrAPIKeyNotFound)
}

func (s *AuthServiceTestSuite) TestLogin_IssuesVerifiableToken() {
	user := s.createUser("a@x.com")

	token, err := s.auth.Login(s.ctx, "a@x.com")
	s.Require().NoError(err)

	id, err := s.tokens.Authenticate(s.ctx, "Bearer "+token)
	s.Require().NoError(err)
	s.Equal(IdentityUser, id.Kind)
	s.Equal(user.ID, *id.UserID)
	s.Equal("a@x.com", id.Email)
	s.Equal("Ada", id.FirstName)
	s.Equal("Lovelace", id.LastName)

	// The prefix is optional.
	_, err = s.tokens.Authenticate(s.ctx, token)
	s.NoError(err)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	_, err := s.auth.Login(s.ctx, "nobody@x.com")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_DisabledInAPIKeyMode() {
	s.createUser("a@x.com")
	auth := NewAuthService(s.users, nil, s.keys, s.log)

	_, err := auth.Login(s.ctx, "a@x.com")
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestToken_Expired() {
	user := s.createUser("a@x.com")
	token, err := s.tokens.Issue(user)
	s.Require().NoError(err)

	s.tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = s.tokens.Authenticate(s.ctx, token)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestToken_WrongSecret() {
	user := s.createUser("a@x.com")
	forger := NewTokenAuthenticator("other-secret", "test-issuer", time.Hour, s.users)
	token, err := forger.Issue(user)
	s.Require().NoError(err)

	_, err = s.tokens.Authenticate(s.ctx, token)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestToken_UnsignedAlgorithmRejected() {
	user := s.createUser("a@x.com")
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    "test-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)

	_, err = s.tokens.Authenticate(s.ctx, token)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestToken_SubjectDeleted() {
	user := s.createUser("a@x.com")
	token, err := s.tokens.Issue(user)
	s.Require().NoError(err)

	_, err = s.users.Delete(s.ctx, user.ID)
	s.Require().NoError(err)

	_, err = s.tokens.Authenticate(s.ctx, token)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestIdentityContext() {
	userID := uuid.New()
	ctx := ContextWithIdentity(s.ctx, Identity{Kind: IdentityUser, UserID: &userID})

	id, ok := IdentityFromContext(ctx)
	s.True(ok)
	s.Equal(userID, *id.UserID)

	_, ok = IdentityFromContext(s.ctx)
	s.False(ok)
}
