package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"propertyhub/internal/auth/models"
	sessionstore "propertyhub/internal/auth/store/session"
	userstore "propertyhub/internal/auth/store/user"
	"propertyhub/internal/token"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

type AuthServiceSuite struct {
	suite.Suite
	ctx      context.Context
	users    *userstore.InMemoryStore
	sessions *sessionstore.InMemoryStore
	service  *Service
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = userstore.NewInMemory()
	s.sessions = sessionstore.NewInMemory()

	svc, err := New(s.users, s.sessions, token.New("test-signing-key", time.Hour))
	s.Require().NoError(err)
	s.service = svc
}

func (s *AuthServiceSuite) signUp(email string) *models.User {
	user, err := s.service.SignUp(s.ctx, &SignUpCommand{
		Email:    email,
		Password: "secret123",
		Name:     "Jordan Tester",
		Phone:    "+15550100",
	})
	s.Require().NoError(err)
	return user
}

// TestSignUpHashesPassword verifies that the stored credential is a hash.
// Justification: the raw password must never be persisted; sign-in only
// works through bcrypt verification.
func (s *AuthServiceSuite) TestSignUpHashesPassword() {
	user := s.signUp("manager@example.com")

	s.NotEmpty(user.PasswordHash)
	s.NotEqual("secret123", user.PasswordHash)
	s.False(user.ID.IsNil())
}

// TestSignUpDuplicateEmail verifies the conflict translation.
// Justification: account emails are unique regardless of case, and the
// caller should see a conflict rather than a raw store error.
func (s *AuthServiceSuite) TestSignUpDuplicateEmail() {
	s.signUp("manager@example.com")

	_, err := s.service.SignUp(s.ctx, &SignUpCommand{
		Email:    "MANAGER@example.com",
		Password: "another1",
		Name:     "Second",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

// TestSignInIssuesToken verifies the happy path end to end.
func (s *AuthServiceSuite) TestSignInIssuesToken() {
	user := s.signUp("manager@example.com")

	result, err := s.service.SignIn(s.ctx, &SignInCommand{
		Email:     "manager@example.com",
		Password:  "secret123",
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	})
	s.Require().NoError(err)

	s.Equal(user.ID, result.User.ID)
	s.NotEmpty(result.AccessToken)
	s.Equal(user.ID, result.Session.UserID)
	s.Contains(result.Session.Device, "Chrome")
	s.True(result.Session.ExpiresAt.After(result.Session.CreatedAt))
}

// TestSignInWrongPassword verifies rejection without an account-existence leak.
// Justification: wrong password and unknown email must produce the same
// unauthorized message so attackers can't enumerate accounts.
func (s *AuthServiceSuite) TestSignInWrongPassword() {
	s.signUp("manager@example.com")

	_, err := s.service.SignIn(s.ctx, &SignInCommand{Email: "manager@example.com", Password: "wrong-pass"})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	_, unknownErr := s.service.SignIn(s.ctx, &SignInCommand{Email: "nobody@example.com", Password: "secret123"})
	s.Require().Error(unknownErr)
	s.Equal(err.Error(), unknownErr.Error())
}

// TestSignOutRemovesSession verifies that the session stops validating.
func (s *AuthServiceSuite) TestSignOutRemovesSession() {
	s.signUp("manager@example.com")
	result, err := s.service.SignIn(s.ctx, &SignInCommand{Email: "manager@example.com", Password: "secret123"})
	s.Require().NoError(err)

	exists, err := s.service.SessionExists(s.ctx, result.Session.ID)
	s.Require().NoError(err)
	s.True(exists)

	s.Require().NoError(s.service.SignOut(s.ctx, result.Session.ID))

	exists, err = s.service.SessionExists(s.ctx, result.Session.ID)
	s.Require().NoError(err)
	s.False(exists)

	// Second sign-out of the same session is a no-op.
	s.NoError(s.service.SignOut(s.ctx, result.Session.ID))
}

// TestSessionExpiry verifies that an expired session counts as absent.
func (s *AuthServiceSuite) TestSessionExpiry() {
	now := time.Now()
	clock := &now

	svc, err := New(s.users, s.sessions, token.New("test-signing-key", time.Hour),
		WithSessionTTL(time.Minute),
		WithClock(func() time.Time { return *clock }),
	)
	s.Require().NoError(err)

	s.signUp("manager@example.com")
	result, err := svc.SignIn(s.ctx, &SignInCommand{Email: "manager@example.com", Password: "secret123"})
	s.Require().NoError(err)

	exists, err := svc.SessionExists(s.ctx, result.Session.ID)
	s.Require().NoError(err)
	s.True(exists)

	later := now.Add(2 * time.Minute)
	clock = &later

	exists, err = svc.SessionExists(s.ctx, result.Session.ID)
	s.Require().NoError(err)
	s.False(exists)
}

// TestChangePassword verifies rehash plus revocation of other sessions.
// Justification: after a password change only the session that performed
// the change may remain valid.
func (s *AuthServiceSuite) TestChangePassword() {
	user := s.signUp("manager@example.com")

	first, err := s.service.SignIn(s.ctx, &SignInCommand{Email: "manager@example.com", Password: "secret123"})
	s.Require().NoError(err)
	second, err := s.service.SignIn(s.ctx, &SignInCommand{Email: "manager@example.com", Password: "secret123"})
	s.Require().NoError(err)

	err = s.service.ChangePassword(s.ctx, user.ID, second.Session.ID, "secret123", "renewed456")
	s.Require().NoError(err)

	exists, err := s.service.SessionExists(s.ctx, first.Session.ID)
	s.Require().NoError(err)
	s.False(exists, "other sessions should be revoked")

	exists, err = s.service.SessionExists(s.ctx, second.Session.ID)
	s.Require().NoError(err)
	s.True(exists, "the changing session should survive")

	_, err = s.service.SignIn(s.ctx, &SignInCommand{Email: "manager@example.com", Password: "secret123"})
	s.Require().Error(err)

	_, err = s.service.SignIn(s.ctx, &SignInCommand{Email: "manager@example.com", Password: "renewed456"})
	s.NoError(err)
}

// TestChangePasswordWrongCurrent verifies the current-password gate.
func (s *AuthServiceSuite) TestChangePasswordWrongCurrent() {
	user := s.signUp("manager@example.com")
	result, err := s.service.SignIn(s.ctx, &SignInCommand{Email: "manager@example.com", Password: "secret123"})
	s.Require().NoError(err)

	err = s.service.ChangePassword(s.ctx, user.ID, result.Session.ID, "not-it", "renewed456")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

// TestUpdateProfile verifies display-field updates.
func (s *AuthServiceSuite) TestUpdateProfile() {
	user := s.signUp("manager@example.com")

	updated, err := s.service.UpdateProfile(s.ctx, user.ID, &UpdateProfileCommand{
		Name:  "Jordan Renamed",
		Phone: "+15550199",
	})
	s.Require().NoError(err)
	s.Equal("Jordan Renamed", updated.Name)
	s.Equal("+15550199", updated.Phone)

	reloaded, err := s.service.CurrentUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("Jordan Renamed", reloaded.Name)
}

// TestCurrentUserDeletedAccount verifies the unauthorized translation when
// the account behind a valid token is gone.
func (s *AuthServiceSuite) TestCurrentUserDeletedAccount() {
	_, err := s.service.CurrentUser(s.ctx, id.NewUserID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}
