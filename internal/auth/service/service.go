package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"propertyhub/internal/auth/device"
	"propertyhub/internal/auth/models"
	"propertyhub/internal/platform/metrics"
	id "propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/secrets"
	"propertyhub/pkg/sentinel"
)

// UserStore defines the persistence interface for user data.
// Error Contract: Find methods return sentinel.ErrNotFound when the entity doesn't exist.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionStore defines the persistence interface for session data.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	Delete(ctx context.Context, sessionID id.SessionID) error
	DeleteByUser(ctx context.Context, userID id.UserID) error
}

// TokenGenerator issues signed session tokens.
type TokenGenerator interface {
	Generate(userID id.UserID, sessionID id.SessionID) (string, error)
}

const defaultSessionTTL = 24 * time.Hour

// Service implements sign-up, sign-in, sign-out, and account management.
type Service struct {
	users      UserStore
	sessions   SessionStore
	tokens     TokenGenerator
	sessionTTL time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSessionTTL configures the time-to-live duration for sessions.
// If not set or set to zero/negative, defaults to 24 hours.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(users UserStore, sessions SessionStore, tokens TokenGenerator, opts ...Option) (*Service, error) {
	if users == nil || sessions == nil {
		return nil, errors.New("user and session stores are required")
	}
	if tokens == nil {
		return nil, errors.New("token generator is required")
	}

	svc := &Service{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: defaultSessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc, nil
}

// SignUpCommand carries validated sign-up input.
type SignUpCommand struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// SignUp creates a manager account with a bcrypt-hashed password.
func (s *Service) SignUp(ctx context.Context, cmd *SignUpCommand) (*models.User, error) {
	hash, err := secrets.HashPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           id.NewUserID(),
		Email:        cmd.Email,
		Name:         cmd.Name,
		Phone:        cmd.Phone,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "an account with this email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create account")
	}

	if s.metrics != nil {
		s.metrics.IncrementUsersCreated()
	}
	s.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return user, nil
}

// SignInCommand carries validated sign-in input.
type SignInCommand struct {
	Email     string
	Password  string
	UserAgent string
}

// SignInResult bundles the session and its bearer token.
type SignInResult struct {
	User        *models.User
	Session     *models.Session
	AccessToken string
}

// SignIn verifies credentials and opens a new session.
func (s *Service) SignIn(ctx context.Context, cmd *SignInCommand) (*SignInResult, error) {
	user, err := s.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.recordAuthFailure()
			// Same message as a wrong password so the response does not
			// reveal whether the account exists.
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not look up account")
	}

	if err := secrets.VerifyPassword(cmd.Password, user.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			s.recordAuthFailure()
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, err
	}

	now := s.now()
	session := &models.Session{
		ID:        id.NewSessionID(),
		UserID:    user.ID,
		Device:    device.ParseUserAgent(cmd.UserAgent),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not create session")
	}

	accessToken, err := s.tokens.Generate(user.ID, session.ID)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementActiveSessions()
	}
	s.logger.InfoContext(ctx, "user signed in", "user_id", user.ID, "session_id", session.ID, "device", session.Device)

	return &SignInResult{User: user, Session: session, AccessToken: accessToken}, nil
}

// SignOut deletes the session. Signing out an already-deleted session is a no-op.
func (s *Service) SignOut(ctx context.Context, sessionID id.SessionID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not sign out")
	}
	if s.metrics != nil {
		s.metrics.DecrementActiveSessions()
	}
	return nil
}

// CurrentUser returns the identity behind an authenticated request.
func (s *Service) CurrentUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not look up account")
	}
	return user, nil
}

// SessionExists implements the middleware session check; expired sessions
// count as absent.
func (s *Service) SessionExists(ctx context.Context, sessionID id.SessionID) (bool, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return !session.IsExpired(s.now()), nil
}

// ChangePassword verifies the current password and stores a new hash.
// All other sessions of the user are signed out.
func (s *Service) ChangePassword(ctx context.Context, userID id.UserID, sessionID id.SessionID, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeUnauthorized, "account no longer exists")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not look up account")
	}

	if err := secrets.VerifyPassword(current, user.PasswordHash); err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			s.recordAuthFailure()
			return dErrors.New(dErrors.CodeUnauthorized, "current password is incorrect")
		}
		return err
	}

	hash, err := secrets.HashPassword(next)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not update password")
	}

	// Invalidate every session, then restore the caller's so they stay signed in.
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err == nil {
		if err := s.sessions.DeleteByUser(ctx, userID); err != nil {
			s.logger.WarnContext(ctx, "could not revoke other sessions after password change",
				"error", err, "user_id", userID)
		} else if err := s.sessions.Save(ctx, session); err != nil {
			s.logger.WarnContext(ctx, "could not restore current session after password change",
				"error", err, "user_id", userID)
		}
	}

	s.logger.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}

// UpdateProfileCommand carries profile field updates.
type UpdateProfileCommand struct {
	Name  string
	Phone string
}

// UpdateProfile updates the account's display fields.
func (s *Service) UpdateProfile(ctx context.Context, userID id.UserID, cmd *UpdateProfileCommand) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "account no longer exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not look up account")
	}

	user.Name = cmd.Name
	user.Phone = cmd.Phone
	if err := s.users.Update(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not update profile")
	}
	return user, nil
}

func (s *Service) recordAuthFailure() {
	if s.metrics != nil {
		s.metrics.IncrementAuthFailures()
	}
}
