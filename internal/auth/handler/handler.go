package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"propertyhub/internal/auth/models"
	"propertyhub/internal/auth/service"
	"propertyhub/internal/platform/middleware"
	id "propertyhub/pkg/domain"
	"propertyhub/pkg/platform/httputil"
)

// Service defines the interface for account and session operations.
type Service interface {
	SignUp(ctx context.Context, cmd *service.SignUpCommand) (*models.User, error)
	SignIn(ctx context.Context, cmd *service.SignInCommand) (*service.SignInResult, error)
	SignOut(ctx context.Context, sessionID id.SessionID) error
	CurrentUser(ctx context.Context, userID id.UserID) (*models.User, error)
	ChangePassword(ctx context.Context, userID id.UserID, sessionID id.SessionID, current, next string) error
	UpdateProfile(ctx context.Context, userID id.UserID, cmd *service.UpdateProfileCommand) (*models.User, error)
}

// Handler handles account endpoints: sign-up, sign-in, sign-out,
// session lookup, password change, and profile updates.
type Handler struct {
	auth   Service
	logger *slog.Logger
}

func New(auth Service, logger *slog.Logger) *Handler {
	return &Handler{auth: auth, logger: logger}
}

// RegisterPublic registers the routes that work without a bearer token.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/auth/signup", h.HandleSignUp)
	r.Post("/auth/signin", h.HandleSignIn)
}

// RegisterProtected registers the routes that require an authenticated session.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/auth/signout", h.HandleSignOut)
	r.Get("/auth/session", h.HandleSession)
	r.Post("/auth/password", h.HandleChangePassword)
	r.Put("/auth/profile", h.HandleUpdateProfile)
}

// HandleSignUp implements POST /auth/signup.
//
// Input: { "email": "...", "password": "...", "confirm_password": "...", "name": "...", "phone": "..." }
// Output: the created account.
func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SignUpRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user, err := h.auth.SignUp(ctx, &service.SignUpCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "sign-up failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sign-up successful",
		"request_id", requestID,
		"user_id", user.ID,
	)

	httputil.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleSignIn implements POST /auth/signin. A successful sign-in opens a
// session and returns its bearer token.
func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SignInRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.auth.SignIn(ctx, &service.SignInCommand{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "sign-in failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sign-in successful",
		"request_id", requestID,
		"user_id", result.User.ID,
		"session_id", result.Session.ID,
	)

	httputil.WriteJSON(w, http.StatusOK, SignInResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		User:        toUserResponse(result.User),
		Session: SessionResponse{
			ID:        result.Session.ID.String(),
			Device:    result.Session.Device,
			ExpiresAt: result.Session.ExpiresAt,
		},
	})
}

// HandleSignOut implements POST /auth/signout for the current session.
func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	sessionID := middleware.GetSessionID(ctx)

	if err := h.auth.SignOut(ctx, sessionID); err != nil {
		h.logger.ErrorContext(ctx, "sign-out failed",
			"error", err,
			"request_id", requestID,
			"session_id", sessionID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sign-out successful",
		"request_id", requestID,
		"session_id", sessionID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// HandleSession implements GET /auth/session. Returns the account behind
// the bearer token so the dashboard can restore state after a reload.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	userID, err := middleware.RequireUserID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	user, err := h.auth.CurrentUser(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "session lookup failed",
			"error", err,
			"request_id", requestID,
			"user_id", userID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleChangePassword implements POST /auth/password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	userID, err := middleware.RequireUserID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sessionID := middleware.GetSessionID(ctx)

	req, ok := httputil.DecodeAndPrepare[ChangePasswordRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.auth.ChangePassword(ctx, userID, sessionID, req.CurrentPassword, req.NewPassword); err != nil {
		h.logger.WarnContext(ctx, "password change failed",
			"error", err,
			"request_id", requestID,
			"user_id", userID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "password changed",
		"request_id", requestID,
		"user_id", userID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateProfile implements PUT /auth/profile.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	userID, err := middleware.RequireUserID(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	user, err := h.auth.UpdateProfile(ctx, userID, &service.UpdateProfileCommand{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "profile update failed",
			"error", err,
			"request_id", requestID,
			"user_id", userID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toUserResponse(user))
}
