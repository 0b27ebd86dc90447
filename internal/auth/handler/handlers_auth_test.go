package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"propertyhub/internal/auth/service"
	sessionstore "propertyhub/internal/auth/store/session"
	userstore "propertyhub/internal/auth/store/user"
	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/token"
	dErrors "propertyhub/pkg/domain-errors"
)

type AuthHandlerSuite struct {
	suite.Suite
	ctx    context.Context
	router chi.Router
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens := token.New("handler-test-key", time.Hour)
	svc, err := service.New(
		userstore.NewInMemory(),
		sessionstore.NewInMemory(),
		tokens,
		service.WithLogger(logger),
	)
	s.Require().NoError(err)

	h := New(svc, logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Group(h.RegisterPublic)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(token.NewMiddlewareAdapter(tokens), svc, logger))
		h.RegisterProtected(r)
	})
	s.router = router
}

func (s *AuthHandlerSuite) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AuthHandlerSuite) signUpAndIn() (string, UserResponse) {
	rec := s.do(http.MethodPost, "/auth/signup",
		`{"email":"manager@example.com","password":"secret123","confirm_password":"secret123","name":"Jordan Tester"}`, "")
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/auth/signin",
		`{"email":"manager@example.com","password":"secret123"}`, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var signIn SignInResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &signIn))
	s.Require().NotEmpty(signIn.AccessToken)
	return signIn.AccessToken, signIn.User
}

func (s *AuthHandlerSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body struct {
		Error string `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func (s *AuthHandlerSuite) TestSignUpValidation() {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"email": "`},
		{"missing email", `{"password":"secret123","confirm_password":"secret123","name":"A"}`},
		{"bad email", `{"email":"not-an-email","password":"secret123","confirm_password":"secret123","name":"A"}`},
		{"short password", `{"email":"a@b.com","password":"abc","confirm_password":"abc","name":"A"}`},
		{"mismatched confirmation", `{"email":"a@b.com","password":"secret123","confirm_password":"secret124","name":"A"}`},
		{"blank name", `{"email":"a@b.com","password":"secret123","confirm_password":"secret123","name":"   "}`},
	}
	for _, tt := range tests {
		s.T().Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/auth/signup", tt.body, "")
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func (s *AuthHandlerSuite) TestSignUpDuplicateEmailConflict() {
	body := `{"email":"manager@example.com","password":"secret123","confirm_password":"secret123","name":"Jordan"}`
	rec := s.do(http.MethodPost, "/auth/signup", body, "")
	s.Require().Equal(http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/auth/signup", body, "")
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal(string(dErrors.CodeConflict), s.errorCode(rec))
}

func (s *AuthHandlerSuite) TestSignUpDoesNotExposeHash() {
	rec := s.do(http.MethodPost, "/auth/signup",
		`{"email":"manager@example.com","password":"secret123","confirm_password":"secret123","name":"Jordan"}`, "")
	s.Require().Equal(http.StatusCreated, rec.Code)
	s.NotContains(rec.Body.String(), "password")
	s.NotContains(rec.Body.String(), "hash")
}

func (s *AuthHandlerSuite) TestSignInAndSessionLookup() {
	accessToken, user := s.signUpAndIn()

	rec := s.do(http.MethodGet, "/auth/session", "", accessToken)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got UserResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(user.ID, got.ID)
	s.Equal("manager@example.com", got.Email)
}

func (s *AuthHandlerSuite) TestSignInBadCredentials() {
	s.signUpAndIn()

	rec := s.do(http.MethodPost, "/auth/signin",
		`{"email":"manager@example.com","password":"wrong-pass"}`, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal(string(dErrors.CodeUnauthorized), s.errorCode(rec))
}

func (s *AuthHandlerSuite) TestProtectedRoutesRequireToken() {
	rec := s.do(http.MethodGet, "/auth/session", "", "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/auth/signout", "", "garbage-token")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthHandlerSuite) TestSignOutInvalidatesToken() {
	accessToken, _ := s.signUpAndIn()

	rec := s.do(http.MethodPost, "/auth/signout", "", accessToken)
	s.Require().Equal(http.StatusNoContent, rec.Code)

	// The token still parses but its session is gone.
	rec = s.do(http.MethodGet, "/auth/session", "", accessToken)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *AuthHandlerSuite) TestChangePassword() {
	accessToken, _ := s.signUpAndIn()

	rec := s.do(http.MethodPost, "/auth/password",
		`{"current_password":"secret123","new_password":"renewed456","confirm_password":"renewed456"}`, accessToken)
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/auth/signin",
		`{"email":"manager@example.com","password":"secret123"}`, "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/auth/signin",
		`{"email":"manager@example.com","password":"renewed456"}`, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthHandlerSuite) TestUpdateProfile() {
	accessToken, _ := s.signUpAndIn()

	rec := s.do(http.MethodPut, "/auth/profile",
		`{"name":"Jordan Renamed","phone":"+15550199"}`, accessToken)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var got UserResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("Jordan Renamed", got.Name)
	s.Equal("+15550199", got.Phone)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}
