package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/settings/service"
	"propertyhub/internal/settings/store"
	id "propertyhub/pkg/domain"
)

type SettingsHandlerSuite struct {
	suite.Suite
	router chi.Router
	userID id.UserID
}

func (s *SettingsHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.userID = id.NewUserID()

	svc, err := service.New(store.NewInMemory(), service.WithLogger(logger))
	s.Require().NoError(err)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(func(next http.Handler) http.Handler {
		// Stand-in for RequireAuth: inject the authenticated user directly.
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), s.userID)))
		})
	})
	New(svc, logger).Register(router)
	s.router = router
}

func (s *SettingsHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *SettingsHandlerSuite) TestGetDefaults() {
	rec := s.do(http.MethodGet, "/settings", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got SettingsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("email", got.PreferredMethod)
	s.True(got.EmailNotifications)
	s.Equal(5, got.DefaultDueDay)
}

func (s *SettingsHandlerSuite) TestUpdateRoundTrip() {
	rec := s.do(http.MethodPut, "/settings",
		`{"preferred_method":"both","email_notifications":true,"sms_notifications":true,
		  "payment_reminders":true,"maintenance_alerts":false,
		  "payment_instructions":"Pay via bank transfer.","default_due_day":3}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/settings", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got SettingsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("both", got.PreferredMethod)
	s.False(got.MaintenanceAlerts)
	s.Equal("Pay via bank transfer.", got.PaymentInstructions)
	s.Equal(3, got.DefaultDueDay)
}

func (s *SettingsHandlerSuite) TestUpdateValidation() {
	tests := []struct {
		name string
		body string
	}{
		{"missing method", `{"default_due_day":3}`},
		{"unknown method", `{"preferred_method":"fax","default_due_day":3}`},
		{"due day too low", `{"preferred_method":"email","default_due_day":0}`},
		{"due day too high", `{"preferred_method":"email","default_due_day":29}`},
	}
	for _, tt := range tests {
		s.T().Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPut, "/settings", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSettingsHandlerSuite(t *testing.T) {
	suite.Run(t, new(SettingsHandlerSuite))
}
