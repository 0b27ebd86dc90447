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

	"propertyhub/internal/platform/middleware"
	"propertyhub/internal/reminder/service"
	reminderstore "propertyhub/internal/reminder/store"
	settingsservice "propertyhub/internal/settings/service"
	settingsstore "propertyhub/internal/settings/store"
	tenantmodels "propertyhub/internal/tenant/models"
	tenantstore "propertyhub/internal/tenant/store"

	paymentstore "propertyhub/internal/payment/store"
	id "propertyhub/pkg/domain"
)

type ReminderHandlerSuite struct {
	suite.Suite
	router  chi.Router
	tenants *tenantstore.InMemoryStore
}

func (s *ReminderHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.tenants = tenantstore.NewInMemory()

	settingsSvc, err := settingsservice.New(settingsstore.NewInMemory())
	s.Require().NoError(err)

	svc, err := service.New(reminderstore.NewInMemory(), s.tenants, paymentstore.NewInMemory(), settingsSvc,
		service.WithLogger(logger))
	s.Require().NoError(err)

	userID := id.NewUserID()
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), userID)))
		})
	})
	New(svc, logger).Register(router)
	s.router = router
}

func (s *ReminderHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
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

func (s *ReminderHandlerSuite) addActiveTenant(name string) {
	err := s.tenants.Create(context.Background(), &tenantmodels.Tenant{
		ID:        id.NewTenantID(),
		Name:      name,
		Unit:      "201",
		Status:    tenantmodels.StatusActive,
		CreatedAt: time.Now(),
	})
	s.Require().NoError(err)
}

func (s *ReminderHandlerSuite) TestSendAndHistory() {
	s.addActiveTenant("Sarah Johnson")
	s.addActiveTenant("Mike Peterson")

	rec := s.do(http.MethodPost, "/reminders", `{"type":"upcoming","audience":"all"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var sent ReminderResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &sent))
	s.Equal("All Tenants (2)", sent.Recipients)
	s.Equal("Sent", sent.Status)

	rec = s.do(http.MethodGet, "/reminders", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var body struct {
		Reminders []ReminderResponse `json:"reminders"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Require().Len(body.Reminders, 1)
	s.Equal(sent.ID, body.Reminders[0].ID)
}

func (s *ReminderHandlerSuite) TestSendSpecific() {
	rec := s.do(http.MethodPost, "/reminders",
		`{"type":"due-today","audience":"specific","tenants":["Sarah Johnson"],"message":"Rent is due today."}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var sent ReminderResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &sent))
	s.Equal("Sarah Johnson", sent.Recipients)
	s.Equal("Rent is due today.", sent.Message)
}

func (s *ReminderHandlerSuite) TestSendValidation() {
	tests := []struct {
		name string
		body string
	}{
		{"missing type", `{"audience":"all"}`},
		{"unknown type", `{"type":"yearly","audience":"all"}`},
		{"unknown audience", `{"type":"upcoming","audience":"everyone"}`},
		{"blank tenant name", `{"type":"upcoming","audience":"specific","tenants":["  "]}`},
		{"nobody matches", `{"type":"upcoming","audience":"all"}`},
	}
	for _, tt := range tests {
		s.T().Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/reminders", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestReminderHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReminderHandlerSuite))
}
