package report_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/schoolhub/schoolhub-api/internal/domain/report"
	"github.com/schoolhub/schoolhub-api/internal/pkg/jwt"
)

func newTestRouter(t *testing.T) (chi.Router, *jwt.Service) {
	t.Helper()
	jwtService := jwt.NewService("test-secret", time.Hour)
	r := chi.NewRouter()
	report.RegisterRoutes(r, report.NewHandler(nil), jwtService)
	return r, jwtService
}

func bearerToken(t *testing.T, jwtService *jwt.Service, role string, banned bool) string {
	t.Helper()
	token, err := jwtService.GenerateAccessToken(uuid.New(), role, banned)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func TestSubmit_UnauthorizedWithoutToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/reports/", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestSubmit_BannedUserForbidden(t *testing.T) {
	r, jwtService := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/reports/", strings.NewReader(`{}`))
	req.Header.Set("Authorization", bearerToken(t, jwtService, "user", true))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestSubmit_ValidationErrors(t *testing.T) {
	r, jwtService := newTestRouter(t)
	auth := bearerToken(t, jwtService, "user", false)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"empty body", `{}`, http.StatusUnprocessableEntity},
		{"bad category", `{"reported_content_id":"123e4567-e89b-12d3-a456-426614174000","reported_content_type":"post","category":"gossip","reason":"x"}`, http.StatusUnprocessableEntity},
		{"bad content type", `{"reported_content_id":"123e4567-e89b-12d3-a456-426614174000","reported_content_type":"story","category":"spam","reason":"x"}`, http.StatusUnprocessableEntity},
		{"missing reason", `{"reported_content_id":"123e4567-e89b-12d3-a456-426614174000","reported_content_type":"post","category":"spam"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/reports/", strings.NewReader(tt.body))
			req.Header.Set("Authorization", auth)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tt.code {
				t.Fatalf("expected %d, got %d (%s)", tt.code, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestModeratorRoutes_ForbiddenForUsers(t *testing.T) {
	r, jwtService := newTestRouter(t)
	auth := bearerToken(t, jwtService, "user", false)

	paths := []string{
		"/reports/",
		"/reports/overdue",
		"/reports/stats",
	}

	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", auth)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Fatalf("GET %s: expected 403, got %d", path, rr.Code)
		}
	}
}

func TestProcess_InvalidBody(t *testing.T) {
	r, jwtService := newTestRouter(t)
	auth := bearerToken(t, jwtService, "moderator", false)

	tests := []struct {
		name string
		path string
		body string
		code int
	}{
		{"bad report id", "/reports/not-a-uuid/process", `{"action":"dismiss","reason":"x"}`, http.StatusBadRequest},
		{"unknown action", "/reports/123e4567-e89b-12d3-a456-426614174000/process", `{"action":"obliterate","reason":"x"}`, http.StatusUnprocessableEntity},
		{"missing reason", "/reports/123e4567-e89b-12d3-a456-426614174000/process", `{"action":"dismiss"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Authorization", auth)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != tt.code {
				t.Fatalf("expected %d, got %d (%s)", tt.code, rr.Code, rr.Body.String())
			}
		})
	}
}
