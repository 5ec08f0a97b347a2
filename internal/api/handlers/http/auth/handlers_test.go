package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"

	"saferoute/internal/api/handlers/http/auth"
	mock_auth "saferoute/internal/api/handlers/http/auth/mocks"
	"saferoute/internal/domain"
	"saferoute/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestLogin_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authn := mock_auth.NewMockAuthenticator(ctrl)
	h := auth.NewHandler(newTestLogger(), authn)

	authn.EXPECT().
		Login(gomock.Any(), domain.LoginRequest{Username: "admin", Password: "admin123"}).
		Return(domain.LoginResponse{Token: "dummy-admin-token", Role: domain.RoleAuthority}, nil)

	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"admin","password":"admin123"}`)))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d, body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	var got domain.LoginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Token != "dummy-admin-token" || got.Role != "authority" {
		t.Fatalf("unexpected response %+v", got)
	}
}

func TestLogin_BadCredentials_401(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authn := mock_auth.NewMockAuthenticator(ctrl)
	h := auth.NewHandler(newTestLogger(), authn)

	authn.EXPECT().Login(gomock.Any(), gomock.Any()).Return(domain.LoginResponse{}, e.ErrUnauthorized)

	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"admin","password":"nope"}`)))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d got %d, body=%s", http.StatusUnauthorized, rr.Code, rr.Body.String())
	}
}

func TestLogin_InvalidJSON_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := auth.NewHandler(newTestLogger(), mock_auth.NewMockAuthenticator(ctrl))

	rr := httptest.NewRecorder()
	h.Login(rr, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":`)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d, body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}
