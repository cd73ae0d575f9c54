package tests

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/adapters/middleware"
	"github.com/AchilleasB/baby-kliniek/clinic-service/test/mocks"
)

var anyStaff = []string{"admin", "doctor", "nurse", "receptionist"}

func generateTestKeys(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return privateKey, &privateKey.PublicKey
}

func createTestToken(privateKey *rsa.PrivateKey, role string, expired bool) string {
	exp := time.Now().Add(time.Hour)
	if expired {
		exp = time.Now().Add(-time.Hour)
	}

	claims := jwt.MapClaims{
		"sub":  "staff-123",
		"role": role,
		"exp":  exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenString, _ := token.SignedString(privateKey)
	return tokenString
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequireRole_NoAuthHeader(t *testing.T) {
	_, publicKey := generateTestKeys(t)
	mw := middleware.NewAuthMiddleware(publicKey, nil)

	handler := mw.RequireRole(anyStaff, okHandler)

	req := httptest.NewRequest("GET", "/api/patients", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_InvalidHeaderFormat(t *testing.T) {
	_, publicKey := generateTestKeys(t)
	mw := middleware.NewAuthMiddleware(publicKey, nil)

	handler := mw.RequireRole(anyStaff, okHandler)

	req := httptest.NewRequest("GET", "/api/patients", nil)
	req.Header.Set("Authorization", "InvalidFormat")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_InvalidToken(t *testing.T) {
	_, publicKey := generateTestKeys(t)
	mw := middleware.NewAuthMiddleware(publicKey, nil)

	handler := mw.RequireRole(anyStaff, okHandler)

	req := httptest.NewRequest("GET", "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.here")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_ExpiredToken(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	mw := middleware.NewAuthMiddleware(publicKey, nil)

	token := createTestToken(privateKey, "doctor", true) // expired

	handler := mw.RequireRole(anyStaff, okHandler)

	req := httptest.NewRequest("GET", "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_WrongSigningKey(t *testing.T) {
	otherKey, _ := generateTestKeys(t)
	_, publicKey := generateTestKeys(t)
	mw := middleware.NewAuthMiddleware(publicKey, nil)

	handler := mw.RequireRole(anyStaff, okHandler)

	req := httptest.NewRequest("GET", "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer "+createTestToken(otherKey, "doctor", false))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_RoleEnforcement(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	mw := middleware.NewAuthMiddleware(publicKey, nil)

	tests := []struct {
		name     string
		allowed  []string
		role     string
		expected int
	}{
		{"receptionist can book appointments", anyStaff, "receptionist", http.StatusOK},
		{"receptionist cannot manage staff", []string{"admin", "doctor"}, "receptionist", http.StatusForbidden},
		{"doctor cannot delete staff", []string{"admin"}, "doctor", http.StatusForbidden},
		{"admin can delete staff", []string{"admin"}, "admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := mw.RequireRole(tt.allowed, okHandler)

			req := httptest.NewRequest("GET", "/api/staff", nil)
			req.Header.Set("Authorization", "Bearer "+createTestToken(privateKey, tt.role, false))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestRequireRole_RevokedToken(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	blacklist := mocks.NewMockTokenBlacklist()
	mw := middleware.NewAuthMiddleware(publicKey, blacklist)

	token := createTestToken(privateKey, "doctor", false)
	sum := sha256.Sum256([]byte(token))
	blacklist.Revoke(hex.EncodeToString(sum[:]))

	handler := mw.RequireRole(anyStaff, okHandler)

	req := httptest.NewRequest("GET", "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for revoked token, got %d", rec.Code)
	}
}

func TestRequireRole_BlacklistOutageDegradesOpen(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	blacklist := mocks.NewMockTokenBlacklist()
	blacklist.CheckError = errors.New("redis down")
	mw := middleware.NewAuthMiddleware(publicKey, blacklist)

	handler := mw.RequireRole(anyStaff, okHandler)

	req := httptest.NewRequest("GET", "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer "+createTestToken(privateKey, "nurse", false))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 when the blacklist is unavailable, got %d", rec.Code)
	}
}

func TestRequireRole_ValidToken(t *testing.T) {
	privateKey, publicKey := generateTestKeys(t)
	mw := middleware.NewAuthMiddleware(publicKey, nil)

	token := createTestToken(privateKey, "admin", false)

	handlerCalled := false
	handler := mw.RequireRole(anyStaff, func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		userID, ok := r.Context().Value(middleware.UserIDKey).(string)
		if !ok || userID != "staff-123" {
			t.Errorf("expected user ID staff-123 in context, got %q", userID)
		}
		role, ok := r.Context().Value(middleware.RoleKey).(string)
		if !ok {
			t.Error("role not found in context")
		}
		if role != "admin" {
			t.Errorf("expected role admin, got %s", role)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !handlerCalled {
		t.Error("handler was not called")
	}
}
