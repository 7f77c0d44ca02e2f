package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := manager.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	got, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if got != userID {
		t.Errorf("Verify() = %s, want %s", got, userID)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)
	expired := NewTokenManager("test-secret", -time.Minute)
	userID := uuid.New()

	foreign, err := other.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	stale, err := expired.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"empty", ""},
		{"wrong secret", foreign},
		{"expired", stale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Verify(tt.token); err != ErrInvalidToken {
				t.Errorf("Verify(%s) error = %v, want ErrInvalidToken", tt.name, err)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()
	token, err := manager.Issue(userID)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	var seen uuid.UUID
	var seenOK bool
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, seenOK = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"invalid token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen, seenOK = uuid.Nil, false
			req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if !seenOK || seen != userID {
					t.Errorf("UserID() = %s ok=%v, want %s", seen, seenOK, userID)
				}
			} else {
				if seenOK {
					t.Error("handler ran on a rejected request")
				}
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q, want application/json", ct)
				}
				if rec.Body.String() != `{"status":"error","message":"Missing or invalid token"}` {
					t.Errorf("body = %q, want the error envelope", rec.Body.String())
				}
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hashed == "hunter2hunter2" {
		t.Fatal("HashPassword() returned the plaintext")
	}
	if !CheckPassword(hashed, "hunter2hunter2") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hashed, "wrong") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}
