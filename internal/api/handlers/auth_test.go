package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"postly/internal/auth"

	"golang.org/x/crypto/bcrypt"
)

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("postly_test_jwt_secret_1234567890", "HS256", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginSuccess(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	tokens := newTestTokenService(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := testUser()
	user.Password = string(hashed)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username`).
		WillReturnRows(userRows(user))

	resp := httptest.NewRecorder()
	LoginUser(tokens)(resp, loginRequest("alice", "Secret123"))

	mustStatus(t, resp, http.StatusOK)
	payload := decodePayload(t, resp)
	data, ok := payload.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected token object, got %T", payload.Data)
	}
	if data["token_type"] != "bearer" {
		t.Fatalf("expected token_type bearer, got %v", data["token_type"])
	}

	// The issued token must verify and carry the identity claims.
	claims, err := tokens.Verify(data["access_token"].(string))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != user.Username {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	mustExpectationsMet(t, mock)
}

func TestLoginWrongPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	tokens := newTestTokenService(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := testUser()
	user.Password = string(hashed)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username`).
		WillReturnRows(userRows(user))

	resp := httptest.NewRecorder()
	LoginUser(tokens)(resp, loginRequest("alice", "wrong"))

	mustStatus(t, resp, http.StatusUnauthorized)
	payload := decodePayload(t, resp)
	if payload.Message != "Invalid Credentials" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
	mustExpectationsMet(t, mock)
}

func TestLoginUnknownUser(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	tokens := newTestTokenService(t)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username`).
		WillReturnRows(emptyRows())

	resp := httptest.NewRecorder()
	LoginUser(tokens)(resp, loginRequest("nobody", "Secret123"))

	// Same response as a wrong password: credentials are not distinguishable.
	mustStatus(t, resp, http.StatusUnauthorized)
	payload := decodePayload(t, resp)
	if payload.Message != "Invalid Credentials" {
		t.Fatalf("unexpected message %q", payload.Message)
	}
	mustExpectationsMet(t, mock)
}

func TestLoginMissingFields(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()
	tokens := newTestTokenService(t)

	resp := httptest.NewRecorder()
	LoginUser(tokens)(resp, loginRequest("alice", ""))

	mustStatus(t, resp, http.StatusBadRequest)
}
