package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"postly/internal/auth"
	"postly/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	previous := repositories.DB
	repositories.DB = gdb
	return mock, func() {
		repositories.DB = previous
		_ = db.Close()
	}
}

func newTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("postly_test_jwt_secret_1234567890", "HS256", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

func probeHandler(t *testing.T, sawUser *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r)
		if !ok {
			t.Error("expected identity in request context")
			return
		}
		if user.Username != "alice" {
			t.Errorf("unexpected user %q", user.Username)
		}
		*sawUser = true
	})
}

func TestAuthMissingHeader(t *testing.T) {
	tokens := newTokenService(t)
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without credentials")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if resp.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("expected Bearer challenge, got %q", resp.Header().Get("WWW-Authenticate"))
	}
}

func TestAuthMalformedHeader(t *testing.T) {
	tokens := newTokenService(t)
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without credentials")
	}))

	for _, header := range []string{"Bearer", "Basic abc", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Authorization", header)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.Code)
		}
	}
}

func TestAuthValidToken(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	tokens := newTokenService(t)

	issued, err := tokens.Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username"}).
			AddRow(1, "alice@example.com", "alice"))

	sawUser := false
	handler := Auth(tokens)(probeHandler(t, &sawUser))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+issued)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if !sawUser {
		t.Fatal("expected handler to observe the resolved identity")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestAuthTokenForDeletedUser(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	tokens := newTokenService(t)

	issued, err := tokens.Issue(99, "ghost")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Tightened behavior: an unresolvable user id is rejected outright.
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for a deleted user")
	}))

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+issued)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
