package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"postly/internal/api/middleware"
	"postly/internal/models"
	"postly/internal/repositories"
	"postly/internal/utils"

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
		TranslateError:         true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}

	previous := repositories.DB
	repositories.DB = gdb

	cleanup := func() {
		repositories.DB = previous
		_ = db.Close()
	}
	return mock, cleanup
}

func requestWithUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), user))
}

func testUser() *models.User {
	return &models.User{
		ID:        1,
		Email:     "alice@example.com",
		Username:  "alice",
		CreatedAt: time.Now(),
	}
}

func userRows(user *models.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "username", "password", "phone_number", "created_at"}).
		AddRow(user.ID, user.Email, user.Username, user.Password, user.PhoneNumber, user.CreatedAt)
}

func emptyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id"})
}

func decodePayload(t *testing.T, resp *httptest.ResponseRecorder) utils.Payload {
	t.Helper()
	var payload utils.Payload
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	return payload
}

func mustStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Fatalf("expected status %d, got %d (body %s)", expected, resp.Code, resp.Body.String())
	}
}

func mustExpectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
