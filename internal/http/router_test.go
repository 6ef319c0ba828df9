package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	intconfig "drowsiness-dashboard/internal/config"
	"drowsiness-dashboard/internal/repositories"
	"drowsiness-dashboard/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	auth, err := services.NewAuthService("admin", "", string(hash), "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	r := NewRouter(intconfig.Env{CORSAllowedOrigins: []string{"http://localhost:3000"}}, Deps{
		Trips: repositories.NewTripRecordRepository(db, time.Second),
		Auth:  auth,
	})
	return r, mock
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(`{"username":"admin","password":"s3cret"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var session services.Session
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session.Token
}

func TestListingRequiresAuthorization(t *testing.T) {
	r, mock := newTestRouter(t)

	for _, path := range []string{"/api/trips", "/api/trips/report.pdf"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, w.Code)
		}
	}

	// Browsers are sent to the login form instead of a JSON error.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trips", nil))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login?next=%2Ftrips" {
		t.Fatalf("/trips: expected redirect to login, got %d %q", w.Code, w.Header().Get("Location"))
	}

	// The store must not be queried for unauthorized callers.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected store access: %v", err)
	}
}

func TestAuthorizedInsertThenList(t *testing.T) {
	r, mock := newTestRouter(t)
	token := login(t, r)

	mock.ExpectExec("INSERT INTO viaje").
		WithArgs(sqlmock.AnyArg(), 12, 3, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT id_viaje, hora_viaje, parpadeo, cabeceos, bosteso FROM viaje").
		WillReturnRows(sqlmock.NewRows([]string{"id_viaje", "hora_viaje", "parpadeo", "cabeceos", "bosteso"}).
			AddRow(int64(1), time.Date(2024, 1, 1, 8, 0, 0, 0, time.Local), 12, 3, 1))

	req := httptest.NewRequest(http.MethodPost, "/api/trips", bytes.NewReader([]byte(`{"timestamp":"2024-01-01T08:00:00Z","blinkCount":12,"headNodCount":3,"yawnCount":1}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var resp struct {
		Data []struct {
			ID           int64 `json:"id"`
			BlinkCount   int   `json:"blinkCount"`
			HeadNodCount int   `json:"headNodCount"`
			YawnCount    int   `json:"yawnCount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != 1 || resp.Data[0].BlinkCount != 12 || resp.Data[0].HeadNodCount != 3 || resp.Data[0].YawnCount != 1 {
		t.Fatalf("unexpected listing %+v", resp.Data)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBrowserLoginFlow(t *testing.T) {
	r, mock := newTestRouter(t)
	mock.ExpectQuery("SELECT id_viaje, hora_viaje, parpadeo, cabeceos, bosteso FROM viaje").
		WillReturnRows(sqlmock.NewRows([]string{"id_viaje", "hora_viaje", "parpadeo", "cabeceos", "bosteso"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login?next=%2Ftrips", nil))
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`name="password"`)) {
		t.Fatalf("expected login form, got %d", w.Code)
	}

	form := "username=admin&password=s3cret&next=%2Ftrips"
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(form)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/trips" {
		t.Fatalf("expected redirect to /trips, got %d %q", w.Code, w.Header().Get("Location"))
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("session cookie not set")
	}

	req = httptest.NewRequest(http.MethodGet, "/trips", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("No trips found.")) {
		t.Fatalf("expected trips page, got %d %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHealthAndDBCheck(t *testing.T) {
	r, mock := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", w.Code)
	}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM viaje").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/db-check", nil))
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"trips_in_db":3`)) {
		t.Fatalf("db-check: unexpected %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
