package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"triton-system/internal/auth"
	"triton-system/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memoryTokenStore is a map-backed TokenStore so tests do not need redis.
type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]int64
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]int64)}
}

func (s *memoryTokenStore) Save(_ context.Context, jti string, userID int64, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[jti] = userID
	return nil
}

func (s *memoryTokenStore) Get(_ context.Context, jti string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[jti]
	if !ok {
		return 0, auth.ErrTokenNotFound
	}
	return id, nil
}

func (s *memoryTokenStore) Delete(_ context.Context, jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, jti)
	return nil
}

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := NewRouter(db, newMemoryTokenStore(), "")
	return db, r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// registerAndLogin creates a user through the public endpoints and returns
// an access token plus the user id.
func registerAndLogin(t *testing.T, r *gin.Engine, username string) (string, int64) {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/register/", "", map[string]interface{}{
		"username": username,
		"email":    username + "@example.com",
		"password": "pass1234",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/login/", "", map[string]interface{}{
		"username": username,
		"password": "pass1234",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}

	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
		User    struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	decodeJSON(t, w, &resp)
	if resp.Access == "" || resp.Refresh == "" {
		t.Fatalf("login %s: missing tokens in %s", username, "response")
	}
	return resp.Access, resp.User.ID
}

// createOrgTriple builds a company/location/shop chain through the API and
// returns the three ids.
func createOrgTriple(t *testing.T, r *gin.Engine, token, company, location, shop string) (int64, int64, int64) {
	t.Helper()

	var companyResp struct {
		ID int64 `json:"id"`
	}
	w := doRequest(t, r, http.MethodPost, "/companies/", token, map[string]interface{}{"name": company})
	if w.Code != http.StatusCreated {
		t.Fatalf("create company: status %d body %s", w.Code, w.Body.String())
	}
	decodeJSON(t, w, &companyResp)

	var locationResp struct {
		ID int64 `json:"id"`
	}
	w = doRequest(t, r, http.MethodPost, "/locations/", token, map[string]interface{}{
		"name":    location,
		"company": companyResp.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create location: status %d body %s", w.Code, w.Body.String())
	}
	decodeJSON(t, w, &locationResp)

	var shopResp struct {
		ID int64 `json:"id"`
	}
	w = doRequest(t, r, http.MethodPost, "/shops/", token, map[string]interface{}{
		"name":     shop,
		"location": locationResp.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create shop: status %d body %s", w.Code, w.Body.String())
	}
	decodeJSON(t, w, &shopResp)

	return companyResp.ID, locationResp.ID, shopResp.ID
}

func detailPath(resource string, id int64) string {
	return fmt.Sprintf("/%s/%d/", resource, id)
}

func itoa(id int64) string {
	return fmt.Sprintf("%d", id)
}
