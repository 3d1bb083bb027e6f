package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oracleball/oracleball/internal/store"
	"github.com/oracleball/oracleball/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// --- mock key store ---

type mockKeyStore struct {
	created []*models.APIKey
	listFn  func(ctx context.Context) ([]*models.APIKey, error)
	revoked []uuid.UUID
	errs    map[string]error
}

func (m *mockKeyStore) CreateAPIKey(_ context.Context, key *models.APIKey) error {
	if err := m.errs["create"]; err != nil {
		return err
	}
	m.created = append(m.created, key)
	return nil
}

func (m *mockKeyStore) ListAPIKeys(ctx context.Context) ([]*models.APIKey, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockKeyStore) RevokeAPIKey(_ context.Context, id uuid.UUID) error {
	if err := m.errs["revoke"]; err != nil {
		return err
	}
	m.revoked = append(m.revoked, id)
	return nil
}

func createKeyReq(t *testing.T, body any) *http.Request {
	t.Helper()
	b, _ := json.Marshal(body)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/admin/keys", bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// --- tests ---

func TestCreateKeyHandler_Success(t *testing.T) {
	st := &mockKeyStore{}
	h := NewCreateKeyHandler(st)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, createKeyReq(t, map[string]any{
		"name":   "ops-dashboard",
		"scopes": []string{"admin"},
	}))

	data := parseData(t, rec, http.StatusCreated)

	rawKey, _ := data["key"].(string)
	if !strings.HasPrefix(rawKey, "ob_") {
		t.Fatalf("expected ob_ prefixed key, got %q", rawKey)
	}
	if data["name"] != "ops-dashboard" {
		t.Errorf("unexpected name: %v", data["name"])
	}

	if len(st.created) != 1 {
		t.Fatalf("expected 1 stored key, got %d", len(st.created))
	}
	stored := st.created[0]
	if stored.KeyPrefix != rawKey[:8] {
		t.Errorf("prefix %q does not match raw key %q", stored.KeyPrefix, rawKey)
	}
	// Only a hash is stored; it must verify against the raw key.
	if err := bcrypt.CompareHashAndPassword([]byte(stored.KeyHash), []byte(rawKey)); err != nil {
		t.Errorf("stored hash does not match raw key: %v", err)
	}
}

func TestCreateKeyHandler_DefaultsScopes(t *testing.T) {
	st := &mockKeyStore{}
	h := NewCreateKeyHandler(st)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, createKeyReq(t, map[string]any{"name": "readonly"}))

	parseData(t, rec, http.StatusCreated)
	if st.created[0].Scopes == nil {
		t.Error("expected empty scopes slice, got nil")
	}
}

func TestCreateKeyHandler_MissingName(t *testing.T) {
	h := NewCreateKeyHandler(&mockKeyStore{})
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, createKeyReq(t, map[string]any{"scopes": []string{"admin"}}))

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest || code != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", status, code)
	}
}

func TestListKeysHandler_Empty(t *testing.T) {
	h := NewListKeysHandler(&mockKeyStore{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/keys", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data == nil {
		t.Error("expected empty array, got null")
	}
}

func TestRevokeKeyHandler_Success(t *testing.T) {
	st := &mockKeyStore{}
	id := uuid.New()

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/keys/"+id.String(), nil)

	router := chi.NewRouter()
	router.Delete("/api/v1/admin/keys/{keyID}", NewRevokeKeyHandler(st))
	router.ServeHTTP(rec, r)

	parseData(t, rec, http.StatusOK)
	if len(st.revoked) != 1 || st.revoked[0] != id {
		t.Errorf("expected revoke of %s, got %v", id, st.revoked)
	}
}

func TestRevokeKeyHandler_NotFound(t *testing.T) {
	st := &mockKeyStore{errs: map[string]error{"revoke": store.ErrNotFound}}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/keys/"+uuid.NewString(), nil)

	router := chi.NewRouter()
	router.Delete("/api/v1/admin/keys/{keyID}", NewRevokeKeyHandler(st))
	router.ServeHTTP(rec, r)

	status, code := parseErr(t, rec)
	if status != http.StatusNotFound || code != "KEY_NOT_FOUND" {
		t.Errorf("expected 404 KEY_NOT_FOUND, got %d %s", status, code)
	}
}

func TestRevokeKeyHandler_BadUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/keys/not-a-uuid", nil)

	router := chi.NewRouter()
	router.Delete("/api/v1/admin/keys/{keyID}", NewRevokeKeyHandler(&mockKeyStore{}))
	router.ServeHTTP(rec, r)

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest || code != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", status, code)
	}
}
