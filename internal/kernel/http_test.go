package kernel_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storerating/config"
	"github.com/shashiranjanraj/storerating/internal/kernel"
	"github.com/shashiranjanraj/storerating/internal/testdb"
	"github.com/shashiranjanraj/storerating/pkg/testkit"
)

type client struct {
	t *testing.T
	h http.Handler
}

func (c client) do(method, path, token string, body any) (int, map[string]any) {
	c.t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	out := map[string]any{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func (c client) signupAndLogin(name, email, role string) (uint, string) {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": name, "email": email, "password": "Secret@123", "address": "1 Test Street", "role": role,
	})
	require.Equal(c.t, http.StatusCreated, code, body)
	id := uint(body["userId"].(float64))

	code, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": "Secret@123",
	})
	require.Equal(c.t, http.StatusOK, code, body)
	return id, body["token"].(string)
}

func newClient(t *testing.T) client {
	t.Helper()
	config.Set("JWT_SECRET", "kernel-test-secret")
	config.Set("ALLOW_ADMIN_SIGNUP", "true")
	config.Set("APP_ENV", "testing")
	t.Cleanup(func() {
		config.Unset("JWT_SECRET")
		config.Unset("ALLOW_ADMIN_SIGNUP")
		config.Unset("APP_ENV")
	})

	k := kernel.NewHTTPKernel(kernel.Deps{DB: testdb.New(t)})
	return client{t: t, h: k.Handler()}
}

func TestScenarios(t *testing.T) {
	c := newClient(t)
	testkit.RunDir(t, c.h, "testdata")
}

func TestPublicRoutes(t *testing.T) {
	c := newClient(t)

	code, body := c.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Store Rating API", body["message"])
	assert.Equal(t, "1.0.0", body["version"])

	code, body = c.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Server is running", body["message"])
	assert.NotEmpty(t, body["timestamp"])

	code, body = c.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
}

func TestSignupValidation(t *testing.T) {
	c := newClient(t)

	code, body := c.do(http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": "Bob", "email": "bob", "password": "x", "role": "user",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, body)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGates(t *testing.T) {
	c := newClient(t)
	_, userToken := c.signupAndLogin("Regular Customer Account", "user@example.com", "user")

	code, body := c.do(http.MethodGet, "/api/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Access denied. No token provided.", body["message"])

	code, _ = c.do(http.MethodGet, "/api/admin/dashboard", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body = c.do(http.MethodGet, "/api/admin/dashboard", userToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied. Insufficient permissions.", body["message"])

	code, _ = c.do(http.MethodGet, "/api/owner/dashboard", userToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestEndToEndFlow(t *testing.T) {
	c := newClient(t)
	adminID, adminToken := c.signupAndLogin("Platform Administrator", "admin@example.com", "admin")
	_, ownerToken := c.signupAndLogin("Store Owner Business Account", "owner@example.com", "owner")
	userID, userToken := c.signupAndLogin("Regular Customer Account", "user@example.com", "user")

	// Owner opens a store.
	code, body := c.do(http.MethodPost, "/api/owner/stores", ownerToken, map[string]any{
		"name": "Premium Coffee Shop Downtown", "email": "coffee@example.com", "address": "100 Main Street",
	})
	require.Equal(t, http.StatusCreated, code, body)
	storeID := uint(body["storeId"].(float64))

	// User sees it unrated.
	code, body = c.do(http.MethodGet, "/api/user/stores", userToken, nil)
	require.Equal(t, http.StatusOK, code)
	stores := body["stores"].([]any)
	require.Len(t, stores, 1)
	first := stores[0].(map[string]any)
	assert.Nil(t, first["average_rating"])
	assert.Nil(t, first["user_rating"])
	assert.EqualValues(t, 0, first["rating_count"])

	// Update before create is refused.
	code, _ = c.do(http.MethodPut, fmt.Sprintf("/api/user/ratings/%d", storeID), userToken, map[string]any{"rating": 3})
	assert.Equal(t, http.StatusNotFound, code)

	// Rate, then the duplicate is refused.
	code, body = c.do(http.MethodPost, "/api/user/ratings", userToken, map[string]any{"storeId": storeID, "rating": 4})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, "Rating added successfully", body["message"])

	code, body = c.do(http.MethodPost, "/api/user/ratings", userToken, map[string]any{"storeId": storeID, "rating": 5})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "You have already rated this store. Use update instead.", body["message"])

	code, _ = c.do(http.MethodPut, fmt.Sprintf("/api/user/ratings/%d", storeID), userToken, map[string]any{"rating": 2})
	assert.Equal(t, http.StatusOK, code)

	code, body = c.do(http.MethodGet, "/api/user/stores?sort=average_rating:desc", userToken, nil)
	require.Equal(t, http.StatusOK, code)
	first = body["stores"].([]any)[0].(map[string]any)
	assert.EqualValues(t, 2, first["average_rating"])
	assert.EqualValues(t, 2, first["user_rating"])

	code, body = c.do(http.MethodGet, "/api/user/ratings", userToken, nil)
	require.Equal(t, http.StatusOK, code)
	mine := body["ratings"].([]any)
	require.Len(t, mine, 1)
	assert.Equal(t, "Premium Coffee Shop Downtown", mine[0].(map[string]any)["store_name"])

	// Owner sees the rater.
	code, body = c.do(http.MethodGet, fmt.Sprintf("/api/owner/stores/%d/ratings", storeID), ownerToken, nil)
	require.Equal(t, http.StatusOK, code)
	ratings := body["ratings"].([]any)
	require.Len(t, ratings, 1)
	assert.Equal(t, "user@example.com", ratings[0].(map[string]any)["user_email"])

	code, _ = c.do(http.MethodGet, "/api/owner/stores/abc", ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = c.do(http.MethodGet, "/api/owner/stores/999", ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// Admin views.
	code, body = c.do(http.MethodGet, "/api/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, body["totalUsers"])
	assert.EqualValues(t, 1, body["totalStores"])
	assert.EqualValues(t, 1, body["totalRatings"])
	assert.EqualValues(t, 1, body["adminCount"])

	code, body = c.do(http.MethodGet, "/api/admin/users?role=owner", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	users := body["users"].([]any)
	require.Len(t, users, 1)
	assert.NotContains(t, users[0].(map[string]any), "password")

	code, body = c.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", adminID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "You cannot delete your own account", body["message"])

	code, _ = c.do(http.MethodGet, fmt.Sprintf("/api/admin/users/%d", userID), adminToken, nil)
	assert.Equal(t, http.StatusOK, code)

	// Logout revokes the token.
	code, _ = c.do(http.MethodGet, "/api/auth/me", userToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodPost, "/api/auth/logout", userToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, body = c.do(http.MethodGet, "/api/auth/me", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Token has been revoked", body["message"])
}

func TestMetricsEndpoint(t *testing.T) {
	c := newClient(t)
	c.signupAndLogin("Regular Customer Account", "user@example.com", "user")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storerating_domain_events_total{event="user.registered"}`)
	assert.Contains(t, rec.Body.String(), `route="/api/auth/login"`)
}

func TestDeletedAccountTokenIsRejected(t *testing.T) {
	c := newClient(t)
	_, adminToken := c.signupAndLogin("Platform Administrator", "admin@example.com", "admin")
	ownerID, ownerToken := c.signupAndLogin("Store Owner Business Account", "owner@example.com", "owner")

	code, _ := c.do(http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", ownerID), adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, body := c.do(http.MethodPost, "/api/owner/stores", ownerToken, map[string]any{
		"name": "Premium Coffee Shop Downtown", "email": "coffee@example.com", "address": "100 Main Street",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Account no longer exists", body["message"])
	assert.NotContains(t, body, "error")

	code, _ = c.do(http.MethodGet, "/api/auth/me", ownerToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}
