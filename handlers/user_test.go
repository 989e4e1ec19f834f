package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"inventoryapp/database"
	"inventoryapp/models"
	"inventoryapp/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "inventory.db")
	require.NoError(t, database.Initialize("sqlite", dsn))
	t.Cleanup(func() { database.Close() })

	utils.ConfigureJWT("test-secret", time.Hour)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func registerTestUser(t *testing.T, email, name, password string) {
	t.Helper()

	rec := postJSON(t, Register, "/api/users/register", models.RegisterRequest{
		Email:    email,
		Name:     name,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestRegister(t *testing.T) {
	setupTestDB(t)

	t.Run("creates a new account", func(t *testing.T) {
		rec := postJSON(t, Register, "/api/users/register", models.RegisterRequest{
			Email:    "user@example.com",
			Name:     "Test User",
			Password: "password123",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "success", decodeResponse(t, rec).Status)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := postJSON(t, Register, "/api/users/register", models.RegisterRequest{
			Email:    "user@example.com",
			Name:     "Someone Else",
			Password: "password456",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		cases := []models.RegisterRequest{
			{Email: "not-an-email", Name: "X", Password: "password123"},
			{Email: "ok@example.com", Name: "", Password: "password123"},
			{Email: "ok@example.com", Name: "X", Password: "short"},
		}
		for _, req := range cases {
			rec := postJSON(t, Register, "/api/users/register", req)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "req=%+v", req)
		}
	})

	t.Run("rejects invalid json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		Register(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSignIn(t *testing.T) {
	setupTestDB(t)
	registerTestUser(t, "user@example.com", "Test User", "password123")

	t.Run("unknown email is not found", func(t *testing.T) {
		rec := postJSON(t, SignIn, "/api/users/signin", models.LoginRequest{
			Email:    "missing@example.com",
			Password: "password123",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		rec := postJSON(t, SignIn, "/api/users/signin", models.LoginRequest{
			Email:    "user@example.com",
			Password: "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid credentials return a usable token", func(t *testing.T) {
		rec := postJSON(t, SignIn, "/api/users/signin", models.LoginRequest{
			Email:    "user@example.com",
			Password: "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)

		token, _ := data["token"].(string)
		require.NotEmpty(t, token)

		claims, err := utils.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, "Test User", claims.Name)
	})
}

func TestSignInStoreFailure(t *testing.T) {
	setupTestDB(t)
	registerTestUser(t, "user@example.com", "Test User", "password123")

	// 닫힌 스토어는 사용자-없음이 아니라 서버 에러다
	require.NoError(t, database.Close())

	rec := postJSON(t, SignIn, "/api/users/signin", models.LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetProfile(t *testing.T) {
	setupTestDB(t)
	registerTestUser(t, "user@example.com", "Test User", "password123")

	t.Run("missing identity is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		rec := httptest.NewRecorder()
		GetProfile(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("returns the authenticated user's profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		ctx := context.WithValue(req.Context(), "email", "user@example.com")
		rec := httptest.NewRecorder()
		GetProfile(rec, req.WithContext(ctx))

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		data, ok := resp.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "user@example.com", data["email"])
		assert.Equal(t, "Test User", data["name"])
	})

	t.Run("deleted account is not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		ctx := context.WithValue(req.Context(), "email", "gone@example.com")
		rec := httptest.NewRecorder()
		GetProfile(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
