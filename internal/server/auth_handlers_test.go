package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogicum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func signupBody(username, email, password string) []byte {
	body, _ := json.Marshal(map[string]string{
		"username":   username,
		"email":      email,
		"password":   password,
		"first_name": "Test",
		"last_name":  "User",
	})
	return body
}

func TestSignup_CreatesUserAndToken(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		bytes.NewReader(signupBody("newuser", "newuser@example.com", "Str0ng-Passw0rd!")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "newuser", body.User.Username)

	// The token authenticates follow-up requests.
	meReq := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+body.Token)
	meResp, err := app.Test(meReq)
	require.NoError(t, err)
	_ = meResp.Body.Close()
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	// Password hashes never leave the database in plain text.
	var stored models.User
	require.NoError(t, db.Where("username = ?", "newuser").First(&stored).Error)
	assert.NotEqual(t, "Str0ng-Passw0rd!", stored.Password)
}

func TestSignup_RejectsWeakPassword(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		bytes.NewReader(signupBody("weakling", "weak@example.com", "short")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignup_DuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)
	createUser(t, db, "taken", false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		bytes.NewReader(signupBody("someone", "taken@example.com", "Str0ng-Passw0rd!")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Str0ng-Passw0rd!"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "login", Email: "login@example.com", Password: string(hashed),
	}).Error)

	body := []byte(`{"email":"login@example.com","password":"Str0ng-Passw0rd!"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	_, app, db := newTestServer(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Str0ng-Passw0rd!"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "victim", Email: "victim@example.com", Password: string(hashed),
	}).Error)

	for _, body := range []string{
		`{"email":"victim@example.com","password":"wrong"}`,
		`{"email":"ghost@example.com","password":"Str0ng-Passw0rd!"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestAuthRequired_BadTokenRedirects(t *testing.T) {
	t.Parallel()

	_, app, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/api/auth/login", resp.Header.Get("Location"))
}
