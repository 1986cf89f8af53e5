package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fininsight-server/src/models"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type mockUserStore struct {
	users       map[string]*models.User
	emails      map[string]bool
	createCalls int
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{
		users:  make(map[string]*models.User),
		emails: make(map[string]bool),
	}
}

func (m *mockUserStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	m.createCalls++
	if _, ok := m.users[username]; ok {
		return nil, errors.New(`duplicate key value violates unique constraint "users_username_key"`)
	}
	user := &models.User{ID: int64(len(m.users) + 1), Username: username, Email: email, PasswordHash: passwordHash}
	m.users[username] = user
	m.emails[strings.ToLower(email)] = true
	return user, nil
}

func (m *mockUserStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := m.users[username]; ok {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func (m *mockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emails[strings.ToLower(email)], nil
}

func (m *mockUserStore) addUser(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user, err := m.CreateUser(context.Background(), username, email, string(hash))
	if err != nil {
		t.Fatal(err)
	}
	return user
}

func postJSON(handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	handler(w, r)
	return w
}

func TestRegister(t *testing.T) {
	store := newMockUserStore()
	w := postJSON(Register(store), "/api/core/register/", `{"username": "alice123", "email": "alice@example.com", "password": "hunter2hunter2"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("Register status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp models.RegisterResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != "alice123" || resp.Email != "alice@example.com" || resp.ID == 0 {
		t.Errorf("Register response = %+v", resp)
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username": "bob", "email": "bob@example.com", "password": "password1"}`},
		{"short password", `{"username": "bobby1", "email": "bob@example.com", "password": "pass1"}`},
		{"password without digit", `{"username": "bobby1", "email": "bob@example.com", "password": "passwords"}`},
		{"invalid email", `{"username": "bobby1", "email": "not-an-email", "password": "password1"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMockUserStore()
			w := postJSON(Register(store), "/api/core/register/", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Register status = %d, want 400", w.Code)
			}
			if store.createCalls != 0 {
				t.Error("Register created a user despite failing validation")
			}
		})
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	store := newMockUserStore()
	store.addUser(t, "alice123", "alice@example.com", "password1")

	w := postJSON(Register(store), "/api/core/register/", `{"username": "other456", "email": "ALICE@Example.COM", "password": "password1"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Register status = %d, want 400 for duplicate email", w.Code)
	}
	if len(store.users) != 1 {
		t.Errorf("Register created a second user with a duplicate email")
	}
}

func TestObtainTokenPair(t *testing.T) {
	store := newMockUserStore()
	store.addUser(t, "alice123", "alice@example.com", "password1")

	w := postJSON(ObtainTokenPair(store, testSecret), "/api/token/", `{"username": "alice123", "password": "password1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("ObtainTokenPair status = %d, want 200", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["access"] == "" || resp["refresh"] == "" {
		t.Errorf("ObtainTokenPair response missing tokens: %v", resp)
	}

	claims, err := parseToken(resp["access"], testSecret)
	if err != nil {
		t.Fatalf("access token does not validate: %v", err)
	}
	if claims["username"] != "alice123" || claims["email"] != "alice@example.com" {
		t.Errorf("access token claims = %v", claims)
	}
	if claims["token_type"] != "access" {
		t.Errorf("access token token_type = %v", claims["token_type"])
	}
}

func TestObtainTokenPairWrongPassword(t *testing.T) {
	store := newMockUserStore()
	store.addUser(t, "alice123", "alice@example.com", "password1")

	w := postJSON(ObtainTokenPair(store, testSecret), "/api/token/", `{"username": "alice123", "password": "wrong"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("ObtainTokenPair status = %d, want 401", w.Code)
	}
}

func TestRefreshToken(t *testing.T) {
	user := &models.User{ID: 7, Username: "alice123", Email: "alice@example.com"}
	refresh, err := newToken(user, "refresh", testSecret, refreshTokenLifetime)
	if err != nil {
		t.Fatal(err)
	}

	w := postJSON(RefreshToken(testSecret), "/api/token/refresh/", `{"refresh": "`+refresh+`"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("RefreshToken status = %d, want 200", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	claims, err := parseToken(resp["access"], testSecret)
	if err != nil {
		t.Fatalf("refreshed access token does not validate: %v", err)
	}
	if claims["token_type"] != "access" || claims["username"] != "alice123" {
		t.Errorf("refreshed token claims = %v", claims)
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	user := &models.User{ID: 7, Username: "alice123", Email: "alice@example.com"}
	access, err := newToken(user, "access", testSecret, accessTokenLifetime)
	if err != nil {
		t.Fatal(err)
	}

	w := postJSON(RefreshToken(testSecret), "/api/token/refresh/", `{"refresh": "`+access+`"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("RefreshToken accepted an access token: status = %d", w.Code)
	}
}
