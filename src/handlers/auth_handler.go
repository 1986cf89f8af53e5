package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"fininsight-server/src/models"
	"fininsight-server/src/util"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenLifetime  = 60 * time.Minute
	refreshTokenLifetime = 24 * time.Hour
)

type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

func newToken(user *models.User, tokenType, secret string, lifetime time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": tokenType,
		"user_id":    user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"exp":        time.Now().Add(lifetime).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ObtainTokenPair authenticates username+password and issues an access token
// (60 min) and a refresh token (1 day), both HS256 with username and email
// claims.
func ObtainTokenPair(store UserStore, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Printf("ERROR: Failed to decode token request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		user, err := store.GetUserByUsername(r.Context(), credentials.Username)
		if err != nil {
			log.Printf("ERROR: Failed to find user during login - Username: %s: %v", credentials.Username, err)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
			log.Printf("ERROR: Invalid password attempt for username %s from IP %s", credentials.Username, r.RemoteAddr)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		access, err := newToken(user, "access", jwtSecret, accessTokenLifetime)
		if err == nil {
			var refresh string
			refresh, err = newToken(user, "refresh", jwtSecret, refreshTokenLifetime)
			if err == nil {
				log.Printf("INFO: Successful login - User: %s, ID: %d", user.Username, user.ID)
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]string{
					"access":  access,
					"refresh": refresh,
				})
				return
			}
		}

		log.Printf("ERROR: Failed to generate tokens for user %s: %v", user.Username, err)
		http.Error(w, "Error generating token", http.StatusInternalServerError)
	}
}

// RefreshToken exchanges a valid refresh token for a new access token.
func RefreshToken(jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Refresh string `json:"refresh"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
			http.Error(w, "refresh token not provided", http.StatusBadRequest)
			return
		}

		claims, err := parseToken(req.Refresh, jwtSecret)
		if err != nil {
			log.Printf("ERROR: Invalid refresh token: %v", err)
			http.Error(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		if tokenType, _ := claims["token_type"].(string); tokenType != "refresh" {
			http.Error(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			http.Error(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		username, _ := claims["username"].(string)
		email, _ := claims["email"].(string)

		user := &models.User{ID: int64(userID), Username: username, Email: email}
		access, err := newToken(user, "access", jwtSecret, accessTokenLifetime)
		if err != nil {
			log.Printf("ERROR: Failed to refresh access token for user %s: %v", username, err)
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"access": access,
		})
	}
}

func parseToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}

func Register(store UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode register request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Username = strings.TrimSpace(req.Username)

		if !util.ValidateEmail(req.Email) {
			log.Printf("ERROR: Email validation failed during registration - Email: %s", req.Email)
			http.Error(w, "invalid email format", http.StatusBadRequest)
			return
		}

		if !util.ValidateUsername(req.Username) {
			log.Printf("ERROR: Username validation failed during registration - Username: %s", req.Username)
			http.Error(w, "username must be at least 5 characters long", http.StatusBadRequest)
			return
		}

		if !util.ValidatePassword(req.Password) {
			log.Printf("ERROR: Password validation failed during registration - Username: %s", req.Username)
			http.Error(w, "password must be at least 8 characters long and contain at least one number", http.StatusBadRequest)
			return
		}

		exists, err := store.EmailExists(r.Context(), strings.ToLower(req.Email))
		if err != nil {
			log.Printf("ERROR: Failed to check email uniqueness - Email: %s: %v", req.Email, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if exists {
			log.Printf("ERROR: Registration failed - email already exists - Email: %s", req.Email)
			http.Error(w, "a user with this email address already exists", http.StatusBadRequest)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("ERROR: Failed to hash password for user %s: %v", req.Username, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		user, err := store.CreateUser(r.Context(), req.Username, strings.ToLower(req.Email), string(hashedPassword))
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				log.Printf("ERROR: Registration failed - username already exists - Username: %s", req.Username)
				http.Error(w, "a user with this username already exists", http.StatusBadRequest)
				return
			}
			log.Printf("ERROR: Failed to create user %s: %v", req.Username, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		log.Printf("INFO: Successful registration - User: %s, ID: %d", user.Username, user.ID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.RegisterResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
	}
}

// ProtectedData is an authenticated echo endpoint.
func ProtectedData() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, _ := r.Context().Value("username").(string)
		userID, _ := r.Context().Value("user_id").(int64)
		email, _ := r.Context().Value("email").(string)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message":    fmt.Sprintf("Hello, %s! This is protected data.", username),
			"user_id":    userID,
			"user_email": email,
		})
	}
}
