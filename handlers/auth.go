package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"fintrack/middleware"
	"fintrack/services"
	"fintrack/storage"
)

const sessionMaxAge = 7 * 24 * 60 * 60 // seconds

// AuthHandler serves login, logout and the current-user endpoint. Sessions
// are a signed JWT in an httpOnly cookie.
type AuthHandler struct {
	users        *storage.UserStore
	seeder       *services.Seeder
	secret       []byte
	secureCookie bool
	log          *logrus.Logger
}

func NewAuthHandler(users *storage.UserStore, seeder *services.Seeder, secret []byte, secureCookie bool, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		users:        users,
		seeder:       seeder,
		secret:       secret,
		secureCookie: secureCookie,
		log:          log,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Username == "" || body.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.FindByUsername(body.Username)
	if err != nil {
		h.log.WithError(err).Error("login lookup failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := middleware.NewToken(h.secret, user.ID)
	if err != nil {
		h.log.WithError(err).Error("token signing failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// First login of a fresh user gets the starter masters.
	if err := h.seeder.InitializeUserDefaults(user.ID); err != nil {
		h.log.WithError(err).WithField("userId", user.ID).Warn("failed to initialize user defaults")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		h.log.WithError(err).Error("me lookup failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
