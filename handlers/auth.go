package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fiszki/leitner-api/auth"
	"github.com/fiszki/leitner-api/models"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req credentialsRequest
	if err := decoder.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Could not decode request")
		return
	}

	issues := map[string][]string{}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		issues["email"] = append(issues["email"], "A valid email address is required.")
	}
	if len(req.Password) < 8 {
		issues["password"] = append(issues["password"], "Password must be at least 8 characters long.")
	}
	if len(issues) > 0 {
		respondValidationError(w, "Invalid registration data", issues)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Log.Error("password hash failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}
	publicID, err := gonanoid.New()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user := models.User{PublicID: publicID, Email: req.Email, PasswordHash: string(hash)}
	if err := a.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondError(w, http.StatusConflict, "An account with this email already exists")
			return
		}
		a.Log.Error("user create failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Could not decode request")
		return
	}

	var user models.User
	if err := a.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.CreateToken(user.PublicID)
	if err != nil {
		a.Log.Error("token mint failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	auth.SetSessionCookie(w, token)
	respondJSON(w, http.StatusOK, user)
}

func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
