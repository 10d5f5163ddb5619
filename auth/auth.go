// Package auth mints and verifies the session tokens carried by the
// auth_token cookie.
package auth

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fiszki/leitner-api/config"
)

// CookieName is the session cookie.
const CookieName = "auth_token"

const tokenTTL = 24 * time.Hour

func secretKey() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set")
	}
	return []byte(secret), nil
}

// CreateToken mints a session token for the given user public ID.
func CreateToken(userID string) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub": userID,
			"exp": time.Now().Add(tokenTTL).Unix(),
		})

	return token.SignedString(key)
}

// VerifyToken validates a session token and returns the user public ID it
// was minted for.
func VerifyToken(tokenString string) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}

// SetSessionCookie attaches the session token to the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL),
		HttpOnly: true,
		Secure:   config.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if !config.Env.IsDevelopment {
		cookie.Domain = config.Env.Domain
	}
	http.SetCookie(w, cookie)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if !config.Env.IsDevelopment {
		cookie.Domain = config.Env.Domain
	}
	http.SetCookie(w, cookie)
}
