package common

import (
	"net/http"
	"strings"

	"zentra/internal/config"
)

// IdentityResolver resolves the current user of a request or channel handshake.
type IdentityResolver interface {
	Resolve(r *http.Request) (string, error)
}

func NewIdentityResolver(cfg config.AuthConfig) IdentityResolver {
	if cfg.Mode == "header" {
		return HeaderResolver{}
	}
	return &JWTResolver{secret: []byte(cfg.JWTSecret)}
}

// JWTResolver reads a bearer token from the Authorization header, or from the
// token query parameter for browser websocket handshakes.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (j *JWTResolver) Resolve(r *http.Request) (string, error) {
	tokenString := r.URL.Query().Get("token")
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", Unauthorized("invalid auth header")
		}
		tokenString = parts[1]
	}
	if tokenString == "" {
		return "", Unauthorized("authorization required")
	}

	claims, err := ValidToken(j.secret, tokenString)
	if err != nil {
		appErr := Unauthorized("invalid or expired token")
		appErr.Err = err
		return "", appErr
	}
	if claims.UserID == "" {
		return "", Unauthorized("token carries no user")
	}
	return claims.UserID, nil
}

// HeaderResolver trusts an identity already established by a gateway.
type HeaderResolver struct{}

func (HeaderResolver) Resolve(r *http.Request) (string, error) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		userID = strings.TrimSpace(r.URL.Query().Get("userId"))
	}
	if userID == "" {
		return "", Unauthorized("user id required")
	}
	return userID, nil
}
