package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/KAMEVETRICS/gensyn-portal/internal/config"
)

const defaultExpiration = 24 * time.Hour

// Claims is the session payload: the acting user's id and email plus the
// standard expiry claims.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateToken(userID, email string, cfg *config.Config) (string, error) {
	expiration := defaultExpiration
	if d, err := time.ParseDuration(cfg.JWT.Expiration); err == nil && d > 0 {
		expiration = d
	}

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken resolves a session credential to its claims. It fails closed:
// a missing, malformed, expired or tampered token yields nil, never an error,
// so callers treat every bad credential as anonymous.
func ParseToken(tokenString, secret string) *Claims {
	if tokenString == "" {
		return nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil
	}
	return claims
}
