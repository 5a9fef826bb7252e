package serverutils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yiwenkang0128/qualitative-analysis-AI-tool/internal/entity"
)

// TokenTTL is how long a session capability stays cryptographically valid.
// Logout only clears the cookie; issued tokens live out this window.
const TokenTTL = 2 * time.Hour

// CookieName is the http-only cookie carrying the session token.
const CookieName = "token"

// AuthContext is the verified claim set threaded into handlers. It is produced
// once per request by pure token verification and never cached across requests.
type AuthContext struct {
	UserId uuid.UUID
	Email  string
	Role   entity.UserRole
}

func (a AuthContext) IsAdmin() bool {
	return a.Role == entity.UserRoleAdmin
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret)
}

// IssueToken mints the signed session capability for a user.
func IssueToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// VerifyToken parses and validates a signed token and rebuilds the
// AuthContext from its claims. Expiry is enforced by the jwt library.
func VerifyToken(tokenStr string) (*AuthContext, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}

	idStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id claim")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &AuthContext{
		UserId: userId,
		Email:  email,
		Role:   entity.UserRole(role),
	}, nil
}
