package provisioning

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid provisioning token")

const tokenScope = "cart:create"

// TokenService mints and verifies the short-lived credential that authorizes
// creating a cart for exactly one new user.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: 5 * time.Minute}
}

func (s *TokenService) Mint(owner string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": owner,
		"scope":   tokenScope,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyProvisionToken checks signature, expiry and scope, returning the
// owner the token was minted for. The cart-create handler additionally
// matches that owner against the request path.
func (s *TokenService) VerifyProvisionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if scope, _ := claims["scope"].(string); scope != tokenScope {
		return "", ErrInvalidToken
	}
	owner, _ := claims["user_id"].(string)
	if owner == "" {
		return "", ErrInvalidToken
	}
	return owner, nil
}
