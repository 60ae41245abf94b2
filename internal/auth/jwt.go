package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload of the session cookie. ID carries the
// session id; expiry is owned by the session store, not the token.
type Claims struct {
	jwt.RegisteredClaims
}

// CookieSigner signs and verifies session cookie values with HS256.
type CookieSigner struct {
	key    []byte
	issuer string
}

func NewCookieSigner(key, issuer string) *CookieSigner {
	return &CookieSigner{key: []byte(key), issuer: issuer}
}

// Sign issues a token naming the session and its user.
func (s *CookieSigner) Sign(sessionID string, userID int64) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			Issuer:   s.issuer,
			Subject:  strconv.FormatInt(userID, 10),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Parse validates a token and returns claims.
func (s *CookieSigner) Parse(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ID == "" {
		return Claims{}, errors.New("invalid session token")
	}
	return *claims, nil
}
