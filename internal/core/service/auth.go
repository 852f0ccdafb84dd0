package service

import (
	"crypto/subtle"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid passenger id or phone number")

type AuthService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// CheckPhoneNumber compares the supplied number with the one on file in
// constant time.
func (s *AuthService) CheckPhoneNumber(supplied, onFile string) bool {
	return onFile != "" && subtle.ConstantTimeCompare([]byte(supplied), []byte(onFile)) == 1
}

func (s *AuthService) GenerateToken(passengerID int) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(passengerID),
		"exp": now.Add(s.ttl).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *AuthService) ValidateToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sub, ok := claims["sub"].(string)
		if !ok {
			return 0, errors.New("invalid token claims")
		}
		return strconv.Atoi(sub)
	}

	return 0, errors.New("invalid token")
}
