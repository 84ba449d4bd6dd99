package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid stream token")

// Claims - доступ участника к потоку геопозиций одного инцидента.
// Subject содержит id участника.
type Claims struct {
	IncidentID string `json:"incident_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// Issue подписывает токен HS256
func Issue(secret []byte, participantID, incidentID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		IncidentID: incidentID,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   participantID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse проверяет подпись и срок действия токена
func Parse(secret []byte, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" || claims.IncidentID == "" {
		return nil, fmt.Errorf("%w: invalid structure", ErrInvalidToken)
	}
	return claims, nil
}
