package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TrackedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// TrackingClaims identify one paid order on the tracking page.
type TrackingClaims struct {
	OrderNumber  string        `json:"orderNumber"`
	CustomerName string        `json:"customerName"`
	TotalPrice   int64         `json:"totalPrice"`
	Items        []TrackedItem `json:"items,omitempty"`
	jwt.RegisteredClaims
}

var (
	ErrTrackingTokenRequired = errors.New("tracking token required")
	ErrInvalidTrackingToken  = errors.New("invalid tracking token")
)

func CreateOrderTrackingToken(secret string, claims TrackingClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.Subject = claims.OrderNumber
	claims.IssuedAt = jwt.NewNumericDate(now)
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func VerifyOrderTrackingToken(secret, tokenString string) (*TrackingClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrTrackingTokenRequired
	}

	claims := &TrackingClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	_, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidTrackingToken, err)
	}
	if strings.TrimSpace(claims.OrderNumber) == "" {
		return nil, ErrInvalidTrackingToken
	}
	return claims, nil
}

func ParseBearerToken(authHeader string) string {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
