package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidTicket = errors.New("invalid session ticket")

// Ticket binds a WebSocket connection to a configuration session of one
// table type.
type Ticket struct {
	SessionID string
	TableType string
	ExpiresAt time.Time
}

// IssueTicket signs a ticket valid for ttl.
func IssueTicket(secret, sessionID, tableType string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"sid":   sessionID,
		"table": tableType,
		"exp":   jwt.NewNumericDate(exp).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign ticket: %w", err)
	}
	return signed, exp, nil
}

// ParseTicket verifies signature and expiry and extracts the ticket.
func ParseTicket(secret, raw string) (*Ticket, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidTicket
	}
	sid, _ := claims["sid"].(string)
	table, _ := claims["table"].(string)
	expf, _ := claims["exp"].(float64)
	if sid == "" || table == "" {
		return nil, fmt.Errorf("%w: missing claims", ErrInvalidTicket)
	}

	return &Ticket{SessionID: sid, TableType: table, ExpiresAt: time.Unix(int64(expf), 0)}, nil
}
