package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie the session token travels in. The browser (or the
// client package's cookie jar) carries it back on every request; clients never
// handle the token value themselves.
const CookieName = "session_token"

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token expired")
)

type Claims struct {
	UserID    string
	SessionID string
}

// Generator mints and verifies signed session tokens. The signature keeps the
// cookie tamper-proof; the session id inside it is checked against Redis so
// logout revokes the session server-side.
type Generator struct {
	secret     []byte
	sessionTTL time.Duration
}

func NewGenerator(secret string, sessionTTL time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}
}

func (g *Generator) TTL() time.Duration {
	return g.sessionTTL
}

func (g *Generator) Mint(userID string) (token string, sessionID string, err error) {
	const op = "sessions.Generator.Mint"

	sessionID = uuid.NewString()
	now := time.Now()

	claims := jwt.MapClaims{
		"sub": userID,
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(g.sessionTTL).Unix(),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return token, sessionID, nil
}

func (g *Generator) Parse(token string) (Claims, error) {
	const op = "sessions.Generator.Parse"

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, fmt.Errorf("%s: %w", op, ErrExpiredToken)
		}
		return Claims{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	sub, _ := mapClaims["sub"].(string)
	sid, _ := mapClaims["sid"].(string)
	if sub == "" || sid == "" {
		return Claims{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return Claims{UserID: sub, SessionID: sid}, nil
}
