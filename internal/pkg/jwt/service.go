package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims identify a server-side session. The user record lives in the
// session store, so a token stops resolving once its session is cleared.
type Claims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`

	jwtlib.RegisteredClaims
}

type Service interface {
	GenerateSessionToken(sessionID, role string) (string, error)
	ValidateToken(tokenString string) (Claims, error)
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration, issuer string) *HMACService {
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		issuer:    issuer,
		now:       time.Now,
	}
}

func (s *HMACService) GenerateSessionToken(sessionID, role string) (string, error) {
	if len(s.secret) == 0 || s.expiresIn <= 0 || sessionID == "" {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		SessionID: sessionID,
		Role:      role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sessionID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return t.SignedString(s.secret)
}

func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
		jwtlib.WithExpirationRequired(),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.SessionID == "" {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
