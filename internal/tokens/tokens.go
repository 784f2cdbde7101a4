// Package tokens issues and verifies the signed access and refresh tokens.
// Verification failures are strictly structural or temporal; business rules
// (revocation, rotation matching) live with the callers.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultIssuer   = "blogging-platform"
	DefaultAudience = "blogging-platform-users"

	RefreshTokenType = "refresh"
)

var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenNotActive = errors.New("token is not active yet")
)

// AccessClaims is the signed identity payload of an access token. TokenType
// is always empty here; it surfaces the type marker of other token kinds so
// callers can reject them when presented as bearer tokens.
type AccessClaims struct {
	UserID    uint   `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Username  string `json:"username"`
	TokenType string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the subject id and the refresh type marker.
type RefreshClaims struct {
	UserID    uint   `json:"id"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Identity is the immutable view of a user embedded in an access token.
type Identity struct {
	ID       uint
	Email    string
	Role     string
	Username string
}

type Service struct {
	Secret     []byte
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewService(secret []byte, accessTTL, refreshTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Service{
		Secret:     secret,
		Issuer:     DefaultIssuer,
		Audience:   DefaultAudience,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}
}

func (s *Service) IssueAccessToken(id Identity) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.AccessTTL)
	claims := AccessClaims{
		UserID:   id.ID,
		Email:    id.Email,
		Role:     id.Role,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Audience:  jwt.ClaimStrings{s.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *Service) IssueRefreshToken(userID uint) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.RefreshTTL)
	claims := RefreshClaims{
		UserID:    userID,
		TokenType: RefreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Audience:  jwt.ClaimStrings{s.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *Service) ParseAccessClaims(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := s.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (s *Service) ParseRefreshClaims(tokenStr string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := s.parse(tokenStr, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (s *Service) parse(tokenStr string, claims jwt.Claims) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithAudience(s.Audience))
	if err != nil {
		return mapParseError(err)
	}
	if !tkn.Valid {
		return ErrTokenMalformed
	}
	return nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotActive
	default:
		return ErrTokenMalformed
	}
}
