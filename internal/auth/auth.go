package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotAuthenticated = errors.New("you must be signed in to use this endpoint")
	ErrInvalidHeader    = errors.New("the authorization header must have the format 'Bearer <token>'")
	ErrInvalidToken     = errors.New("the token sent with your request is invalid or expired")
)

const principalKey = "grovesmith-principal"

// Config configures token verification.
type Config struct {
	Secret   []byte
	Issuer   string // verified if set
	Audience string // verified if set
}

// Claims are the claims of the auth provider's access token.
type Claims struct {
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

type UserMetadata struct {
	FullName string `json:"full_name"`
}

// Principal is the verified identity of the caller.
type Principal struct {
	ID       string
	Email    string
	FullName string
}

// Middleware verifies the bearer token of every request and stores the
// principal in the context. Requests without a valid token are aborted
// with HTTP 401.
func Middleware(cfg Config) gin.HandlerFunc {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		options = append(options, jwt.WithAudience(cfg.Audience))
	}
	parser := jwt.NewParser(options...)

	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			abort(c, ErrNotAuthenticated)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abort(c, ErrInvalidHeader)
			return
		}

		principal, err := verify(parser, cfg.Secret, strings.TrimSpace(token))
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("token verification failed")
			abort(c, ErrInvalidToken)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func verify(parser *jwt.Parser, secret []byte, tokenString string) (Principal, error) {
	var claims Claims
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return Principal{}, err
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return Principal{}, errors.New("subject claim missing")
	}

	return Principal{
		ID:       claims.Subject,
		Email:    claims.Email,
		FullName: claims.UserMetadata.FullName,
	}, nil
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
}

// CurrentPrincipal returns the principal stored by Middleware.
func CurrentPrincipal(c *gin.Context) (Principal, error) {
	value, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, ErrNotAuthenticated
	}

	principal, ok := value.(Principal)
	if !ok || principal.ID == "" {
		return Principal{}, ErrNotAuthenticated
	}

	return principal, nil
}

// ManagerID returns the id of the authenticated manager.
func ManagerID(c *gin.Context) (string, error) {
	principal, err := CurrentPrincipal(c)
	if err != nil {
		return "", err
	}

	return principal.ID, nil
}

// Sign issues an HS256 token for principal that is valid for ttl.
func Sign(cfg Config, principal Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:        principal.Email,
		UserMetadata: UserMetadata{FullName: principal.FullName},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	if cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{cfg.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}
