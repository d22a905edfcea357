package testutil

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/go-jose/go-jose.v2"
	"gopkg.in/go-jose/go-jose.v2/jwt"

	"github.com/abhiraj-restaurant/restaurant-api/config"
	"github.com/abhiraj-restaurant/restaurant-api/models"
)

// TokenOptions overrides the claims of a minted token
type TokenOptions struct {
	Secret   string
	Issuer   string
	Audience string
	Scope    string
	TTL      time.Duration
}

// SignToken mints an HS256 token accepted by the API for the given subject
func SignToken(t *testing.T, cfg *config.Config, subject string, opts TokenOptions) string {
	t.Helper()

	if opts.Secret == "" {
		opts.Secret = cfg.JWTSecret
	}
	if opts.Issuer == "" {
		opts.Issuer = cfg.JWTIssuer
	}
	if opts.Audience == "" {
		opts.Audience = cfg.JWTAudience
	}
	if opts.TTL == 0 {
		opts.TTL = time.Hour
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: []byte(opts.Secret)},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	require.NoError(t, err)

	now := time.Now()
	claims := jwt.Claims{
		Issuer:   opts.Issuer,
		Subject:  subject,
		Audience: jwt.Audience{opts.Audience},
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(opts.TTL)),
	}

	token, err := jwt.Signed(signer).
		Claims(claims).
		Claims(map[string]interface{}{"scope": opts.Scope}).
		CompactSerialize()
	require.NoError(t, err)
	return token
}

// TokenFor mints a default token for a stored user
func TokenFor(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()
	return SignToken(t, cfg, strconv.FormatUint(uint64(user.ID), 10), TokenOptions{})
}
