package auth

import (
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"

	"github.com/hospitalops/pulse/pkg/domain/model/errs"
	"github.com/hospitalops/pulse/pkg/domain/types"
)

const (
	tokenIssuer         = "pulse"
	TokenExpireDuration = 7 * 24 * time.Hour
)

// Claims is the verified identity behind a bearer token.
type Claims struct {
	UserID types.UserID
	Name   string
}

// IssueToken signs a session token for the given user with an HMAC secret.
// Authentication protocol design is outside this system; the token only
// tags REST calls and authenticates the push channel handshake.
func IssueToken(userID types.UserID, name string, secret []byte, now time.Time) (string, error) {
	tok, err := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Subject(userID.String()).
		Claim("name", name).
		IssuedAt(now).
		Expiration(now.Add(TokenExpireDuration)).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

// VerifyToken parses and validates a bearer token, returning its claims.
func VerifyToken(raw string, secret []byte) (*Claims, error) {
	tok, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid token", goerr.T(errs.TagUnauthorized))
	}

	claims := &Claims{
		UserID: types.UserID(tok.Subject()),
	}
	if v, ok := tok.Get("name"); ok {
		if name, ok := v.(string); ok {
			claims.Name = name
		}
	}
	if claims.UserID == types.EmptyUserID {
		return nil, goerr.New("token has no subject", goerr.T(errs.TagUnauthorized))
	}
	return claims, nil
}
