package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
)

const (
	contextTokenKey   = "userToken"
	contextSessionKey = "session"
	tokenAudience     = "PharmApp"
)

// Claims represents the authorization claims transmitted via a JWT.
// The standard `jti` claim is the id of the session the token was issued for.
type Claims struct {
	jwt.StandardClaims
	Username  string `json:"username"`
	YearGroup string `json:"yearGroup"`
	Role      string `json:"role"`
}

// authenticator issues tokens for opened sessions and resolves them back on every authed request.
type authenticator struct {
	conf      *core.Config
	sessions  *user.Sessions
	jwtConfig middleware.JWTConfig
}

func newAuthenticator(conf *core.Config, sessions *user.Sessions) *authenticator {
	return &authenticator{
		conf:     conf,
		sessions: sessions,
		jwtConfig: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
	}
}

// claims expire together with the session they were issued for.
func (a *authenticator) claims(sessionID string, expiresAt time.Time, sess user.Session) *Claims {
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        sessionID,
			Issuer:    a.conf.AppName,
			Subject:   sess.Username(),
			Audience:  tokenAudience,
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  expiresAt.Add(-a.conf.JWTExpirationDelta).Unix(),
		},
		Username:  sess.Username(),
		YearGroup: sess.YearGroup(),
		Role:      sess.Role(),
	}
}

// login opens a session and returns the signed token representing it.
func (a *authenticator) login(sess user.Session) (string, error) {
	id, expiresAt := a.sessions.Open(sess)
	token, err := a.generateToken(a.claims(id, expiresAt, sess))
	if err != nil {
		a.sessions.Close(id)
		return "", err
	}
	return token, nil
}

// generateToken generates a signed JWT token string representing the Claims.
func (a *authenticator) generateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.jwtConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.jwtConfig.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// sessionMiddleware rejects tokens whose session was closed, and puts the live session in the context.
func (a *authenticator) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		sess, err := a.sessions.Get(claims.Id)
		if err != nil {
			return errSessionClosed
		}
		ctx.Set(contextSessionKey, sess)
		return next(ctx)
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (user.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(user.Session); ok {
		return sess, nil
	}
	return nil, errUnauthorized
}
