package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core/user"
)

type authApi struct {
	svc      *user.Service
	auth     *authenticator
	sessions *user.Sessions
	metrics  *Metrics
}

func registerAuthAPI(g *echo.Group, authed []echo.MiddlewareFunc, deps *Deps, auth *authenticator) {
	api := authApi{
		svc:      deps.UserSvc,
		auth:     auth,
		sessions: deps.Sessions,
		metrics:  deps.Metrics,
	}

	ag := g.Group("/auth")

	// un-authed endpoints
	ag.POST("/login", api.login)
	ag.POST("/register", api.register)

	// authed endpoints
	sg := ag.Group("", authed...)
	sg.POST("/logout", api.logout)
	sg.GET("/session", api.session)
}

type (
	LoginResponse struct {
		Token   string           `json:"token"`
		Session user.SessionInfo `json:"session"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	var data user.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}

	sess, err := api.svc.Login(ctx.Request().Context(), data)
	api.metrics.login(data.Role, err)
	if err != nil {
		return err
	}

	token, err := api.auth.login(sess)
	if err != nil {
		return errors.Wrap(err, "opening session")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Session: user.Info(sess)})
}

func (api *authApi) register(ctx echo.Context) error {
	var data user.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	if _, err := api.svc.Register(ctx.Request().Context(), data); err != nil {
		return err
	}
	api.metrics.registrations.Inc()
	return ctx.JSON(http.StatusCreated, SuccessResponse{Success: "Registration successful. You can now login with your credentials."})
}

func (api *authApi) logout(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	api.sessions.Close(claims.Id)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *authApi) session(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	return ctx.JSON(http.StatusOK, user.Info(sess))
}
