package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core/dashboard"
)

func registerDashboardAPI(g *echo.Group, authed []echo.MiddlewareFunc, deps *Deps) {
	g.GET("/dashboard", dashboardHandler(deps.DashboardSvc), authed...)
}

func dashboardHandler(svc *dashboard.Service) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess, err := getContextSession(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context session")
		}
		board, err := svc.For(ctx.Request().Context(), sess)
		if err != nil {
			return errors.Wrap(err, "building dashboard")
		}
		return ctx.JSON(http.StatusOK, board)
	}
}
