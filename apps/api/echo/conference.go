package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core/conference"
)

type conferenceApi struct {
	svc *conference.Service
}

func registerConferenceAPI(g *echo.Group, authed []echo.MiddlewareFunc, deps *Deps) {
	api := conferenceApi{svc: deps.ConferenceSvc}

	cg := g.Group("/conference", authed...)
	cg.POST("/announce", api.announce, adminMiddleware())
	cg.POST("/join", api.join, studentMiddleware())
}

// Handlers

func (api *conferenceApi) announce(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	ack, err := api.svc.Announce(sess)
	if err != nil {
		return errors.Wrap(err, "announcing conference")
	}
	return ctx.JSON(http.StatusOK, ack)
}

func (api *conferenceApi) join(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	ack, err := api.svc.Join(sess)
	if err != nil {
		return errors.Wrap(err, "joining conference")
	}
	return ctx.JSON(http.StatusOK, ack)
}
