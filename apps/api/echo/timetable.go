package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core/timetable"
)

type timetableApi struct {
	svc *timetable.Service
}

func registerTimetableAPI(g *echo.Group, authed []echo.MiddlewareFunc, deps *Deps) {
	api := timetableApi{svc: deps.TimetableSvc}

	tg := g.Group("/timetable", authed...)
	tg.POST("", api.add, adminMiddleware())
	tg.GET("", api.load, studentMiddleware())
	tg.GET("/today", api.today, studentMiddleware())
}

// Handlers

func (api *timetableApi) add(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	var data timetable.NewEntry
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}

	entry, err := api.svc.Add(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "adding timetable entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *timetableApi) load(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	entries, err := api.svc.Load(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "loading timetable")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *timetableApi) today(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context session")
	}
	entries, err := api.svc.Today(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "loading today's classes")
	}
	return ctx.JSON(http.StatusOK, entries)
}
