package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/conference"
	"github.com/eldad2003/pharmverse-edu-hub/core/dashboard"
	"github.com/eldad2003/pharmverse-edu-hub/core/material"
	"github.com/eldad2003/pharmverse-edu-hub/core/timetable"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
)

type (
	Deps struct {
		Conf          *core.Config
		Logger        core.Logger
		Validate      *validator.Validate
		Translator    ut.Translator
		Metrics       *Metrics
		Sessions      *user.Sessions
		UserSvc       *user.Service
		TimetableSvc  *timetable.Service
		MaterialSvc   *material.Service
		ConferenceSvc *conference.Service
		DashboardSvc  *dashboard.Service
	}

	Server struct {
		addr     string
		deps     *Deps
		app      *echo.Echo
		auth     *authenticator
		errors   chan error
		shutdown chan os.Signal
	}
)

// NewServer builds the API server. If shutdown is nil, the server listens for SIGINT and SIGTERM itself.
func NewServer(addr string, shutdown chan os.Signal, deps *Deps) *Server {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics(nil)
	}

	s := &Server{
		addr:     addr,
		deps:     deps,
		app:      echo.New(),
		auth:     newAuthenticator(deps.Conf, deps.Sessions),
		errors:   make(chan error, 1),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	v1.GET("/year-groups", yearGroups)

	authed := []echo.MiddlewareFunc{middleware.JWTWithConfig(s.auth.jwtConfig), s.auth.sessionMiddleware}

	registerAuthAPI(v1, authed, s.deps, s.auth)
	registerDashboardAPI(v1, authed, s.deps)
	registerTimetableAPI(v1, authed, s.deps)
	registerMaterialAPI(v1, authed, s.deps)
	registerConferenceAPI(v1, authed, s.deps)
}

// Start blocks until the server stops. A failure to listen is sent on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the running application to shut down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signalled
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}

func yearGroups(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.YearGroups)
}
