package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	echoapi "github.com/eldad2003/pharmverse-edu-hub/apps/api/echo"
	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/conference"
	"github.com/eldad2003/pharmverse-edu-hub/core/dashboard"
	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
	"github.com/eldad2003/pharmverse-edu-hub/core/material"
	"github.com/eldad2003/pharmverse-edu-hub/core/timetable"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
	logsvc "github.com/eldad2003/pharmverse-edu-hub/services/logger"
	notifysvc "github.com/eldad2003/pharmverse-edu-hub/services/notify"
	"github.com/eldad2003/pharmverse-edu-hub/storage/database"
	"github.com/eldad2003/pharmverse-edu-hub/storage/database/kvrepos"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type serverParams struct {
	dig.In

	Conf          *core.Config
	Logger        core.Logger
	Validate      *validator.Validate
	Translator    ut.Translator
	Metrics       *echoapi.Metrics
	Sessions      *user.Sessions
	UserSvc       *user.Service
	TimetableSvc  *timetable.Service
	MaterialSvc   *material.Service
	ConferenceSvc *conference.Service
	DashboardSvc  *dashboard.Service
}

func newLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(os.Stdout, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(os.Stderr, conf)
}

func newKV(conf *core.Config, loggerParam DBLoggerParam) kvstore.KV {
	kv, err := database.Open(context.Background(), conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up store: %v", err), err)
	}
	return kv
}

func newAppender(kv kvstore.KV, conf *core.Config, loggerParam DBLoggerParam) *kvstore.Appender {
	return database.NewAppender(kv, conf, loggerParam.Logger)
}

func newRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

func newMetrics(reg *prometheus.Registry) *echoapi.Metrics {
	return echoapi.NewMetrics(reg)
}

func newNotifier(conf *core.Config, metrics *echoapi.Metrics) core.Notifier {
	console := notifysvc.NewConsoleNotifier(log.New(os.Stdout, "NOTIFY : ", log.LstdFlags), conf)
	return metrics.Notifier(console)
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

func newSessions(conf *core.Config) *user.Sessions {
	return user.NewSessions(conf.JWTExpirationDelta)
}

func newUserService(repo user.Repository, validate *validator.Validate, conf *core.Config) *user.Service {
	return user.NewService(repo, validate, conf.AdminPassword)
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(p.Conf.Server.Address, nil, &echoapi.Deps{
		Conf:          p.Conf,
		Logger:        p.Logger,
		Validate:      p.Validate,
		Translator:    p.Translator,
		Metrics:       p.Metrics,
		Sessions:      p.Sessions,
		UserSvc:       p.UserSvc,
		TimetableSvc:  p.TimetableSvc,
		MaterialSvc:   p.MaterialSvc,
		ConferenceSvc: p.ConferenceSvc,
		DashboardSvc:  p.DashboardSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newKV))
	must(c.Provide(newAppender))
	must(c.Provide(newRegistry))
	must(c.Provide(newMetrics))
	must(c.Provide(newNotifier))
	must(c.Provide(newValidator))
	must(c.Provide(newSessions))
	must(c.Provide(kvrepos.NewUserRepository))
	must(c.Provide(kvrepos.NewTimetableRepository))
	must(c.Provide(kvrepos.NewMaterialRepository))
	must(c.Provide(newUserService))
	must(c.Provide(timetable.NewService))
	must(c.Provide(material.NewService))
	must(c.Provide(conference.NewService))
	must(c.Provide(dashboard.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
