package timetable

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
)

var nowFunc = time.Now // mockable

// Entry is one class of a year group's timetable. Day and Time are free text.
//
// ID is the creation time in Unix milliseconds, so two entries added within
// the same millisecond share an ID.
type Entry struct {
	ID         int64  `json:"id"`
	Day        string `json:"day"`
	Time       string `json:"time"`
	Subject    string `json:"subject"`
	Instructor string `json:"instructor"`
	Location   string `json:"location"`
}

// NewEntry contains information needed to add a class to a timetable.
type NewEntry struct {
	Day        string `json:"day" validate:"required,notblank"`
	Time       string `json:"time" validate:"required,notblank"`
	Subject    string `json:"subject" validate:"required,notblank"`
	Instructor string `json:"instructor" validate:"required,notblank"`
	Location   string `json:"location" validate:"required,notblank"`
}

func (ne *NewEntry) Validate(validate *validator.Validate) error {
	ne.Day = core.CleanString(ne.Day)
	ne.Time = core.CleanString(ne.Time)
	ne.Subject = core.CleanString(ne.Subject)
	ne.Instructor = core.CleanString(ne.Instructor)
	ne.Location = core.CleanString(ne.Location)
	return validate.Struct(ne)
}

type (
	Repository interface {
		// QueryEntries returns a year group's timetable in insertion order.
		QueryEntries(ctx context.Context, yearGroup string) ([]Entry, error)
		AppendEntries(ctx context.Context, yearGroup string, entries ...Entry) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
		notifier core.Notifier
	}
)

func NewService(repo Repository, validate *validator.Validate, notifier core.Notifier) *Service {
	return &Service{repo: repo, validate: validate, notifier: notifier}
}

// Add appends a class to the admin's year group timetable and returns the stored entry.
func (svc *Service) Add(ctx context.Context, sess user.Session, ne NewEntry) (Entry, error) {
	if _, ok := sess.(user.AdminSession); !ok {
		return Entry{}, core.ErrPermissionDenied
	}
	if err := ne.Validate(svc.validate); err != nil {
		return Entry{}, err
	}
	entry := Entry{
		ID:         nowFunc().UnixMilli(),
		Day:        ne.Day,
		Time:       ne.Time,
		Subject:    ne.Subject,
		Instructor: ne.Instructor,
		Location:   ne.Location,
	}
	if err := svc.repo.AppendEntries(ctx, sess.YearGroup(), entry); err != nil {
		return Entry{}, errors.Wrap(err, "appending timetable entry")
	}
	svc.notifier.Notify(sess.YearGroup(), core.Ack{
		Kind:        "timetable",
		Title:       "Timetable Updated",
		Description: "New class has been added to the timetable",
	})
	return entry, nil
}

// Load returns the student's year group timetable.
func (svc *Service) Load(ctx context.Context, sess user.Session) ([]Entry, error) {
	if _, ok := sess.(user.StudentSession); !ok {
		return nil, core.ErrPermissionDenied
	}
	return svc.query(ctx, sess.YearGroup())
}

// Today returns the student's classes whose day is today's weekday name, ignoring case.
func (svc *Service) Today(ctx context.Context, sess user.Session) ([]Entry, error) {
	entries, err := svc.Load(ctx, sess)
	if err != nil {
		return nil, err
	}
	return OnDay(entries, nowFunc().Weekday()), nil
}

// CountToday returns the number of classes scheduled today for a year group, whatever the session.
func (svc *Service) CountToday(ctx context.Context, yearGroup string) (int, error) {
	entries, err := svc.query(ctx, yearGroup)
	if err != nil {
		return 0, err
	}
	return len(OnDay(entries, nowFunc().Weekday())), nil
}

func (svc *Service) query(ctx context.Context, yearGroup string) ([]Entry, error) {
	entries, err := svc.repo.QueryEntries(ctx, yearGroup)
	if err != nil {
		return nil, errors.Wrap(err, "querying timetable")
	}
	return entries, nil
}

// OnDay keeps the entries whose day matches the weekday name, preserving order.
func OnDay(entries []Entry, day time.Weekday) []Entry {
	out := make([]Entry, 0)
	for _, e := range entries {
		if strings.EqualFold(e.Day, day.String()) {
			out = append(out, e)
		}
	}
	return out
}
